package vm

import (
	"encoding/binary"
	"fmt"

	"github.com/jtristan/jt1701/memory"
	"github.com/jtristan/jt1701/word"
)

// magic is the 4-byte header identifying a loadable program image,
// grounded on nes/cartridge.go's "NES\x1A" magic check.
var magic = [4]byte{'J', 'T', '0', '1'}

const headerSize = len(magic) + 4 // magic + little-endian uint32 word count

// isValidHeader mirrors cartridge.isValid: a length check plus a literal
// byte comparison, no parsing of the rest of the stream yet.
func isValidHeader(data []byte) bool {
	if len(data) < headerSize {
		return false
	}
	for i, b := range magic {
		if data[i] != b {
			return false
		}
	}
	return true
}

// Program is a decoded image: a flat sequence of words to be placed at
// consecutive addresses starting from a load base.
type Program struct {
	Words []word.Word
}

// LoadProgram parses a program image (spec.md 4.K's concrete realisation
// of "loads a program"). A short buffer, a bad magic, or a body shorter
// than the word count requires is a returned error, never a panic; bytes
// beyond the counted words are ignored.
func LoadProgram(data []byte) (*Program, error) {
	if !isValidHeader(data) {
		return nil, fmt.Errorf("vm: not a valid program image (missing %q header)", magic)
	}
	count := binary.LittleEndian.Uint32(data[len(magic):headerSize])
	body := data[headerSize:]
	const bytesPerWord = 8
	want := int(count) * bytesPerWord
	if len(body) < want {
		return nil, fmt.Errorf("vm: truncated program image: want %d word bytes, have %d", want, len(body))
	}
	words := make([]word.Word, count)
	for i := range words {
		v := binary.LittleEndian.Uint64(body[i*bytesPerWord : (i+1)*bytesPerWord])
		words[i] = word.Unpack(v)
	}
	return &Program{Words: words}, nil
}

// EncodeProgram is LoadProgram's inverse, used by tests to build a byte
// stream LoadProgram can read back.
func EncodeProgram(words []word.Word) []byte {
	const bytesPerWord = 8
	buf := make([]byte, headerSize+len(words)*bytesPerWord)
	copy(buf[0:len(magic)], magic[:])
	binary.LittleEndian.PutUint32(buf[len(magic):headerSize], uint32(len(words)))
	for i, w := range words {
		binary.LittleEndian.PutUint64(buf[headerSize+i*bytesPerWord:headerSize+(i+1)*bytesPerWord], w.Pack())
	}
	return buf
}

// LoadInto writes p's words into mem at consecutive word addresses
// starting at base (spec.md 4.K: "writes each word into memory starting
// at a caller-supplied base address").
func (p *Program) LoadInto(mem *memory.Memory, base word.Word) {
	addr := base
	for _, w := range p.Words {
		mem.WriteWord(addr, w)
		addr, _ = addr.Add(word.FromInt(wordWidth))
	}
}
