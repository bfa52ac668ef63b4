package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jtristan/jt1701/memory"
	"github.com/jtristan/jt1701/word"
)

func TestLoadProgramRoundTripsThroughEncode(t *testing.T) {
	words := []word.Word{word.FromInt(1), word.FromInt(-42), word.FromInt(193710244)}
	data := EncodeProgram(words)
	prog, err := LoadProgram(data)
	require.NoError(t, err)
	require.Len(t, prog.Words, len(words))
	for i, w := range words {
		assert.Equal(t, w.Int(), prog.Words[i].Int())
	}
}

func TestLoadProgramRejectsBadMagic(t *testing.T) {
	data := EncodeProgram([]word.Word{word.FromInt(1)})
	data[0] = 'X'
	_, err := LoadProgram(data)
	assert.Error(t, err)
}

func TestLoadProgramRejectsTruncatedBody(t *testing.T) {
	data := EncodeProgram([]word.Word{word.FromInt(1), word.FromInt(2)})
	_, err := LoadProgram(data[:len(data)-4])
	assert.Error(t, err)
}

func TestLoadProgramRejectsShortHeader(t *testing.T) {
	_, err := LoadProgram([]byte("JT"))
	assert.Error(t, err)
}

func TestLoadIntoPlacesWordsAtConsecutiveAddresses(t *testing.T) {
	mem := memory.New()
	prog := &Program{Words: []word.Word{word.FromInt(11), word.FromInt(22)}}
	prog.LoadInto(mem, word.FromInt(100))
	assert.Equal(t, int64(11), mem.ReadWord(word.FromInt(100)).Int())
	assert.Equal(t, int64(22), mem.ReadWord(word.FromInt(103)).Int())
}
