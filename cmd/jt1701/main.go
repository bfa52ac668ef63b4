// Command jt1701 is a thin launcher (spec.md 4.N): it loads a program
// image, wires it into a vm.Machine, and either runs it to completion,
// hands it to the interactive monitor, or drives it through a graphics
// window -- the same load-then-run split as the teacher's main.go plus
// ui.Start, minus NES-specific ROM/audio flags. Flag handling follows
// n-ulricksen-nes/main.go's flag.BoolVar/flag.Parse shape.
package main

import (
	"flag"
	"os"

	"github.com/golang/glog"

	"github.com/jtristan/jt1701/gpu"
	"github.com/jtristan/jt1701/monitor"
	"github.com/jtristan/jt1701/vm"
	"github.com/jtristan/jt1701/word"
)

var (
	programPath  = flag.String("program", "", "path to a program image (required)")
	useMonitor   = flag.Bool("monitor", false, "drop into the interactive monitor instead of free-running")
	useGPU       = flag.Bool("gpu", false, "attach the graphics sink window")
	loadBase     = flag.Int64("base", 0, "load base address")
	windowWidth  = flag.Int("width", gpu.Size, "graphics window width")
	windowHeight = flag.Int("height", gpu.Size, "graphics window height")
)

func main() {
	flag.Parse()
	if *programPath == "" {
		glog.Fatalf("jt1701: -program is required")
	}

	data, err := os.ReadFile(*programPath)
	if err != nil {
		glog.Fatalf("jt1701: reading program: %v", err)
	}

	var fb *gpu.Framebuffer
	var sink vm.Sink
	if *useGPU {
		fb = gpu.New()
		sink = fb
	}

	m := vm.NewMachine(sink)
	if err := m.Load(data, word.FromInt(*loadBase)); err != nil {
		glog.Fatalf("jt1701: loading program: %v", err)
	}

	switch {
	case *useMonitor:
		if err := monitor.Run(m); err != nil {
			glog.Fatalf("jt1701: monitor: %v", err)
		}
	case *useGPU:
		if err := gpu.Start(m, fb, *windowWidth, *windowHeight); err != nil {
			glog.Fatalf("jt1701: graphics sink: %v", err)
		}
	default:
		if err := m.Run(0); err != nil {
			glog.Fatalf("jt1701: %v", err)
		}
		glog.Infof("jt1701: halted after %d steps", m.StepCount())
	}
}
