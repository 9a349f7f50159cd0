package color

import (
	"runtime"

	"github.com/remeh/sizedwaitgroup"
)

// Func maps one sample to another.
type Func func(float32) float32

// Conversion functions for float32 sample buffers.
var (
	Decode Func = SRGBToLinear[float32]
	Encode Func = LinearToSRGB[float32]
)

const (
	// minParallelSamples is the buffer length below which conversion runs on
	// the calling goroutine.
	minParallelSamples = 1 << 14

	// minChunk bounds how finely a buffer is split between workers.
	minChunk = 1 << 12
)

// ConvertBuffer applies fn to every sample of buf in place, spreading the
// work over GOMAXPROCS goroutines.
func ConvertBuffer(buf []float32, fn Func) {
	ConvertBufferN(buf, fn, 0)
}

// ConvertBufferN is ConvertBuffer with an explicit worker count. workers <= 0
// selects GOMAXPROCS. The result does not depend on the worker count: each
// sample is touched exactly once and independently of its neighbours.
func ConvertBufferN(buf []float32, fn Func, workers int) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers == 1 || len(buf) < minParallelSamples {
		apply(buf, fn)
		return
	}

	chunk := (len(buf) + workers - 1) / workers
	if chunk < minChunk {
		chunk = minChunk
	}

	wg := sizedwaitgroup.New(workers)
	for start := 0; start < len(buf); start += chunk {
		end := min(start+chunk, len(buf))
		wg.Add()
		go func(part []float32) {
			defer wg.Done()
			apply(part, fn)
		}(buf[start:end])
	}
	wg.Wait()
}

func apply(buf []float32, fn Func) {
	for i, v := range buf {
		buf[i] = fn(v)
	}
}
