package swizzle

import (
	"runtime"
	"sync"
)

// ParallelConfig configures the parallel box variants.
type ParallelConfig struct {
	// NumWorkers is the number of worker goroutines. 0 means
	// runtime.GOMAXPROCS(0).
	NumWorkers int

	// GrainRows is the minimum number of pixel rows per worker before
	// a call parallelizes. A box with fewer than GrainRows*NumWorkers
	// rows runs sequentially.
	GrainRows int
}

// DefaultParallelConfig returns the default parallel configuration.
func DefaultParallelConfig() ParallelConfig {
	return ParallelConfig{
		NumWorkers: 0,
		GrainRows:  64,
	}
}

var (
	parallelConfig   = DefaultParallelConfig()
	parallelConfigMu sync.RWMutex
)

// SetParallelConfig sets the global parallel configuration.
func SetParallelConfig(config ParallelConfig) {
	parallelConfigMu.Lock()
	defer parallelConfigMu.Unlock()
	parallelConfig = config
}

// GetParallelConfig returns the current parallel configuration.
func GetParallelConfig() ParallelConfig {
	parallelConfigMu.RLock()
	defer parallelConfigMu.RUnlock()
	return parallelConfig
}

func effectiveWorkers(config ParallelConfig) int {
	if config.NumWorkers <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return config.NumWorkers
}

// parallelRows runs fn over contiguous row ranges [start,end) covering
// [0,n), one range per worker. Falls back to a single sequential call
// when the work is too small to be worth fanning out.
func parallelRows(n int, fn func(start, end int)) {
	config := GetParallelConfig()
	numWorkers := effectiveWorkers(config)

	if n <= config.GrainRows*numWorkers || numWorkers == 1 {
		fn(0, n)
		return
	}

	var wg sync.WaitGroup
	chunk := (n + numWorkers - 1) / numWorkers
	for w := 0; w < numWorkers; w++ {
		start := w * chunk
		end := start + chunk
		if end > n {
			end = n
		}
		if start >= end {
			break
		}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}

// boxRows partitions a box into per-row work items. Row i of the flat
// row index space is slice i/height, row i%height.
func boxRows(linear, swizzled []byte, e expanders, width, height, rowPitch, slicePitch, bytesPerPixel int, toSwizzled bool) func(start, end int) {
	return func(start, end int) {
		for i := start; i < end; i++ {
			z, y := i/height, i%height
			copyRegion(linear, swizzled, e, width, z, z+1, y, y+1, rowPitch, slicePitch, bytesPerPixel, toSwizzled)
		}
	}
}

// SwizzleBoxParallel is SwizzleBox with the row loop partitioned
// across worker goroutines. Output is byte-identical to SwizzleBox:
// no two coordinates share a destination, so rows are independent.
func SwizzleBoxParallel(src []byte, width, height, depth int, dst []byte, rowPitch, slicePitch, bytesPerPixel int) {
	e := buildExpanders(width, height, depth)
	n := depth * height
	Logger().Debug("parallel swizzle box",
		"width", width, "height", height, "depth", depth,
		"rows", n, "workers", effectiveWorkers(GetParallelConfig()))
	parallelRows(n, boxRows(src, dst, e, width, height, rowPitch, slicePitch, bytesPerPixel, true))
}

// UnswizzleBoxParallel is UnswizzleBox with the row loop partitioned
// across worker goroutines.
func UnswizzleBoxParallel(src []byte, width, height, depth int, dst []byte, rowPitch, slicePitch, bytesPerPixel int) {
	e := buildExpanders(width, height, depth)
	n := depth * height
	Logger().Debug("parallel unswizzle box",
		"width", width, "height", height, "depth", depth,
		"rows", n, "workers", effectiveWorkers(GetParallelConfig()))
	parallelRows(n, boxRows(dst, src, e, width, height, rowPitch, slicePitch, bytesPerPixel, false))
}
