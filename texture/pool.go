package texture

import (
	"sync"
	"sync/atomic"
)

// BufferPool manages reusable staging buffers for texture transfers.
// Converting a guest texture usually needs a scratch buffer of the
// image size; pooling them keeps the per-upload allocation cost flat.
type BufferPool struct {
	pools     []*sync.Pool
	hitCount  int64 // atomic
	missCount int64 // atomic
}

// stagingSizes are the discrete buffer classes, spanning a 1x1 pixel
// up to a 1024x1024x4bpp image.
var stagingSizes = []int{
	1 << 10,  // 1 KB
	16 << 10, // 16 KB
	64 << 10, // 64 KB
	256 << 10,
	1 << 20,
	4 << 20,
}

var globalPool = NewBufferPool()

// NewBufferPool creates an empty buffer pool.
func NewBufferPool() *BufferPool {
	p := &BufferPool{pools: make([]*sync.Pool, len(stagingSizes))}
	for i, size := range stagingSizes {
		size := size
		p.pools[i] = &sync.Pool{
			New: func() interface{} {
				return make([]byte, size)
			},
		}
	}
	return p
}

func classIndex(size int) int {
	for i, s := range stagingSizes {
		if size <= s {
			return i
		}
	}
	return -1
}

// Get returns a buffer of at least size bytes, sliced to exactly size.
// Buffers larger than the biggest class are allocated directly and
// never pooled.
func (p *BufferPool) Get(size int) []byte {
	idx := classIndex(size)
	if idx < 0 {
		atomic.AddInt64(&p.missCount, 1)
		return make([]byte, size)
	}
	atomic.AddInt64(&p.hitCount, 1)
	buf := p.pools[idx].Get().([]byte)
	return buf[:size]
}

// Put returns a buffer obtained from Get to the pool. Contents are not
// cleared.
func (p *BufferPool) Put(buf []byte) {
	idx := classIndex(cap(buf))
	if idx < 0 {
		return
	}
	// Only whole class-sized buffers go back; anything else would
	// shrink the class over time.
	if cap(buf) != stagingSizes[idx] {
		return
	}
	p.pools[idx].Put(buf[:cap(buf)])
}

// Stats returns the number of pooled and directly allocated Gets.
func (p *BufferPool) Stats() (pooled, direct int64) {
	return atomic.LoadInt64(&p.hitCount), atomic.LoadInt64(&p.missCount)
}

// GetBuffer returns a staging buffer from the package's shared pool.
func GetBuffer(size int) []byte { return globalPool.Get(size) }

// PutBuffer returns a staging buffer to the package's shared pool.
func PutBuffer(buf []byte) { globalPool.Put(buf) }
