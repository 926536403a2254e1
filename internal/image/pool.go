// Package image decodes texture assets into tightly packed RGBA8 pixels.
package image

import "sync"

// Pool is a thread-safe pool for reusing pixel byte slices.
//
// Pool groups slices by their exact length, allowing efficient reuse of
// identically-sized textures. Reused slices are zeroed.
//
// Thread safety: All methods are safe for concurrent use.
type Pool struct {
	mu      sync.Mutex
	buckets map[int][][]byte
	maxSize int // max slices per bucket
}

// NewPool creates a new pool with the given maximum slices per bucket.
// A maxPerBucket of 0 or less means unlimited.
func NewPool(maxPerBucket int) *Pool {
	return &Pool{
		buckets: make(map[int][][]byte),
		maxSize: maxPerBucket,
	}
}

// Get returns a zeroed slice of length n, reused from the pool if possible.
func (p *Pool) Get(n int) []byte {
	p.mu.Lock()
	bucket := p.buckets[n]
	if len(bucket) > 0 {
		buf := bucket[len(bucket)-1]
		p.buckets[n] = bucket[:len(bucket)-1]
		p.mu.Unlock()
		clear(buf)
		return buf
	}
	p.mu.Unlock()
	return make([]byte, n)
}

// Put returns a slice to the pool. Nil slices and slices beyond a full
// bucket are discarded.
func (p *Pool) Put(buf []byte) {
	if buf == nil {
		return
	}
	n := len(buf)

	p.mu.Lock()
	defer p.mu.Unlock()

	bucket := p.buckets[n]
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		return
	}
	p.buckets[n] = append(bucket, buf)
}

// Len returns the number of pooled slices of length n.
func (p *Pool) Len(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.buckets[n])
}

// defaultPool backs Decode.
var defaultPool = NewPool(4)
