package storage

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

const (
	falsePositive = 0.01

	DefaultFilterSize = 100_000
)

// Filter is a concurrency safe bloom filter over record keys. A negative
// Test means the key has definitely never been added.
type Filter struct {
	mu sync.RWMutex
	b  *bloom.BloomFilter
}

func NewFilter(n uint) *Filter {
	if n == 0 {
		n = DefaultFilterSize
	}

	return &Filter{b: bloom.NewWithEstimates(n, falsePositive)}
}

func (f *Filter) Add(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.b.AddString(key)
}

func (f *Filter) Test(key string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.b.TestString(key)
}
