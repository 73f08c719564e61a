// Package secure provides memory hygiene helpers for buffers carrying
// secret material.
package secure

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"runtime"
	"sync"
)

// Zero overwrites b with zero bytes.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}

// ClearBytes zeroes the slice behind b and drops the reference.
func ClearBytes(b *[]byte) {
	if b == nil || *b == nil {
		return
	}
	Zero(*b)
	*b = nil
}

// ConstantTimeCompare reports whether x and y are equal without leaking
// where they differ.
func ConstantTimeCompare(x, y []byte) bool {
	if len(x) != len(y) {
		return false
	}
	return subtle.ConstantTimeCompare(x, y) == 1
}

// Random returns size cryptographically secure random bytes.
func Random(size int) ([]byte, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		Zero(b)
		return nil, fmt.Errorf("failed to generate secure random bytes: %w", err)
	}
	return b, nil
}

// Bytes holds a secret byte buffer with exclusive ownership semantics:
// callers get copies out, and the backing storage can be wiped explicitly.
type Bytes struct {
	data []byte
	mu   sync.RWMutex
}

// FromBytes copies data into a new Bytes container.
func FromBytes(data []byte) *Bytes {
	b := &Bytes{data: make([]byte, len(data))}
	copy(b.data, data)
	return b
}

// Get returns a copy of the contents.
func (b *Bytes) Get() []byte {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]byte, len(b.data))
	copy(out, b.data)
	return out
}

// Len returns the buffer length.
func (b *Bytes) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.data)
}

// Clear zeroes the backing storage.
func (b *Bytes) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	Zero(b.data)
}

// Destroy zeroes the backing storage and releases it.
func (b *Bytes) Destroy() {
	b.mu.Lock()
	defer b.mu.Unlock()
	Zero(b.data)
	b.data = nil
}
