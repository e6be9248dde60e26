// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rolock

import (
	"sync"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
)

// RwLock is a reader/writer lock protecting a value of type T.
//
// Locking, blocking and fairness are those of [sync.RWMutex]. On top of it
// RwLock tracks a poison flag: a writer that panics while holding the lock
// leaves the lock poisoned. Reads and writes on a poisoned lock still succeed
// but report [ErrPoisoned] so callers can decide whether to trust the value.
//
// An RwLock must not be copied after first use.
type RwLock[T any] struct {
	mu       sync.RWMutex
	poisoned atomix.Uint32
	value    T
}

// NewRwLock returns an unlocked, unpoisoned lock holding v.
func NewRwLock[T any](v T) *RwLock[T] {
	return &RwLock[T]{value: v}
}

// Read locks l for reading, blocking the calling goroutine while a writer
// holds the lock.
//
// On a poisoned lock Read still returns a usable guard together with
// [ErrPoisoned]; the guard must be unlocked either way.
func (l *RwLock[T]) Read() (*ReadGuard[T], error) {
	l.mu.RLock()
	return l.readGuard()
}

// TryRead locks l for reading without blocking.
// Returns iox.ErrWouldBlock if a writer currently holds the lock.
func (l *RwLock[T]) TryRead() (*ReadGuard[T], error) {
	if !l.mu.TryRLock() {
		return nil, iox.ErrWouldBlock
	}
	return l.readGuard()
}

func (l *RwLock[T]) readGuard() (*ReadGuard[T], error) {
	g := &ReadGuard[T]{l: l}
	if l.IsPoisoned() {
		return g, ErrPoisoned
	}
	return g, nil
}

// Write locks l for writing, blocking while any reader or writer holds it.
// Poisoning is reported as in [RwLock.Read].
func (l *RwLock[T]) Write() (*WriteGuard[T], error) {
	l.mu.Lock()
	return l.writeGuard()
}

// TryWrite locks l for writing without blocking.
// Returns iox.ErrWouldBlock if any reader or writer currently holds the lock.
func (l *RwLock[T]) TryWrite() (*WriteGuard[T], error) {
	if !l.mu.TryLock() {
		return nil, iox.ErrWouldBlock
	}
	return l.writeGuard()
}

func (l *RwLock[T]) writeGuard() (*WriteGuard[T], error) {
	g := &WriteGuard[T]{l: l}
	if l.IsPoisoned() {
		return g, ErrPoisoned
	}
	return g, nil
}

// Update runs f with write access to the protected value.
// If f panics the lock is poisoned and the panic propagates.
func (l *RwLock[T]) Update(f func(v *T)) error {
	g, err := l.Write()
	defer g.Unlock()
	f(g.Ptr())
	return err
}

// IsPoisoned reports whether a writer panicked while holding l.
// It does not acquire the lock.
func (l *RwLock[T]) IsPoisoned() bool {
	return l.poisoned.Load() != 0
}

// ClearPoison clears the poison flag, declaring the protected value
// consistent again.
func (l *RwLock[T]) ClearPoison() {
	l.poisoned.Store(0)
}

// IntoInner consumes l and returns the protected value.
// If l is poisoned the value is returned together with [ErrPoisoned].
// IntoInner waits for any guard still held on l to be unlocked.
// l must not be used after IntoInner.
func (l *RwLock[T]) IntoInner() (T, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.IsPoisoned() {
		return l.value, ErrPoisoned
	}
	return l.value, nil
}

// ReadGuard grants shared read access to the value protected by an [RwLock]
// until Unlock is called. A ReadGuard belongs to the goroutine that acquired it.
type ReadGuard[T any] struct {
	l *RwLock[T]
}

// Value returns a copy of the protected value.
func (g *ReadGuard[T]) Value() T {
	return g.lock().value
}

// Unlock releases the read lock. Unlocking a guard twice panics.
func (g *ReadGuard[T]) Unlock() {
	l := g.lock()
	g.l = nil
	l.mu.RUnlock()
}

func (g *ReadGuard[T]) lock() *RwLock[T] {
	if g.l == nil {
		panic("rolock: use of unlocked read guard")
	}
	return g.l
}

// WriteGuard grants exclusive access to the value protected by an [RwLock]
// until Unlock is called. A WriteGuard belongs to the goroutine that acquired it.
//
// Unlock must be deferred directly (defer g.Unlock()) for a panic in the
// critical section to poison the lock.
type WriteGuard[T any] struct {
	l *RwLock[T]
}

// Value returns a copy of the protected value.
func (g *WriteGuard[T]) Value() T {
	return g.lock().value
}

// Set replaces the protected value.
func (g *WriteGuard[T]) Set(v T) {
	g.lock().value = v
}

// Ptr returns a pointer to the protected value, valid until Unlock.
func (g *WriteGuard[T]) Ptr() *T {
	return &g.lock().value
}

// Unlock releases the write lock. When run as a deferred call while the
// goroutine is panicking, Unlock poisons the lock, releases it and
// re-panics with the original value.
func (g *WriteGuard[T]) Unlock() {
	if r := recover(); r != nil {
		l := g.lock()
		l.poisoned.Store(1)
		g.l = nil
		l.mu.Unlock()
		panic(r)
	}
	l := g.lock()
	g.l = nil
	l.mu.Unlock()
}

func (g *WriteGuard[T]) lock() *RwLock[T] {
	if g.l == nil {
		panic("rolock: use of unlocked write guard")
	}
	return g.l
}
