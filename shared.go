// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rolock

import "code.hybscloud.com/atomix"

// cell is the single shared allocation behind every Shared and RoLock
// aliasing one RwLock. strong counts the live owners.
// The allocation is reclaimed by the garbage collector once the last owner
// is gone; the count only decides who may take the value back out.
type cell[T any] struct {
	strong atomix.Uint32
	serial Serial
	lock   *RwLock[T]
}

func newCell[T any](l *RwLock[T]) *cell[T] {
	c := &cell[T]{serial: allocationSerial(), lock: l}
	c.strong.Store(1)
	return c
}

// acquire adds one owner. The caller must already be an owner, so the
// count is never raised from zero.
func (c *cell[T]) acquire() *cell[T] {
	for {
		n := c.strong.Load()
		if n == 0 {
			panic("rolock: acquire on a released allocation")
		}
		if n == ^uint32(0) {
			panic("rolock: strong count overflow")
		}
		if c.strong.CompareAndSwap(n, n+1) {
			return c
		}
	}
}

// release drops one owner.
func (c *cell[T]) release() {
	c.strong.Add(^uint32(0))
}

// unwrap takes the last ownership away. It fails, changing nothing,
// unless exactly one owner remains.
func (c *cell[T]) unwrap() bool {
	return c.strong.CompareAndSwap(1, 0)
}

func (c *cell[T]) count() int {
	return int(c.strong.Load())
}

// Shared is a write-capable owner of a reference-counted [RwLock].
//
// Each Shared value is one owner: Clone adds an owner, Release drops it.
// Use of a Shared after Release panics. A Shared belongs to one goroutine at
// a time; hand a Clone to another goroutine instead of the same value.
type Shared[T any] struct {
	c *cell[T]
}

// NewShared allocates a new lock holding v and returns its first owner.
func NewShared[T any](v T) *Shared[T] {
	return Share(NewRwLock(v))
}

// Share places l under shared ownership and returns its first owner.
// Share takes ownership of l; the caller should not use l directly
// afterwards.
func Share[T any](l *RwLock[T]) *Shared[T] {
	return &Shared[T]{c: newCell(l)}
}

// Lock returns the shared lock with full read and write access.
func (s *Shared[T]) Lock() *RwLock[T] {
	return s.owned().lock
}

// Clone returns a new owner of the same lock, incrementing the strong count.
func (s *Shared[T]) Clone() *Shared[T] {
	return &Shared[T]{c: s.owned().acquire()}
}

// Release drops this owner, decrementing the strong count.
// Guards acquired through this owner should be unlocked first; a reclaim
// by the last remaining owner waits for them.
func (s *Shared[T]) Release() {
	c := s.owned()
	s.c = nil
	c.release()
}

// StrongCount returns the number of live owners of the lock, counting every
// Shared and every [RoLock] aliasing it. The result is a snapshot.
func (s *Shared[T]) StrongCount() int {
	return s.owned().count()
}

// Serial returns the serial number of the underlying allocation.
func (s *Shared[T]) Serial() Serial {
	return s.owned().serial
}

// TryUnwrap returns the lock if s is its only owner, consuming s.
// Otherwise it returns false and s is left unchanged.
func (s *Shared[T]) TryUnwrap() (*RwLock[T], bool) {
	c := s.owned()
	if !c.unwrap() {
		return nil, false
	}
	s.c = nil
	return c.lock, true
}

func (s *Shared[T]) owned() *cell[T] {
	if s.c == nil {
		panic("rolock: use of released Shared")
	}
	return s.c
}
