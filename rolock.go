// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rolock

// RoLock is a read-only owner of a reference-counted [RwLock].
//
// It shares the allocation of the [Shared] it was made from and counts as one
// of its owners, but only exposes read acquisition. There is no method or
// accessor on RoLock, or on the guards it returns, that reaches write access.
//
// Each RoLock value is one owner: Clone adds an owner, Release drops it, and
// IntoInner consumes it. Use of a RoLock after Release or IntoInner panics.
// A RoLock belongs to one goroutine at a time; send a Clone to other goroutines.
type RoLock[T any] struct {
	c *cell[T]
}

// New returns a read-only owner aliasing the lock held by s.
// The strong count is incremented by one.
func New[T any](s *Shared[T]) *RoLock[T] {
	return &RoLock[T]{c: s.owned().acquire()}
}

// NewPair allocates a new lock holding v and returns both a write-capable
// owner and a read-only owner of it. The strong count starts at 2.
func NewPair[T any](v T) (*Shared[T], *RoLock[T]) {
	s := NewShared(v)
	return s, New(s)
}

// FromRwLock places l under shared ownership and returns both a
// write-capable owner and a read-only owner of it. FromRwLock takes
// ownership of l; the caller should not use l directly afterwards.
func FromRwLock[T any](l *RwLock[T]) (*Shared[T], *RoLock[T]) {
	s := Share(l)
	return s, New(s)
}

// Read locks the shared value for reading, blocking while a writer holds it.
//
// On a poisoned lock Read returns a usable guard together with [ErrPoisoned].
// The guard must be unlocked either way.
func (r *RoLock[T]) Read() (*ReadGuard[T], error) {
	return r.owned().lock.Read()
}

// TryRead is Read without blocking. It returns iox.ErrWouldBlock if a writer
// currently holds the lock.
func (r *RoLock[T]) TryRead() (*ReadGuard[T], error) {
	return r.owned().lock.TryRead()
}

// IsPoisoned reports whether the lock is poisoned. It does not acquire the lock.
func (r *RoLock[T]) IsPoisoned() bool {
	return r.owned().lock.IsPoisoned()
}

// StrongCount returns the number of live owners of the lock, counting every
// RoLock and every [Shared] aliasing it. The result is a snapshot.
func (r *RoLock[T]) StrongCount() int {
	return r.owned().count()
}

// Serial returns the serial number of the underlying allocation.
// Two owners alias the same value iff their serials are equal.
func (r *RoLock[T]) Serial() Serial {
	return r.owned().serial
}

// Clone returns another read-only owner of the same lock.
// The lock itself is not touched.
func (r *RoLock[T]) Clone() *RoLock[T] {
	return &RoLock[T]{c: r.owned().acquire()}
}

// Release drops this owner, decrementing the strong count.
// Guards acquired through this owner should be unlocked first; a reclaim
// by the last remaining owner waits for them.
func (r *RoLock[T]) Release() {
	c := r.owned()
	r.c = nil
	c.release()
}

// IntoInner consumes r and returns the protected value.
//
// It succeeds iff r is the only owner of the lock and the lock is not
// poisoned. Otherwise it returns an [IntoInnerError]: the Multiple variant
// carries a replacement handle, the Poison variant discards the value.
func (r *RoLock[T]) IntoInner() (T, error) {
	c := r.owned()
	r.c = nil
	var zero T
	if !c.unwrap() {
		return zero, &IntoInnerError[T]{handle: &RoLock[T]{c: c}}
	}
	v, err := c.lock.IntoInner()
	if err != nil {
		return zero, &IntoInnerError[T]{}
	}
	return v, nil
}

// MustIntoInner is like IntoInner but panics if the value cannot be
// reclaimed. The replacement handle of a Multiple failure is released
// before panicking.
func (r *RoLock[T]) MustIntoInner() T {
	v, err := r.IntoInner()
	if err != nil {
		if h := err.(*IntoInnerError[T]).Handle(); h != nil {
			h.Release()
		}
		panic(err)
	}
	return v
}

func (r *RoLock[T]) owned() *cell[T] {
	if r.c == nil {
		panic("rolock: use of released RoLock")
	}
	return r.c
}
