// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rolock

import "errors"

var (
	// ErrPoisoned reports that a writer panicked while holding the lock.
	// Read and TryRead return it alongside a usable guard.
	ErrPoisoned = errors.New("rolock: lock poisoned")

	// ErrMultiple reports that a reclaim failed because the lock has other
	// live owners.
	ErrMultiple = errors.New("rolock: lock has other owners")
)

// IntoInnerError is returned by [RoLock.IntoInner] when the value cannot be
// taken back out.
//
// It is one of two variants:
//   - Multiple: other owners remain. [IntoInnerError.Handle] returns a handle
//     equivalent to the consumed one, so the caller may retry later.
//     errors.Is(err, ErrMultiple) reports true.
//   - Poison: the handle was the sole owner but the lock was poisoned. The
//     value is discarded. errors.Is(err, ErrPoisoned) reports true.
type IntoInnerError[T any] struct {
	handle *RoLock[T]
}

func (e *IntoInnerError[T]) Error() string {
	return e.Unwrap().Error()
}

// Unwrap returns ErrMultiple or ErrPoisoned.
func (e *IntoInnerError[T]) Unwrap() error {
	if e.handle != nil {
		return ErrMultiple
	}
	return ErrPoisoned
}

// Handle returns the replacement handle of a Multiple error, nil for Poison.
// The returned handle is an owner and must eventually be released or
// reclaimed.
func (e *IntoInnerError[T]) Handle() *RoLock[T] {
	return e.handle
}

// IsPoison reports whether e is the Poison variant.
func (e *IntoInnerError[T]) IsPoison() bool {
	return e.handle == nil
}
