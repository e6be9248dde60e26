// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package rolock provides a read-only handle over a shared, reference-counted
// reader/writer lock.
//
// A producer keeps full read/write control over a value through a [Shared]
// owner and hands [RoLock] handles to other goroutines. Both alias the same
// [RwLock]; the handle simply has no way to reach write access.
//
// # Architecture
//
//   - Lock: [RwLock] wraps [sync.RWMutex] and adds poisoning. A writer that panics with its guard's Unlock deferred leaves the lock poisoned.
//   - Ownership: [Shared] and [RoLock] are owners of one allocation with an atomic strong count via [code.hybscloud.com/atomix].
//   - Non-blocking: [RoLock.TryRead] returns [code.hybscloud.com/iox.ErrWouldBlock] while a writer holds the lock.
//   - Reclaim: [RoLock.IntoInner] takes the value back out when the handle is the last owner and the lock is not poisoned.
//   - Handoff: [Feed] moves handles to a consumer goroutine over a lock-free SPSC queue via [code.hybscloud.com/lfq].
//
// # Ownership
//
// Go has no destructors, so each owner is released explicitly. [Shared.Clone]
// and [RoLock.Clone] add an owner, Release drops one, and IntoInner consumes
// one whether or not it succeeds. On failure with [ErrMultiple] the
// [IntoInnerError] hands back an equivalent handle.
//
// # Example
//
//	rw, ro := rolock.NewPair(0)
//	rw.Lock().Update(func(v *int) { *v = 1 })
//
//	go func() {
//		g, _ := ro.Read()
//		defer g.Unlock()
//		_ = g.Value() // 1
//	}()
package rolock
