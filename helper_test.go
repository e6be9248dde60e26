// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rolock_test

import "code.hybscloud.com/rolock"

// poison runs a writer on l that sets v and then panics while holding the
// lock, leaving l poisoned. The panic is recovered here.
func poison[T any](l *rolock.RwLock[T], v T) {
	defer func() { _ = recover() }()
	g, _ := l.Write()
	defer g.Unlock()
	g.Set(v)
	panic("writer failed")
}

// recovered calls f and returns the value it panicked with, or nil.
func recovered(f func()) (r any) {
	defer func() { r = recover() }()
	f()
	return nil
}

// read returns the current value seen through ro, failing on any error.
func read[T any](ro *rolock.RoLock[T]) (T, error) {
	g, err := ro.Read()
	if g == nil {
		var zero T
		return zero, err
	}
	defer g.Unlock()
	return g.Value(), err
}
