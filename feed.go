// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rolock

import (
	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfq"
)

// feedCapacity is the bounded capacity of a Feed.
const feedCapacity = 16

// Feed hands read-only handles from one producer goroutine to one consumer
// goroutine over a bounded lock-free SPSC queue.
//
// Sending moves ownership of the handle into the feed: a queued handle is a
// live owner and is included in StrongCount until the consumer receives it.
// The sender must not use a handle after a successful send.
type Feed[T any] struct {
	q    lfq.SPSC[*RoLock[T]]
	slot *RoLock[T]
}

// NewFeed creates an empty feed.
func NewFeed[T any]() *Feed[T] {
	f := &Feed[T]{}
	f.q.Init(feedCapacity)
	return f
}

// TrySend queues h without blocking.
// Returns iox.ErrWouldBlock if the feed is full; h then stays with the caller.
// Producer side only.
func (f *Feed[T]) TrySend(h *RoLock[T]) error {
	f.slot = h
	err := f.q.Enqueue(&f.slot)
	f.slot = nil
	return err
}

// TryRecv dequeues the next handle without blocking.
// Returns iox.ErrWouldBlock if the feed is empty. Consumer side only.
func (f *Feed[T]) TryRecv() (*RoLock[T], error) {
	return f.q.Dequeue()
}

// Send queues h, waiting with adaptive backoff (iox.Backoff) while the feed
// is full. Producer side only.
func (f *Feed[T]) Send(h *RoLock[T]) {
	var bo iox.Backoff
	for f.TrySend(h) != nil {
		bo.Wait()
	}
}

// Recv dequeues the next handle, waiting with adaptive backoff
// (iox.Backoff) while the feed is empty. Consumer side only.
func (f *Feed[T]) Recv() *RoLock[T] {
	var bo iox.Backoff
	for {
		h, err := f.TryRecv()
		if err == nil {
			return h
		}
		bo.Wait()
	}
}
