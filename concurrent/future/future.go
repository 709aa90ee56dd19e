/**
 * Copyright (c) 2019, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

// Package future provides poll-based deferred values. Connection resolvers and relationship loaders
// hand these to the GraphQL executor so a result can be produced after sibling fields were
// collected (and their loads batched).
package future

// A Future represents a value that may not be available yet.
//
// Futures are inert until polled. Poll must never block: when the value is not ready it returns
// PollResultPending and keeps the Waker so it can signal once progress is possible. Only the Waker
// passed to the most recent Poll call needs to be woken.
//
// Poll returns:
//
//	* (any, err): the future finished with an error;
//	* (PollResultPending, nil): the value is not ready yet;
//	* (value, nil): the future finished with value.
//
// A finished future should not be polled again unless its implementation documents otherwise.
type Future interface {
	Poll(waker Waker) (PollResult, error)
}

// A PollResult is the value produced by a Future or PollResultPending.
type PollResult interface{}

type pollPendingResult int

// PollResultPending indicates that the value of a Future is not ready yet.
const PollResultPending = pollPendingResult(0)

// A Waker signals the owner of a pending Future that it should poll again.
type Waker interface {
	Wake() error
}

// The WakerFunc type is an adapter to allow the use of ordinary functions as Waker.
type WakerFunc func() error

// Wake implements Waker by calling f().
func (f WakerFunc) Wake() error {
	return f()
}

type nopWaker int

func (nopWaker) Wake() error {
	return nil
}

// NopWaker does nothing when woken. It serves as the initial waker slot of a pending value.
const NopWaker nopWaker = 0
