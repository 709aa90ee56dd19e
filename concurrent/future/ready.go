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

package future

import (
	"errors"
)

// ready implements a Future that is immediately finished.
type ready struct {
	value interface{}
	err   error
}

// Poll implements Future.
func (f ready) Poll(Waker) (PollResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.value, nil
}

// Ready returns a Future that finishes with value on the first poll.
func Ready(value interface{}) Future {
	return ready{value: value}
}

var errNilError = errors.New("")

// Err returns a Future that fails with err on the first poll. A nil err still fails, with an error
// of empty message.
func Err(err error) Future {
	if err == nil {
		err = errNilError
	}
	return ready{err: err}
}

// lazy implements Future returned by Lazy.
type lazy struct {
	fn   func() (interface{}, error)
	next Future
}

// Poll implements Future.
func (f *lazy) Poll(waker Waker) (PollResult, error) {
	if f.next == nil {
		value, err := f.fn()
		if err != nil {
			return nil, err
		}
		f.next = From(value)
	}
	return f.next.Poll(waker)
}

// Lazy defers fn until the returned Future is first polled. When fn returns a Future, the result is
// the value of that Future.
func Lazy(fn func() (interface{}, error)) Future {
	return &lazy{fn: fn}
}

// From normalizes value into a Future: a Future is returned as is and any other value (nil
// included) becomes a ready Future.
func From(value interface{}) Future {
	if f, ok := value.(Future); ok && f != nil {
		return f
	}
	return Ready(value)
}
