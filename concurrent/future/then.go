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

// then implements Future returned by Then.
type then struct {
	input Future
	fn    func(value interface{}) (interface{}, error)
	next  Future
}

// Poll implements Future.
func (f *then) Poll(waker Waker) (PollResult, error) {
	if f.next == nil {
		value, err := f.input.Poll(waker)
		if err != nil {
			return nil, err
		}
		if value == PollResultPending {
			return PollResultPending, nil
		}

		mapped, err := f.fn(value)
		if err != nil {
			return nil, err
		}
		f.next = From(mapped)
	}

	return f.next.Poll(waker)
}

// Then returns a Future that applies fn to the value of input once it is ready. If fn returns a
// Future, the returned Future continues with it.
func Then(input Future, fn func(value interface{}) (interface{}, error)) Future {
	return &then{
		input: input,
		fn:    fn,
	}
}

// Map returns a Future that transforms the value of input with fn.
func Map(input Future, fn func(value interface{}) interface{}) Future {
	return Then(input, func(value interface{}) (interface{}, error) {
		return fn(value), nil
	})
}
