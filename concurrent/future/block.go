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
	"context"
)

// BlockOn polls f on the calling goroutine until it finishes, sleeping between polls until the
// future wakes it. It gives up with ctx.Err() when ctx is done first.
func BlockOn(ctx context.Context, f Future) (interface{}, error) {
	wakeup := make(chan struct{}, 1)
	waker := WakerFunc(func() error {
		select {
		case wakeup <- struct{}{}:
		default:
		}
		return nil
	})

	for {
		result, err := f.Poll(waker)
		if err != nil {
			return nil, err
		}
		if result != PollResultPending {
			return result, nil
		}

		select {
		case <-wakeup:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// Thunk adapts f to the deferred resolver result understood by graphql-go. The executor calls
// the thunk after it has resolved the sibling fields, at which point f is driven to completion.
// Hooks run right before the first poll; loaders use them to dispatch their queued keys.
func Thunk(ctx context.Context, f Future, hooks ...func()) func() (interface{}, error) {
	return func() (interface{}, error) {
		for _, hook := range hooks {
			hook()
		}
		return BlockOn(ctx, f)
	}
}
