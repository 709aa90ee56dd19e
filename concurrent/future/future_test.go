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

package future_test

import (
	"context"
	"errors"
	"time"

	"github.com/botobag/gormgraphql/concurrent/future"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Ready", func() {
	It("creates future that is ready with a value", func() {
		Expect(future.Ready(1).Poll(nil)).Should(Equal(1))
	})

	It("creates future that is ready with an error", func() {
		testErr := errors.New("ready with an error")
		_, err := future.Err(testErr).Poll(nil)
		Expect(err).Should(MatchError(testErr))

		_, err = future.Err(nil).Poll(nil)
		Expect(err).Should(MatchError(""))
	})

	It("keeps futures as is when normalizing values", func() {
		f := future.Ready("x")
		Expect(future.From(f)).Should(BeIdenticalTo(f))
		Expect(future.From([]int{}).Poll(nil)).Should(Equal([]int{}))
		Expect(future.From(nil).Poll(nil)).Should(BeNil())
	})
})

var _ = Describe("Lazy", func() {
	It("runs the function on first poll only", func() {
		calls := 0
		f := future.Lazy(func() (interface{}, error) {
			calls++
			return future.Ready(calls), nil
		})
		Expect(calls).Should(Equal(0))
		Expect(future.BlockOn(context.Background(), f)).Should(Equal(1))
		Expect(calls).Should(Equal(1))
	})
})

var _ = Describe("Join", func() {
	It("creates future that contains no underlying futures", func() {
		f := future.Join()
		Expect(future.BlockOn(context.Background(), f)).Should(BeEmpty())
	})

	It("collects values from multiple futures into an array", func() {
		f := future.Join(
			future.Ready(1),
			future.Ready(2),
			future.Ready(3),
		)
		Expect(future.BlockOn(context.Background(), f)).Should(Equal([]interface{}{1, 2, 3}))
	})

	It("fails if one of the input futures fails", func() {
		expectErr := errors.New("an error value")
		f := future.Join(
			future.Ready(1),
			future.Err(expectErr),
			future.Ready(3),
		)
		_, err := future.BlockOn(context.Background(), f)
		Expect(err).Should(MatchError(expectErr))
	})
})

var _ = Describe("Then", func() {
	It("maps the value of its input", func() {
		f := future.Then(future.Ready(2), func(value interface{}) (interface{}, error) {
			return value.(int) * 10, nil
		})
		Expect(future.BlockOn(context.Background(), f)).Should(Equal(20))
	})

	It("continues with a returned future", func() {
		p := future.NewPromise()
		f := future.Then(future.Ready(2), func(value interface{}) (interface{}, error) {
			return p, nil
		})

		Expect(f.Poll(future.NopWaker)).Should(Equal(future.PollResultPending))
		Expect(p.Resolve("done")).Should(Succeed())
		Expect(f.Poll(future.NopWaker)).Should(Equal("done"))
	})

	It("propagates errors from the mapping function", func() {
		expectErr := errors.New("mapping failed")
		f := future.Then(future.Ready(2), func(value interface{}) (interface{}, error) {
			return nil, expectErr
		})
		_, err := future.BlockOn(context.Background(), f)
		Expect(err).Should(MatchError(expectErr))
	})
})

var _ = Describe("Map", func() {
	It("transforms the value once the input is ready", func() {
		p := future.NewPromise()
		f := future.Map(p, func(value interface{}) interface{} {
			return value.(string) + "!"
		})

		Expect(f.Poll(future.NopWaker)).Should(Equal(future.PollResultPending))
		Expect(p.Resolve("done")).Should(Succeed())
		Expect(f.Poll(future.NopWaker)).Should(Equal("done!"))
	})
})

var _ = Describe("Promise", func() {
	It("wakes pollers when resolved from another goroutine", func() {
		p := future.NewPromise()
		go func() {
			time.Sleep(10 * time.Millisecond)
			p.Resolve(42)
		}()
		Expect(future.BlockOn(context.Background(), p)).Should(Equal(42))
		Expect(p.Settled()).Should(BeTrue())
	})

	It("rejects settling twice", func() {
		p := future.NewPromise()
		Expect(p.Reject(errors.New("first"))).Should(Succeed())
		Expect(p.Resolve(1)).ShouldNot(Succeed())

		_, err := p.Poll(nil)
		Expect(err).Should(MatchError("first"))
	})
})

var _ = Describe("BlockOn", func() {
	It("gives up when the context is cancelled", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		_, err := future.BlockOn(ctx, future.NewPromise())
		Expect(err).Should(MatchError(context.DeadlineExceeded))
	})

	It("runs thunk hooks before polling", func() {
		p := future.NewPromise()
		thunk := future.Thunk(context.Background(), p, func() {
			p.Resolve("resolved by hook")
		})
		Expect(thunk()).Should(Equal("resolved by hook"))
	})
})
