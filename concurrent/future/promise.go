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
	"fmt"
	"sync"
)

// A Promise is a Future completed from the outside with Resolve or Reject. It may be polled from
// multiple goroutines and keeps polling the settled value on every call.
type Promise struct {
	mutex   sync.Mutex
	settled bool
	value   interface{}
	err     error
	wakers  []Waker
}

var _ Future = (*Promise)(nil)

// NewPromise creates an unsettled Promise.
func NewPromise() *Promise {
	return &Promise{}
}

// Poll implements Future.
func (p *Promise) Poll(waker Waker) (PollResult, error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if !p.settled {
		if waker != nil {
			p.wakers = append(p.wakers, waker)
		}
		return PollResultPending, nil
	}

	if p.err != nil {
		return nil, p.err
	}
	return p.value, nil
}

// Resolve settles the promise with value.
func (p *Promise) Resolve(value interface{}) error {
	return p.settle(value, nil)
}

// Reject settles the promise with err.
func (p *Promise) Reject(err error) error {
	if err == nil {
		err = errNilError
	}
	return p.settle(nil, err)
}

// Settled returns true once Resolve or Reject succeeded.
func (p *Promise) Settled() bool {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.settled
}

func (p *Promise) settle(value interface{}, err error) error {
	p.mutex.Lock()
	if p.settled {
		p.mutex.Unlock()
		return fmt.Errorf("promise was already settled with (%v, %v)", p.value, p.err)
	}

	p.settled = true
	p.value = value
	p.err = err
	wakers := p.wakers
	p.wakers = nil
	p.mutex.Unlock()

	var firstErr error
	for _, waker := range wakers {
		if err := waker.Wake(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
