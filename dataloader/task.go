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

package dataloader

import (
	"fmt"

	"github.com/botobag/gormgraphql/concurrent/future"
)

// Key uniquely identifies a value loaded by a DataLoader, e.g. the primary key of a row. Keys must
// be comparable when caching is enabled.
type Key interface{}

// Task carries a key to the BatchLoader and receives the loaded value or error. A task can be
// completed only once.
type Task struct {
	key     Key
	promise *future.Promise
}

func newTask(key Key) *Task {
	return &Task{
		key:     key,
		promise: future.NewPromise(),
	}
}

// Key returns the key of the value to be loaded by the task.
func (t *Task) Key() Key {
	return t.key
}

// Complete the task with the given value.
func (t *Task) Complete(value interface{}) error {
	if err := t.promise.Resolve(value); err != nil {
		return fmt.Errorf("task for key %v: %s", t.key, err)
	}
	return nil
}

// SetError completes the task with an error value.
func (t *Task) SetError(err error) error {
	if e := t.promise.Reject(err); e != nil {
		return fmt.Errorf("task for key %v: %s", t.key, e)
	}
	return nil
}

// Completed returns true if the task has been completed with either a value or an error.
func (t *Task) Completed() bool {
	return t.promise.Settled()
}

// Future returns a Future for the value loaded by the task.
func (t *Task) Future() future.Future {
	return t.promise
}

// TaskList is a batch of tasks handed to a BatchLoader in the order they were requested.
type TaskList []*Task

// Keys returns the keys of the tasks in the list.
func (tasks TaskList) Keys() []Key {
	keys := make([]Key, len(tasks))
	for i, task := range tasks {
		keys[i] = task.key
	}
	return keys
}
