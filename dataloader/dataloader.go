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

// Package dataloader batches and caches loads of keyed values, such as the rows referenced by the
// relationship fields of many objects in one GraphQL response.
package dataloader

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/botobag/gormgraphql/concurrent/future"
)

// A DataLoader collects keys requested through Load until Dispatch is called, then hands them to the
// BatchLoader in batches.
type DataLoader struct {
	config Config

	// Guards queue
	queueMutex sync.Mutex

	// Tasks waiting for the next dispatch
	queue TaskList

	// nil when caching is disabled
	cacheMap CacheMap
}

var (
	errMissingBatchLoader = errors.New("batch loader is required to construct a DataLoader")
	errMissingKey         = errors.New("must specify key to identify data to be loaded")
)

// New creates a DataLoader from config.
func New(config Config) (*DataLoader, error) {
	if config.BatchLoader == nil {
		return nil, errMissingBatchLoader
	}

	cacheMap := config.CacheMap
	if cacheMap == nil {
		cacheMap = &DefaultCacheMap{}
	} else if cacheMap == NoCacheMap {
		cacheMap = nil
	}

	return &DataLoader{
		config:   config,
		cacheMap: cacheMap,
	}, nil
}

// BatchLoader returns the BatchLoader given in config.
func (loader *DataLoader) BatchLoader() BatchLoader {
	return loader.config.BatchLoader
}

// Load requests the value identified by key and returns a Future for it. The value is not loaded
// until the next Dispatch unless it was cached.
func (loader *DataLoader) Load(key Key) (future.Future, error) {
	if key == nil {
		return nil, errMissingKey
	}

	if loader.cacheMap != nil {
		if task := loader.cacheMap.Get(key); task != nil {
			return task.Future(), nil
		}
	}

	task := newTask(key)

	loader.queueMutex.Lock()
	if loader.cacheMap != nil {
		if cached := loader.cacheMap.Set(task); cached != task {
			loader.queueMutex.Unlock()
			return cached.Future(), nil
		}
	}
	loader.queue = append(loader.queue, task)
	loader.queueMutex.Unlock()

	return task.Future(), nil
}

// LoadMany requests multiple values. The returned Future resolves to an []interface{} in key order.
func (loader *DataLoader) LoadMany(keys []Key) (future.Future, error) {
	futures := make([]future.Future, 0, len(keys))
	for _, key := range keys {
		f, err := loader.Load(key)
		if err != nil {
			return nil, err
		}
		futures = append(futures, f)
	}
	return future.Join(futures...), nil
}

// Dispatch sends the queued tasks to the BatchLoader and returns after all batches ran.
func (loader *DataLoader) Dispatch(ctx context.Context) {
	loader.queueMutex.Lock()
	tasks := loader.queue
	loader.queue = nil
	loader.queueMutex.Unlock()

	if len(tasks) == 0 {
		return
	}

	maxBatchSize := int(loader.config.MaxBatchSize)
	if maxBatchSize == 0 {
		maxBatchSize = len(tasks)
	}

	for len(tasks) > 0 {
		n := maxBatchSize
		if n > len(tasks) {
			n = len(tasks)
		}
		loader.runBatch(ctx, tasks[:n])
		tasks = tasks[n:]
	}
}

// Pending returns the number of tasks waiting for dispatch.
func (loader *DataLoader) Pending() int {
	loader.queueMutex.Lock()
	defer loader.queueMutex.Unlock()
	return len(loader.queue)
}

func (loader *DataLoader) runBatch(ctx context.Context, tasks TaskList) {
	batchLoader := loader.config.BatchLoader
	batchLoader.Load(ctx, tasks)

	// Fail tasks the batch loader forgot so their futures don't hang.
	for _, task := range tasks {
		if !task.Completed() {
			task.SetError(fmt.Errorf("%T must complete every given data loading task with either a "+
				"value or an error but it doesn't complete task that loads data at key %v",
				batchLoader, task.Key()))
		}
	}
}

// Clear removes the value of key from the cache.
func (loader *DataLoader) Clear(key Key) {
	if loader.cacheMap != nil {
		loader.cacheMap.Delete(key)
	}
}

// ClearAll clears the entire cache.
func (loader *DataLoader) ClearAll() {
	if loader.cacheMap != nil {
		loader.cacheMap.Clear()
	}
}

// Prime adds the provided key and value to the cache. If the key already exists, no change is made.
func (loader *DataLoader) Prime(key Key, value interface{}) error {
	return loader.prime(key, func(task *Task) error {
		return task.Complete(value)
	})
}

// PrimeError adds the provided key with an error value to the cache. If the key already exists, no
// change is made.
func (loader *DataLoader) PrimeError(key Key, err error) error {
	return loader.prime(key, func(task *Task) error {
		return task.SetError(err)
	})
}

func (loader *DataLoader) prime(key Key, complete func(task *Task) error) error {
	if loader.cacheMap == nil {
		return nil
	}
	if key == nil {
		return errMissingKey
	}

	task := newTask(key)
	if err := complete(task); err != nil {
		return err
	}
	loader.cacheMap.Set(task)
	return nil
}
