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
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CacheMap stores the task loading the value of each key. All methods must be safe for concurrent
// use by multiple goroutines.
type CacheMap interface {
	// Get returns the task cached for key or nil.
	Get(key Key) *Task

	// Set caches task under its key unless a task is already cached for the key, in which case the
	// cached task is returned instead.
	Set(task *Task) *Task

	// Delete removes the task cached for key.
	Delete(key Key)

	// Clear removes all cached tasks.
	Clear()
}

//===----------------------------------------------------------------------------------------====//
// DefaultCacheMap
//===----------------------------------------------------------------------------------------====//

// DefaultCacheMap is an unbounded cache backed by sync.Map. It is used when Config.CacheMap is nil.
type DefaultCacheMap struct {
	m sync.Map
}

var _ CacheMap = (*DefaultCacheMap)(nil)

// Get implements CacheMap.
func (cacheMap *DefaultCacheMap) Get(key Key) *Task {
	task, ok := cacheMap.m.Load(key)
	if !ok {
		return nil
	}
	return task.(*Task)
}

// Set implements CacheMap.
func (cacheMap *DefaultCacheMap) Set(task *Task) *Task {
	t, _ := cacheMap.m.LoadOrStore(task.Key(), task)
	return t.(*Task)
}

// Delete implements CacheMap.
func (cacheMap *DefaultCacheMap) Delete(key Key) {
	cacheMap.m.Delete(key)
}

// Clear implements CacheMap.
func (cacheMap *DefaultCacheMap) Clear() {
	cacheMap.m.Range(func(key, _ interface{}) bool {
		cacheMap.m.Delete(key)
		return true
	})
}

//===----------------------------------------------------------------------------------------====//
// LRUCacheMap
//===----------------------------------------------------------------------------------------====//

// LRUCacheMap keeps at most a fixed number of tasks, evicting the least recently used one.
type LRUCacheMap struct {
	cache *lru.Cache[Key, *Task]
}

var _ CacheMap = (*LRUCacheMap)(nil)

// NewLRUCacheMap creates an LRUCacheMap holding up to size tasks.
func NewLRUCacheMap(size int) (*LRUCacheMap, error) {
	cache, err := lru.New[Key, *Task](size)
	if err != nil {
		return nil, err
	}
	return &LRUCacheMap{cache}, nil
}

// Get implements CacheMap.
func (cacheMap *LRUCacheMap) Get(key Key) *Task {
	task, _ := cacheMap.cache.Get(key)
	return task
}

// Set implements CacheMap.
func (cacheMap *LRUCacheMap) Set(task *Task) *Task {
	previous, found, _ := cacheMap.cache.PeekOrAdd(task.Key(), task)
	if found {
		return previous
	}
	return task
}

// Delete implements CacheMap.
func (cacheMap *LRUCacheMap) Delete(key Key) {
	cacheMap.cache.Remove(key)
}

// Clear implements CacheMap.
func (cacheMap *LRUCacheMap) Clear() {
	cacheMap.cache.Purge()
}

// Len returns the number of cached tasks.
func (cacheMap *LRUCacheMap) Len() int {
	return cacheMap.cache.Len()
}

//===----------------------------------------------------------------------------------------====//
// NoCacheMap
//===----------------------------------------------------------------------------------------====//

type noCacheMap int

var _ CacheMap = NoCacheMap

// Get implements CacheMap.
func (noCacheMap) Get(key Key) *Task {
	return nil
}

// Set implements CacheMap.
func (noCacheMap) Set(task *Task) *Task {
	return task
}

// Delete implements CacheMap.
func (noCacheMap) Delete(key Key) {}

// Clear implements CacheMap.
func (noCacheMap) Clear() {}

// NoCacheMap is given to Config.CacheMap to disable caching for a DataLoader.
const NoCacheMap noCacheMap = 0
