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
	"context"
)

// BatchLoader loads the values requested by tasks and completes each task with either a value or an
// error.
type BatchLoader interface {
	Load(ctx context.Context, tasks TaskList)
}

// The BatchLoadFunc type is an adapter to allow the use of ordinary functions as BatchLoader.
type BatchLoadFunc func(ctx context.Context, tasks TaskList)

// Load implements BatchLoader by calling f(ctx, tasks).
func (f BatchLoadFunc) Load(ctx context.Context, tasks TaskList) {
	f(ctx, tasks)
}

// Config specifies how a DataLoader fetches data and how it batches and caches requests.
type Config struct {
	// (Required) BatchLoader loads data for a batch of keys.
	BatchLoader BatchLoader

	// (Optional) Maximum number of tasks sent to BatchLoader at once. Zero means unlimited. Setting it
	// to 1 disables batching.
	MaxBatchSize uint

	// (Optional) CacheMap stores tasks by key. Three values are possible:
	//
	//  1. nil: a DefaultCacheMap is used;
	//  2. NoCacheMap: caching is disabled;
	//  3. any other CacheMap implementation, e.g. the bounded one returned by NewLRUCacheMap.
	CacheMap CacheMap
}
