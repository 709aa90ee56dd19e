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
	"fmt"
	"sync"
)

// Factory creates a DataLoader.
type Factory interface {
	Create() (*DataLoader, error)
}

// The FactoryFunc type is an adapter to allow the use of ordinary functions as Factory.
type FactoryFunc func() (*DataLoader, error)

// Create implements Factory by calling f().
func (f FactoryFunc) Create() (*DataLoader, error) {
	return f()
}

// Manager holds the DataLoaders of one request, keyed by a string such as "Article.reporter".
type Manager struct {
	loaders sync.Map

	// Prevents concurrent DispatchAll's.
	dispatchMutex sync.Mutex
}

// NewManager creates an empty Manager.
func NewManager() *Manager {
	return &Manager{}
}

// GetOrCreate returns the DataLoader registered under key, creating it with factory on first use.
func (manager *Manager) GetOrCreate(key string, factory Factory) (*DataLoader, error) {
	if loader, found := manager.loaders.Load(key); found {
		return loader.(*DataLoader), nil
	}

	if factory == nil {
		return nil, fmt.Errorf(`DataLoader factory for "%s" is not provided`, key)
	}

	loader, err := factory.Create()
	if err != nil {
		return nil, err
	}
	if loader == nil {
		return nil, fmt.Errorf(`DataLoader factory for "%s" returns a nil instance which is not `+
			`valid for registration`, key)
	}

	registered, _ := manager.loaders.LoadOrStore(key, loader)
	return registered.(*DataLoader), nil
}

// DispatchAll dispatches every registered DataLoader.
func (manager *Manager) DispatchAll(ctx context.Context) {
	manager.dispatchMutex.Lock()
	defer manager.dispatchMutex.Unlock()

	manager.loaders.Range(func(_, value interface{}) bool {
		value.(*DataLoader).Dispatch(ctx)
		return true
	})
}
