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

package gormgraphql

import (
	"context"
	"fmt"
	"reflect"

	"github.com/botobag/gormgraphql/concurrent/future"
	"github.com/botobag/gormgraphql/dataloader"
	"github.com/graphql-go/graphql"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

// deferredResolver adapts a resolver producing a Future to graphql-go.
func deferredResolver(resolve func(p graphql.ResolveParams) future.Future) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		return deferred(p.Context, resolve(p)), nil
	}
}

// deferred hands f to the executor as a thunk. Data loaders of the request are dispatched before
// the thunk waits for f, which by then holds the keys queued by all sibling fields.
func deferred(ctx context.Context, f future.Future) func() (interface{}, error) {
	return future.Thunk(ctx, f, func() {
		if session := SessionFrom(ctx); session != nil && session.Loaders != nil {
			session.Loaders.DispatchAll(ctx)
		}
	})
}

// relationshipLoad returns the function loading rel for an instance of t. Loaded associations are
// returned as is. Otherwise they are queried through the session in the resolver context, batched
// per request when the registry enables batching.
func (t *ObjectType) relationshipLoad(rel *schema.Relationship) func(p graphql.ResolveParams) future.Future {
	reg := t.options.Registry

	return func(p graphql.ResolveParams) future.Future {
		value, ok := attributeValue(rel.Field, p.Source)
		if !ok {
			return future.Ready(nil)
		}
		if loaded(value) {
			return future.Ready(relationshipResult(value))
		}

		session := SessionFrom(p.Context)
		if session == nil || session.DB == nil {
			// Without a session an absent association reads as empty.
			return future.Ready(relationshipResult(value))
		}

		if reg.batching && session.Loaders != nil && rel.Schema.PrioritizedPrimaryField != nil {
			return t.batchLoadRelationship(p.Context, session, rel)(p.Source)
		}

		return future.Lazy(func() (interface{}, error) {
			return loadAssociation(p.Context, session.DB, rel, p.Source)
		})
	}
}

// loaded returns true if v holds a loaded association.
func loaded(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Interface:
		return !v.IsNil()
	}
	return !v.IsZero()
}

// relationshipResult converts an association value into a resolver result: nil for missing
// to-one associations and a list of pointers for collections.
func relationshipResult(v reflect.Value) interface{} {
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			return nil
		}
		return v.Interface()

	case reflect.Slice, reflect.Array:
		items := make([]interface{}, v.Len())
		for i := range items {
			item := v.Index(i)
			if item.Kind() != reflect.Ptr && item.CanAddr() {
				item = item.Addr()
			}
			items[i] = item.Interface()
		}
		return items

	case reflect.Struct:
		if v.IsZero() {
			return nil
		}
		if v.CanAddr() {
			return v.Addr().Interface()
		}
	}
	return v.Interface()
}

// addressable returns a pointer to a copy of the model instance source unless it already is one.
func addressable(source interface{}, modelType reflect.Type) reflect.Value {
	v := reflect.ValueOf(source)
	if v.Kind() == reflect.Ptr && v.Type().Elem() == modelType {
		return v
	}
	ptr := reflect.New(modelType)
	ptr.Elem().Set(reflect.Indirect(v))
	return ptr
}

// loadAssociation queries rel of one model instance.
func loadAssociation(ctx context.Context, db *gorm.DB, rel *schema.Relationship, source interface{}) (interface{}, error) {
	owner := addressable(source, rel.Schema.ModelType)
	dest := reflect.New(rel.Field.IndirectFieldType)

	if err := db.WithContext(ctx).Model(owner.Interface()).Association(rel.Name).Find(dest.Interface()); err != nil {
		return nil, NewError(fmt.Sprintf("Failed to load %s.%s.", rel.Schema.Name, rel.Name),
			Op("gormgraphql.loadAssociation"), ErrKindQuery, err)
	}

	return relationshipResult(dest.Elem()), nil
}

//===----------------------------------------------------------------------------------------====//
// Batching
//===----------------------------------------------------------------------------------------====//

// relationshipLoader is a dataloader.BatchLoader that loads a relationship of many instances of a
// model with one query. Keys are primary keys of the instances.
type relationshipLoader struct {
	db     *gorm.DB
	rel    *schema.Relationship
	logger *zap.Logger
}

var _ dataloader.BatchLoader = (*relationshipLoader)(nil)

// Load implements dataloader.BatchLoader.
func (loader *relationshipLoader) Load(ctx context.Context, tasks dataloader.TaskList) {
	var (
		rel        = loader.rel
		owner      = rel.Schema
		primaryKey = owner.PrioritizedPrimaryField
		keys       = tasks.Keys()
		values     = make([]interface{}, len(keys))
	)
	for i, key := range keys {
		values[i] = key
	}

	loader.logger.Debug("batch load relationship",
		zap.String("model", owner.Name),
		zap.String("relationship", rel.Name),
		zap.Int("keys", len(keys)))

	owners := reflect.New(reflect.SliceOf(reflect.PointerTo(owner.ModelType)))
	err := loader.db.WithContext(ctx).
		Preload(rel.Name).
		Where(clause.IN{
			Column: clause.Column{Table: clause.CurrentTable, Name: primaryKey.DBName},
			Values: values,
		}).
		Find(owners.Interface()).Error
	if err != nil {
		err = NewError(fmt.Sprintf("Failed to load %s.%s.", owner.Name, rel.Name),
			Op("gormgraphql.relationshipLoader.Load"), ErrKindQuery, err)
		for _, task := range tasks {
			task.SetError(err)
		}
		return
	}

	results := make(map[dataloader.Key]interface{}, owners.Elem().Len())
	for i := 0; i < owners.Elem().Len(); i++ {
		instance := owners.Elem().Index(i)
		key, ok := primaryKeyOf(primaryKey, instance.Interface())
		if !ok {
			continue
		}
		if value, ok := attributeValue(rel.Field, instance.Interface()); ok {
			results[key] = relationshipResult(value)
		}
	}

	for _, task := range tasks {
		task.Complete(results[task.Key()])
	}
}

// primaryKeyOf reads the primary key of a model instance as a data loader key.
func primaryKeyOf(primaryKey *schema.Field, source interface{}) (dataloader.Key, bool) {
	v, ok := attributeValue(primaryKey, source)
	if !ok {
		return nil, false
	}
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil, false
		}
		v = v.Elem()
	}
	if v.IsZero() {
		return nil, false
	}
	return v.Interface(), true
}

// batchLoadRelationship returns a function that queues the key of an instance in the data loader
// of rel for the request.
func (t *ObjectType) batchLoadRelationship(
	ctx context.Context,
	session *Session,
	rel *schema.Relationship) func(source interface{}) future.Future {

	reg := t.options.Registry
	key := fmt.Sprintf("%s.%s", t.Name(), rel.Name)

	return func(source interface{}) future.Future {
		primaryKey, ok := primaryKeyOf(rel.Schema.PrioritizedPrimaryField, source)
		if !ok {
			return future.Lazy(func() (interface{}, error) {
				return loadAssociation(ctx, session.DB, rel, source)
			})
		}

		loader, err := session.Loaders.GetOrCreate(key, dataloader.FactoryFunc(func() (*dataloader.DataLoader, error) {
			config := dataloader.Config{
				BatchLoader: &relationshipLoader{
					db:     session.DB,
					rel:    rel,
					logger: reg.logger,
				},
			}
			if reg.loaderCacheSize > 0 {
				cacheMap, err := dataloader.NewLRUCacheMap(reg.loaderCacheSize)
				if err != nil {
					return nil, err
				}
				config.CacheMap = cacheMap
			}
			return dataloader.New(config)
		}))
		if err != nil {
			return future.Err(err)
		}

		f, err := loader.Load(primaryKey)
		if err != nil {
			return future.Err(err)
		}
		return f
	}
}
