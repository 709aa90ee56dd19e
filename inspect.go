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
	"reflect"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// An Inspector reflects a model into its gorm schema: columns, primary keys and relationships.
//
// Errors are classified by Define. Errors wrapping schema.ErrUnsupportedDataType or
// ErrUnmappedModel mean the value is not a mapped model; every other error (e.g. an invalid
// relationship declaration) is returned to the caller unchanged.
type Inspector interface {
	Inspect(model interface{}) (*schema.Schema, error)
}

// The InspectorFunc type is an adapter to allow the use of ordinary functions as Inspector.
type InspectorFunc func(model interface{}) (*schema.Schema, error)

// Inspect implements Inspector by calling f(model).
func (f InspectorFunc) Inspect(model interface{}) (*schema.Schema, error) {
	return f(model)
}

// SchemaInspector parses models with schema.Parse and caches the results.
type SchemaInspector struct {
	cache *sync.Map
	namer schema.Namer
}

var _ Inspector = (*SchemaInspector)(nil)

// NewSchemaInspector creates a SchemaInspector naming tables and columns with namer. A nil namer
// means gorm's default schema.NamingStrategy.
func NewSchemaInspector(namer schema.Namer) *SchemaInspector {
	if namer == nil {
		namer = schema.NamingStrategy{}
	}
	return &SchemaInspector{
		cache: &sync.Map{},
		namer: namer,
	}
}

// Inspect implements Inspector.
func (inspector *SchemaInspector) Inspect(model interface{}) (*schema.Schema, error) {
	return schema.Parse(model, inspector.cache, inspector.namer)
}

// dbInspector implements Inspector with the naming strategy and schema cache of a *gorm.DB.
type dbInspector struct {
	db *gorm.DB
}

// InspectorFromDB returns an Inspector sharing the schema cache and naming strategy of db, so the
// generated fields use exactly the column names the queries of db use.
func InspectorFromDB(db *gorm.DB) Inspector {
	return dbInspector{db}
}

// Inspect implements Inspector.
func (inspector dbInspector) Inspect(model interface{}) (*schema.Schema, error) {
	stmt := &gorm.Statement{DB: inspector.db}
	if err := stmt.Parse(model); err != nil {
		return nil, err
	}
	return stmt.Schema, nil
}

// IsMapped returns true if model (a struct value, a pointer to one or a nil pointer of the struct
// type) is a model inspector can reflect.
func IsMapped(inspector Inspector, model interface{}) bool {
	if model == nil {
		return false
	}
	_, err := inspector.Inspect(model)
	return err == nil
}

// IsMappedInstance returns true if value is an actual instance of a mapped model: a struct or a
// non-nil pointer to one. Nil pointers and slices are types, not instances.
func IsMappedInstance(inspector Inspector, value interface{}) bool {
	v := reflect.ValueOf(value)
	if !v.IsValid() {
		return false
	}
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return false
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return false
	}
	return IsMapped(inspector, value)
}

// modelTypeOf returns the struct type of a model given as value, pointer or slice.
func modelTypeOf(model interface{}) reflect.Type {
	t := reflect.TypeOf(model)
	for t != nil && (t.Kind() == reflect.Ptr || t.Kind() == reflect.Slice || t.Kind() == reflect.Array) {
		t = t.Elem()
	}
	return t
}
