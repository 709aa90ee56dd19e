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
	"fmt"
	"reflect"

	"github.com/botobag/gormgraphql/relay"
	"github.com/graphql-go/graphql"
	"gorm.io/gorm/schema"
)

// Field describes one field of a generated object type before it is handed to graphql-go.
type Field struct {
	// Name of the field in the GraphQL schema
	Name string

	// Type of the field including its NonNull wrapper; unset for Dynamic fields
	Type graphql.Output

	Description       string
	Args              graphql.FieldConfigArgument
	Resolve           graphql.FieldResolveFn
	DeprecationReason string

	// Column is set for fields derived from a model column.
	Column *schema.Field

	// Relationship is set for fields derived from a model relationship.
	Relationship *schema.Relationship

	// Dynamic computes the field when the object type is built, after all types were registered.
	// Returning nil omits the field, e.g. when the related model has no registered type.
	Dynamic func() *Field

	// Field replaced by this one; supplies Type, Args and Resolve left unset.
	overrides *Field
}

// Resolved returns f itself or the field computed by Dynamic (which may be nil). Unset Type, Args
// and Resolve of a field overriding a model field are taken from the model field.
func (f *Field) Resolved() *Field {
	if f.Dynamic != nil {
		return f.Dynamic()
	}
	if f.overrides == nil || (f.Type != nil && f.Args != nil && f.Resolve != nil) {
		return f
	}

	base := f.overrides.Resolved()
	if base == nil {
		if f.Type == nil {
			return nil
		}
		return f
	}

	resolved := *f
	resolved.overrides = nil
	if resolved.Type == nil {
		resolved.Type = base.Type
		if resolved.Args == nil {
			resolved.Args = base.Args
		}
	}
	if resolved.Resolve == nil {
		resolved.Resolve = base.Resolve
	}
	if resolved.Column == nil {
		resolved.Column = base.Column
	}
	if resolved.Relationship == nil {
		resolved.Relationship = base.Relationship
	}
	return &resolved
}

// override returns a copy of f replacing base.
func (f *Field) override(base *Field) *Field {
	field := *f
	field.overrides = base
	return &field
}

// GraphQLField converts f into a field configuration of graphql-go.
func (f *Field) GraphQLField() *graphql.Field {
	return &graphql.Field{
		Name:              f.Name,
		Type:              f.Type,
		Description:       f.Description,
		Args:              f.Args,
		Resolve:           f.Resolve,
		DeprecationReason: f.DeprecationReason,
	}
}

//===----------------------------------------------------------------------------------------====//
// FieldMap
//===----------------------------------------------------------------------------------------====//

// FieldMap is an ordered collection of fields keyed by name. It becomes read-only once the type
// that owns it is defined.
type FieldMap struct {
	names  []string
	fields map[string]*Field
	frozen bool
}

// NewFieldMap creates a FieldMap holding fields in the given order.
func NewFieldMap(fields ...*Field) *FieldMap {
	m := &FieldMap{
		fields: make(map[string]*Field, len(fields)),
	}
	for _, field := range fields {
		m.Set(field)
	}
	return m
}

// Set adds field after the existing ones, or replaces the field of the same name in place.
func (m *FieldMap) Set(field *Field) {
	if m.frozen {
		panic(fmt.Sprintf(`cannot set field "%s" on a frozen field map`, field.Name))
	}
	if m.fields == nil {
		m.fields = map[string]*Field{}
	}
	if _, exists := m.fields[field.Name]; !exists {
		m.names = append(m.names, field.Name)
	}
	m.fields[field.Name] = field
}

// Delete removes the field with the given name.
func (m *FieldMap) Delete(name string) {
	if m.frozen {
		panic(fmt.Sprintf(`cannot delete field "%s" from a frozen field map`, name))
	}
	if _, exists := m.fields[name]; !exists {
		return
	}
	delete(m.fields, name)
	for i, n := range m.names {
		if n == name {
			m.names = append(m.names[:i:i], m.names[i+1:]...)
			break
		}
	}
}

// Get returns the field with the given name.
func (m *FieldMap) Get(name string) (*Field, bool) {
	if m == nil {
		return nil, false
	}
	field, ok := m.fields[name]
	return field, ok
}

// Names returns the field names in order.
func (m *FieldMap) Names() []string {
	if m == nil {
		return nil
	}
	names := make([]string, len(m.names))
	copy(names, m.names)
	return names
}

// Fields returns the fields in order.
func (m *FieldMap) Fields() []*Field {
	if m == nil {
		return nil
	}
	fields := make([]*Field, len(m.names))
	for i, name := range m.names {
		fields[i] = m.fields[name]
	}
	return fields
}

// Len returns the number of fields.
func (m *FieldMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.names)
}

// Clone returns a writable copy of m.
func (m *FieldMap) Clone() *FieldMap {
	return NewFieldMap(m.Fields()...)
}

// Freeze makes m read-only.
func (m *FieldMap) Freeze() {
	m.frozen = true
}

// Frozen returns true if m is read-only.
func (m *FieldMap) Frozen() bool {
	return m.frozen
}

//===----------------------------------------------------------------------------------------====//
// Options
//===----------------------------------------------------------------------------------------====//

// OptionsHolder is implemented by option records. Embed Options in a struct to carry custom
// attributes alongside the ones Define fills in; Define only touches the embedded Options.
type OptionsHolder interface {
	BaseOptions() *Options
}

// Options is the configuration snapshot of a generated type. Define fills it in once; it must not
// be modified afterwards.
type Options struct {
	Name        string
	Description string

	// The model as given in Config and its struct type
	Model     interface{}
	ModelType reflect.Type

	// gorm schema of the model
	Schema *schema.Schema

	Registry      *Registry
	OnlyFields    []string
	ExcludeFields []string
	Interfaces    []*graphql.Interface

	// Resolved fields in order. A custom option record may preset fields here; they come first.
	Fields *FieldMap

	// Edge and connection types; nil unless the type implements Node or asked for a connection
	Connection *relay.ConnectionDefinitions

	// Name of the field holding the global ID of Node types
	IDField string

	// Custom values given in Config.Custom
	Custom map[string]interface{}
}

var _ OptionsHolder = (*Options)(nil)

// BaseOptions implements OptionsHolder.
func (o *Options) BaseOptions() *Options {
	return o
}

// FieldNames returns the names of the resolved fields in order.
func (o *Options) FieldNames() []string {
	return o.Fields.Names()
}
