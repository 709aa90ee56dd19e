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
	"sync"

	"github.com/botobag/gormgraphql/relay"
	"github.com/graphql-go/graphql"
	"go.uber.org/zap"
	"gorm.io/gorm/schema"
)

// A Registry maps models to the object types generated for them and keeps the enums, sort enums
// and Node interface shared by those types. Relationship fields look up their target type here.
//
// Registration is append-only. Defining another type for an already registered model makes it the
// type relationships resolve to. Registries are safe for concurrent use.
type Registry struct {
	mutex sync.RWMutex

	inspector       Inspector
	logger          *zap.Logger
	autoCamelCase   bool
	batching        bool
	loaderCacheSize int

	typesByModel map[reflect.Type]*ObjectType
	typesByName  map[string]*ObjectType
	types        []*ObjectType

	enums      map[string]*graphql.Enum
	enumValues map[*graphql.Enum][]string
	sortEnums  map[string]*SortEnum

	nodeOnce sync.Once
	node     *relay.NodeDefinitions
}

// RegistryOption configures a Registry.
type RegistryOption func(r *Registry)

// WithInspector sets the Inspector used to reflect models.
func WithInspector(inspector Inspector) RegistryOption {
	return func(r *Registry) {
		r.inspector = inspector
	}
}

// WithNamingStrategy reflects models with a SchemaInspector using namer.
func WithNamingStrategy(namer schema.Namer) RegistryOption {
	return func(r *Registry) {
		r.inspector = NewSchemaInspector(namer)
	}
}

// WithLogger sets the logger. The default logger discards everything.
func WithLogger(logger *zap.Logger) RegistryOption {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithAutoCamelCase controls whether column names are converted to lowerCamelCase field names.
// It is enabled by default.
func WithAutoCamelCase(enabled bool) RegistryOption {
	return func(r *Registry) {
		r.autoCamelCase = enabled
	}
}

// WithBatching makes relationship fields that were not preloaded load through per-request data
// loaders, so the relationship of all objects in a list is fetched with one query.
func WithBatching(enabled bool) RegistryOption {
	return func(r *Registry) {
		r.batching = enabled
	}
}

// WithLoaderCacheSize bounds the number of values cached by each per-request data loader. Zero
// (the default) means unbounded.
func WithLoaderCacheSize(size int) RegistryOption {
	return func(r *Registry) {
		r.loaderCacheSize = size
	}
}

// NewRegistry creates an empty Registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		logger:        zap.NewNop(),
		autoCamelCase: true,
		typesByModel:  map[reflect.Type]*ObjectType{},
		typesByName:   map[string]*ObjectType{},
		enums:         map[string]*graphql.Enum{},
		enumValues:    map[*graphql.Enum][]string{},
		sortEnums:     map[string]*SortEnum{},
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.inspector == nil {
		r.inspector = NewSchemaInspector(nil)
	}
	return r
}

// Inspector returns the Inspector that reflects models.
func (r *Registry) Inspector() Inspector {
	return r.inspector
}

// Logger returns the logger of the registry.
func (r *Registry) Logger() *zap.Logger {
	return r.logger
}

// AutoCamelCase returns true if column names are converted to lowerCamelCase.
func (r *Registry) AutoCamelCase() bool {
	return r.autoCamelCase
}

// Batching returns true if relationships are loaded through data loaders.
func (r *Registry) Batching() bool {
	return r.batching
}

// Register adds t to the registry. It fails if another type already uses the name of t.
func (r *Registry) Register(t *ObjectType) error {
	const op Op = "gormgraphql.Registry.Register"

	r.mutex.Lock()
	defer r.mutex.Unlock()

	name := t.Name()
	if existing, found := r.typesByName[name]; found && existing != t {
		return NewError(fmt.Sprintf(`Found different types with the same name in the registry: %s. `+
			`Type names must be unique.`, name), op, ErrKindDuplicate)
	}

	r.typesByName[name] = t
	r.typesByModel[t.options.ModelType] = t
	r.types = append(r.types, t)

	r.logger.Debug("registered type",
		zap.String("type", name),
		zap.Stringer("model", t.options.ModelType),
		zap.Strings("fields", t.options.FieldNames()))

	return nil
}

// TypeForModel returns the type registered for model (a value, pointer or reflect.Type of the
// model struct), or nil.
func (r *Registry) TypeForModel(model interface{}) *ObjectType {
	var modelType reflect.Type
	if t, ok := model.(reflect.Type); ok {
		modelType = t
		for modelType.Kind() == reflect.Ptr || modelType.Kind() == reflect.Slice {
			modelType = modelType.Elem()
		}
	} else {
		modelType = modelTypeOf(model)
	}

	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return r.typesByModel[modelType]
}

// TypeByName returns the type registered under name, or nil.
func (r *Registry) TypeByName(name string) *ObjectType {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return r.typesByName[name]
}

// Types returns all registered types in registration order.
func (r *Registry) Types() []*ObjectType {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	types := make([]*ObjectType, len(r.types))
	copy(types, r.types)
	return types
}

// Enums returns the enums created for model columns and sorting, in no particular order.
func (r *Registry) Enums() []*graphql.Enum {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	enums := make([]*graphql.Enum, 0, len(r.enums)+len(r.sortEnums))
	for _, enum := range r.enums {
		enums = append(enums, enum)
	}
	for _, sortEnum := range r.sortEnums {
		enums = append(enums, sortEnum.Enum)
	}
	return enums
}

// enumFor returns the enum named name, creating it with create on first use. create also returns
// the names of the values in declaration order.
func (r *Registry) enumFor(name string, create func() (*graphql.Enum, []string)) *graphql.Enum {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if enum, found := r.enums[name]; found {
		return enum
	}
	enum, values := create()
	r.enums[name] = enum
	r.enumValues[enum] = values
	return enum
}

// EnumValueNames returns the value names of an enum created by the registry in declaration order.
// graphql-go keeps enum values in a map and loses the order.
func (r *Registry) EnumValueNames(enum *graphql.Enum) []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	if values, found := r.enumValues[enum]; found {
		return values
	}
	for _, sortEnum := range r.sortEnums {
		if sortEnum.Enum == enum {
			names := make([]string, len(sortEnum.Values))
			for i, value := range sortEnum.Values {
				names[i] = value.Name
			}
			return names
		}
	}
	return nil
}

// Node returns the Node interface definitions of the registry. The "node" field fetches objects of
// any registered Node type by global ID.
func (r *Registry) Node() *relay.NodeDefinitions {
	r.nodeOnce.Do(func() {
		r.node = relay.NewNodeDefinitions(relay.NodeDefinitionsConfig{
			IDFetcher:   r.fetchNode,
			TypeResolve: r.resolveNodeType,
		})
	})
	return r.node
}

// NodeInterface is a shortcut for r.Node().NodeInterface.
func (r *Registry) NodeInterface() *graphql.Interface {
	return r.Node().NodeInterface
}

func (r *Registry) fetchNode(ctx context.Context, globalID string, info graphql.ResolveInfo) (interface{}, error) {
	const op Op = "gormgraphql.Registry.Node"

	resolved, err := relay.FromGlobalID(globalID)
	if err != nil {
		return nil, NewError("Unable to parse global ID.", op, ErrKindValue, err)
	}

	t := r.TypeByName(resolved.Type)
	if t == nil || !t.IsNode() {
		return nil, NewError(fmt.Sprintf(`Relay Node "%s" not found in schema`, resolved.Type), op,
			ErrKindValue)
	}

	return t.GetNode(ctx, resolved.ID)
}

func (r *Registry) resolveNodeType(p graphql.ResolveTypeParams) *graphql.Object {
	if t := r.TypeForModel(p.Value); t != nil {
		return t.Object()
	}
	r.logger.Debug("no type registered for node value", zap.String("value", fmt.Sprintf("%T", p.Value)))
	return nil
}
