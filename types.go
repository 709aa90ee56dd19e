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
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/botobag/gormgraphql/internal/util"
	"github.com/botobag/gormgraphql/relay"
	"github.com/google/uuid"
	"github.com/graphql-go/graphql"
	"github.com/spf13/cast"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

// An ObjectType is a GraphQL object type generated from a gorm model.
type ObjectType struct {
	options *Options
	meta    OptionsHolder
	object  *graphql.Object
	node    bool

	fieldsOnce sync.Once
	fields     []*Field

	connectionOnce sync.Once
	connection     *relay.ConnectionDefinitions
}

// Define generates an object type from config.Model and registers it in config.Registry.
//
// The fields of the type are, in order: fields preset on the options record in config.Meta, the
// columns of the model in schema order followed by its relationships in declaration order, and
// then the explicit fields in config.Fields that replace no model field. Interface fields and
// explicit fields replace model fields of the same name in place.
func Define(config Config) (*ObjectType, error) {
	const op Op = "gormgraphql.Define"

	reg := config.Registry
	if reg == nil {
		return nil, NewError("Registry is required to define a type.", op, ErrKindConfiguration)
	}

	name := config.Name
	if len(name) == 0 {
		if modelType := modelTypeOf(config.Model); modelType != nil {
			name = modelType.Name()
		}
	}

	if len(config.OnlyFields) > 0 && len(config.ExcludeFields) > 0 {
		return nil, NewError(fmt.Sprintf(`The options "OnlyFields" and "ExcludeFields" cannot be both set `+
			`on the same type "%s".`, name), op, ErrKindConfiguration)
	}

	if config.Model == nil {
		return nil, NewError(fmt.Sprintf(`You need to pass a valid gorm model in %s config, received "%v".`,
			name, config.Model), op, ErrKindValue, ErrUnmappedModel)
	}

	s, err := reg.inspector.Inspect(config.Model)
	if err != nil {
		if errors.Is(err, schema.ErrUnsupportedDataType) || errors.Is(err, ErrUnmappedModel) {
			return nil, NewError(fmt.Sprintf(`You need to pass a valid gorm model in %s config, received "%v".`,
				name, config.Model), op, ErrKindValue, err)
		}
		// Errors about the model declaration are the caller's to handle.
		return nil, err
	}

	meta := config.Meta
	if meta == nil {
		meta = &Options{}
	}
	options := meta.BaseOptions()
	if options == nil {
		return nil, NewError(fmt.Sprintf(`Options record of "%s" returns nil base options.`, name), op,
			ErrKindConfiguration)
	}

	idField := config.IDField
	if len(idField) == 0 {
		idField = "id"
	}

	custom := make(map[string]interface{}, len(config.Custom))
	for key, value := range config.Custom {
		custom[key] = value
	}

	presetFields := options.Fields
	*options = Options{
		Name:          name,
		Description:   config.Description,
		Model:         config.Model,
		ModelType:     s.ModelType,
		Schema:        s,
		Registry:      reg,
		OnlyFields:    config.OnlyFields,
		ExcludeFields: config.ExcludeFields,
		Interfaces:    config.Interfaces,
		IDField:       idField,
		Custom:        custom,
	}

	t := &ObjectType{
		options: options,
		meta:    meta,
	}
	for _, iface := range config.Interfaces {
		if iface == reg.NodeInterface() {
			t.node = true
		}
	}

	fields, err := t.buildFields(presetFields, config.Fields)
	if err != nil {
		return nil, err
	}
	fields.Freeze()
	options.Fields = fields

	var interfaces []*graphql.Interface
	if len(config.Interfaces) > 0 {
		interfaces = config.Interfaces
	}
	t.object = graphql.NewObject(graphql.ObjectConfig{
		Name:        name,
		Description: config.Description,
		Interfaces:  interfaces,
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return t.graphQLFields()
		}),
		IsTypeOf: t.IsTypeOf,
	})

	if t.node || config.UseConnection {
		options.Connection = t.Connection()
	}

	if err := reg.Register(t); err != nil {
		return nil, err
	}

	return t, nil
}

// buildFields computes the ordered fields of t.
func (t *ObjectType) buildFields(preset *FieldMap, explicit []*Field) (*FieldMap, error) {
	const op Op = "gormgraphql.Define"

	var (
		options = t.options
		reg     = options.Registry
		s       = options.Schema
		fields  = preset.Clone()
	)

	type candidate struct {
		aliases      []string
		column       *schema.Field
		relationship *schema.Relationship
	}

	var candidates []candidate
	for _, field := range s.Fields {
		if len(field.DBName) == 0 || !field.Readable {
			continue
		}
		candidates = append(candidates, candidate{
			aliases: []string{reg.fieldName(field.DBName), field.DBName, field.Name},
			column:  field,
		})
	}
	for _, field := range s.Fields {
		rel, found := s.Relationships.Relations[field.Name]
		if !found || rel.Field != field {
			continue
		}
		snakeName := util.SnakeCase(field.Name)
		candidates = append(candidates, candidate{
			aliases:      []string{reg.fieldName(snakeName), snakeName, field.Name},
			relationship: rel,
		})
	}

	// Check Only and Exclude.
	known := map[string]bool{}
	var suggestions []string
	for _, c := range candidates {
		for _, alias := range c.aliases {
			known[alias] = true
		}
		suggestions = append(suggestions, c.aliases[0])
	}
	for _, field := range fields.Fields() {
		known[field.Name] = true
	}
	for _, field := range explicit {
		known[field.Name] = true
	}
	for _, names := range [][]string{options.OnlyFields, options.ExcludeFields} {
		for _, name := range names {
			if !known[name] {
				return nil, NewError(fmt.Sprintf(`Field "%s" of "%s" is not a field of model %s.%s`,
					name, options.Name, s.Name, util.DidYouMean(name, suggestions)), op, ErrKindConfiguration)
			}
		}
	}

	selected := func(aliases []string) bool {
		if len(options.OnlyFields) > 0 {
			return containsAny(options.OnlyFields, aliases)
		}
		return !containsAny(options.ExcludeFields, aliases)
	}

	// Model fields
	for _, c := range candidates {
		if !selected(c.aliases) {
			continue
		}
		name := c.aliases[0]
		if _, exists := fields.Get(name); exists {
			continue
		}

		if c.column != nil {
			field, err := reg.convertColumn(s, c.column)
			if err != nil {
				return nil, err
			}
			fields.Set(field)
		} else {
			fields.Set(t.relationshipField(c.relationship))
		}
	}

	// Interface fields
	for _, iface := range options.Interfaces {
		if iface == reg.NodeInterface() {
			idField := globalIDField(t)
			if base, exists := fields.Get(idField.Name); exists {
				idField = idField.override(base)
			}
			fields.Set(idField)
			continue
		}

		ifaceFields := iface.Fields()
		names := make([]string, 0, len(ifaceFields))
		for name := range ifaceFields {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			field := interfaceField(ifaceFields[name])
			if base, exists := fields.Get(name); exists {
				field = field.override(base)
			}
			fields.Set(field)
		}
	}

	// Explicit fields
	for _, field := range explicit {
		if field == nil || len(field.Name) == 0 {
			return nil, NewError(fmt.Sprintf(`Fields of "%s" must have a name.`, options.Name), op,
				ErrKindConfiguration)
		}
		if base, exists := fields.Get(field.Name); exists {
			field = field.override(base)
		} else if field.Type == nil && field.Dynamic == nil {
			return nil, NewError(fmt.Sprintf(`Field "%s.%s" must have a type.`, options.Name, field.Name),
				op, ErrKindConfiguration)
		}
		fields.Set(field)
	}

	return fields, nil
}

func containsAny(names []string, aliases []string) bool {
	for _, name := range names {
		for _, alias := range aliases {
			if name == alias {
				return true
			}
		}
	}
	return false
}

// globalIDField creates the global ID field of a Node type.
func globalIDField(t *ObjectType) *Field {
	field := relay.GlobalIDField(t.Name(), func(obj interface{}, info graphql.ResolveInfo, ctx context.Context) (string, error) {
		return t.ResolveID(obj)
	})
	return &Field{
		Name:        t.options.IDField,
		Type:        field.Type,
		Description: field.Description,
		Resolve:     field.Resolve,
	}
}

// interfaceField converts a field of an interface.
func interfaceField(def *graphql.FieldDefinition) *Field {
	var args graphql.FieldConfigArgument
	if len(def.Args) > 0 {
		args = make(graphql.FieldConfigArgument, len(def.Args))
		for _, arg := range def.Args {
			args[arg.Name()] = &graphql.ArgumentConfig{
				Type:         arg.Type,
				DefaultValue: arg.DefaultValue,
				Description:  arg.Description(),
			}
		}
	}
	return &Field{
		Name:              def.Name,
		Type:              def.Type,
		Description:       def.Description,
		Args:              args,
		Resolve:           def.Resolve,
		DeprecationReason: def.DeprecationReason,
	}
}

//===----------------------------------------------------------------------------------------====//
// ObjectType
//===----------------------------------------------------------------------------------------====//

// Object returns the GraphQL object type.
func (t *ObjectType) Object() *graphql.Object {
	return t.object
}

// Options returns the options of the type.
func (t *ObjectType) Options() *Options {
	return t.options
}

// Meta returns the options record given in Config.Meta (or the Options if none was given).
func (t *ObjectType) Meta() OptionsHolder {
	return t.meta
}

// Name returns the name of the type.
func (t *ObjectType) Name() string {
	return t.options.Name
}

// Model returns the model given in Config.
func (t *ObjectType) Model() interface{} {
	return t.options.Model
}

// IsNode returns true if the type implements the Node interface.
func (t *ObjectType) IsNode() bool {
	return t.node
}

// Fields returns the resolved fields of the type in order. Relationship fields are resolved on the
// first call, so it should only be called after all related types were defined.
func (t *ObjectType) Fields() []*Field {
	t.fieldsOnce.Do(func() {
		for _, field := range t.options.Fields.Fields() {
			if resolved := field.Resolved(); resolved != nil {
				t.fields = append(t.fields, resolved)
			}
		}
	})
	return t.fields
}

func (t *ObjectType) graphQLFields() graphql.Fields {
	fields := graphql.Fields{}
	for _, field := range t.Fields() {
		fields[field.Name] = field.GraphQLField()
	}
	return fields
}

// Connection returns the edge and connection types of the type, creating them on first use.
func (t *ObjectType) Connection() *relay.ConnectionDefinitions {
	t.connectionOnce.Do(func() {
		if t.options.Connection != nil {
			t.connection = t.options.Connection
			return
		}
		t.connection = relay.NewConnectionDefinitions(relay.ConnectionConfig{
			Name:     t.Name(),
			NodeType: t.object,
			ConnectionFields: graphql.Fields{
				"totalCount": &graphql.Field{
					Type:        graphql.Int,
					Description: "Number of items in the full list.",
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						if conn, ok := p.Source.(*Connection); ok {
							return int(conn.TotalCount), nil
						}
						return nil, nil
					},
				},
			},
		})
	})
	return t.connection
}

// IsTypeOf returns true if p.Value is an instance of the model.
func (t *ObjectType) IsTypeOf(p graphql.IsTypeOfParams) bool {
	if _, ok := modelValue(p.Value, t.options.ModelType); ok {
		return true
	}
	t.options.Registry.logger.Debug("value is not an instance of the type",
		zap.String("type", t.Name()),
		zap.String("value", fmt.Sprintf("%T", p.Value)))
	return false
}

// ResolveID returns the primary key of an instance of the model as the type-local ID. Values of
// composite primary keys are percent-escaped and joined with commas.
func (t *ObjectType) ResolveID(value interface{}) (string, error) {
	s := t.options.Schema
	if len(s.PrimaryFields) == 0 {
		return "", NewError(fmt.Sprintf("Model %s has no primary key.", s.Name),
			Op("gormgraphql.ObjectType.ResolveID"), ErrKindConfiguration)
	}

	keys := make([]string, 0, len(s.PrimaryFields))
	for _, field := range s.PrimaryFields {
		v, ok := attributeValue(field, value)
		if !ok {
			return "", NewError(fmt.Sprintf(`Value "%v" is not an instance of %s.`, value, t.Name()),
				Op("gormgraphql.ObjectType.ResolveID"), ErrKindValue)
		}
		keys = append(keys, cast.ToString(normalizeValue(v)))
	}
	return joinKeys(keys), nil
}

var keyEscaper = strings.NewReplacer("%", "%25", ",", "%2C")

// joinKeys builds an ID from primary key values. A single key is used as is.
func joinKeys(keys []string) string {
	if len(keys) == 1 {
		return keys[0]
	}
	escaped := make([]string, len(keys))
	for i, key := range keys {
		escaped[i] = keyEscaper.Replace(key)
	}
	return strings.Join(escaped, ",")
}

// splitKeys reverses joinKeys for a model with n primary keys.
func splitKeys(id string, n int) ([]string, error) {
	if n == 1 {
		return []string{id}, nil
	}
	keys := strings.Split(id, ",")
	for i, key := range keys {
		unescaped, err := url.PathUnescape(key)
		if err != nil {
			return nil, err
		}
		keys[i] = unescaped
	}
	return keys, nil
}

// GetNode fetches the instance of the model whose ResolveID is id. It returns nil if there is none.
func (t *ObjectType) GetNode(ctx context.Context, id string) (interface{}, error) {
	const op Op = "gormgraphql.ObjectType.GetNode"

	s := t.options.Schema
	if len(s.PrimaryFields) == 0 {
		return nil, nil
	}
	keys, err := splitKeys(id, len(s.PrimaryFields))
	if err != nil {
		return nil, NewError(fmt.Sprintf(`Invalid ID "%s" for %s.`, id, t.Name()), op, ErrKindValue, err)
	}
	if len(keys) != len(s.PrimaryFields) {
		return nil, nil
	}

	query, err := t.GetQuery(ctx)
	if err != nil {
		return nil, err
	}

	for i, field := range s.PrimaryFields {
		key, err := parseKey(field, keys[i])
		if err != nil {
			return nil, NewError(fmt.Sprintf(`Invalid ID "%s" for %s.`, id, t.Name()), op, ErrKindValue, err)
		}
		query = query.Where(clause.Eq{
			Column: clause.Column{Table: clause.CurrentTable, Name: field.DBName},
			Value:  key,
		})
	}

	node := reflect.New(t.options.ModelType)
	if err := query.Take(node.Interface()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, NewError(fmt.Sprintf(`Failed to fetch %s "%s".`, t.Name(), id), op, ErrKindQuery, err)
	}
	return node.Interface(), nil
}

// parseKey converts a key given in an ID into the type of the primary key column.
func parseKey(field *schema.Field, key string) (interface{}, error) {
	if field.IndirectFieldType == uuidType {
		return uuid.Parse(key)
	}
	switch field.IndirectFieldType.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return cast.ToInt64E(key)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return cast.ToUint64E(key)
	}
	return key, nil
}

// GetQuery returns the query listing rows of the model. See the package-level GetQuery.
func (t *ObjectType) GetQuery(ctx context.Context) (*gorm.DB, error) {
	return GetQuery(ctx, reflect.New(t.options.ModelType).Interface())
}
