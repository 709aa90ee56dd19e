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
	"database/sql/driver"
	"fmt"
	"reflect"
	"time"

	"github.com/botobag/gormgraphql/internal/util"
	"github.com/google/uuid"
	"github.com/graphql-go/graphql"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm/schema"
)

// EnumValuer is implemented by column types that only take a fixed set of string values. Such
// columns become a GraphQL enum named after the Go type.
type EnumValuer interface {
	EnumValues() []string
}

var (
	timeType       = reflect.TypeOf(time.Time{})
	decimalType    = reflect.TypeOf(decimal.Decimal{})
	uuidType       = reflect.TypeOf(uuid.UUID{})
	enumValuerType = reflect.TypeOf((*EnumValuer)(nil)).Elem()
	valuerType     = reflect.TypeOf((*driver.Valuer)(nil)).Elem()
)

//===----------------------------------------------------------------------------------------====//
// Columns
//===----------------------------------------------------------------------------------------====//

// fieldName converts an attribute name in snake case into the name of its GraphQL field.
func (r *Registry) fieldName(name string) string {
	if r.autoCamelCase {
		return util.LowerCamelCase(name)
	}
	return name
}

// convertColumn creates the field of a model column.
func (r *Registry) convertColumn(s *schema.Schema, column *schema.Field) (*Field, error) {
	fieldType, enum, err := r.columnType(s, column)
	if err != nil {
		return nil, err
	}

	if column.NotNull && !column.PrimaryKey {
		fieldType = graphql.NewNonNull(fieldType)
	}

	return &Field{
		Name:        r.fieldName(column.DBName),
		Type:        fieldType,
		Description: column.Comment,
		Resolve:     columnResolver(column, enum),
		Column:      column,
	}, nil
}

// columnType returns the GraphQL type of a column. enum is set when the type is an enum created for
// an EnumValuer.
func (r *Registry) columnType(s *schema.Schema, column *schema.Field) (fieldType graphql.Output, enum bool, err error) {
	t := column.IndirectFieldType
	if t.Implements(enumValuerType) || reflect.PointerTo(t).Implements(enumValuerType) {
		return r.enumForType(t), true, nil
	}

	switch t {
	case timeType:
		return graphql.DateTime, false, nil
	case decimalType:
		return graphql.Float, false, nil
	case uuidType:
		if column.PrimaryKey {
			return graphql.ID, false, nil
		}
		return graphql.String, false, nil
	}

	if column.Serializer != nil {
		switch t.Kind() {
		case reflect.Slice, reflect.Array:
			if t.Elem().Kind() != reflect.Uint8 {
				return graphql.NewList(scalarForKind(t.Elem())), false, nil
			}
			return graphql.String, false, nil
		default:
			return JSONString, false, nil
		}
	}

	switch t.Kind() {
	case reflect.Bool:
		return graphql.Boolean, false, nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if column.PrimaryKey {
			return graphql.ID, false, nil
		}
		return graphql.Int, false, nil

	case reflect.Float32, reflect.Float64:
		return graphql.Float, false, nil

	case reflect.String:
		if column.PrimaryKey {
			return graphql.ID, false, nil
		}
		return graphql.String, false, nil

	case reflect.Slice, reflect.Array:
		if t.Elem().Kind() == reflect.Uint8 {
			return graphql.String, false, nil
		}
		if !t.Implements(valuerType) {
			if elemType := scalarForKind(t.Elem()); elemType != JSONString {
				return graphql.NewList(elemType), false, nil
			}
		}
	}

	// Valuers such as sql.NullString and gorm.DeletedAt are classified by the data type gorm
	// inferred from their driver value.
	dataType := column.GORMDataType
	if dataType == "" {
		dataType = column.DataType
	}
	switch dataType {
	case schema.Bool:
		return graphql.Boolean, false, nil
	case schema.Int, schema.Uint:
		if column.PrimaryKey {
			return graphql.ID, false, nil
		}
		return graphql.Int, false, nil
	case schema.Float:
		return graphql.Float, false, nil
	case schema.String, schema.Bytes:
		if column.PrimaryKey {
			return graphql.ID, false, nil
		}
		return graphql.String, false, nil
	case schema.Time:
		return graphql.DateTime, false, nil
	}

	return nil, false, NewError(
		fmt.Sprintf("Don't know how to convert the gorm field %s.%s (%s)", s.Name, column.Name, column.FieldType),
		Op("gormgraphql.convertColumn"), ErrKindConversion)
}

// scalarForKind returns the scalar of list elements; values without a matching scalar are
// exchanged as JSON.
func scalarForKind(t reflect.Type) graphql.Output {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t {
	case timeType:
		return graphql.DateTime
	case decimalType:
		return graphql.Float
	case uuidType:
		return graphql.String
	}
	switch t.Kind() {
	case reflect.Bool:
		return graphql.Boolean
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return graphql.Int
	case reflect.Float32, reflect.Float64:
		return graphql.Float
	case reflect.String:
		return graphql.String
	}
	return JSONString
}

// enumForType returns the enum of an EnumValuer type, creating it on first use.
func (r *Registry) enumForType(t reflect.Type) *graphql.Enum {
	return r.enumFor(t.Name(), func() (*graphql.Enum, []string) {
		var valuer EnumValuer
		if t.Implements(enumValuerType) {
			valuer = reflect.Zero(t).Interface().(EnumValuer)
		} else {
			valuer = reflect.New(t).Interface().(EnumValuer)
		}

		names := valuer.EnumValues()
		values := make(graphql.EnumValueConfigMap, len(names))
		for _, value := range names {
			values[value] = &graphql.EnumValueConfig{
				Value: value,
			}
		}

		return graphql.NewEnum(graphql.EnumConfig{
			Name:   t.Name(),
			Values: values,
		}), names
	})
}

// columnResolver returns the resolver reading column from a model instance.
func columnResolver(column *schema.Field, enum bool) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		v, ok := attributeValue(column, p.Source)
		if !ok {
			return nil, nil
		}
		if enum {
			return enumValueOf(v), nil
		}
		return normalizeValue(v), nil
	}
}

// modelValue returns the struct value of a model instance given as struct or pointer.
func modelValue(source interface{}, modelType reflect.Type) (reflect.Value, bool) {
	v := reflect.ValueOf(source)
	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}
	if !v.IsValid() || v.Type() != modelType {
		return reflect.Value{}, false
	}
	return v, true
}

// attributeValue reads the struct field of attribute from source. The second result is false if
// source is not an instance of the model or an embedded struct on the path is nil.
func attributeValue(attribute *schema.Field, source interface{}) (reflect.Value, bool) {
	v, ok := modelValue(source, attribute.Schema.ModelType)
	if !ok {
		return reflect.Value{}, false
	}

	// gorm encodes embedded pointers as negative indices.
	for _, index := range attribute.StructField.Index {
		if index >= 0 {
			v = v.Field(index)
			continue
		}
		v = v.Field(-index - 1)
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}
	return v, true
}

func enumValueOf(v reflect.Value) interface{} {
	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() == reflect.String {
		return v.String()
	}
	if stringer, ok := v.Interface().(fmt.Stringer); ok {
		return stringer.String()
	}
	return fmt.Sprint(v.Interface())
}

// normalizeValue converts an attribute value into one the built-in scalars of graphql-go
// serialize, which only accept predeclared types.
func normalizeValue(v reflect.Value) interface{} {
	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return nil
	}

	switch value := v.Interface().(type) {
	case time.Time:
		return value
	case decimal.Decimal:
		return value.InexactFloat64()
	case uuid.UUID:
		return value.String()
	case []byte:
		return string(value)
	}

	switch v.Kind() {
	case reflect.Bool:
		return v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return int(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return uint64ToInt(v.Uint())
	case reflect.Float32, reflect.Float64:
		return v.Float()
	case reflect.String:
		return v.String()
	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.IsNil() {
			return nil
		}
		if _, isValuer := v.Interface().(driver.Valuer); !isValuer {
			values := make([]interface{}, v.Len())
			for i := range values {
				values[i] = normalizeValue(v.Index(i))
			}
			return values
		}
	case reflect.Map:
		return v.Interface()
	}

	if valuer, ok := valuerOf(v); ok {
		value, err := valuer.Value()
		if err != nil || value == nil {
			return nil
		}
		return normalizeValue(reflect.ValueOf(value))
	}

	return v.Interface()
}

func valuerOf(v reflect.Value) (driver.Valuer, bool) {
	if valuer, ok := v.Interface().(driver.Valuer); ok {
		return valuer, true
	}
	if v.CanAddr() {
		if valuer, ok := v.Addr().Interface().(driver.Valuer); ok {
			return valuer, true
		}
	}
	return nil, false
}

func uint64ToInt(v uint64) interface{} {
	if v > uint64(^uint(0)>>1) {
		return v
	}
	return int(v)
}

//===----------------------------------------------------------------------------------------====//
// Relationships
//===----------------------------------------------------------------------------------------====//

// relationshipField creates the field of a relationship of t. Its type is looked up when the
// object is built so relationships may refer to types defined later; the field is left out if the
// related model has no registered type by then.
func (t *ObjectType) relationshipField(rel *schema.Relationship) *Field {
	reg := t.options.Registry
	name := reg.fieldName(util.SnakeCase(rel.Name))

	return &Field{
		Name:         name,
		Relationship: rel,
		Dynamic: func() *Field {
			target := reg.TypeForModel(rel.FieldSchema.ModelType)
			if target == nil {
				reg.logger.Debug("skip relationship without registered type",
					zap.String("type", t.Name()),
					zap.String("field", name),
					zap.Stringer("model", rel.FieldSchema.ModelType))
				return nil
			}

			load := t.relationshipLoad(rel)
			field := &Field{
				Name:         name,
				Relationship: rel,
			}

			switch rel.Type {
			case schema.HasMany, schema.Many2Many:
				if target.IsNode() {
					connectionField := NewConnectionField(target, func(p graphql.ResolveParams) (interface{}, error) {
						return load(p), nil
					}, WithoutSort())
					field.Type = connectionField.Type
					field.Args = connectionField.Args
					field.Resolve = connectionField.Resolve
				} else {
					field.Type = graphql.NewList(graphql.NewNonNull(target.Object()))
					field.Resolve = deferredResolver(load)
				}

			default:
				field.Type = target.Object()
				field.Resolve = deferredResolver(load)
			}

			return field
		},
	}
}
