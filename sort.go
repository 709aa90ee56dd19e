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

	"github.com/graphql-go/graphql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SymbolNameFn names the enum value sorting by column in ascending or descending order.
type SymbolNameFn func(column string, asc bool) string

// DefaultSymbolName names the values of a column "foo" as "foo_asc" and "foo_desc".
func DefaultSymbolName(column string, asc bool) string {
	if asc {
		return column + "_asc"
	}
	return column + "_desc"
}

// SortValue is a value of a SortEnum.
type SortValue struct {
	Name  string
	Order clause.OrderByColumn
}

// A SortEnum is an enum of the orders a query of a model can be sorted by. The internal value of
// each enum value is the clause.OrderByColumn it stands for.
type SortEnum struct {
	*graphql.Enum

	// Values in column order, ascending before descending
	Values []SortValue

	// Default orders the primary keys ascending.
	Default []clause.OrderByColumn
}

// SortEnumFor returns the sort enum of model, creating it on first use. An empty name defaults to
// "<Model>SortEnum"; a nil symbolName defaults to DefaultSymbolName. Enums are cached per registry
// by name.
func SortEnumFor(reg *Registry, model interface{}, name string, symbolName SymbolNameFn) (*SortEnum, error) {
	const op Op = "gormgraphql.SortEnumFor"

	s, err := reg.inspector.Inspect(model)
	if err != nil {
		return nil, NewError("Unable to inspect model for sorting.", op, ErrKindValue, err)
	}

	if name == "" {
		name = s.Name + "SortEnum"
	}
	if symbolName == nil {
		symbolName = DefaultSymbolName
	}

	reg.mutex.Lock()
	defer reg.mutex.Unlock()

	if enum, found := reg.sortEnums[name]; found {
		return enum, nil
	}

	var (
		values   []SortValue
		defaults []clause.OrderByColumn
		config   = graphql.EnumValueConfigMap{}
	)
	for _, field := range s.Fields {
		if field.DBName == "" || !field.Readable {
			continue
		}
		column := clause.Column{Table: clause.CurrentTable, Name: field.DBName}
		asc := SortValue{Name: symbolName(field.DBName, true), Order: clause.OrderByColumn{Column: column}}
		desc := SortValue{Name: symbolName(field.DBName, false), Order: clause.OrderByColumn{Column: column, Desc: true}}
		if field.PrimaryKey {
			defaults = append(defaults, asc.Order)
		}
		values = append(values, asc, desc)
	}

	for _, value := range values {
		config[value.Name] = &graphql.EnumValueConfig{
			Value: value.Order,
		}
	}
	if len(config) == 0 {
		return nil, NewError(fmt.Sprintf(`Model "%s" has no column to sort by.`, s.Name), op,
			ErrKindConfiguration)
	}

	enum := &SortEnum{
		Enum: graphql.NewEnum(graphql.EnumConfig{
			Name:   name,
			Values: config,
		}),
		Values:  values,
		Default: defaults,
	}
	reg.sortEnums[name] = enum
	return enum, nil
}

// SortArgumentFor returns the "sort" argument of connections over model: a list of the values of
// its sort enum. With hasDefault the argument defaults to the primary keys ascending.
func SortArgumentFor(reg *Registry, model interface{}, hasDefault bool) (*graphql.ArgumentConfig, error) {
	enum, err := SortEnumFor(reg, model, "", nil)
	if err != nil {
		return nil, err
	}

	arg := &graphql.ArgumentConfig{
		Type: graphql.NewList(enum.Enum),
	}
	if hasDefault && len(enum.Default) > 0 {
		defaults := make([]interface{}, len(enum.Default))
		for i, order := range enum.Default {
			defaults[i] = order
		}
		arg.DefaultValue = defaults
	}
	return arg, nil
}

// applySort orders query by the value of the "sort" argument.
func applySort(query *gorm.DB, sort interface{}) *gorm.DB {
	switch sort := sort.(type) {
	case clause.OrderByColumn:
		return query.Order(sort)
	case []interface{}:
		for _, order := range sort {
			if order, ok := order.(clause.OrderByColumn); ok {
				query = query.Order(order)
			}
		}
	case []clause.OrderByColumn:
		for _, order := range sort {
			query = query.Order(order)
		}
	}
	return query
}
