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
	"sort"
	"strconv"
	"strings"

	"github.com/graphql-go/graphql"
)

var specifiedScalars = map[string]bool{
	"String":  true,
	"Int":     true,
	"Float":   true,
	"Boolean": true,
	"ID":      true,
}

// PrintSchema prints schema in the GraphQL schema definition language. Types are sorted by name.
// Fields of types generated by reg keep their defined order and enums of reg keep their value
// order; everything else is sorted by name.
func PrintSchema(schema graphql.Schema, reg *Registry) string {
	p := schemaPrinter{reg: reg}

	typeMap := schema.TypeMap()
	names := make([]string, 0, len(typeMap))
	for name := range typeMap {
		if strings.HasPrefix(name, "__") || specifiedScalars[name] {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	var defs []string
	if def := p.schemaDefinition(schema); len(def) > 0 {
		defs = append(defs, def)
	}
	for _, name := range names {
		if def := p.typeDefinition(typeMap[name]); len(def) > 0 {
			defs = append(defs, def)
		}
	}
	return strings.Join(defs, "\n\n") + "\n"
}

type schemaPrinter struct {
	reg *Registry
}

func (p schemaPrinter) schemaDefinition(schema graphql.Schema) string {
	var (
		query        = schema.QueryType()
		mutation     = schema.MutationType()
		subscription = schema.SubscriptionType()
	)
	if (query == nil || query.Name() == "Query") &&
		(mutation == nil || mutation.Name() == "Mutation") &&
		(subscription == nil || subscription.Name() == "Subscription") {
		return ""
	}

	var b strings.Builder
	b.WriteString("schema {\n")
	if query != nil {
		fmt.Fprintf(&b, "  query: %s\n", query.Name())
	}
	if mutation != nil {
		fmt.Fprintf(&b, "  mutation: %s\n", mutation.Name())
	}
	if subscription != nil {
		fmt.Fprintf(&b, "  subscription: %s\n", subscription.Name())
	}
	b.WriteString("}")
	return b.String()
}

func (p schemaPrinter) typeDefinition(t graphql.Type) string {
	switch t := t.(type) {
	case *graphql.Scalar:
		return description(t.Description(), "") + "scalar " + t.Name()
	case *graphql.Object:
		return p.objectDefinition(t)
	case *graphql.Interface:
		return description(t.Description(), "") + "interface " + t.Name() + p.fieldsDefinition(t.Name(), t.Fields())
	case *graphql.Union:
		members := make([]string, len(t.Types()))
		for i, member := range t.Types() {
			members[i] = member.Name()
		}
		return description(t.Description(), "") + "union " + t.Name() + " = " + strings.Join(members, " | ")
	case *graphql.Enum:
		return p.enumDefinition(t)
	case *graphql.InputObject:
		return p.inputObjectDefinition(t)
	}
	return ""
}

func (p schemaPrinter) objectDefinition(object *graphql.Object) string {
	var b strings.Builder
	b.WriteString(description(object.Description(), ""))
	b.WriteString("type ")
	b.WriteString(object.Name())
	if interfaces := object.Interfaces(); len(interfaces) > 0 {
		names := make([]string, len(interfaces))
		for i, iface := range interfaces {
			names[i] = iface.Name()
		}
		b.WriteString(" implements ")
		b.WriteString(strings.Join(names, " & "))
	}
	b.WriteString(p.fieldsDefinition(object.Name(), object.Fields()))
	return b.String()
}

// fieldOrder returns the field names of the type named typeName in print order.
func (p schemaPrinter) fieldOrder(typeName string, fields graphql.FieldDefinitionMap) []string {
	var names []string
	if p.reg != nil {
		if t := p.reg.TypeByName(typeName); t != nil {
			for _, field := range t.Fields() {
				if _, exists := fields[field.Name]; exists {
					names = append(names, field.Name)
				}
			}
			if len(names) == len(fields) {
				return names
			}
		}
	}

	names = names[:0]
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (p schemaPrinter) fieldsDefinition(typeName string, fields graphql.FieldDefinitionMap) string {
	var b strings.Builder
	b.WriteString(" {\n")
	for _, name := range p.fieldOrder(typeName, fields) {
		field := fields[name]
		b.WriteString(description(field.Description, "  "))
		b.WriteString("  ")
		b.WriteString(name)
		b.WriteString(p.argumentsDefinition(field.Args))
		b.WriteString(": ")
		b.WriteString(field.Type.String())
		b.WriteString(deprecated(field.DeprecationReason))
		b.WriteString("\n")
	}
	b.WriteString("}")
	return b.String()
}

func (p schemaPrinter) argumentsDefinition(args []*graphql.Argument) string {
	if len(args) == 0 {
		return ""
	}

	sorted := make([]*graphql.Argument, len(args))
	copy(sorted, args)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Name() < sorted[j].Name()
	})

	defs := make([]string, len(sorted))
	for i, arg := range sorted {
		defs[i] = arg.Name() + ": " + arg.Type.String()
		if arg.DefaultValue != nil {
			defs[i] += " = " + printValue(arg.DefaultValue, arg.Type)
		}
	}
	return "(" + strings.Join(defs, ", ") + ")"
}

func (p schemaPrinter) enumDefinition(enum *graphql.Enum) string {
	var names []string
	if p.reg != nil {
		names = p.reg.EnumValueNames(enum)
	}
	values := map[string]*graphql.EnumValueDefinition{}
	for _, value := range enum.Values() {
		values[value.Name] = value
	}
	if len(names) != len(values) {
		names = names[:0]
		for name := range values {
			names = append(names, name)
		}
		sort.Strings(names)
	}

	var b strings.Builder
	b.WriteString(description(enum.Description(), ""))
	b.WriteString("enum ")
	b.WriteString(enum.Name())
	b.WriteString(" {\n")
	for _, name := range names {
		value := values[name]
		b.WriteString(description(value.Description, "  "))
		b.WriteString("  ")
		b.WriteString(name)
		b.WriteString(deprecated(value.DeprecationReason))
		b.WriteString("\n")
	}
	b.WriteString("}")
	return b.String()
}

func (p schemaPrinter) inputObjectDefinition(input *graphql.InputObject) string {
	fields := input.Fields()
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(description(input.Description(), ""))
	b.WriteString("input ")
	b.WriteString(input.Name())
	b.WriteString(" {\n")
	for _, name := range names {
		field := fields[name]
		b.WriteString(description(field.Description(), "  "))
		b.WriteString("  ")
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(field.Type.String())
		if field.DefaultValue != nil {
			b.WriteString(" = ")
			b.WriteString(printValue(field.DefaultValue, field.Type))
		}
		b.WriteString("\n")
	}
	b.WriteString("}")
	return b.String()
}

func description(text string, indent string) string {
	if len(text) == 0 {
		return ""
	}
	if !strings.Contains(text, "\n") {
		return indent + strconv.Quote(text) + "\n"
	}
	var b strings.Builder
	b.WriteString(indent + `"""` + "\n")
	for _, line := range strings.Split(text, "\n") {
		b.WriteString(indent + strings.ReplaceAll(line, `"""`, `\"""`) + "\n")
	}
	b.WriteString(indent + `"""` + "\n")
	return b.String()
}

func deprecated(reason string) string {
	switch reason {
	case "":
		return ""
	case graphql.DefaultDeprecationReason:
		return " @deprecated"
	}
	return " @deprecated(reason: " + strconv.Quote(reason) + ")"
}

// printValue prints an internal value of type t as a GraphQL literal.
func printValue(value interface{}, t graphql.Type) string {
	switch t := t.(type) {
	case *graphql.NonNull:
		return printValue(value, t.OfType)

	case *graphql.List:
		items, ok := value.([]interface{})
		if !ok {
			return printValue(value, t.OfType)
		}
		printed := make([]string, len(items))
		for i, item := range items {
			printed[i] = printValue(item, t.OfType)
		}
		return "[" + strings.Join(printed, ", ") + "]"

	case *graphql.Enum:
		if name, ok := t.Serialize(value).(string); ok {
			return name
		}
		return "null"

	case *graphql.Scalar:
		serialized := t.Serialize(value)
		switch serialized := serialized.(type) {
		case nil:
			return "null"
		case string:
			return strconv.Quote(serialized)
		}
		return fmt.Sprint(serialized)
	}
	return fmt.Sprint(value)
}
