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

	"github.com/graphql-go/graphql"
	"gorm.io/gorm"
)

// NewSchema creates a schema with the given query root that includes every type and enum of reg,
// so types only reachable through the Node interface are part of the schema.
func NewSchema(reg *Registry, query *graphql.Object, extraTypes ...graphql.Type) (graphql.Schema, error) {
	objectTypes := reg.Types()
	types := make([]graphql.Type, 0, len(objectTypes)+len(extraTypes))
	for _, t := range objectTypes {
		types = append(types, t.Object())
	}
	for _, enum := range reg.Enums() {
		types = append(types, enum)
	}
	types = append(types, extraTypes...)

	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query: query,
		Types: types,
	})
	if err != nil {
		return schema, NewError("Unable to create schema.", Op("gormgraphql.NewSchema"), ErrKindConfiguration, err)
	}
	return schema, nil
}

// NodeField returns the "node" root field fetching objects of the Node types of reg by global ID.
func (r *Registry) NodeField() *graphql.Field {
	return r.Node().NodeField
}

// Execute runs a request against schema with a session over db in the context.
func Execute(ctx context.Context, schema graphql.Schema, db *gorm.DB, request string, variables map[string]interface{}) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:         schema,
		RequestString:  request,
		VariableValues: variables,
		Context:        NewContext(ctx, db),
	})
}
