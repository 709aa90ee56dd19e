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

// Package relay implements the Relay server conventions on top of graphql-go: the Node interface
// with opaque global IDs, and cursor-based connections with their pagination arguments.
package relay

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/graphql-go/graphql"
)

// ResolvedGlobalID is a global ID decoded into the name of the type and the type-local ID.
type ResolvedGlobalID struct {
	Type string
	ID   string
}

// ToGlobalID encodes a type name and a type-local ID into an opaque global ID.
func ToGlobalID(typeName string, id string) string {
	return base64.StdEncoding.EncodeToString([]byte(typeName + ":" + id))
}

// FromGlobalID decodes a global ID created by ToGlobalID.
func FromGlobalID(globalID string) (*ResolvedGlobalID, error) {
	decoded, err := base64.StdEncoding.DecodeString(globalID)
	if err != nil {
		return nil, fmt.Errorf(`invalid global ID "%s": %s`, globalID, err)
	}

	typeName, id, found := strings.Cut(string(decoded), ":")
	if !found || len(typeName) == 0 {
		return nil, fmt.Errorf(`invalid global ID "%s"`, globalID)
	}

	return &ResolvedGlobalID{
		Type: typeName,
		ID:   id,
	}, nil
}

// IDFetcherFn loads the object identified by a global ID.
type IDFetcherFn func(ctx context.Context, globalID string, info graphql.ResolveInfo) (interface{}, error)

// NodeDefinitionsConfig configures NewNodeDefinitions.
type NodeDefinitionsConfig struct {
	// Loads the object for the "node" root field
	IDFetcher IDFetcherFn

	// Maps a value returned by IDFetcher to its object type
	TypeResolve graphql.ResolveTypeFn
}

// NodeDefinitions holds the Node interface and the "node" root field that fetches any Node by ID.
type NodeDefinitions struct {
	NodeInterface *graphql.Interface
	NodeField     *graphql.Field
}

// NewNodeDefinitions creates the Node interface and the field to fetch objects by global ID.
func NewNodeDefinitions(config NodeDefinitionsConfig) *NodeDefinitions {
	nodeInterface := graphql.NewInterface(graphql.InterfaceConfig{
		Name:        "Node",
		Description: "An object with an ID",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type:        graphql.NewNonNull(graphql.ID),
				Description: "The id of the object.",
			},
		},
		ResolveType: config.TypeResolve,
	})

	nodeField := &graphql.Field{
		Name:        "node",
		Description: "Fetches an object given its ID",
		Type:        nodeInterface,
		Args: graphql.FieldConfigArgument{
			"id": &graphql.ArgumentConfig{
				Type:        graphql.NewNonNull(graphql.ID),
				Description: "The ID of an object",
			},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			if config.IDFetcher == nil {
				return nil, nil
			}
			id, _ := p.Args["id"].(string)
			return config.IDFetcher(p.Context, id, p.Info)
		},
	}

	return &NodeDefinitions{
		NodeInterface: nodeInterface,
		NodeField:     nodeField,
	}
}

// GlobalIDFetcherFn returns the type-local ID of obj.
type GlobalIDFetcherFn func(obj interface{}, info graphql.ResolveInfo, ctx context.Context) (string, error)

// GlobalIDField creates the "id" field of a Node type. The type-local ID returned by idFetcher is
// encoded with the type name into a global ID.
func GlobalIDField(typeName string, idFetcher GlobalIDFetcherFn) *graphql.Field {
	return &graphql.Field{
		Name:        "id",
		Description: "The ID of the object.",
		Type:        graphql.NewNonNull(graphql.ID),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			id, err := idFetcher(p.Source, p.Info, p.Context)
			if err != nil {
				return nil, err
			}
			return ToGlobalID(typeName, id), nil
		},
	}
}
