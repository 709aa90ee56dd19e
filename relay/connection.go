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

package relay

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/graphql-go/graphql"
	"github.com/spf13/cast"
)

// ConnectionCursor is an opaque pagination cursor.
type ConnectionCursor string

// PageInfo describes the window of a connection.
type PageInfo struct {
	StartCursor     ConnectionCursor `json:"startCursor"`
	EndCursor       ConnectionCursor `json:"endCursor"`
	HasPreviousPage bool             `json:"hasPreviousPage"`
	HasNextPage     bool             `json:"hasNextPage"`
}

// Edge is one node of a connection with its cursor.
type Edge struct {
	Node   interface{}      `json:"node"`
	Cursor ConnectionCursor `json:"cursor"`
}

// Connection is a window into a list of nodes.
type Connection struct {
	Edges    []*Edge  `json:"edges"`
	PageInfo PageInfo `json:"pageInfo"`
}

// NewConnection creates an empty connection. Its Edges is a non-nil empty list.
func NewConnection() *Connection {
	return &Connection{
		Edges: []*Edge{},
	}
}

// Nodes returns the node of every edge in order.
func (c *Connection) Nodes() []interface{} {
	nodes := make([]interface{}, len(c.Edges))
	for i, edge := range c.Edges {
		nodes[i] = edge.Node
	}
	return nodes
}

//===----------------------------------------------------------------------------------------====//
// Arguments
//===----------------------------------------------------------------------------------------====//

// ConnectionArgs are the arguments accepted by connection fields.
var ConnectionArgs = graphql.FieldConfigArgument{
	"before": &graphql.ArgumentConfig{
		Type: graphql.String,
	},
	"after": &graphql.ArgumentConfig{
		Type: graphql.String,
	},
	"first": &graphql.ArgumentConfig{
		Type: graphql.Int,
	},
	"last": &graphql.ArgumentConfig{
		Type: graphql.Int,
	},
}

// NewConnectionArgs returns a copy of ConnectionArgs extended with extra arguments.
func NewConnectionArgs(extra graphql.FieldConfigArgument) graphql.FieldConfigArgument {
	args := graphql.FieldConfigArgument{}
	for name, arg := range ConnectionArgs {
		args[name] = arg
	}
	for name, arg := range extra {
		args[name] = arg
	}
	return args
}

// ArraySliceMetaInfo tells ConnectionFromArraySlice where the given slice sits in the full list.
type ArraySliceMetaInfo struct {
	SliceStart  int
	ArrayLength int
}

// Args is the decoded form of the connection arguments. First and Last are -1 when absent.
type Args struct {
	Before ConnectionCursor
	After  ConnectionCursor
	First  int
	Last   int
}

// ArgsFrom decodes connection arguments from the resolver argument map. Numbers are coerced with
// cast so values from variables (float64) and literals (int) are both accepted.
func ArgsFrom(args map[string]interface{}) (Args, error) {
	result := Args{
		First: -1,
		Last:  -1,
	}

	if v, ok := args["before"]; ok && v != nil {
		result.Before = ConnectionCursor(cast.ToString(v))
	}
	if v, ok := args["after"]; ok && v != nil {
		result.After = ConnectionCursor(cast.ToString(v))
	}
	if v, ok := args["first"]; ok && v != nil {
		first, err := cast.ToIntE(v)
		if err != nil {
			return result, fmt.Errorf(`argument "first": %s`, err)
		}
		if first < 0 {
			return result, fmt.Errorf(`argument "first" must be a non-negative integer`)
		}
		result.First = first
	}
	if v, ok := args["last"]; ok && v != nil {
		last, err := cast.ToIntE(v)
		if err != nil {
			return result, fmt.Errorf(`argument "last": %s`, err)
		}
		if last < 0 {
			return result, fmt.Errorf(`argument "last" must be a non-negative integer`)
		}
		result.Last = last
	}

	return result, nil
}

//===----------------------------------------------------------------------------------------====//
// Cursors
//===----------------------------------------------------------------------------------------====//

const arrayConnectionPrefix = "arrayconnection:"

// OffsetToCursor creates the cursor of the element at offset.
func OffsetToCursor(offset int) ConnectionCursor {
	return ConnectionCursor(base64.StdEncoding.EncodeToString(
		[]byte(arrayConnectionPrefix + strconv.Itoa(offset))))
}

// CursorToOffset decodes a cursor created by OffsetToCursor.
func CursorToOffset(cursor ConnectionCursor) (int, error) {
	decoded, err := base64.StdEncoding.DecodeString(string(cursor))
	if err != nil {
		return 0, fmt.Errorf(`invalid cursor "%s"`, cursor)
	}
	offset, err := strconv.Atoi(strings.TrimPrefix(string(decoded), arrayConnectionPrefix))
	if err != nil || !strings.HasPrefix(string(decoded), arrayConnectionPrefix) {
		return 0, fmt.Errorf(`invalid cursor "%s"`, cursor)
	}
	return offset, nil
}

// GetOffsetWithDefault decodes cursor, returning defaultOffset when the cursor is empty or invalid.
func GetOffsetWithDefault(cursor ConnectionCursor, defaultOffset int) int {
	if cursor == "" {
		return defaultOffset
	}
	offset, err := CursorToOffset(cursor)
	if err != nil {
		return defaultOffset
	}
	return offset
}

//===----------------------------------------------------------------------------------------====//
// Windowing
//===----------------------------------------------------------------------------------------====//

// Window is the [Start, End) range of a full list selected by connection arguments.
type Window struct {
	Start int
	End   int
}

// Limit returns the number of elements in the window.
func (w Window) Limit() int {
	return w.End - w.Start
}

// ComputeWindow applies args to a list of arrayLength elements.
func ComputeWindow(args Args, arrayLength int) Window {
	start := 0
	end := arrayLength

	if args.After != "" {
		if after := GetOffsetWithDefault(args.After, -1); after >= arrayLength {
			start = arrayLength
		} else if after+1 > start {
			start = after + 1
		}
	}
	if args.Before != "" {
		if before := GetOffsetWithDefault(args.Before, end); before < end {
			end = before
		}
	}
	if start > arrayLength {
		start = arrayLength
	}
	if end < start {
		end = start
	}

	if args.First >= 0 && end-start > args.First {
		end = start + args.First
	}
	if args.Last >= 0 && end-start > args.Last {
		start = end - args.Last
	}

	return Window{Start: start, End: end}
}

// ConnectionFromArraySlice builds a connection from slice, which holds the elements of a longer
// list starting at meta.SliceStart. Elements outside the window selected by args are dropped.
func ConnectionFromArraySlice(slice []interface{}, args Args, meta ArraySliceMetaInfo) *Connection {
	sliceEnd := meta.SliceStart + len(slice)
	window := ComputeWindow(args, meta.ArrayLength)

	start := window.Start
	if start < meta.SliceStart {
		start = meta.SliceStart
	}
	end := window.End
	if end > sliceEnd {
		end = sliceEnd
	}

	conn := NewConnection()
	for i := start; i < end; i++ {
		conn.Edges = append(conn.Edges, &Edge{
			Node:   slice[i-meta.SliceStart],
			Cursor: OffsetToCursor(i),
		})
	}

	if len(conn.Edges) > 0 {
		conn.PageInfo.StartCursor = conn.Edges[0].Cursor
		conn.PageInfo.EndCursor = conn.Edges[len(conn.Edges)-1].Cursor
	}

	lowerBound := 0
	if args.After != "" {
		lowerBound = min(GetOffsetWithDefault(args.After, -1), meta.ArrayLength) + 1
	}
	upperBound := meta.ArrayLength
	if args.Before != "" {
		upperBound = GetOffsetWithDefault(args.Before, upperBound)
	}
	conn.PageInfo.HasPreviousPage = args.Last >= 0 && start > lowerBound
	conn.PageInfo.HasNextPage = args.First >= 0 && end < upperBound

	return conn
}

// ConnectionFromSlice builds a connection from the full list.
func ConnectionFromSlice(data []interface{}, args Args) *Connection {
	return ConnectionFromArraySlice(data, args, ArraySliceMetaInfo{
		SliceStart:  0,
		ArrayLength: len(data),
	})
}

//===----------------------------------------------------------------------------------------====//
// Types
//===----------------------------------------------------------------------------------------====//

// PageInfoType is the GraphQL type of PageInfo shared by all connections.
var PageInfoType = graphql.NewObject(graphql.ObjectConfig{
	Name:        "PageInfo",
	Description: "Information about pagination in a connection.",
	Fields: graphql.Fields{
		"hasNextPage": &graphql.Field{
			Type:        graphql.NewNonNull(graphql.Boolean),
			Description: "When paginating forwards, are there more items?",
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return pageInfoOf(p.Source).HasNextPage, nil
			},
		},
		"hasPreviousPage": &graphql.Field{
			Type:        graphql.NewNonNull(graphql.Boolean),
			Description: "When paginating backwards, are there more items?",
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return pageInfoOf(p.Source).HasPreviousPage, nil
			},
		},
		"startCursor": &graphql.Field{
			Type:        graphql.String,
			Description: "When paginating backwards, the cursor to continue.",
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return cursorValue(pageInfoOf(p.Source).StartCursor), nil
			},
		},
		"endCursor": &graphql.Field{
			Type:        graphql.String,
			Description: "When paginating forwards, the cursor to continue.",
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return cursorValue(pageInfoOf(p.Source).EndCursor), nil
			},
		},
	},
})

func pageInfoOf(source interface{}) PageInfo {
	switch info := source.(type) {
	case PageInfo:
		return info
	case *PageInfo:
		if info != nil {
			return *info
		}
	}
	return PageInfo{}
}

func cursorValue(cursor ConnectionCursor) interface{} {
	if cursor == "" {
		return nil
	}
	return string(cursor)
}

// ConnectionConfig configures NewConnectionDefinitions.
type ConnectionConfig struct {
	// Prefix of the generated type names; defaults to the name of NodeType
	Name string

	NodeType         *graphql.Object
	EdgeFields       graphql.Fields
	ConnectionFields graphql.Fields
}

// ConnectionDefinitions holds the edge and connection types of a node type.
type ConnectionDefinitions struct {
	EdgeType       *graphql.Object
	ConnectionType *graphql.Object
}

// NewConnectionDefinitions creates "<Name>Edge" and "<Name>Connection" for config.NodeType. Source
// values of the connection type are *Connection (or types embedding it through ConnectionHolder).
func NewConnectionDefinitions(config ConnectionConfig) *ConnectionDefinitions {
	name := config.Name
	if name == "" {
		name = config.NodeType.Name()
	}

	edgeFields := graphql.Fields{
		"node": &graphql.Field{
			Type:        config.NodeType,
			Description: "The item at the end of the edge",
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if edge, ok := p.Source.(*Edge); ok {
					return edge.Node, nil
				}
				return nil, nil
			},
		},
		"cursor": &graphql.Field{
			Type:        graphql.NewNonNull(graphql.String),
			Description: "A cursor for use in pagination",
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if edge, ok := p.Source.(*Edge); ok {
					return string(edge.Cursor), nil
				}
				return nil, nil
			},
		},
	}
	for fieldName, field := range config.EdgeFields {
		edgeFields[fieldName] = field
	}

	edgeType := graphql.NewObject(graphql.ObjectConfig{
		Name:        name + "Edge",
		Description: "An edge in a connection",
		Fields:      edgeFields,
	})

	connectionFields := graphql.Fields{
		"pageInfo": &graphql.Field{
			Type:        graphql.NewNonNull(PageInfoType),
			Description: "Information to aid in pagination.",
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if conn := ConnectionOf(p.Source); conn != nil {
					return conn.PageInfo, nil
				}
				return PageInfo{}, nil
			},
		},
		"edges": &graphql.Field{
			Type:        graphql.NewList(edgeType),
			Description: "Information to aid in pagination.",
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if conn := ConnectionOf(p.Source); conn != nil {
					return conn.Edges, nil
				}
				return nil, nil
			},
		},
	}
	for fieldName, field := range config.ConnectionFields {
		connectionFields[fieldName] = field
	}

	connectionType := graphql.NewObject(graphql.ObjectConfig{
		Name:        name + "Connection",
		Description: "A connection to a list of items.",
		Fields:      connectionFields,
	})

	return &ConnectionDefinitions{
		EdgeType:       edgeType,
		ConnectionType: connectionType,
	}
}

// ConnectionHolder is implemented by values that carry a Connection, letting richer connection
// values serve as the source of connection types.
type ConnectionHolder interface {
	RelayConnection() *Connection
}

// RelayConnection implements ConnectionHolder.
func (c *Connection) RelayConnection() *Connection {
	return c
}

// ConnectionOf extracts the Connection from a connection type source value.
func ConnectionOf(source interface{}) *Connection {
	if holder, ok := source.(ConnectionHolder); ok {
		return holder.RelayConnection()
	}
	return nil
}
