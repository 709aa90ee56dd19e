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

package relay_test

import (
	"context"
	"math"

	"github.com/botobag/gormgraphql/relay"
	"github.com/graphql-go/graphql"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

type user struct {
	ID   string
	Name string
}

var _ = Describe("Global IDs", func() {
	It("round trips type name and local ID", func() {
		globalID := relay.ToGlobalID("Reporter", "42")
		Expect(globalID).Should(Equal("UmVwb3J0ZXI6NDI="))

		resolved, err := relay.FromGlobalID(globalID)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(resolved).Should(Equal(&relay.ResolvedGlobalID{Type: "Reporter", ID: "42"}))
	})

	It("rejects malformed global IDs", func() {
		_, err := relay.FromGlobalID("not base64!")
		Expect(err).Should(HaveOccurred())

		_, err = relay.FromGlobalID(relay.ToGlobalID("", "1"))
		Expect(err).Should(HaveOccurred())
	})
})

var _ = Describe("Node definitions", func() {
	var schema graphql.Schema

	BeforeEach(func() {
		users := map[string]*user{
			"1": {ID: "1", Name: "John Doe"},
		}

		var userType *graphql.Object
		nodeDefinitions := relay.NewNodeDefinitions(relay.NodeDefinitionsConfig{
			IDFetcher: func(ctx context.Context, globalID string, info graphql.ResolveInfo) (interface{}, error) {
				resolved, err := relay.FromGlobalID(globalID)
				if err != nil {
					return nil, err
				}
				return users[resolved.ID], nil
			},
			TypeResolve: func(p graphql.ResolveTypeParams) *graphql.Object {
				return userType
			},
		})

		userType = graphql.NewObject(graphql.ObjectConfig{
			Name: "User",
			Fields: graphql.Fields{
				"id": relay.GlobalIDField("User", func(obj interface{}, info graphql.ResolveInfo, ctx context.Context) (string, error) {
					return obj.(*user).ID, nil
				}),
				"name": &graphql.Field{Type: graphql.String},
			},
			Interfaces: []*graphql.Interface{nodeDefinitions.NodeInterface},
		})

		var err error
		schema, err = graphql.NewSchema(graphql.SchemaConfig{
			Query: graphql.NewObject(graphql.ObjectConfig{
				Name: "Query",
				Fields: graphql.Fields{
					"node": nodeDefinitions.NodeField,
				},
			}),
			Types: []graphql.Type{userType},
		})
		Expect(err).ShouldNot(HaveOccurred())
	})

	It("fetches objects by global ID", func() {
		result := graphql.Do(graphql.Params{
			Schema:        schema,
			RequestString: `{ node(id: "VXNlcjox") { id ... on User { name } } }`,
		})
		Expect(result.Errors).Should(BeEmpty())
		Expect(result.Data).Should(Equal(map[string]interface{}{
			"node": map[string]interface{}{
				"id":   "VXNlcjox",
				"name": "John Doe",
			},
		}))
	})
})

var _ = Describe("Connections", func() {
	letters := []interface{}{"A", "B", "C", "D", "E"}

	It("returns all elements without arguments", func() {
		conn := relay.ConnectionFromSlice(letters, relay.Args{First: -1, Last: -1})
		Expect(conn.Nodes()).Should(Equal(letters))
		Expect(conn.Edges[0].Cursor).Should(Equal(relay.OffsetToCursor(0)))
		Expect(conn.PageInfo).Should(Equal(relay.PageInfo{
			StartCursor: relay.OffsetToCursor(0),
			EndCursor:   relay.OffsetToCursor(4),
		}))
	})

	It("respects first and after", func() {
		conn := relay.ConnectionFromSlice(letters, relay.Args{
			First: 2,
			Last:  -1,
			After: relay.OffsetToCursor(1),
		})
		Expect(conn.Nodes()).Should(Equal([]interface{}{"C", "D"}))
		Expect(conn.PageInfo.HasNextPage).Should(BeTrue())
		Expect(conn.PageInfo.HasPreviousPage).Should(BeFalse())
	})

	It("respects last and before", func() {
		conn := relay.ConnectionFromSlice(letters, relay.Args{
			First:  -1,
			Last:   2,
			Before: relay.OffsetToCursor(4),
		})
		Expect(conn.Nodes()).Should(Equal([]interface{}{"C", "D"}))
		Expect(conn.PageInfo.HasPreviousPage).Should(BeTrue())
		Expect(conn.PageInfo.HasNextPage).Should(BeFalse())
	})

	It("builds a non-nil empty connection from an empty list", func() {
		conn := relay.ConnectionFromSlice([]interface{}{}, relay.Args{First: 10, Last: -1})
		Expect(conn).ShouldNot(BeNil())
		Expect(conn.Edges).ShouldNot(BeNil())
		Expect(conn.Edges).Should(BeEmpty())
		Expect(conn.PageInfo.HasNextPage).Should(BeFalse())
	})

	It("windows a slice that starts in the middle of the list", func() {
		conn := relay.ConnectionFromArraySlice([]interface{}{"C", "D"}, relay.Args{
			First: 2,
			Last:  -1,
			After: relay.OffsetToCursor(1),
		}, relay.ArraySliceMetaInfo{SliceStart: 2, ArrayLength: 5})
		Expect(conn.Nodes()).Should(Equal([]interface{}{"C", "D"}))
		Expect(conn.Edges[0].Cursor).Should(Equal(relay.OffsetToCursor(2)))
		Expect(conn.PageInfo.HasNextPage).Should(BeTrue())
	})

	It("decodes arguments from variables and literals", func() {
		args, err := relay.ArgsFrom(map[string]interface{}{
			"first": float64(3),
			"after": "YXJyYXljb25uZWN0aW9uOjA=",
		})
		Expect(err).ShouldNot(HaveOccurred())
		Expect(args).Should(Equal(relay.Args{
			First: 3,
			Last:  -1,
			After: relay.OffsetToCursor(0),
		}))

		_, err = relay.ArgsFrom(map[string]interface{}{"last": -1})
		Expect(err).Should(HaveOccurred())
	})

	It("round trips cursors", func() {
		Expect(relay.CursorToOffset(relay.OffsetToCursor(7))).Should(Equal(7))
		_, err := relay.CursorToOffset("garbage")
		Expect(err).Should(HaveOccurred())
		Expect(relay.GetOffsetWithDefault("", 3)).Should(Equal(3))
	})

	It("computes windows for limit/offset queries", func() {
		window := relay.ComputeWindow(relay.Args{First: 2, Last: -1, After: relay.OffsetToCursor(0)}, 10)
		Expect(window).Should(Equal(relay.Window{Start: 1, End: 3}))
		Expect(window.Limit()).Should(Equal(2))
	})

	It("returns nothing after a cursor beyond the largest offset", func() {
		args := relay.Args{First: 2, Last: -1, After: relay.OffsetToCursor(math.MaxInt)}

		conn := relay.ConnectionFromSlice(letters, args)
		Expect(conn.Edges).Should(BeEmpty())
		Expect(conn.PageInfo.HasNextPage).Should(BeFalse())
		Expect(conn.PageInfo.HasPreviousPage).Should(BeFalse())

		Expect(relay.ComputeWindow(args, 10)).Should(Equal(relay.Window{Start: 10, End: 10}))
	})
})
