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

package gormgraphql_test

import (
	"context"

	"github.com/botobag/gormgraphql"
	"github.com/botobag/gormgraphql/concurrent/future"
	"github.com/botobag/gormgraphql/examples/blog"
	"github.com/botobag/gormgraphql/internal/testutil"
	"github.com/botobag/gormgraphql/relay"
	"github.com/graphql-go/graphql"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("ConnectionResolver", func() {
	var (
		ctx         context.Context
		articleType *gormgraphql.ObjectType
	)

	BeforeEach(func() {
		var err error
		ctx = context.Background()
		reg := gormgraphql.NewRegistry()
		articleType, err = gormgraphql.Define(gormgraphql.Config{
			Model:      &blog.Article{},
			Registry:   reg,
			Interfaces: []*graphql.Interface{reg.NodeInterface()},
		})
		Expect(err).ShouldNot(HaveOccurred())
	})

	resolveConnection := func(resolve graphql.FieldResolveFn, args map[string]interface{}) (*gormgraphql.Connection, error) {
		if args == nil {
			args = map[string]interface{}{}
		}
		result, err := future.BlockOn(ctx, gormgraphql.ConnectionResolver(resolve, articleType, graphql.ResolveParams{
			Context: ctx,
			Args:    args,
		}))
		if err != nil {
			return nil, err
		}
		return result.(*gormgraphql.Connection), nil
	}

	returning := func(value interface{}) graphql.FieldResolveFn {
		return func(p graphql.ResolveParams) (interface{}, error) {
			return value, nil
		}
	}

	It("creates a connection from an empty list", func() {
		conn, err := resolveConnection(returning([]*blog.Article{}), nil)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(conn).ShouldNot(BeNil())
		Expect(conn.Edges).ShouldNot(BeNil())
		Expect(conn.Edges).Should(BeEmpty())
		Expect(conn.TotalCount).Should(BeZero())
		Expect(conn.PageInfo.HasNextPage).Should(BeFalse())
	})

	It("slices lists by connection arguments", func() {
		articles := []*blog.Article{{ID: 1}, {ID: 2}, {ID: 3}}
		conn, err := resolveConnection(returning(articles), map[string]interface{}{
			"first": 2,
		})
		Expect(err).ShouldNot(HaveOccurred())
		Expect(conn.Nodes()).Should(Equal([]interface{}{articles[0], articles[1]}))
		Expect(conn.TotalCount).Should(BeEquivalentTo(3))
		Expect(conn.PageInfo.HasNextPage).Should(BeTrue())
		Expect(conn.Iterable).Should(Equal(articles))

		conn, err = resolveConnection(returning(articles), map[string]interface{}{
			"after": string(relay.OffsetToCursor(1)),
		})
		Expect(err).ShouldNot(HaveOccurred())
		Expect(conn.Nodes()).Should(Equal([]interface{}{articles[2]}))
	})

	It("waits for futures", func() {
		promise := future.NewPromise()
		go func() {
			defer GinkgoRecover()
			Expect(promise.Resolve([]*blog.Article{})).Should(Succeed())
		}()

		conn, err := resolveConnection(returning(promise), nil)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(conn).ShouldNot(BeNil())
		Expect(conn.Edges).Should(BeEmpty())
	})

	It("calls thunks", func() {
		articles := []*blog.Article{{ID: 1}}
		conn, err := resolveConnection(returning(func() (interface{}, error) {
			return articles, nil
		}), nil)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(conn.Nodes()).Should(Equal([]interface{}{articles[0]}))
	})

	It("accepts relay connections", func() {
		relayConn := relay.ConnectionFromSlice([]interface{}{&blog.Article{ID: 1}}, relay.Args{First: -1, Last: -1})
		conn, err := resolveConnection(returning(relayConn), nil)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(conn.Connection).Should(BeIdenticalTo(relayConn))
		Expect(conn.TotalCount).Should(BeEquivalentTo(1))

		same, err := resolveConnection(returning(conn), nil)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(same).Should(BeIdenticalTo(conn))
	})

	It("rejects values that are not iterable", func() {
		_, err := resolveConnection(returning(42), nil)
		Expect(err).Should(testutil.MatchModelError(
			testutil.MessageEqual(`Resolved value from the connection field have to be iterable or instance `+
				`of ArticleConnection. Received "42"`),
			testutil.KindIs(gormgraphql.ErrKindValue),
		))
	})

	It("rejects invalid connection arguments", func() {
		_, err := resolveConnection(returning([]*blog.Article{}), map[string]interface{}{
			"first": -1,
		})
		Expect(err).Should(testutil.MatchModelError(
			testutil.MessageEqual("Invalid connection arguments."),
			testutil.KindIs(gormgraphql.ErrKindValue),
		))
	})

	It("propagates resolver errors", func() {
		_, err := resolveConnection(func(p graphql.ResolveParams) (interface{}, error) {
			return nil, gormgraphql.NewError("boom")
		}, nil)
		Expect(err).Should(MatchError("boom"))
	})

	It("requires a session to list rows of the model", func() {
		_, err := resolveConnection(nil, nil)
		Expect(err).Should(testutil.MatchModelError(
			testutil.KindIs(gormgraphql.ErrKindQuery),
			testutil.OpIs("gormgraphql.GetQuery"),
		))
	})
})

var _ = Describe("NewConnectionField", func() {
	It("adds connection and sort arguments", func() {
		reg := gormgraphql.NewRegistry()
		petType, err := gormgraphql.Define(gormgraphql.Config{
			Model:      &blog.Pet{},
			Registry:   reg,
			Interfaces: []*graphql.Interface{reg.NodeInterface()},
		})
		Expect(err).ShouldNot(HaveOccurred())

		field := gormgraphql.NewConnectionField(petType, nil,
			gormgraphql.WithFieldDescription("All pets"),
			gormgraphql.WithDeprecationReason("Use search"))
		Expect(field.Type).Should(BeIdenticalTo(petType.Connection().ConnectionType))
		Expect(field.Args).Should(HaveKey("first"))
		Expect(field.Args).Should(HaveKey("last"))
		Expect(field.Args).Should(HaveKey("before"))
		Expect(field.Args).Should(HaveKey("after"))
		Expect(field.Args).Should(HaveKey("sort"))
		Expect(field.Description).Should(Equal("All pets"))
		Expect(field.DeprecationReason).Should(Equal("Use search"))

		unsorted := gormgraphql.NewConnectionField(petType, nil, gormgraphql.WithoutSort())
		Expect(unsorted.Args).ShouldNot(HaveKey("sort"))
	})
})
