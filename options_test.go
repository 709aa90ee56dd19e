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
	"github.com/botobag/gormgraphql"
	"github.com/graphql-go/graphql"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("FieldMap", func() {
	It("keeps fields in insertion order", func() {
		fields := gormgraphql.NewFieldMap(
			&gormgraphql.Field{Name: "b", Type: graphql.String},
			&gormgraphql.Field{Name: "a", Type: graphql.String},
		)
		fields.Set(&gormgraphql.Field{Name: "c", Type: graphql.Int})
		Expect(fields.Names()).Should(Equal([]string{"b", "a", "c"}))
		Expect(fields.Len()).Should(Equal(3))
	})

	It("replaces fields in place", func() {
		fields := gormgraphql.NewFieldMap(
			&gormgraphql.Field{Name: "a", Type: graphql.String},
			&gormgraphql.Field{Name: "b", Type: graphql.String},
		)
		fields.Set(&gormgraphql.Field{Name: "a", Type: graphql.Int})
		Expect(fields.Names()).Should(Equal([]string{"a", "b"}))

		a, exists := fields.Get("a")
		Expect(exists).Should(BeTrue())
		Expect(a.Type).Should(BeIdenticalTo(graphql.Int))
	})

	It("deletes fields", func() {
		fields := gormgraphql.NewFieldMap(
			&gormgraphql.Field{Name: "a", Type: graphql.String},
			&gormgraphql.Field{Name: "b", Type: graphql.String},
			&gormgraphql.Field{Name: "c", Type: graphql.String},
		)
		fields.Delete("b")
		fields.Delete("missing")
		Expect(fields.Names()).Should(Equal([]string{"a", "c"}))
		_, exists := fields.Get("b")
		Expect(exists).Should(BeFalse())
	})

	It("clones into a writable map", func() {
		fields := gormgraphql.NewFieldMap(&gormgraphql.Field{Name: "a", Type: graphql.String})
		fields.Freeze()
		Expect(func() { fields.Delete("a") }).Should(Panic())

		clone := fields.Clone()
		Expect(clone.Frozen()).Should(BeFalse())
		clone.Set(&gormgraphql.Field{Name: "b", Type: graphql.String})
		Expect(clone.Names()).Should(Equal([]string{"a", "b"}))
		Expect(fields.Names()).Should(Equal([]string{"a"}))
	})

	It("reads as empty when nil", func() {
		var fields *gormgraphql.FieldMap
		Expect(fields.Len()).Should(BeZero())
		Expect(fields.Names()).Should(BeEmpty())
		Expect(fields.Fields()).Should(BeEmpty())
		_, exists := fields.Get("a")
		Expect(exists).Should(BeFalse())
		Expect(fields.Clone().Len()).Should(BeZero())
	})
})

var _ = Describe("Field", func() {
	It("computes dynamic fields when resolved", func() {
		calls := 0
		field := &gormgraphql.Field{
			Name: "dynamic",
			Dynamic: func() *gormgraphql.Field {
				calls++
				return &gormgraphql.Field{Name: "dynamic", Type: graphql.String}
			},
		}
		Expect(field.Resolved().Type).Should(BeIdenticalTo(graphql.String))
		Expect(calls).Should(Equal(1))

		omitted := &gormgraphql.Field{
			Name: "omitted",
			Dynamic: func() *gormgraphql.Field {
				return nil
			},
		}
		Expect(omitted.Resolved()).Should(BeNil())
	})

	It("converts into graphql-go fields", func() {
		field := &gormgraphql.Field{
			Name:              "name",
			Type:              graphql.String,
			Description:       "Name",
			DeprecationReason: "Use title",
		}
		converted := field.GraphQLField()
		Expect(converted.Name).Should(Equal("name"))
		Expect(converted.Type).Should(BeIdenticalTo(graphql.String))
		Expect(converted.Description).Should(Equal("Name"))
		Expect(converted.DeprecationReason).Should(Equal("Use title"))
	})
})
