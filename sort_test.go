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
	"strings"

	"github.com/botobag/gormgraphql"
	"github.com/botobag/gormgraphql/examples/blog"
	"github.com/graphql-go/graphql"
	"gorm.io/gorm/clause"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("SortEnumFor", func() {
	var reg *gormgraphql.Registry

	BeforeEach(func() {
		reg = gormgraphql.NewRegistry()
	})

	orderBy := func(column string, desc bool) clause.OrderByColumn {
		return clause.OrderByColumn{
			Column: clause.Column{Table: clause.CurrentTable, Name: column},
			Desc:   desc,
		}
	}

	It("creates an enum sorting by every column", func() {
		enum, err := gormgraphql.SortEnumFor(reg, &blog.Pet{}, "", nil)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(enum.Name()).Should(Equal("PetSortEnum"))
		Expect(reg.EnumValueNames(enum.Enum)).Should(Equal([]string{
			"id_asc",
			"id_desc",
			"name_asc",
			"name_desc",
			"pet_kind_asc",
			"pet_kind_desc",
			"hair_kind_asc",
			"hair_kind_desc",
			"reporter_id_asc",
			"reporter_id_desc",
		}))
		Expect(enum.Values[0]).Should(Equal(gormgraphql.SortValue{Name: "id_asc", Order: orderBy("id", false)}))
		Expect(enum.Values[1]).Should(Equal(gormgraphql.SortValue{Name: "id_desc", Order: orderBy("id", true)}))
		Expect(enum.Default).Should(Equal([]clause.OrderByColumn{orderBy("id", false)}))

		Expect(enum.Serialize(orderBy("pet_kind", true))).Should(Equal("pet_kind_desc"))
		Expect(reg.Enums()).Should(ContainElement(enum.Enum))
	})

	It("caches enums by name", func() {
		enum, err := gormgraphql.SortEnumFor(reg, &blog.Pet{}, "", nil)
		Expect(err).ShouldNot(HaveOccurred())
		again, err := gormgraphql.SortEnumFor(reg, (*blog.Pet)(nil), "", nil)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(again).Should(BeIdenticalTo(enum))
	})

	It("accepts custom names", func() {
		enum, err := gormgraphql.SortEnumFor(reg, &blog.Editor{}, "EditorOrder", func(column string, asc bool) string {
			if asc {
				return strings.ToUpper(column) + "_ASCENDING"
			}
			return strings.ToUpper(column) + "_DESCENDING"
		})
		Expect(err).ShouldNot(HaveOccurred())
		Expect(enum.Name()).Should(Equal("EditorOrder"))
		Expect(reg.EnumValueNames(enum.Enum)).Should(Equal([]string{
			"ID_ASCENDING",
			"ID_DESCENDING",
			"NAME_ASCENDING",
			"NAME_DESCENDING",
		}))
	})

	It("rejects values that are not models", func() {
		_, err := gormgraphql.SortEnumFor(reg, "pets", "", nil)
		Expect(gormgraphql.IsErrKind(err, gormgraphql.ErrKindValue)).Should(BeTrue())
	})
})

var _ = Describe("SortArgumentFor", func() {
	It("lists sort enum values with the primary keys as default", func() {
		reg := gormgraphql.NewRegistry()
		enum, err := gormgraphql.SortEnumFor(reg, &blog.Reporter{}, "", nil)
		Expect(err).ShouldNot(HaveOccurred())

		arg, err := gormgraphql.SortArgumentFor(reg, &blog.Reporter{}, true)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(arg.Type).Should(Equal(graphql.NewList(enum.Enum)))
		Expect(arg.DefaultValue).Should(Equal([]interface{}{enum.Default[0]}))

		arg, err = gormgraphql.SortArgumentFor(reg, &blog.Reporter{}, false)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(arg.DefaultValue).Should(BeNil())
	})
})
