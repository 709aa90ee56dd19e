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
	"github.com/botobag/gormgraphql/internal/testutil"
	"github.com/graphql-go/graphql"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("PrintSchema", func() {
	var printed string

	BeforeEach(func() {
		reg := gormgraphql.NewRegistry()

		petType, err := gormgraphql.Define(gormgraphql.Config{
			Model:      &blog.Pet{},
			Registry:   reg,
			Interfaces: []*graphql.Interface{reg.NodeInterface()},
		})
		Expect(err).ShouldNot(HaveOccurred())

		editorType, err := gormgraphql.Define(gormgraphql.Config{
			Description: "Editor of the blog",
			Model:       &blog.Editor{},
			Registry:    reg,
			Fields: []*gormgraphql.Field{
				{
					Name:              "nickname",
					Type:              graphql.String,
					Description:       "Short name\nused in mentions",
					DeprecationReason: "Use name",
				},
			},
		})
		Expect(err).ShouldNot(HaveOccurred())

		query := graphql.NewObject(graphql.ObjectConfig{
			Name: "Query",
			Fields: graphql.Fields{
				"node":    reg.NodeField(),
				"allPets": gormgraphql.NewConnectionField(petType, nil),
				"allEditors": &graphql.Field{
					Type: graphql.NewList(graphql.NewNonNull(editorType.Object())),
				},
			},
		})

		schema, err := gormgraphql.NewSchema(reg, query)
		Expect(err).ShouldNot(HaveOccurred())
		printed = gormgraphql.PrintSchema(schema, reg)
	})

	It("prints generated types in field order", func() {
		Expect(printed).Should(ContainSubstring(testutil.Dedent(`
			type Pet implements Node {
			  "The ID of the object."
			  id: ID!
			  name: String
			  petKind: PetKind!
			  hairKind: HairKind!
			  reporterId: Int
			}
		`)))

		Expect(printed).Should(ContainSubstring(testutil.Dedent(`
			"Editor of the blog"
			type Editor {
			  id: ID
			  name: String
			  """
			  Short name
			  used in mentions
			  """
			  nickname: String @deprecated(reason: "Use name")
			}
		`)))
	})

	It("prints enum values in declaration order", func() {
		Expect(printed).Should(ContainSubstring(testutil.Dedent(`
			enum HairKind {
			  long
			  short
			}
		`)))

		Expect(printed).Should(ContainSubstring(testutil.Dedent(`
			enum PetSortEnum {
			  id_asc
			  id_desc
			  name_asc
			  name_desc
			  pet_kind_asc
			  pet_kind_desc
			  hair_kind_asc
			  hair_kind_desc
			  reporter_id_asc
			  reporter_id_desc
			}
		`)))
	})

	It("prints arguments with default values", func() {
		Expect(printed).Should(ContainSubstring(
			"  allPets(after: String, before: String, first: Int, last: Int, sort: [PetSortEnum] = [id_asc]): " +
				"PetConnection\n"))
		Expect(printed).Should(ContainSubstring("  allEditors: [Editor!]\n"))
	})

	It("sorts types by name", func() {
		Expect(printed).ShouldNot(HavePrefix("schema"))
		Expect(printed).Should(HaveSuffix("}\n"))
		Expect(printed).ShouldNot(ContainSubstring("__Schema"))
		Expect(printed).ShouldNot(ContainSubstring("scalar String"))

		var order []int
		for _, def := range []string{
			"type Editor",
			"enum HairKind",
			"interface Node",
			"type PageInfo",
			"type Pet ",
			"type PetConnection",
			"type PetEdge",
			"enum PetKind",
			"enum PetSortEnum",
			"type Query",
		} {
			index := strings.Index(printed, def)
			Expect(index).Should(BeNumerically(">=", 0), def)
			order = append(order, index)
		}
		for i := 1; i < len(order); i++ {
			Expect(order[i]).Should(BeNumerically(">", order[i-1]))
		}
	})
})
