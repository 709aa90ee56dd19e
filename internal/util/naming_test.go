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

package util_test

import (
	"github.com/botobag/gormgraphql/internal/util"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("SnakeCase", func() {
	It("converts Go field names to column-style names", func() {
		testcases := map[string]string{
			"":                "",
			"a":               "a",
			"A":               "a",
			"ID":              "id",
			"Pets":            "pets",
			"FirstName":       "first_name",
			"FavoriteArticle": "favorite_article",
			"ReporterID":      "reporter_id",
			"HTTPServer":      "http_server",
			"Foo_Bar":         "foo_bar",
			"foo_bar":         "foo_bar",
			"Foo1Bar":         "foo1_bar",
		}

		for s, expected := range testcases {
			Expect(util.SnakeCase(s)).Should(Equal(expected), "%s", s)
		}
	})
})

var _ = Describe("CamelCase", func() {
	It("converts snake case to upper camel case", func() {
		testcases := map[string]string{
			"":            "",
			"a":           "A",
			"article":     "Article",
			"foo_bar":     "FooBar",
			"_foo_bar_":   "FooBar",
			"foo___bar":   "FooBar",
			"foo1_bar2":   "Foo1Bar2",
			"ArticleSort": "ArticleSort",
		}

		for s, expected := range testcases {
			Expect(util.CamelCase(s)).Should(Equal(expected), "%s", s)
		}
	})
})

var _ = Describe("LowerCamelCase", func() {
	It("converts column names to GraphQL field names", func() {
		testcases := map[string]string{
			"":                 "",
			"id":               "id",
			"first_name":       "firstName",
			"favorite_article": "favoriteArticle",
			"pub_date":         "pubDate",
			"_private_field":   "_privateField",
			"foo__bar":         "foo_Bar",
		}

		for s, expected := range testcases {
			Expect(util.LowerCamelCase(s)).Should(Equal(expected), "%s", s)
		}
	})
})
