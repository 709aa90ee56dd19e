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

// Package util contains string helpers shared by the type mapper: case conversion between gorm
// column names and GraphQL field names, and "did you mean" suggestions for misspelled names.
package util

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// SnakeCase converts an identifier such as a Go struct field name into snake case. For example,
// it returns "favorite_article" for "FavoriteArticle" and "user_id" for "UserID".
//
// An upper-case rune starts a new word when it follows a lower-case rune or digit, or when it is
// the last upper-case rune of an acronym that is followed by a lower-case rune ("HTTPServer" ->
// "http_server").
func SnakeCase(s string) string {
	if len(s) == 0 {
		return s
	}

	runes := []rune(s)
	n := len(runes)

	var b strings.Builder
	b.Grow(len(s) + 4)

	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 {
			prev := runes[i-1]
			if prev != '_' {
				nextIsLower := i+1 < n && unicode.IsLower(runes[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextIsLower) {
					b.WriteByte('_')
				}
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

// CamelCase converts a snake-cased name into upper camel case. Underscores are dropped and the rune
// following them is upper-cased. For example, it returns "ArticleConnection" for
// "article_connection".
func CamelCase(s string) string {
	var (
		b     strings.Builder
		upper = true
	)
	b.Grow(len(s))

	for _, r := range s {
		if r == '_' {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}

	return b.String()
}

// LowerCamelCase converts a snake-cased column name into the name of a GraphQL field. The first
// word is kept as is and the following ones are capitalized ("first_name" -> "firstName"). Leading
// underscores are preserved and an empty word in the middle keeps its underscore.
func LowerCamelCase(s string) string {
	trimmed := strings.TrimLeft(s, "_")
	prefix := s[:len(s)-len(trimmed)]

	words := strings.Split(trimmed, "_")
	if len(words) == 1 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	b.WriteString(prefix)
	b.WriteString(words[0])

	for _, word := range words[1:] {
		if len(word) == 0 {
			b.WriteByte('_')
			continue
		}
		r, size := utf8.DecodeRuneInString(word)
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(word[size:])
	}

	return b.String()
}
