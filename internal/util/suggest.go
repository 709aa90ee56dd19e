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

package util

import (
	"sort"
	"strings"
)

// SuggestionList returns the options that are close enough to input to be a plausible typo of it,
// most similar first.
func SuggestionList(input string, options []string) []string {
	type candidate struct {
		option   string
		distance int
	}

	var (
		candidates     []candidate
		inputThreshold = len(input) / 2
	)

	for _, option := range options {
		threshold := inputThreshold
		if t := len(option) / 2; t > threshold {
			threshold = t
		}
		if threshold < 1 {
			threshold = 1
		}

		if d := lexicalDistance(input, option); d <= threshold {
			candidates = append(candidates, candidate{option, d})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].distance < candidates[j].distance
	})

	result := make([]string, len(candidates))
	for i, c := range candidates {
		result[i] = c.option
	}
	return result
}

// lexicalDistance computes the optimal string alignment distance between a and b: the number of
// insertions, deletions, substitutions and adjacent transpositions needed to turn one into the
// other. A pure case change counts as a single edit.
func lexicalDistance(a, b string) int {
	if a == b {
		return 0
	}

	a, b = strings.ToLower(a), strings.ToLower(b)
	if a == b {
		return 1
	}

	// Rolling rows: prevPrev is row i-2, prev is row i-1, cur is row i.
	var (
		prevPrev = make([]int, len(b)+1)
		prev     = make([]int, len(b)+1)
		cur      = make([]int, len(b)+1)
	)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}

			d := min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
			if i > 1 && j > 1 && a[i-1] == b[j-2] && a[i-2] == b[j-1] {
				d = min(d, prevPrev[j-2]+cost)
			}
			cur[j] = d
		}
		prevPrev, prev, cur = prev, cur, prevPrev
	}

	return prev[len(b)]
}

// OrList joins items into an English alternative such as `A, B, or C`. When quoted is true, each
// item is wrapped in double quotes. A positive limit truncates the list to its first limit items.
func OrList(items []string, limit int, quoted bool) string {
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			if len(items) > 2 {
				b.WriteString(", ")
			} else {
				b.WriteByte(' ')
			}
			if i == len(items)-1 {
				b.WriteString("or ")
			}
		}

		if quoted {
			b.WriteByte('"')
			b.WriteString(item)
			b.WriteByte('"')
		} else {
			b.WriteString(item)
		}
	}
	return b.String()
}

// DidYouMean formats a hint naming up to five options similar to input, e.g.
// ` Did you mean "firstName" or "lastName"?`. It returns an empty string when nothing is similar.
func DidYouMean(input string, options []string) string {
	suggestions := SuggestionList(input, options)
	if len(suggestions) == 0 {
		return ""
	}
	return " Did you mean " + OrList(suggestions, 5, true) + "?"
}
