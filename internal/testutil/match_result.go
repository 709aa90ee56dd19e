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

package testutil

import (
	"github.com/graphql-go/graphql"

	"github.com/onsi/gomega"
	"github.com/onsi/gomega/gstruct"
	"github.com/onsi/gomega/types"
)

// HaveNoErrors matches a *graphql.Result without errors.
func HaveNoErrors() types.GomegaMatcher {
	return gstruct.PointTo(gstruct.MatchFields(gstruct.IgnoreExtras, gstruct.Fields{
		"Errors": gomega.BeEmpty(),
	}))
}

// ConsistOfResultErrors matches the errors of a *graphql.Result by message. Arguments are strings
// (exact messages) or matchers of the message.
//
//		Expect(result).Should(ConsistOfResultErrors(
//			ContainSubstring("session in the context is required"),
//		))
func ConsistOfResultErrors(messages ...interface{}) types.GomegaMatcher {
	return gomega.WithTransform(func(result *graphql.Result) []string {
		errs := make([]string, len(result.Errors))
		for i, err := range result.Errors {
			errs[i] = err.Message
		}
		return errs
	}, gomega.ConsistOf(messages...))
}
