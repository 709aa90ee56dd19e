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

package main

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/botobag/gormgraphql/relay"
	jsoniter "github.com/json-iterator/go"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("gormgraphql", func() {
	var dir string

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "gormgraphql")
		Expect(err).ShouldNot(HaveOccurred())
	})

	AfterEach(func() {
		Expect(os.RemoveAll(dir)).Should(Succeed())
	})

	run := func(args ...string) (string, error) {
		var out bytes.Buffer
		cmd := newRootCommand()
		cmd.SetOut(&out)
		cmd.SetArgs(append(args,
			"--env_file", "",
			"--log_level", "error",
			"--dsn", "file:"+filepath.Join(dir, "blog.db")))
		err := cmd.Execute()
		return out.String(), err
	}

	It("prints the schema", func() {
		out, err := run("schema")
		Expect(err).ShouldNot(HaveOccurred())
		Expect(out).Should(ContainSubstring("type Reporter implements Node {"))
		Expect(out).Should(ContainSubstring("enum PetKind {"))
	})

	It("seeds the database and runs requests", func() {
		_, err := run("seed")
		Expect(err).ShouldNot(HaveOccurred())

		out, err := run("query", `query ($id: ID!) { node(id: $id) { ... on Reporter { firstName } } }`,
			"--variables", `{"id": "`+relay.ToGlobalID("Reporter", "2")+`"}`)
		Expect(err).ShouldNot(HaveOccurred())

		var result map[string]interface{}
		Expect(jsoniter.UnmarshalFromString(out, &result)).Should(Succeed())
		Expect(result).Should(HaveKeyWithValue("data", map[string]interface{}{
			"node": map[string]interface{}{"firstName": "ABO"},
		}))
	})

	It("rejects unknown drivers", func() {
		_, err := run("seed", "--driver", "oracle")
		Expect(err).Should(MatchError(`unknown database driver "oracle"`))
	})

	It("requires a request", func() {
		_, err := run("query")
		Expect(err).Should(MatchError(ContainSubstring("a request is required")))
	})
})
