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
	"fmt"
	"io"
	"os"

	"github.com/botobag/gormgraphql"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newQueryCommand(a *app) *cobra.Command {
	var (
		file      string
		variables string
	)

	cmd := &cobra.Command{
		Use:   "query [request]",
		Short: "Run a GraphQL request against the blog database and print the result as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			request, err := readRequest(cmd, args, file)
			if err != nil {
				return err
			}

			var vars map[string]interface{}
			if len(variables) > 0 {
				if err := jsoniter.UnmarshalFromString(variables, &vars); err != nil {
					return fmt.Errorf("invalid variables: %w", err)
				}
			}

			db, err := a.openDB()
			if err != nil {
				return err
			}
			s, err := a.newSchema(db)
			if err != nil {
				return err
			}

			result := gormgraphql.Execute(cmd.Context(), s.Schema, db, request, vars)
			if result.HasErrors() {
				a.logger.Warn("request completed with errors", zap.Int("errors", len(result.Errors)))
			}

			output, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(output))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", `read the request from a file ("-" for stdin)`)
	cmd.Flags().StringVar(&variables, "variables", "", "variables of the request as a JSON object")
	return cmd
}

func readRequest(cmd *cobra.Command, args []string, file string) (string, error) {
	switch {
	case len(args) > 0:
		return args[0], nil

	case file == "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		return string(data), err

	case len(file) > 0:
		data, err := os.ReadFile(file)
		return string(data), err
	}
	return "", fmt.Errorf("a request is required, either as argument or with --file")
}
