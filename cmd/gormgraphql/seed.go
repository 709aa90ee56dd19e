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
	"github.com/botobag/gormgraphql/examples/blog"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newSeedCommand(a *app) *cobra.Command {
	var migrateOnly bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the blog tables and fill them with sample data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.openDB()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if err := blog.Migrate(ctx, db); err != nil {
				return err
			}
			a.logger.Info("tables migrated")

			if migrateOnly {
				return nil
			}
			if err := blog.Seed(ctx, db); err != nil {
				return err
			}
			a.logger.Info("sample data created", zap.Int("models", len(blog.Models())))
			return nil
		},
	}

	cmd.Flags().BoolVar(&migrateOnly, "migrate-only", false, "only create the tables")
	return cmd
}
