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

	"github.com/botobag/gormgraphql"
	"github.com/botobag/gormgraphql/examples/blog"
	"github.com/glebarez/sqlite"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openDB opens the configured database.
func (a *app) openDB() (*gorm.DB, error) {
	var (
		driver = a.config.GetString(keyDriver)
		dsn    = a.config.GetString(keyDSN)
	)

	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		dialector = sqlite.Open(dsn)

	case "postgres":
		connConfig, err := pgx.ParseConfig(dsn)
		if err != nil {
			return nil, fmt.Errorf("invalid postgres DSN: %w", err)
		}
		dialector = postgres.New(postgres.Config{
			Conn: stdlib.OpenDB(*connConfig),
		})

	default:
		return nil, fmt.Errorf(`unknown database driver "%s"`, driver)
	}

	logLevel := logger.Silent
	if a.logger.Core().Enabled(zap.DebugLevel) {
		logLevel = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}

	a.logger.Debug("database opened", zap.String("driver", driver))
	return db, nil
}

// newSchema generates the blog schema. Models are inspected with db's naming strategy when a
// database is given.
func (a *app) newSchema(db *gorm.DB) (*blog.Schema, error) {
	opts := []gormgraphql.RegistryOption{
		gormgraphql.WithLogger(a.logger),
		gormgraphql.WithBatching(a.config.GetBool(keyBatching)),
	}
	if db != nil {
		opts = append(opts, gormgraphql.WithInspector(gormgraphql.InspectorFromDB(db)))
	}
	return blog.NewSchema(gormgraphql.NewRegistry(opts...))
}
