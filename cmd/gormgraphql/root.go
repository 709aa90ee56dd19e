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
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Configuration keys
const (
	keyDriver   = "driver"
	keyDSN      = "dsn"
	keyLogLevel = "log_level"
	keyBatching = "batching"
	keyEnvFile  = "env_file"
	keyConfig   = "config"
)

// app holds the state shared by the subcommands.
type app struct {
	config *viper.Viper
	logger *zap.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{
		config: viper.New(),
		logger: zap.NewNop(),
	}

	root := &cobra.Command{
		Use:           "gormgraphql",
		Short:         "GraphQL schema generated from gorm models",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	flags := root.PersistentFlags()
	flags.String(keyConfig, "", "config file (yaml, json or toml)")
	flags.String(keyEnvFile, ".env", "file with environment variables to load")
	flags.String(keyDriver, "sqlite", `database driver: "sqlite" or "postgres"`)
	flags.String(keyDSN, "file:blog.db", "data source name of the database")
	flags.String(keyLogLevel, "info", "log level")
	flags.Bool(keyBatching, true, "batch relationship loads of a request")

	for _, key := range []string{keyDriver, keyDSN, keyLogLevel, keyBatching, keyEnvFile} {
		_ = a.config.BindPFlag(key, flags.Lookup(key))
	}

	root.AddCommand(
		newSchemaCommand(a),
		newSeedCommand(a),
		newQueryCommand(a),
	)
	return root
}

// init loads the configuration from the env file, the environment and the config file, and builds
// the logger.
func (a *app) init(cmd *cobra.Command) error {
	envFile := a.config.GetString(keyEnvFile)
	if len(envFile) > 0 {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	}

	a.config.SetEnvPrefix("GORMGRAPHQL")
	a.config.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.config.AutomaticEnv()

	if configFile, _ := cmd.Flags().GetString(keyConfig); len(configFile) > 0 {
		a.config.SetConfigFile(configFile)
		if err := a.config.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	level, err := zap.ParseAtomicLevel(a.config.GetString(keyLogLevel))
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	zapConfig := zap.NewProductionConfig()
	zapConfig.Level = level
	zapConfig.Encoding = "console"
	logger, err := zapConfig.Build()
	if err != nil {
		return err
	}
	a.logger = logger

	a.logger.Debug("configuration loaded",
		zap.String("driver", a.config.GetString(keyDriver)),
		zap.Bool("batching", a.config.GetBool(keyBatching)),
		zap.String("config", a.config.ConfigFileUsed()))
	return nil
}
