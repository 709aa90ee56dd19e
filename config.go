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

package gormgraphql

import (
	"fmt"
	"maps"

	"dario.cat/mergo"
	"github.com/graphql-go/graphql"
)

// Config configures Define.
type Config struct {
	// Name of the object type; defaults to the name of the model struct
	Name string

	Description string

	// Model is the gorm model the type is generated from, given as a value or pointer of the model
	// struct (a typed nil pointer works).
	Model interface{}

	// Registry resolves relationships to the types of related models and receives the new type.
	Registry *Registry

	// OnlyFields restricts the model fields to the named ones. Names may be given as the GraphQL
	// field name, the column name or the Go field name. Cannot be combined with ExcludeFields.
	OnlyFields []string

	// ExcludeFields leaves out the named model fields.
	ExcludeFields []string

	// Interfaces implemented by the type. Including the Node interface of the registry replaces the
	// "id" field with a global ID and enables fetching the type by ID.
	Interfaces []*graphql.Interface

	// Fields declared explicitly. A field named after a model field replaces it in place; others are
	// added after the model fields. Unset Type and Resolve are taken from the replaced model field.
	Fields []*Field

	// UseConnection creates the connection type even when the type does not implement Node.
	UseConnection bool

	// Name of the global ID field of Node types; defaults to "id"
	IDField string

	// Custom values kept in Options.Custom
	Custom map[string]interface{}

	// Meta is the options record Define fills in. Custom option records embed Options and may
	// preset fields that are placed before the model fields.
	Meta OptionsHolder
}

//===----------------------------------------------------------------------------------------====//
// Abstract Types
//===----------------------------------------------------------------------------------------====//

// AbstractConfig configures Abstract.
type AbstractConfig struct {
	// Configuration shared by the types defined from the abstract type. It must not set Model.
	Config

	// NewOptions creates the options record of each type defined from the abstract type unless the
	// type brings its own in Config.Meta.
	NewOptions func(config *Config) (OptionsHolder, error)
}

// An AbstractType has no model and defines no GraphQL type of its own. It carries configuration
// completed by the concrete types defined from it.
type AbstractType struct {
	config AbstractConfig
}

// Abstract creates an abstract type.
func Abstract(config AbstractConfig) (*AbstractType, error) {
	const op Op = "gormgraphql.Abstract"

	if config.Model != nil {
		return nil, NewError(fmt.Sprintf(`Abstract type "%s" cannot have a model. Received "%v".`,
			config.Name, config.Model), op, ErrKindConfiguration)
	}
	if config.Meta != nil {
		return nil, NewError(fmt.Sprintf(`Abstract type "%s" cannot have an options record; `+
			`create one per type with NewOptions.`, config.Name), op, ErrKindConfiguration)
	}

	return &AbstractType{config}, nil
}

// Name returns the name given to the abstract type.
func (a *AbstractType) Name() string {
	return a.config.Name
}

// merge fills zero values of config with the configuration of a.
func (a *AbstractType) merge(config *Config) error {
	base := a.config.Config
	// Names and descriptions belong to the concrete type.
	base.Name = ""
	base.Description = ""
	// mergo writes into maps in place.
	base.Custom = maps.Clone(base.Custom)
	config.Custom = maps.Clone(config.Custom)
	return mergo.Merge(config, base, mergo.WithoutDereference)
}

// Define defines a concrete type from a. Values set in config win over the ones of a.
func (a *AbstractType) Define(config Config) (*ObjectType, error) {
	const op Op = "gormgraphql.AbstractType.Define"

	if err := a.merge(&config); err != nil {
		return nil, NewError("Unable to merge configuration of the abstract type.", op,
			ErrKindConfiguration, err)
	}

	if config.Meta == nil && a.config.NewOptions != nil {
		meta, err := a.config.NewOptions(&config)
		if err != nil {
			return nil, err
		}
		config.Meta = meta
	}

	return Define(config)
}

// Extend creates an abstract type from a with more configuration. Values in config win over the
// ones of a; NewOptions of a is kept unless config has one.
func (a *AbstractType) Extend(config AbstractConfig) (*AbstractType, error) {
	const op Op = "gormgraphql.AbstractType.Extend"

	if err := a.merge(&config.Config); err != nil {
		return nil, NewError("Unable to merge configuration of the abstract type.", op,
			ErrKindConfiguration, err)
	}
	if config.NewOptions == nil {
		config.NewOptions = a.config.NewOptions
	}

	return Abstract(config)
}
