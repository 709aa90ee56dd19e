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
	"context"
	"fmt"
	"reflect"

	"github.com/botobag/gormgraphql/concurrent/future"
	"github.com/botobag/gormgraphql/relay"
	"github.com/graphql-go/graphql"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Connection is the value resolved by connection fields of generated types.
type Connection struct {
	*relay.Connection

	// TotalCount is the length of the full list.
	TotalCount int64

	// Iterable is the value the connection was created from: a query, a slice or nil.
	Iterable interface{}
}

//===----------------------------------------------------------------------------------------====//
// Connection Field
//===----------------------------------------------------------------------------------------====//

type connectionFieldConfig struct {
	sort              bool
	description       string
	deprecationReason string
}

// ConnectionFieldOption configures NewConnectionField.
type ConnectionFieldOption func(config *connectionFieldConfig)

// WithoutSort leaves out the "sort" argument.
func WithoutSort() ConnectionFieldOption {
	return func(config *connectionFieldConfig) {
		config.sort = false
	}
}

// WithFieldDescription sets the description of the connection field.
func WithFieldDescription(description string) ConnectionFieldOption {
	return func(config *connectionFieldConfig) {
		config.description = description
	}
}

// WithDeprecationReason marks the connection field deprecated.
func WithDeprecationReason(reason string) ConnectionFieldOption {
	return func(config *connectionFieldConfig) {
		config.deprecationReason = reason
	}
}

// NewConnectionField creates a field listing objects of t with Relay connection arguments and a
// "sort" argument. resolve may be nil to list all rows of the model, or return a *gorm.DB, a slice,
// a connection or a future.Future of one of them.
func NewConnectionField(t *ObjectType, resolve graphql.FieldResolveFn, opts ...ConnectionFieldOption) *graphql.Field {
	config := connectionFieldConfig{
		sort: true,
	}
	for _, opt := range opts {
		opt(&config)
	}

	var args graphql.FieldConfigArgument
	if config.sort {
		sortArg, err := SortArgumentFor(t.options.Registry, t.options.Model, true)
		if err != nil {
			t.options.Registry.logger.Debug("connection field without sort argument",
				zap.String("type", t.Name()), zap.Error(err))
			args = relay.NewConnectionArgs(nil)
		} else {
			args = relay.NewConnectionArgs(graphql.FieldConfigArgument{
				"sort": sortArg,
			})
		}
	} else {
		args = relay.NewConnectionArgs(nil)
	}

	return &graphql.Field{
		Type:              t.Connection().ConnectionType,
		Args:              args,
		Description:       config.description,
		DeprecationReason: config.deprecationReason,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return deferred(p.Context, ConnectionResolver(resolve, t, p)), nil
		},
	}
}

// ConnectionResolver calls resolve and turns its result into a Future of the *Connection for the
// connection arguments in p. The result is always deferred, including for plain values.
func ConnectionResolver(resolve graphql.FieldResolveFn, t *ObjectType, p graphql.ResolveParams) future.Future {
	const op Op = "gormgraphql.ConnectionResolver"

	args, err := relay.ArgsFrom(p.Args)
	if err != nil {
		return future.Err(NewError("Invalid connection arguments.", op, ErrKindValue, err))
	}

	var result interface{}
	if resolve != nil {
		result, err = resolve(p)
		if err != nil {
			return future.Err(err)
		}
	}

	return future.Then(toFuture(result), func(value interface{}) (interface{}, error) {
		return t.resolveConnection(p, args, value)
	})
}

// toFuture converts a resolver result into a Future.
func toFuture(result interface{}) future.Future {
	if thunk, ok := result.(func() (interface{}, error)); ok {
		return future.Lazy(thunk)
	}
	return future.From(result)
}

// resolveConnection builds the connection from the resolved value of a connection field.
func (t *ObjectType) resolveConnection(p graphql.ResolveParams, args relay.Args, value interface{}) (interface{}, error) {
	switch value := value.(type) {
	case nil:
		query, err := t.GetQuery(p.Context)
		if err != nil {
			return nil, err
		}
		return t.connectionFromQuery(p.Context, applySort(query, p.Args["sort"]), args)

	case *gorm.DB:
		return t.connectionFromQuery(p.Context, applySort(value, p.Args["sort"]), args)

	case *Connection:
		return value, nil

	case *relay.Connection:
		return &Connection{
			Connection: value,
			TotalCount: int64(len(value.Edges)),
			Iterable:   value,
		}, nil
	}

	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Slice || v.Kind() == reflect.Array {
		items := make([]interface{}, v.Len())
		for i := range items {
			items[i] = v.Index(i).Interface()
		}
		return &Connection{
			Connection: relay.ConnectionFromSlice(items, args),
			TotalCount: int64(len(items)),
			Iterable:   value,
		}, nil
	}

	return nil, NewError(fmt.Sprintf(`Resolved value from the connection field have to be iterable or `+
		`instance of %s. Received "%v"`, t.Connection().ConnectionType.Name(), value),
		Op("gormgraphql.ConnectionResolver"), ErrKindValue)
}

// connectionFromQuery counts the rows of query and fetches the ones in the window selected by args.
func (t *ObjectType) connectionFromQuery(ctx context.Context, query *gorm.DB, args relay.Args) (*Connection, error) {
	const op Op = "gormgraphql.ConnectionResolver"

	var count int64
	if err := query.Session(&gorm.Session{Context: ctx}).Count(&count).Error; err != nil {
		return nil, NewError(fmt.Sprintf("Failed to count %s.", t.Name()), op, ErrKindQuery, err)
	}

	window := relay.ComputeWindow(args, int(count))

	var items []interface{}
	if window.Limit() > 0 {
		rows := reflect.New(reflect.SliceOf(reflect.PointerTo(t.options.ModelType)))
		err := query.Session(&gorm.Session{Context: ctx}).
			Offset(window.Start).
			Limit(window.Limit()).
			Find(rows.Interface()).Error
		if err != nil {
			return nil, NewError(fmt.Sprintf("Failed to list %s.", t.Name()), op, ErrKindQuery, err)
		}

		items = make([]interface{}, rows.Elem().Len())
		for i := range items {
			items[i] = rows.Elem().Index(i).Interface()
		}
	}

	return &Connection{
		Connection: relay.ConnectionFromArraySlice(items, args, relay.ArraySliceMetaInfo{
			SliceStart:  window.Start,
			ArrayLength: int(count),
		}),
		TotalCount: count,
		Iterable:   query,
	}, nil
}
