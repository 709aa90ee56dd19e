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

	"github.com/botobag/gormgraphql/dataloader"
	"gorm.io/gorm"
)

// A Session carries the per-request state used by resolvers of generated types.
type Session struct {
	// DB is the gorm session queries of the request run on.
	DB *gorm.DB

	// Loaders holds the data loaders batching relationship loads of the request.
	Loaders *dataloader.Manager
}

type sessionKey struct{}

// NewContext returns a copy of ctx carrying a new Session over db. Use it as the Context of
// graphql.Params for each request.
func NewContext(ctx context.Context, db *gorm.DB) context.Context {
	return context.WithValue(ctx, sessionKey{}, &Session{
		DB:      db,
		Loaders: dataloader.NewManager(),
	})
}

// SessionFrom returns the Session stored in ctx by NewContext, or nil.
func SessionFrom(ctx context.Context) *Session {
	if ctx == nil {
		return nil
	}
	session, _ := ctx.Value(sessionKey{}).(*Session)
	return session
}

// Queryable is implemented by models that build their own query, e.g. to apply a default scope.
type Queryable interface {
	GormQuery(ctx context.Context) *gorm.DB
}

// GetQuery returns the query that lists rows of model. A model implementing Queryable supplies the
// query; otherwise the query is built from the session in ctx.
func GetQuery(ctx context.Context, model interface{}) (*gorm.DB, error) {
	if queryable, ok := model.(Queryable); ok {
		if query := queryable.GormQuery(ctx); query != nil {
			return query, nil
		}
	}

	session := SessionFrom(ctx)
	if session == nil || session.DB == nil {
		return nil, NewError("A query in the model or a session in the context is required for querying.",
			Op("gormgraphql.GetQuery"), ErrKindQuery)
	}

	return session.DB.WithContext(ctx).Model(model), nil
}
