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
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"
	jsoniter "github.com/json-iterator/go"
)

// JSONString is the scalar of columns serialized as JSON objects. Values are exchanged as JSON text.
var JSONString = graphql.NewScalar(graphql.ScalarConfig{
	Name: "JSONString",
	Description: "The `JSONString` scalar type represents JSON values as specified by " +
		"[ECMA-404](http://www.ecma-international.org/publications/files/ECMA-ST/ECMA-404.pdf).",
	Serialize:  serializeJSONString,
	ParseValue: parseJSONString,
	ParseLiteral: func(valueAST ast.Value) interface{} {
		if valueAST, ok := valueAST.(*ast.StringValue); ok {
			return parseJSONString(valueAST.Value)
		}
		return nil
	},
})

func serializeJSONString(value interface{}) interface{} {
	if value == nil {
		return nil
	}
	s, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalToString(value)
	if err != nil {
		return nil
	}
	return s
}

func parseJSONString(value interface{}) interface{} {
	var text string
	switch value := value.(type) {
	case string:
		text = value
	case *string:
		if value == nil {
			return nil
		}
		text = *value
	default:
		return nil
	}

	var result interface{}
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.UnmarshalFromString(text, &result); err != nil {
		return nil
	}
	return result
}
