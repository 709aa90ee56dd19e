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
	"errors"
	"fmt"
	"log"
	"runtime"
	"strings"
	"unsafe"

	jsoniter "github.com/json-iterator/go"
)

// Op describes an operation, usually as the package and method, such as "gormgraphql.Define".
type Op string

// ErrKind defines the kind of error this is.
type ErrKind uint8

// Enumeration of Kind
const (
	ErrKindOther         ErrKind = iota // Unclassified error. This value is not printed in the error message.
	ErrKindValue                        // A value given by the caller is not acceptable, e.g. an unmapped model.
	ErrKindConfiguration                // Type definition options are inconsistent.
	ErrKindConversion                   // A model attribute cannot be converted into a GraphQL field.
	ErrKindDuplicate                    // A GraphQL type name is registered twice.
	ErrKindQuery                        // No query could be built or the query failed.
	ErrKindInternal                     // Internal error
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindOther:
		return "other error"
	case ErrKindValue:
		return "value error"
	case ErrKindConfiguration:
		return "configuration error"
	case ErrKindConversion:
		return "conversion error"
	case ErrKindDuplicate:
		return "duplicate error"
	case ErrKindQuery:
		return "query error"
	case ErrKindInternal:
		return "internal error"
	}
	return "unknown error kind"
}

// ErrUnmappedModel can be returned by an Inspector to report a value that is not a mapped model.
// Define turns it into an ErrKindValue error.
var ErrUnmappedModel = errors.New("model is not mapped")

// An Error describes a failure to build or resolve a type generated from a gorm model. It includes
// Op and ErrKind which will show when printing the error value.
type Error struct {
	// Message describes the error for debugging purposes.
	Message string

	// The underlying error that triggered this one
	Err error

	// Op is the operation being performed, usually the name of the method being invoked.
	Op Op

	// Kind is the class of error
	Kind ErrKind
}

var _ error = (*Error)(nil)

// NewError builds an error value from arguments. Arguments may be an error (the cause), an Op and
// an ErrKind, in any order. The kind is inherited from an underlying *Error if not given.
func NewError(message string, args ...interface{}) error {
	e := &Error{
		Message: message,
	}

	for _, arg := range args {
		switch arg := arg.(type) {
		case error:
			e.Err = arg
		case Op:
			e.Op = arg
		case ErrKind:
			e.Kind = arg
		default:
			_, file, line, _ := runtime.Caller(1)
			log.Printf("NewError: bad call from %s:%d: %v", file, line, args)
			return fmt.Errorf("unknown type %T, value %v in error call", arg, arg)
		}
	}

	if e.Kind == ErrKindOther {
		if prev, ok := e.Err.(*Error); ok {
			e.Kind = prev.Kind
		}
	}

	return e
}

// WrapError is a convenient wrapper to build an Error value from an underlying error with a
// message.
func WrapError(err error, message string) error {
	return NewError(message, err)
}

// WrapErrorf is similar to WrapError but with the format specifier.
func WrapErrorf(err error, format string, args ...interface{}) error {
	return NewError(fmt.Sprintf(format, args...), err)
}

// IsErrKind returns true if err or one of the errors it wraps is an *Error of the given kind.
func IsErrKind(err error, kind ErrKind) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Kind == kind {
			return true
		}
		err = e.Err
	}
	return false
}

// Unwrap returns the underlying error for errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// Error implements Go's error interface.
func (e *Error) Error() string {
	var b strings.Builder
	e.printError(&b, nil)
	return b.String()
}

func (e *Error) printError(b *strings.Builder, nextErr *Error) {
	initialLen := b.Len()

	// pad appends str to the buffer if the buffer already has some data.
	pad := func(str string) {
		if b.Len() == initialLen {
			return
		}
		b.WriteString(str)
	}

	if len(e.Op) > 0 {
		b.WriteString(string(e.Op))
	}

	if len(e.Message) > 0 {
		pad(": ")
		b.WriteString(e.Message)
	}

	if e.Kind != ErrKindOther {
		// Don't repeat the kind of the error we wrap.
		if nextErr == nil || nextErr.Kind != e.Kind {
			pad(": ")
			b.WriteString(e.Kind.String())
		}
	}

	if e.Err != nil {
		if prev, ok := e.Err.(*Error); ok {
			pad(":\n  ")
			prev.printError(b, e)
		} else {
			pad(": ")
			b.WriteString(e.Err.Error())
		}
	}
}

// MarshalJSON implements json.Marshaler.
func (e *Error) MarshalJSON() ([]byte, error) {
	return jsoniter.Marshal(e)
}

// errorMarshaller implements jsoniter.ValEncoder to encode Error to JSON.
type errorMarshaller struct{}

var _ jsoniter.ValEncoder = errorMarshaller{}

// IsEmpty implements jsoniter.ValEncoder.
func (errorMarshaller) IsEmpty(ptr unsafe.Pointer) bool {
	return (*Error)(ptr) == nil
}

// Encode implements jsoniter.ValEncoder.
func (errorMarshaller) Encode(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	err := (*Error)(ptr)
	stream.WriteObjectStart()

	stream.WriteObjectField("message")
	stream.WriteString(err.Message)

	if err.Kind != ErrKindOther {
		stream.WriteMore()
		stream.WriteObjectField("kind")
		stream.WriteString(err.Kind.String())
	}

	if len(err.Op) > 0 {
		stream.WriteMore()
		stream.WriteObjectField("op")
		stream.WriteString(string(err.Op))
	}

	if err.Err != nil {
		stream.WriteMore()
		stream.WriteObjectField("cause")
		if cause, ok := err.Err.(*Error); ok {
			errorMarshaller{}.Encode(unsafe.Pointer(cause), stream)
		} else {
			stream.WriteString(err.Err.Error())
		}
	}

	stream.WriteObjectEnd()
}

func init() {
	jsoniter.RegisterTypeEncoder("gormgraphql.Error", errorMarshaller{})
}
