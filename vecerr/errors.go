package vecerr

import (
	"fmt"
	"strings"

	"github.com/samber/oops"
)

// Code is the machine-readable identifier for an error.
type Code string

const (
	CodeDimensionMismatch Code = "space.build.dimension_mismatch"
	CodeDegenerateVector  Code = "space.normalize.degenerate_vector"
	CodeEmptySpace        Code = "space.build.empty"
	CodeNotReady          Code = "space.state.not_ready"

	CodeNotFound         Code = "projection.token.not_found"
	CodeDegenerateAxis   Code = "projection.axis.degenerate"
	CodeArgumentMismatch Code = "projection.arguments.mismatch"
	CodeEmptyGroup       Code = "projection.group.empty"
	CodeIndexOutOfRange  Code = "projection.component.out_of_range"
	CodeInvalidArgument  Code = "query.argument.invalid"

	CodeParseInvalid    Code = "load.parse.invalid_format"
	CodeLoadReadFailure Code = "load.read.failure"

	CodeStoreDatabaseFailure Code = "store.database.failure"
	CodeStoreNotFound        Code = "store.dataset.not_found"

	CodeConfigInvalid   Code = "config.validate.invalid_value"
	CodeCLIInputInvalid Code = "cli.input.invalid"
)

// Attr is a structured key/value context attached to an error.
type Attr struct {
	Key   string
	Value any
}

// Field creates a structured error field.
func Field(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

func FieldName(value string) Attr {
	return Field("name", value)
}

func FieldIndex(value int) Attr {
	return Field("index", value)
}

func FieldDim(value int) Attr {
	return Field("dim", value)
}

func New(code Code, msg string, fields ...Attr) error {
	return oops.Code(code).With(flatten(fields)...).New(msg)
}

func Errorf(code Code, format string, args ...any) error {
	return oops.Code(code).Errorf(format, args...)
}

func Wrap(err error, code Code, msg string, fields ...Attr) error {
	if err == nil {
		return nil
	}
	return oops.Code(code).With(flatten(fields)...).Wrapf(err, "%s", msg)
}

// CodeOf returns the Code carried by err, or "" for foreign errors.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return ""
	}
	if code, ok := oopsErr.Code().(Code); ok {
		return code
	}
	if code, ok := oopsErr.Code().(string); ok {
		return Code(code)
	}
	return Code(fmt.Sprintf("%v", oopsErr.Code()))
}

// FieldsOf returns the structured fields attached to err.
func FieldsOf(err error) map[string]any {
	if err == nil {
		return nil
	}
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return nil
	}
	return oopsErr.Context()
}

func HasCode(err error, code Code) bool {
	if err == nil {
		return false
	}
	return CodeOf(err) == code
}

func IsNotFound(err error) bool {
	return reason(CodeOf(err)) == "not_found"
}

// IsInvalidInput reports whether err was caused by caller input rather than
// by the data or the environment.
func IsInvalidInput(err error) bool {
	switch CodeOf(err) {
	case CodeArgumentMismatch, CodeEmptyGroup, CodeIndexOutOfRange,
		CodeInvalidArgument, CodeParseInvalid, CodeConfigInvalid, CodeCLIInputInvalid:
		return true
	}
	return false
}

func flatten(fields []Attr) []any {
	pairs := make([]any, 0, len(fields)*2)
	for _, field := range fields {
		if field.Key == "" {
			continue
		}
		pairs = append(pairs, field.Key, field.Value)
	}
	return pairs
}

func reason(code Code) string {
	if code == "" {
		return ""
	}
	raw := string(code)
	idx := strings.LastIndex(raw, ".")
	if idx == -1 || idx == len(raw)-1 {
		return raw
	}
	return raw[idx+1:]
}
