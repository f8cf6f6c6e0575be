// Package validate coerces raw path, query, and body inputs into typed
// values, reporting failures as structured field-level complaints.
package validate

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/vyrodovalexey/items-service/internal/model"
)

// Kind classifies where in the request a validation failure occurred.
type Kind string

// Validation failure kinds. All of them map to a 422 response.
const (
	KindPathParameter  Kind = "invalid_path_parameter"
	KindQueryParameter Kind = "invalid_query_parameter"
	KindBody           Kind = "invalid_body"
)

// MaxQueryLength is the maximum length of the q query parameter, in runes.
const MaxQueryLength = 50

// Error is a structured validation failure enumerating every offending
// field, not just the first one the checks encountered.
type Error struct {
	Kind   Kind
	Fields []model.FieldError
}

// Error implements the error interface.
func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return fmt.Sprintf("%s: %s", e.Kind, strings.Join(parts, "; "))
}

// ItemID parses the item_id path parameter as a base-10 integer.
func ItemID(raw string) (int, *Error) {
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &Error{
			Kind: KindPathParameter,
			Fields: []model.FieldError{
				{Field: "item_id", Message: "value is not a valid integer"},
			},
		}
	}
	return id, nil
}

// Query extracts the optional q parameter. Returns nil when q is absent;
// when present its length must not exceed MaxQueryLength runes.
func Query(values url.Values) (*string, *Error) {
	vals, ok := values["q"]
	if !ok || len(vals) == 0 {
		return nil, nil
	}

	q := vals[0]
	if utf8.RuneCountInString(q) > MaxQueryLength {
		return nil, &Error{
			Kind: KindQueryParameter,
			Fields: []model.FieldError{
				{Field: "q", Message: fmt.Sprintf("ensure this value has at most %d characters", MaxQueryLength)},
			},
		}
	}

	return &q, nil
}

// itemPayload mirrors model.Item with every field optional so that a missing
// required field is distinguishable from a zero value.
type itemPayload struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Tax         *float64 `json:"tax"`
}

// Item decodes a create/replace body and checks that the required name and
// price fields are present. All missing required fields are reported
// together. Unknown fields are ignored, matching replace semantics where
// only the declared schema is read.
func Item(r io.Reader) (model.Item, *Error) {
	var payload itemPayload
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return model.Item{}, bodyError(err)
	}

	var fields []model.FieldError
	if payload.Name == nil {
		fields = append(fields, model.FieldError{Field: "name", Message: "field required"})
	}
	if payload.Price == nil {
		fields = append(fields, model.FieldError{Field: "price", Message: "field required"})
	}
	if len(fields) > 0 {
		return model.Item{}, &Error{Kind: KindBody, Fields: fields}
	}

	return model.Item{
		Name:        *payload.Name,
		Description: payload.Description,
		Price:       *payload.Price,
		Tax:         payload.Tax,
	}, nil
}

// ItemUpdate decodes a patch body. Every field is optional; unknown or
// mistyped fields are rejected.
func ItemUpdate(r io.Reader) (model.ItemUpdate, *Error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var update model.ItemUpdate
	if err := dec.Decode(&update); err != nil {
		return model.ItemUpdate{}, bodyError(err)
	}

	return update, nil
}

// bodyError translates a JSON decoding failure into a body validation error,
// naming the offending field where the decoder reports one.
func bodyError(err error) *Error {
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return &Error{
			Kind: KindBody,
			Fields: []model.FieldError{
				{Field: field, Message: fmt.Sprintf("invalid type, expected %s", typeErr.Type)},
			},
		}
	case errors.Is(err, io.EOF):
		return &Error{
			Kind: KindBody,
			Fields: []model.FieldError{
				{Field: "body", Message: "request body required"},
			},
		}
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		field := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
		return &Error{
			Kind: KindBody,
			Fields: []model.FieldError{
				{Field: field, Message: "unknown field"},
			},
		}
	default:
		return &Error{
			Kind: KindBody,
			Fields: []model.FieldError{
				{Field: "body", Message: "malformed JSON"},
			},
		}
	}
}

// FormFields checks that every named form field is present and non-empty,
// reporting all missing fields together.
func FormFields(form url.Values, names ...string) *Error {
	var fields []model.FieldError
	for _, name := range names {
		if form.Get(name) == "" {
			fields = append(fields, model.FieldError{Field: name, Message: "field required"})
		}
	}
	if len(fields) > 0 {
		return &Error{Kind: KindBody, Fields: fields}
	}
	return nil
}
