// Package bind decodes HTTP request bodies into input structs.
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/shashiranjanraj/helmet-store/config"
)

// ErrEmptyBody is returned when the request carries no JSON document.
var ErrEmptyBody = errors.New("request body is required")

// DecodeError describes a body that is not an acceptable JSON document for
// the target struct: malformed, too large, a wrongly typed field, or a field
// the struct does not declare.
type DecodeError struct {
	// Field is the offending JSON key, when one can be named.
	Field string
	Msg   string
	Err   error
}

func (e *DecodeError) Error() string { return e.Msg }

func (e *DecodeError) Unwrap() error { return e.Err }

// JSON strictly decodes r.Body into dest. Unknown keys and trailing data are
// rejected; the body is capped at MAX_BODY_BYTES.
func JSON(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	if r.Body == nil {
		return &DecodeError{Msg: ErrEmptyBody.Error(), Err: ErrEmptyBody}
	}
	r.Body = http.MaxBytesReader(w, r.Body, config.MaxBodyBytes())

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		return translate(err)
	}
	if dec.More() {
		return &DecodeError{Msg: "request body must contain a single JSON object"}
	}
	if _, err := dec.Token(); err != io.EOF {
		return &DecodeError{Msg: "request body must contain a single JSON object"}
	}
	return nil
}

func translate(err error) error {
	var (
		maxErr    *http.MaxBytesError
		typeErr   *json.UnmarshalTypeError
		syntaxErr *json.SyntaxError
	)

	switch {
	case errors.Is(err, io.EOF):
		return &DecodeError{Msg: ErrEmptyBody.Error(), Err: ErrEmptyBody}
	case errors.As(err, &maxErr):
		return &DecodeError{Msg: fmt.Sprintf("request body too large (max %d bytes)", maxErr.Limit), Err: err}
	case errors.As(err, &typeErr) && typeErr.Field == "":
		return &DecodeError{Msg: "request body must be a JSON object", Err: err}
	case errors.As(err, &typeErr):
		return &DecodeError{
			Field: typeErr.Field,
			Msg:   fmt.Sprintf("The %s field must be %s.", typeErr.Field, kindName(typeErr.Type.Kind().String())),
			Err:   err,
		}
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return &DecodeError{Msg: "request body is not valid JSON", Err: err}
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		field := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
		return &DecodeError{Field: field, Msg: fmt.Sprintf("The %s field is not allowed.", field), Err: err}
	default:
		// Errors raised by a field's UnmarshalJSON (e.g. a malformed decimal).
		return &DecodeError{Msg: "invalid JSON: " + err.Error(), Err: err}
	}
}

func kindName(kind string) string {
	switch {
	case strings.HasPrefix(kind, "int"), strings.HasPrefix(kind, "uint"):
		return "an integer"
	case strings.HasPrefix(kind, "float"):
		return "a number"
	default:
		return "a " + kind
	}
}
