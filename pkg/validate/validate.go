// Package validate provides struct-tag validation for request inputs.
//
// Supported rules (comma-separated in the `validate` tag):
//
//	required            pointer must be non-nil; strings must be non-blank;
//	                    non-pointer numbers must be non-zero
//	nullable            if empty, skip all remaining rules for this field
//	numeric             any number
//	integer             whole number
//	min=N               string: min char length | number: min value
//	max=N               string: max char length | number: max value
//	gt=N, gte=N         number > N, number >= N
//	lt=N, lte=N         number < N, number <= N
//	in=a|b|c            value must be one of the listed items
//
// Pointer fields are dereferenced before rules run, so an optional JSON
// field can tell "absent" (nil) from "zero" (pointer to 0):
//
//	type EditInput struct {
//	    Price *decimal.Decimal `json:"price" validate:"required,numeric,gte=0"`
//	    Stock *int64           `json:"stock" validate:"required,integer,gte=0"`
//	}
package validate

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Struct validates all exported fields of v that carry a `validate` tag.
// Returns a map of fieldName → error message; empty map means no errors.
func Struct(v interface{}) map[string]string {
	errs := make(map[string]string)
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return errs
	}
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		tag := field.Tag.Get("validate")
		if tag == "" || !field.IsExported() {
			continue
		}

		name := jsonFieldName(field)
		rules := strings.Split(tag, ",")
		value := rv.Field(i)

		if hasRule(rules, "nullable") && isEmpty(value) {
			continue
		}

		for _, rule := range rules {
			rule = strings.TrimSpace(rule)
			if rule == "" || rule == "nullable" {
				continue
			}
			if msg := applyRule(rule, name, value); msg != "" {
				errs[name] = msg
				break // first failing rule per field
			}
		}
	}

	return errs
}

// HasErrors returns true when the errs map is non-empty.
func HasErrors(errs map[string]string) bool { return len(errs) > 0 }

// Summary joins field errors into one sentence, sorted by field name.
func Summary(errs map[string]string) string {
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, errs[k])
	}
	return strings.Join(msgs, " ")
}

func applyRule(rule, field string, v reflect.Value) string {
	key, param, _ := strings.Cut(rule, "=")

	if key == "required" {
		if isEmpty(v) {
			return fmt.Sprintf("The %s field is required.", field)
		}
		return ""
	}

	v = deref(v)
	if !v.IsValid() {
		// Absent optional field: only "required" applies.
		return ""
	}

	switch key {
	case "numeric":
		if _, ok := toFloat(v); !ok {
			return fmt.Sprintf("The %s field must be a number.", field)
		}
	case "integer":
		f, ok := toFloat(v)
		if !ok || f != float64(int64(f)) {
			return fmt.Sprintf("The %s field must be an integer.", field)
		}
	case "min", "max":
		n := mustParseFloat(param)
		if f, ok := toFloat(v); ok {
			if key == "min" && f < n {
				return fmt.Sprintf("The %s must be at least %s.", field, param)
			}
			if key == "max" && f > n {
				return fmt.Sprintf("The %s must not be greater than %s.", field, param)
			}
			return ""
		}
		l := float64(len([]rune(fmt.Sprint(v.Interface()))))
		if key == "min" && l < n {
			return fmt.Sprintf("The %s must be at least %s characters.", field, param)
		}
		if key == "max" && l > n {
			return fmt.Sprintf("The %s must not exceed %s characters.", field, param)
		}
	case "gt", "gte", "lt", "lte":
		n := mustParseFloat(param)
		f, ok := toFloat(v)
		if !ok {
			return fmt.Sprintf("The %s field must be a number.", field)
		}
		switch {
		case key == "gt" && f <= n:
			return fmt.Sprintf("The %s must be greater than %s.", field, param)
		case key == "gte" && f < n:
			return fmt.Sprintf("The %s must be greater than or equal to %s.", field, param)
		case key == "lt" && f >= n:
			return fmt.Sprintf("The %s must be less than %s.", field, param)
		case key == "lte" && f > n:
			return fmt.Sprintf("The %s must be less than or equal to %s.", field, param)
		}
	case "in":
		raw := fmt.Sprint(v.Interface())
		for _, a := range strings.Split(param, "|") {
			if raw == strings.TrimSpace(a) {
				return ""
			}
		}
		return fmt.Sprintf("The selected %s is invalid.", field)
	}

	return ""
}

// floater is satisfied by decimal types (shopspring/decimal).
type floater interface {
	InexactFloat64() float64
}

func deref(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func isEmpty(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			return true
		}
		// A present pointer is only empty when it points at a blank string.
		if e := deref(v); e.Kind() == reflect.String {
			return strings.TrimSpace(e.String()) == ""
		}
		return false
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Slice, reflect.Map, reflect.Array:
		return v.Len() == 0
	case reflect.Bool:
		return false
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	}
	return false
}

func toFloat(v reflect.Value) (float64, bool) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), true
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	case reflect.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.String()), 64)
		return f, err == nil
	}
	if v.CanInterface() {
		if f, ok := v.Interface().(floater); ok {
			return f.InexactFloat64(), true
		}
	}
	return 0, false
}

func mustParseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}

func jsonFieldName(f reflect.StructField) string {
	name := f.Tag.Get("json")
	if name == "" || name == "-" {
		return strings.ToLower(f.Name)
	}
	if idx := strings.Index(name, ","); idx != -1 {
		name = name[:idx]
	}
	return name
}

func hasRule(rules []string, target string) bool {
	for _, r := range rules {
		if strings.TrimSpace(r) == target {
			return true
		}
	}
	return false
}
