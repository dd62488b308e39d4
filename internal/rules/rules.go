// Package rules implements the declarative validation ruleset evaluated
// against the shared form store. Rules never mutate values; they produce
// issues with a stable code and a display-ready message.
package rules

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Issue codes. Stable identifiers for programmatic handling; Message is
// what gets shown next to the field.
const (
	CodeRequired      = "required"
	CodeInvalidOption = "invalid_option"
	CodeWrongType     = "wrong_type"
)

type Issue struct {
	Field   string
	Code    string
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Field, i.Message)
}

// Rule checks a single field value. present is false when the field is
// absent from the value set entirely, which is distinct from holding nil.
type Rule interface {
	Apply(field string, value any, present bool) *Issue
}

// Required fails on absent fields, nil values and blank strings.
// A nil typed pointer (an unselected file) counts as missing.
type Required struct {
	Message string
}

func (r Required) Apply(field string, value any, present bool) *Issue {
	msg := r.Message
	if msg == "" {
		msg = "This field is required"
	}
	if !present || isNil(value) {
		return &Issue{Field: field, Code: CodeRequired, Message: msg}
	}
	if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
		return &Issue{Field: field, Code: CodeRequired, Message: msg}
	}
	return nil
}

// OneOf fails when a string value is not among the allowed options.
type OneOf struct {
	Options []string
	Message string
}

func (r OneOf) Apply(field string, value any, present bool) *Issue {
	s, ok := value.(string)
	if !ok {
		return &Issue{Field: field, Code: CodeWrongType, Message: "Must be a text value"}
	}
	for _, opt := range r.Options {
		if s == opt {
			return nil
		}
	}
	msg := r.Message
	if msg == "" {
		msg = "Must be one of: " + strings.Join(r.Options, ", ")
	}
	return &Issue{Field: field, Code: CodeInvalidOption, Message: msg}
}

// BoolRequired accepts both true and false; only an absent or non-bool
// value fails.
type BoolRequired struct {
	Message string
}

func (r BoolRequired) Apply(field string, value any, present bool) *Issue {
	msg := r.Message
	if msg == "" {
		msg = "This field must be set"
	}
	if !present {
		return &Issue{Field: field, Code: CodeRequired, Message: msg}
	}
	if _, ok := value.(bool); !ok {
		return &Issue{Field: field, Code: CodeWrongType, Message: msg}
	}
	return nil
}

// Ruleset maps field names to their rules in evaluation order.
type Ruleset map[string][]Rule

// Evaluate runs every field's rules against values and returns all issues,
// one per failing field (first failing rule wins), ordered by field name.
func (rs Ruleset) Evaluate(values map[string]any) []Issue {
	var issues []Issue
	for field, fieldRules := range rs {
		value, present := values[field]
		for _, rule := range fieldRules {
			if issue := rule.Apply(field, value, present); issue != nil {
				issues = append(issues, *issue)
				break
			}
		}
	}
	sort.Slice(issues, func(i, j int) bool { return issues[i].Field < issues[j].Field })
	return issues
}

// Errors returns Evaluate's result keyed by field for display lookup.
func (rs Ruleset) Errors(values map[string]any) map[string]string {
	issues := rs.Evaluate(values)
	if len(issues) == 0 {
		return nil
	}
	out := make(map[string]string, len(issues))
	for _, issue := range issues {
		out[issue.Field] = issue.Message
	}
	return out
}

// isNil also catches typed-nil pointers boxed into an interface value.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Chan, reflect.Func:
		return rv.IsNil()
	}
	return false
}
