package stats

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"strings"
	"time"
)

// ErrInvalidUpdate is the parent of every validation failure.
var ErrInvalidUpdate = errors.New("stats: invalid update")

// ValidationError carries the message returned to API clients.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrInvalidUpdate }

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Update is a validated partial change. Nil Donation and missing
// categories leave the current values in place.
type Update struct {
	Donation          *int64
	BenefitCategories map[Category]int64
}

// Empty reports whether the update changes no value. Applying an empty
// update still refreshes last_updated.
func (u Update) Empty() bool {
	return u.Donation == nil && len(u.BenefitCategories) == 0
}

// ApplyTo returns a copy of s with the update applied and LastUpdated set to at.
func (u Update) ApplyTo(s Stats, at time.Time) Stats {
	out := s.Clone()
	if out.BenefitCategories == nil {
		out.BenefitCategories = make(map[Category]int64, len(u.BenefitCategories))
	}
	if u.Donation != nil {
		out.Donation = *u.Donation
	}
	maps.Copy(out.BenefitCategories, u.BenefitCategories)
	out.LastUpdated = at.UTC()
	return out
}

// ParseUpdate decodes and validates a JSON update body.
//
// Rules, checked in this order: the body must hold data (not empty, null,
// false, 0, "" or an empty object or array); it must be an object;
// donation must be null or a non-negative integer; benefit_categories must
// be null or an object whose keys are known categories and whose values are
// null or non-negative integers. Keys are checked in document order and the
// first failure is returned.
func ParseUpdate(body []byte) (Update, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return Update{}, invalid("", "No data provided")
	}

	var raw any
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return Update{}, invalid("", "Invalid JSON body")
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Update{}, invalid("", "Invalid JSON body")
	}

	if !truthy(raw) {
		return Update{}, invalid("", "No data provided")
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return Update{}, invalid("", "Request body must be a JSON object")
	}

	var u Update

	if v, present := obj["donation"]; present {
		n, err := nonNegative(v, "donation")
		if err != nil {
			return Update{}, err
		}
		u.Donation = n
	}

	if v, present := obj["benefit_categories"]; present && v != nil {
		cats, ok := v.(map[string]any)
		if !ok {
			return Update{}, invalid("benefit_categories", "benefit_categories must be a dictionary")
		}

		keys, err := objectKeys(trimmed, "benefit_categories")
		if err != nil {
			return Update{}, invalid("", "Invalid JSON body")
		}

		for _, key := range keys {
			cat := Category(key)
			if !cat.Valid() {
				return Update{}, invalid(key, "Unknown benefit category: %s", key)
			}
			n, err := nonNegative(cats[key], key)
			if err != nil {
				return Update{}, err
			}
			if n != nil {
				if u.BenefitCategories == nil {
					u.BenefitCategories = make(map[Category]int64)
				}
				u.BenefitCategories[cat] = *n
			}
		}
	}

	return u, nil
}

func nonNegative(v any, field string) (*int64, error) {
	if v == nil {
		return nil, nil
	}
	num, ok := v.(json.Number)
	if !ok || strings.ContainsAny(num.String(), ".eE") {
		return nil, invalid(field, "Invalid value for %s: must be a positive integer", field)
	}
	n, err := num.Int64()
	if err != nil || n < 0 {
		return nil, invalid(field, "Invalid value for %s: must be a positive integer", field)
	}
	return &n, nil
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case json.Number:
		f, err := t.Float64()
		return err != nil || f != 0
	case map[string]any:
		return len(t) > 0
	case []any:
		return len(t) > 0
	}
	return true
}

// objectKeys returns the keys of the top-level member field, in document
// order. Decoding into a map loses that order.
func objectKeys(body []byte, field string) ([]string, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(body, &top); err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(top[field]))
	if _, err := dec.Token(); err != nil { // {
		return nil, err
	}

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := tok.(string)
		keys = append(keys, key)

		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
	}
	return keys, nil
}
