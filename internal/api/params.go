package api

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"unicode"

	"seqapi/internal/errors"
)

// countKeys are the parameter names read for the requested count, in order
var countKeys = []string{"n", "count"}

// RequestContext hides which transport carried the count parameter.
type RequestContext interface {
	// RequestedCount returns the validated count or a *errors.SeqError.
	RequestedCount() (int, error)
}

// NewRequestContext reads GET and HEAD parameters from the query string and
// every other method's parameters from a JSON body.
func NewRequestContext(r *http.Request, maxCount int) RequestContext {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return &queryContext{values: r.URL.Query(), maxCount: maxCount}
	}
	return &bodyContext{body: r.Body, maxCount: maxCount}
}

type queryContext struct {
	values   url.Values
	maxCount int
}

func (c *queryContext) RequestedCount() (int, error) {
	for _, key := range countKeys {
		vals, ok := c.values[key]
		if !ok {
			continue
		}
		if len(vals) != 1 {
			// ?n=1&n=2 is a list, not an integer
			return 0, errors.MissingCount(nil)
		}
		return ValidateCount(vals[0], c.maxCount)
	}
	return 0, errors.MissingCount(nil)
}

type bodyContext struct {
	body     io.Reader
	maxCount int
}

func (c *bodyContext) RequestedCount() (int, error) {
	if c.body == nil {
		return 0, errors.MissingCount(nil)
	}

	fields, err := decodeBody(c.body)
	if err != nil {
		return 0, errors.MissingCount(err)
	}

	for _, key := range countKeys {
		// A null value falls through to the next key
		if v, ok := fields[key]; ok && v != nil {
			return ValidateCount(v, c.maxCount)
		}
	}
	return 0, errors.MissingCount(nil)
}

// decodeBody parses a single JSON object, keeping numbers as json.Number.
func decodeBody(body io.Reader) (map[string]interface{}, error) {
	dec := json.NewDecoder(body)
	dec.UseNumber()

	var fields map[string]interface{}
	if err := dec.Decode(&fields); err != nil {
		return nil, err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after JSON object")
	}
	return fields, nil
}

// ValidateCount converts a raw parameter value to a count in [0, maxCount].
// Strings are read like parseInt: leading digits count and trailing text is
// ignored. Numbers must be integral but may be written as floats (10.0).
func ValidateCount(candidate interface{}, maxCount int) (int, error) {
	var value float64

	switch v := candidate.(type) {
	case string:
		n, ok := parseLeadingInt(v)
		if !ok {
			return 0, errors.MissingCount(nil)
		}
		value = n
	case json.Number:
		f, err := strconv.ParseFloat(v.String(), 64)
		if err != nil {
			// Out of float64 range, not finite
			return 0, errors.MissingCount(err)
		}
		value = f
	case float64:
		value = v
	case int:
		value = float64(v)
	case int64:
		value = float64(v)
	default:
		return 0, errors.MissingCount(nil)
	}

	if math.IsNaN(value) || math.IsInf(value, 0) || value != math.Trunc(value) {
		return 0, errors.MissingCount(nil)
	}
	if value < 0 {
		return 0, errors.NegativeCount()
	}
	if value > float64(maxCount) {
		return 0, errors.CountTooLarge(maxCount)
	}
	return int(value), nil
}

// parseLeadingInt parses an optional sign and the leading run of decimal
// digits after any whitespace. Digit runs too long for int64 still yield a
// value of the right sign and magnitude.
func parseLeadingInt(s string) (float64, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0, false
	}

	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
