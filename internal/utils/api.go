package utils

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"scorecard.bizops.dev/internal/kpi"
)

func invalidField(key string) string {
	return fmt.Sprintf("Invalid field value for field %q.", key)
}

// ParseFloatParam retrieves a float64 value from the provided URL query parameters.
// If the key is not present or the value is invalid, it returns 0 and updates the fieldErrors map.
func ParseFloatParam(params url.Values, key string, fieldErrors map[string][]string) (float64, map[string][]string) {
	if fieldErrors == nil {
		fieldErrors = make(map[string][]string)
	}

	val := params.Get(key)
	if val == "" {
		return 0, fieldErrors
	}

	f, err := strconv.ParseFloat(val, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		fieldErrors[key] = append(fieldErrors[key], invalidField(key))
	}
	return f, fieldErrors
}

// RequiredParam returns the trimmed value of key, recording a field error
// when it is missing or not a valid name.
func RequiredParam(params url.Values, key string, fieldErrors map[string][]string) string {
	val := strings.TrimSpace(params.Get(key))
	if err := ValidateName(key, val); err != nil {
		fieldErrors[key] = append(fieldErrors[key], err.Error())
	}
	return val
}

// OptionalParam is RequiredParam for parameters that may be left out.
func OptionalParam(params url.Values, key string, fieldErrors map[string][]string) string {
	val := strings.TrimSpace(params.Get(key))
	if val == "" {
		return ""
	}
	if err := ValidateName(key, val); err != nil {
		fieldErrors[key] = append(fieldErrors[key], err.Error())
	}
	return val
}

// ParseMonthParam reads a month label ("Mar", "March" or "3").
func ParseMonthParam(params url.Values, key string, fieldErrors map[string][]string) kpi.Month {
	val := strings.TrimSpace(params.Get(key))
	if val == "" {
		fieldErrors[key] = append(fieldErrors[key], fmt.Sprintf("%s cannot be empty", key))
		return 0
	}
	m, err := kpi.ParseMonth(val)
	if err != nil {
		fieldErrors[key] = append(fieldErrors[key], invalidField(key))
		return 0
	}
	return m
}

// ParsePerspectiveParam reads a perspective name or one of its aliases.
func ParsePerspectiveParam(params url.Values, key string, fieldErrors map[string][]string) kpi.Perspective {
	val := strings.TrimSpace(params.Get(key))
	if val == "" {
		fieldErrors[key] = append(fieldErrors[key], fmt.Sprintf("%s cannot be empty", key))
		return ""
	}
	p, err := kpi.ParsePerspective(val)
	if err != nil {
		fieldErrors[key] = append(fieldErrors[key], invalidField(key))
		return ""
	}
	return p
}
