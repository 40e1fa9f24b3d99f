package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNoJSON means the response held no '{'...'}' span at all.
var ErrNoJSON = errors.New("no JSON object found in response")

// ExtractJSON returns the span from the first '{' to the last '}' of s.
// Models often wrap JSON in markdown fences or prose; both are dropped.
func ExtractJSON(s string) (string, error) {
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start == -1 || end == -1 || end < start {
		return "", ErrNoJSON
	}
	return s[start : end+1], nil
}

// ParseJSON cleans and unmarshals a model response into a type T.
func ParseJSON[T any](response string) (T, error) {
	var zero T

	jsonStr, err := ExtractJSON(response)
	if err != nil {
		return zero, err
	}

	var result T
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return zero, fmt.Errorf("failed to unmarshal JSON: %w\nData: %s", err, jsonStr)
	}

	return result, nil
}
