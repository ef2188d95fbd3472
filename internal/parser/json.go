// Package parser extracts structured data out of raw LLM responses.
package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNoJSON is returned when a response contains neither a fenced ```json
// block nor a balanced top-level object.
var ErrNoJSON = errors.New("no valid JSON object found in response")

// ParseError reports a malformed JSON payload along with the offending raw
// fragment so callers can log what the model actually produced.
type ParseError struct {
	Fragment string
	Err      error
}

func (e *ParseError) Error() string {
	frag := e.Fragment
	if len(frag) > 300 {
		frag = frag[:300] + "..."
	}
	return fmt.Sprintf("parsing LLM JSON: %v (fragment: %s)", e.Err, frag)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ExtractObject locates the JSON object embedded in free-form LLM output.
// It prefers a fenced ```json block; failing that it scans for the first
// balanced top-level {...} span. Brace counting is string-literal aware so
// braces inside JSON strings do not unbalance the scan.
func ExtractObject(text string) (string, error) {
	if body, ok := fencedBlock(text); ok {
		if span, ok := balancedSpan(body); ok {
			return span, nil
		}
	}
	if span, ok := balancedSpan(text); ok {
		return span, nil
	}
	return "", ErrNoJSON
}

// Decode extracts the embedded JSON object and unmarshals it into T.
func Decode[T any](text string) (*T, error) {
	span, err := ExtractObject(text)
	if err != nil {
		return nil, err
	}
	var out T
	if err := json.Unmarshal([]byte(span), &out); err != nil {
		return nil, &ParseError{Fragment: span, Err: err}
	}
	return &out, nil
}

// DecodeMap extracts the embedded JSON object into a generic map.
func DecodeMap(text string) (map[string]any, error) {
	out, err := Decode[map[string]any](text)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

// fencedBlock returns the content of the first ```json ... ``` fence.
func fencedBlock(text string) (string, bool) {
	const marker = "```json"
	start := strings.Index(text, marker)
	if start < 0 {
		return "", false
	}
	body := text[start+len(marker):]
	end := strings.Index(body, "```")
	if end < 0 {
		return "", false
	}
	return body[:end], true
}

// balancedSpan returns the first balanced top-level {...} span in text.
func balancedSpan(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}
