// Package parser detects the layout of pasted coordinate text and splits
// lines into numeric pairs.
package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrTokenCount is returned when a line does not hold exactly two values.
	ErrTokenCount = errors.New("token count mismatch")

	// ErrNumericParse is returned when a token is not a plain decimal number.
	ErrNumericParse = errors.New("not a decimal number")
)

// Sign, integer part, optional fraction. No exponent, no thousands separators.
var numberRegex = regexp.MustCompile(`^[+-]?(?:[0-9]+(?:\.[0-9]*)?|\.[0-9]+)$`)

// Pair holds the two values of a line in input order.
type Pair struct {
	First  float64 `json:"first" yaml:"first"`
	Second float64 `json:"second" yaml:"second"`
}

// TokenCountError reports how many tokens a line split into.
type TokenCountError struct {
	Count int
}

func (e *TokenCountError) Error() string {
	return fmt.Sprintf("expected 2 values, found %d", e.Count)
}

// Unwrap returns ErrTokenCount.
func (e *TokenCountError) Unwrap() error { return ErrTokenCount }

// NumericError carries the token that failed to parse.
type NumericError struct {
	Token string
}

func (e *NumericError) Error() string {
	return fmt.Sprintf("invalid number %q", e.Token)
}

// Unwrap returns ErrNumericParse.
func (e *NumericError) Unwrap() error { return ErrNumericParse }

// SplitLines splits text on \n and drops the \r of CRLF endings. Index i of
// the result is visual line i+1.
func SplitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// ParseLine splits a line into two numbers. Any run of commas, tabs and
// spaces is a single boundary, so a block detected as Comma still accepts a
// line separated by spaces.
func ParseLine(line string) (Pair, error) {
	tokens, _ := tokenize(line)
	if len(tokens) != 2 {
		return Pair{}, &TokenCountError{Count: len(tokens)}
	}

	first, err := ParseNumber(tokens[0])
	if err != nil {
		return Pair{}, err
	}
	second, err := ParseNumber(tokens[1])
	if err != nil {
		return Pair{}, err
	}

	return Pair{First: first, Second: second}, nil
}

// IsBlank reports whether a line holds nothing but whitespace, delimiters or
// a byte order mark.
func IsBlank(line string) bool {
	return strings.TrimFunc(line, isPadding) == ""
}

// ParseNumber parses a single decimal token.
func ParseNumber(token string) (float64, error) {
	if !numberRegex.MatchString(token) {
		return 0, &NumericError{Token: token}
	}

	v, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, &NumericError{Token: token}
	}

	return v, nil
}

func isDelimiter(r rune) bool {
	switch r {
	case ',', ' ', '\t', '\r', '\v', '\f':
		return true
	}
	return false
}

// tokenize trims the line and returns its tokens together with the
// delimiter runs found between them.
func tokenize(line string) (tokens, delims []string) {
	s := strings.TrimFunc(line, isPadding)
	if s == "" {
		return nil, nil
	}

	start := 0
	inToken := true
	for i, r := range s {
		switch {
		case inToken && isDelimiter(r):
			tokens = append(tokens, s[start:i])
			start = i
			inToken = false
		case !inToken && !isDelimiter(r):
			delims = append(delims, s[start:i])
			start = i
			inToken = true
		}
	}
	tokens = append(tokens, s[start:])

	return tokens, delims
}

// Leading and trailing delimiters and a byte order mark are padding,
// not empty fields.
func isPadding(r rune) bool {
	return isDelimiter(r) || r == '\uFEFF'
}
