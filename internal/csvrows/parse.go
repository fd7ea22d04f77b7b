// Package csvrows turns comma-delimited waypoint text into row records keyed
// by header name.
//
// The format is deliberately simpler than RFC 4180: lines are split on '\n'
// and fields on ',' with no quoted-comma support. A value wrapped in one pair
// of double quotes has that single layer removed.
package csvrows

import (
	"errors"
	"fmt"
	"strings"
)

// Row maps a header name to the trimmed, unquoted value of one data line.
type Row map[string]string

var (
	// ErrEmptyInput is returned when the text contains no usable lines.
	ErrEmptyInput = errors.New("csvrows: empty input")

	// ErrMalformedRow is matched by *MalformedRowError via errors.Is.
	ErrMalformedRow = errors.New("csvrows: malformed row")
)

// MalformedRowError reports a data line whose field count differs from the
// header's.
type MalformedRowError struct {
	Line     int // 1-based line number in the input
	Expected int
	Got      int
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("csvrows: line %d: expected %d fields, got %d", e.Line, e.Expected, e.Got)
}

// Is makes errors.Is(err, ErrMalformedRow) succeed.
func (e *MalformedRowError) Is(target error) bool {
	return target == ErrMalformedRow
}

// Parse splits text into rows. The first line is the header; every
// following line must have exactly as many fields as the header.
func Parse(text string) ([]Row, error) {
	lines, err := splitLines(text)
	if err != nil {
		return nil, err
	}

	headers := splitHeader(lines[0])
	rows := make([]Row, 0, len(lines)-1)
	for i, line := range lines[1:] {
		fields := strings.Split(line, ",")
		if len(fields) != len(headers) {
			return nil, &MalformedRowError{Line: i + 2, Expected: len(headers), Got: len(fields)}
		}
		row := make(Row, len(headers))
		for j, h := range headers {
			row[h] = unquote(strings.TrimSpace(fields[j]))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Header returns the trimmed column names of text without parsing the data
// lines.
func Header(text string) ([]string, error) {
	lines, err := splitLines(text)
	if err != nil {
		return nil, err
	}
	return splitHeader(lines[0]), nil
}

// splitLines breaks text on '\n' and drops a trailing blank line.
func splitLines(text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}
	lines := strings.Split(text, "\n")
	if strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return nil, ErrEmptyInput
	}
	return lines, nil
}

func splitHeader(line string) []string {
	headers := strings.Split(line, ",")
	for i, h := range headers {
		headers[i] = strings.TrimSpace(h)
	}
	return headers
}

// unquote strips one surrounding pair of double quotes, if present.
func unquote(v string) string {
	if len(v) >= 2 && strings.HasPrefix(v, `"`) && strings.HasSuffix(v, `"`) {
		return v[1 : len(v)-1]
	}
	return v
}
