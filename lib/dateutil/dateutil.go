// Package dateutil converts user supplied travel dates into the encodings the
// search site expects in its urls.
package dateutil

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

// ErrDateFormat is matched by every *FormatError.
var ErrDateFormat = errors.New("malformed date")

type FormatError struct {
	Input string
	Err   error
}

func (e *FormatError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("malformed date %q: expected DD/MM/YYYY", e.Input)
	}
	return fmt.Sprintf("malformed date %q: expected DD/MM/YYYY: %s", e.Input, e.Err.Error())
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

func (e *FormatError) Is(target error) bool {
	return target == ErrDateFormat
}

// day and month may be 1 or 2 digits, the year is always 4
var dateRegex = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}$`)

// Parse parses a DD/MM/YYYY date.
func Parse(date string) (time.Time, error) {
	if !dateRegex.MatchString(date) {
		return time.Time{}, &FormatError{Input: date}
	}
	t, err := time.Parse("2/1/2006", date)
	if err != nil {
		return time.Time{}, &FormatError{Input: date, Err: err}
	}
	return t, nil
}

// Compact formats a date as YYMMDD.
func Compact(t time.Time) string {
	return fmt.Sprintf("%02d%02d%02d", t.Year()%100, t.Month(), t.Day())
}

// ISO formats a date as YYYY-MM-DD.
func ISO(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), t.Month(), t.Day())
}

// ToCompact converts DD/MM/YYYY into YYMMDD, ex. 25/12/2024 -> 241225.
func ToCompact(date string) (string, error) {
	t, err := Parse(date)
	if err != nil {
		return "", err
	}
	return Compact(t), nil
}

// ToISO converts DD/MM/YYYY into YYYY-MM-DD, ex. 25/12/2024 -> 2024-12-25.
func ToISO(date string) (string, error) {
	t, err := Parse(date)
	if err != nil {
		return "", err
	}
	return ISO(t), nil
}
