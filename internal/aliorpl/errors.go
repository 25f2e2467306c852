package aliorpl

import "fmt"

// DecodeError reports an unknown charset or bytes the charset cannot map.
type DecodeError struct {
	Charset string
	Line    int
	Err     error
}

func (e *DecodeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: cannot decode input as %s: %v", e.Line, e.Charset, e.Err)
	}
	return fmt.Sprintf("cannot decode input as %s: %v", e.Charset, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// DateFormatError reports a date column that is not YYYYMMDD.
type DateFormatError struct {
	Line  int
	Value string
	Err   error
}

func (e *DateFormatError) Error() string {
	return fmt.Sprintf("line %d: invalid date %q, want YYYYMMDD: %v", e.Line, e.Value, e.Err)
}

func (e *DateFormatError) Unwrap() error { return e.Err }

// NumericFormatError reports an amount or balance column that is not a
// decimal number.
type NumericFormatError struct {
	Line  int
	Field string
	Value string
	Err   error
}

func (e *NumericFormatError) Error() string {
	return fmt.Sprintf("line %d: invalid %s %q: %v", e.Line, e.Field, e.Value, e.Err)
}

func (e *NumericFormatError) Unwrap() error { return e.Err }

// MissingConfigError reports a required option that was not set.
type MissingConfigError struct {
	Option string
}

func (e *MissingConfigError) Error() string {
	return fmt.Sprintf("missing required option %q", e.Option)
}

// RecordError reports a row that cannot be read as a record at all.
type RecordError struct {
	Line   int
	Fields int
	Err    error
}

func (e *RecordError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("line %d: malformed record: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d: expected at least %d fields, got %d", e.Line, minFields, e.Fields)
}

func (e *RecordError) Unwrap() error { return e.Err }
