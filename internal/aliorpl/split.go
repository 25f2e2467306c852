package aliorpl

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"
)

// Record is one row of the export with its 1-based line number.
type Record struct {
	Line   int
	Fields []string
}

// Split lazily reads r as ';'-delimited rows in file order. Iteration stops
// after the first error. The sequence can be ranged over only once.
func Split(r io.Reader) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		cr := csv.NewReader(r)
		cr.Comma = ';'
		cr.FieldsPerRecord = -1
		cr.LazyQuotes = true

		first := true
		for {
			fields, err := cr.Read()
			if err == io.EOF {
				return
			}
			if err != nil {
				var pe *csv.ParseError
				if errors.As(err, &pe) {
					yield(Record{Line: pe.StartLine}, &RecordError{Line: pe.StartLine, Err: pe.Err})
					return
				}
				yield(Record{}, fmt.Errorf("read input: %w", err))
				return
			}

			line, _ := cr.FieldPos(0)
			if first {
				fields[0] = strings.TrimPrefix(fields[0], "\ufeff")
				first = false
			}
			if !yield(Record{Line: line, Fields: fields}, nil) {
				return
			}
		}
	}
}
