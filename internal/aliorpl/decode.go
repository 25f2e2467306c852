package aliorpl

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// LookupCharset resolves a code page name such as "cp1250" or
// "windows-1250" to an encoding.
func LookupCharset(name string) (encoding.Encoding, error) {
	if enc, err := htmlindex.Get(name); err == nil {
		return enc, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, &DecodeError{Charset: name, Err: err}
	}
	if enc == nil {
		return nil, &DecodeError{Charset: name, Err: fmt.Errorf("charset not supported")}
	}
	return enc, nil
}

// decoderFor returns the transformer for charset and whether it turns
// undecodable input into utf8.RuneError. UTF-8 input is validated instead,
// so a literal U+FFFD in a UTF-8 export stays valid data.
func decoderFor(charset string) (transform.Transformer, bool, error) {
	enc, err := LookupCharset(charset)
	if err != nil {
		return nil, false, err
	}
	if enc == unicode.UTF8 {
		return encoding.UTF8Validator, false, nil
	}
	return enc.NewDecoder(), true, nil
}

// Decode returns a reader producing UTF-8 text from r encoded in charset.
// Invalid UTF-8 fails the read with encoding.ErrInvalidUTF8. For other
// charsets unmappable bytes come out as utf8.RuneError and are rejected by
// checkDecoded.
func Decode(r io.Reader, charset string) (io.Reader, error) {
	t, _, err := decoderFor(charset)
	if err != nil {
		return nil, err
	}
	return transform.NewReader(r, t), nil
}

func checkDecoded(rec Record, charset string) error {
	for i, f := range rec.Fields {
		if strings.ContainsRune(f, utf8.RuneError) {
			return &DecodeError{
				Charset: charset,
				Line:    rec.Line,
				Err:     fmt.Errorf("unmappable byte in field %d", i),
			}
		}
	}
	return nil
}

// lineCounter counts the newlines that made it through the decoder, which
// locates the line of a mid-stream decode failure.
type lineCounter struct {
	r     io.Reader
	lines int
}

func (c *lineCounter) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.lines += bytes.Count(p[:n], []byte{'\n'})
	return n, err
}
