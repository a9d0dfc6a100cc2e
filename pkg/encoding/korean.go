// Package encoding converts OBJ source text to UTF-8 before parsing.
package encoding

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrUnknownEncoding is returned for an encoding name that is not supported.
var ErrUnknownEncoding = errors.New("unknown text encoding")

// Encoding names accepted by Lookup.
const (
	UTF8  = "utf-8"
	EUCKR = "euc-kr"
)

// Lookup returns the encoding for a name. Names are matched
// case-insensitively; "" means UTF-8.
func Lookup(name string) (encoding.Encoding, error) {
	switch canonical(name) {
	case UTF8:
		// Strips a leading BOM and leaves the rest untouched.
		return unicode.UTF8BOM, nil
	case EUCKR:
		return korean.EUCKR, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
}

func canonical(name string) string {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", UTF8, "utf8":
		return UTF8
	case EUCKR, "euckr", "cp949":
		return EUCKR
	default:
		return name
	}
}

// Decode converts data from the named encoding to UTF-8.
func Decode(data []byte, name string) ([]byte, error) {
	enc, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	result, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return result, nil
}

// Encode converts UTF-8 data to the named encoding. UTF-8 output is
// returned as is, without a BOM.
func Encode(data []byte, name string) ([]byte, error) {
	enc, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	if canonical(name) == UTF8 {
		return data, nil
	}
	result, _, err := transform.Bytes(enc.NewEncoder(), data)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", name, err)
	}
	return result, nil
}
