// Package request turns the bytes of a single read into a types.Request.
package request

import (
	"bytes"
	"strings"

	"github.com/xavierroma/go-rakis/app/types"
)

// MaxHeaders is the number of header lines a request may carry.
const MaxHeaders = 16

// Parse parses the request line and headers in raw. Only raw itself is
// examined; callers pass the slice of bytes actually read. A buffer that ends
// before the blank line closing the headers yields an Incomplete error, there
// is no second read to wait for.
func Parse(raw []byte) (types.Request, error) {
	result := types.Request{
		Headers: make(map[string]string),
	}

	// Empty lines before the request line are ignored.
	var line []byte
	pos, ok := 0, false
	for {
		line, pos, ok = nextLine(raw, pos)
		if !ok {
			return result, types.NewParseError(types.Incomplete, "no complete request line in %d bytes", len(raw))
		}
		if len(line) > 0 {
			break
		}
	}

	parts := bytes.Split(line, []byte(" "))
	if len(parts) != 3 {
		return result, types.NewParseError(types.Malformed, "request line %q", line)
	}
	method, target, version := parts[0], parts[1], parts[2]
	if len(method) == 0 || !isToken(method) {
		return result, types.NewParseError(types.Malformed, "missing or invalid method in %q", line)
	}
	if len(target) == 0 {
		return result, types.NewParseError(types.Malformed, "missing path in %q", line)
	}
	if target[0] != '/' {
		return result, types.NewParseError(types.Malformed, "path %q does not start with /", target)
	}
	if v := string(version); v != "HTTP/1.0" && v != "HTTP/1.1" {
		return result, types.NewParseError(types.Malformed, "unsupported version %q", version)
	}
	result.Method = types.Method(method)
	result.Target = string(target)
	result.Version = string(version)

	for count := 0; ; count++ {
		line, pos, ok = nextLine(raw, pos)
		if !ok {
			return result, types.NewParseError(types.Incomplete, "headers not terminated after %d bytes", len(raw))
		}
		if len(line) == 0 {
			break
		}
		if count == MaxHeaders {
			return result, types.NewParseError(types.Malformed, "more than %d headers", MaxHeaders)
		}

		key, value, found := bytes.Cut(line, []byte(":"))
		if !found || len(key) == 0 || !isToken(key) || !isFieldValue(value) {
			return result, types.NewParseError(types.Malformed, "header line %q", line)
		}
		result.Headers[string(key)] = strings.TrimSpace(string(value))
	}

	result.BodyOffset = pos
	result.Body = raw[pos:]
	return result, nil
}

// nextLine returns the line starting at pos without its terminator, and the
// offset just past the terminator. Lines end in CRLF; a bare LF is accepted.
func nextLine(raw []byte, pos int) ([]byte, int, bool) {
	if pos > len(raw) {
		return nil, pos, false
	}
	i := bytes.IndexByte(raw[pos:], '\n')
	if i < 0 {
		return nil, pos, false
	}
	line := raw[pos : pos+i]
	line = bytes.TrimSuffix(line, []byte("\r"))
	return line, pos + i + 1, true
}

func isToken(b []byte) bool {
	for _, c := range b {
		if c <= ' ' || c >= 0x7f || strings.IndexByte(`()<>@,;:\"/[]?={}`, c) >= 0 {
			return false
		}
	}
	return true
}

// isFieldValue rejects control characters other than horizontal tab.
func isFieldValue(b []byte) bool {
	for _, c := range b {
		if (c < ' ' && c != '\t') || c == 0x7f {
			return false
		}
	}
	return true
}
