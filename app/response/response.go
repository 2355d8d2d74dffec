// Package response serializes a types.Response into wire bytes.
package response

import (
	"bytes"
	"time"

	"github.com/xavierroma/go-rakis/app/types"
)

// DateLayout renders as "YYYY-MM-DD HH:MM:SS UTC" for UTC times.
const DateLayout = "2006-01-02 15:04:05 MST"

var crlf = []byte("\r\n")

// Date returns the current time in UTC formatted for the Date header.
func Date() string {
	return time.Now().UTC().Format(DateLayout)
}

// Format writes the status line, then for successful responses the headers
// in order, a blank line and the body bytes unchanged. Error responses are
// the status line and a blank line, whatever headers or body r carries.
func Format(r types.Response) []byte {
	var buf bytes.Buffer
	buf.Grow(64 + len(r.Body))

	buf.WriteString(types.Version)
	buf.WriteByte(' ')
	buf.WriteString(r.Status.Line())
	buf.Write(crlf)

	if r.Status.IsError() {
		buf.Write(crlf)
		return buf.Bytes()
	}

	for _, h := range r.Headers {
		buf.WriteString(h.Key)
		buf.WriteString(": ")
		buf.WriteString(h.Value)
		buf.Write(crlf)
	}
	buf.Write(crlf)
	buf.Write(r.Body)
	return buf.Bytes()
}

// Error returns the wire bytes of a bare error status.
func Error(status types.Status) []byte {
	return Format(types.Response{Status: status})
}
