package types

import (
	"context"
	"strconv"
)

type Method string

const (
	Get    Method = "GET"
	Post   Method = "POST"
	Put    Method = "PUT"
	Patch  Method = "PATCH"
	Delete Method = "DELETE"
)

// Version is the protocol version written on every response, whatever the
// request declared.
const Version = "HTTP/1.1"

type Handler func(ctx context.Context, req Request, res *Response)

// Request is a parsed request. Body aliases the raw buffer from BodyOffset
// to the end of the bytes that were read.
type Request struct {
	Method     Method
	Version    string
	Target     string
	Headers    map[string]string
	BodyOffset int
	Body       []byte
	Params     map[string]string
}

type Status int

const (
	StatusOK                  Status = 200
	StatusBadRequest          Status = 400
	StatusNotFound            Status = 404
	StatusPayloadTooLarge     Status = 413
	StatusInternalServerError Status = 500
	StatusNotImplemented      Status = 501
)

var statusText = map[Status]string{
	StatusOK:                  "OK",
	StatusBadRequest:          "Bad Request",
	StatusNotFound:            "Not Found",
	StatusPayloadTooLarge:     "Payload Too Large",
	StatusInternalServerError: "Internal Server Error",
	StatusNotImplemented:      "Not Implemented",
}

// Line returns the status as it appears after the version, e.g. "404 Not Found".
func (s Status) Line() string {
	text, ok := statusText[s]
	if !ok {
		return StatusInternalServerError.Line()
	}
	return strconv.Itoa(int(s)) + " " + text
}

func (s Status) IsError() bool {
	return s >= 400
}

// Header is a single response header. Responses keep headers in a slice
// because the wire order is fixed.
type Header struct {
	Key   string
	Value string
}

type Response struct {
	Status  Status
	Headers []Header
	Body    []byte
}

// SetHeader replaces the value of key or appends it.
func (r *Response) SetHeader(key, value string) {
	for i, h := range r.Headers {
		if h.Key == key {
			r.Headers[i].Value = value
			return
		}
	}
	r.Headers = append(r.Headers, Header{Key: key, Value: value})
}

func (r *Response) Header(key string) (string, bool) {
	for _, h := range r.Headers {
		if h.Key == key {
			return h.Value, true
		}
	}
	return "", false
}
