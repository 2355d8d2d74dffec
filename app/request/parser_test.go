package request

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierroma/go-rakis/app/types"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		request string
		want    types.Request
		wantErr error
	}{
		{
			name:    "Valid GET Request",
			request: "GET /index.html HTTP/1.1\r\nHost: example.com\r\nUser-Agent: test\r\n\r\n",
			want: types.Request{
				Method:     types.Get,
				Target:     "/index.html",
				Version:    "HTTP/1.1",
				Headers:    map[string]string{"Host": "example.com", "User-Agent": "test"},
				BodyOffset: 65,
				Body:       []byte{},
			},
		},
		{
			name:    "Valid POST Request",
			request: "POST /submit.txt HTTP/1.1\r\nHost: example.com\r\nContent-Length: 11\r\n\r\nHello World",
			want: types.Request{
				Method:     types.Post,
				Target:     "/submit.txt",
				Version:    "HTTP/1.1",
				Headers:    map[string]string{"Host": "example.com", "Content-Length": "11"},
				BodyOffset: 68,
				Body:       []byte("Hello World"),
			},
		},
		{
			name:    "No headers",
			request: "GET / HTTP/1.0\r\n\r\n",
			want: types.Request{
				Method:     types.Get,
				Target:     "/",
				Version:    "HTTP/1.0",
				Headers:    map[string]string{},
				BodyOffset: 18,
				Body:       []byte{},
			},
		},
		{
			name:    "Bare LF line endings",
			request: "PUT /x HTTP/1.1\nHost: a\n\nbody",
			want: types.Request{
				Method:     types.Put,
				Target:     "/x",
				Version:    "HTTP/1.1",
				Headers:    map[string]string{"Host": "a"},
				BodyOffset: 25,
				Body:       []byte("body"),
			},
		},
		{
			name:    "Empty buffer",
			request: "",
			wantErr: types.Incomplete,
		},
		{
			name:    "Request line without terminator",
			request: "GET /index.html HTTP/1.1",
			wantErr: types.Incomplete,
		},
		{
			name:    "Headers not terminated",
			request: "GET /index.html HTTP/1.1\r\nHost: example.com\r\n",
			wantErr: types.Incomplete,
		},
		{
			name:    "Malformed Request Line - Too Few Parts",
			request: "GET /\r\nHost: example.com\r\n\r\n",
			wantErr: types.Malformed,
		},
		{
			name:    "Only empty lines",
			request: "\r\n\r\n",
			wantErr: types.Incomplete,
		},
		{
			name:    "Leading empty lines are skipped",
			request: "\r\n\nGET /a.txt HTTP/1.1\r\n\r\n",
			want: types.Request{
				Method:     types.Get,
				Target:     "/a.txt",
				Version:    "HTTP/1.1",
				Headers:    map[string]string{},
				BodyOffset: 29,
				Body:       []byte{},
			},
		},
		{
			name:    "Header value with tab",
			request: "GET / HTTP/1.1\r\nX-Tab: a\tb\r\n\r\n",
			want: types.Request{
				Method:     types.Get,
				Target:     "/",
				Version:    "HTTP/1.1",
				Headers:    map[string]string{"X-Tab": "a\tb"},
				BodyOffset: 30,
				Body:       []byte{},
			},
		},
		{
			name:    "Control character in header value",
			request: "GET /a.txt HTTP/1.1\r\nX: a\x01b\r\n\r\n",
			wantErr: types.Malformed,
		},
		{
			name:    "DEL in header value",
			request: "GET /a.txt HTTP/1.1\r\nX: a\x7fb\r\n\r\n",
			wantErr: types.Malformed,
		},
		{
			name:    "Missing method",
			request: " /x HTTP/1.1\r\n\r\n",
			wantErr: types.Malformed,
		},
		{
			name:    "Missing path",
			request: "GET  HTTP/1.1\r\n\r\n",
			wantErr: types.Malformed,
		},
		{
			name:    "Path without leading slash",
			request: "GET index.html HTTP/1.1\r\n\r\n",
			wantErr: types.Malformed,
		},
		{
			name:    "Unknown version",
			request: "GET / HTTP/2.0\r\n\r\n",
			wantErr: types.Malformed,
		},
		{
			name:    "Malformed Header Line",
			request: "GET / HTTP/1.1\r\nHost example.com\r\n\r\n",
			wantErr: types.Malformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.request))
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v, want %v", err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTooManyHeaders(t *testing.T) {
	var b strings.Builder
	b.WriteString("GET / HTTP/1.1\r\n")
	for i := 0; i <= MaxHeaders; i++ {
		b.WriteString("X-H: v\r\n")
	}
	b.WriteString("\r\n")

	_, err := Parse([]byte(b.String()))
	assert.ErrorIs(t, err, types.Malformed)
}

func TestParseMaxHeaders(t *testing.T) {
	var b strings.Builder
	b.WriteString("GET / HTTP/1.1\r\n")
	for i := 0; i < MaxHeaders; i++ {
		b.WriteString("X-H: v\r\n")
	}
	b.WriteString("\r\n")

	_, err := Parse([]byte(b.String()))
	assert.NoError(t, err)
}

func TestParseIgnoresUnreadTail(t *testing.T) {
	buf := make([]byte, 1024)
	n := copy(buf, "POST /a.txt HTTP/1.1\r\n\r\nhi")

	got, err := Parse(buf[:n])
	require.NoError(t, err)
	assert.Equal(t, []byte("hi"), got.Body)
	assert.LessOrEqual(t, got.BodyOffset, n)
}
