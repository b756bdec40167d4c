// Package responseformat encodes results as JSON or MessagePack.
package responseformat

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/vmihailenco/msgpack/v5"
)

// Supported encodings
const (
	FormatJSON    = "json"
	FormatMsgPack = "msgpack"
)

// Formatter handles encoding and writing responses in JSON or MessagePack format
type Formatter struct{}

// NewFormatter creates a new response formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

// WriteResponse writes data with the given status. MessagePack is used when
// the request carries format=msgpack; anything else gets JSON. The body is
// encoded before any header is sent, so an encoding failure becomes a 500
// response and is returned to the caller.
func (f *Formatter) WriteResponse(w http.ResponseWriter, req *http.Request, status int, data any) error {
	format := FormatJSON
	if req.URL.Query().Get("format") == FormatMsgPack {
		format = FormatMsgPack
	}

	var buf bytes.Buffer
	if err := Encode(&buf, format, data); err != nil {
		encErr := fmt.Errorf("error encoding %s response: %w", format, err)

		buf.Reset()
		Encode(&buf, format, map[string]string{"error": "failed to encode response"})
		w.Header().Set("Content-Type", ContentType(format))
		w.WriteHeader(http.StatusInternalServerError)
		w.Write(buf.Bytes())
		return encErr
	}

	w.Header().Set("Content-Type", ContentType(format))
	w.WriteHeader(status)
	_, err := w.Write(buf.Bytes())
	return err
}

// WriteError writes a {"error": ...} body in the requested format
func (f *Formatter) WriteError(w http.ResponseWriter, req *http.Request, status int, message string) error {
	return f.WriteResponse(w, req, status, map[string]string{
		"error": message,
	})
}

// ContentType returns the MIME type for a format
func ContentType(format string) string {
	if format == FormatMsgPack {
		return "application/x-msgpack"
	}
	return "application/json"
}

// Encode writes data to wr in the given format
func Encode(wr io.Writer, format string, data any) error {
	switch format {
	case FormatJSON, "":
		return json.NewEncoder(wr).Encode(data)
	case FormatMsgPack:
		encoder := msgpack.NewEncoder(wr)
		encoder.SetCustomStructTag("json") // Use json tags for MessagePack
		return encoder.Encode(data)
	}
	return fmt.Errorf("unsupported format %q", format)
}
