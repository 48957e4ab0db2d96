package processor

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"
)

// Result is the outcome of one invocation: either Pages (Success) or Error
// (Failure), never both.
type Result struct {
	Success bool
	Pages   []Page
	Error   string
}

// NewSuccess builds a successful result. A nil slice is reported as [].
func NewSuccess(pages []Page) *Result {
	if pages == nil {
		pages = []Page{}
	}
	return &Result{Success: true, Pages: pages}
}

// NewFailure builds a failed result carrying msg
func NewFailure(msg string) *Result {
	return &Result{Error: msg}
}

// MarshalJSON renders the result with ": " and ", " separators, the format
// consumers of this command already parse against. json.Marshal compacts
// marshaler output, so call WriteTo or MarshalJSON directly to keep it.
func (r *Result) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if !r.Success {
		buf.WriteString(`{"success": false, "error": `)
		if err := writeString(&buf, r.Error); err != nil {
			return nil, err
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	}

	buf.WriteString(`{"success": true, "pages": [`)
	for i, p := range r.Pages {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(`{"page": `)
		buf.WriteString(strconv.Itoa(p.Page))
		buf.WriteString(`, "text": `)
		if err := writeString(&buf, p.Text); err != nil {
			return nil, err
		}
		buf.WriteByte('}')
	}
	buf.WriteString("]}")
	return buf.Bytes(), nil
}

// UnmarshalJSON accepts any JSON layout of the two result shapes
func (r *Result) UnmarshalJSON(data []byte) error {
	var raw struct {
		Success bool   `json:"success"`
		Pages   []Page `json:"pages"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = Result{Success: raw.Success, Pages: raw.Pages, Error: raw.Error}
	return nil
}

// WriteTo writes the result as a single newline-terminated JSON line
func (r *Result) WriteTo(w io.Writer) (int64, error) {
	data, err := r.MarshalJSON()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(append(data, '\n'))
	return int64(n), err
}

// writeString appends s as a JSON string literal. HTML escaping is off so
// '<', '>' and '&' in OCR text survive as-is.
func writeString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
	return nil
}
