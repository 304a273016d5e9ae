package gdata

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// JSONBuilder writes a JSON object with members in call order.
type JSONBuilder struct {
	b     strings.Builder
	first []bool
}

func (j *JSONBuilder) beginObject() {
	j.b.WriteByte('{')
	j.first = append(j.first, true)
}

func (j *JSONBuilder) endObject() {
	j.b.WriteByte('}')
	j.first = j.first[:len(j.first)-1]
}

func (j *JSONBuilder) member(name string) {
	top := len(j.first) - 1
	if !j.first[top] {
		j.b.WriteByte(',')
	}
	j.first[top] = false
	j.b.WriteString(quoteJSON(name))
	j.b.WriteByte(':')
}

func quoteJSON(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}

// String writes a string member.
func (j *JSONBuilder) String(name, v string) {
	j.member(name)
	j.b.WriteString(quoteJSON(v))
}

// Int writes an integer member.
func (j *JSONBuilder) Int(name string, v int64) {
	j.member(name)
	j.b.WriteString(strconv.FormatInt(v, 10))
}

// Bool writes a boolean member.
func (j *JSONBuilder) Bool(name string, v bool) {
	j.member(name)
	j.b.WriteString(strconv.FormatBool(v))
}

// Time writes Unix seconds as an ISO 8601 string member.
func (j *JSONBuilder) Time(name string, t int64) {
	j.String(name, FormatISO8601(t))
}

// Strings writes an array of strings.
func (j *JSONBuilder) Strings(name string, v []string) {
	j.member(name)
	j.b.WriteByte('[')
	for i, s := range v {
		if i > 0 {
			j.b.WriteByte(',')
		}
		j.b.WriteString(quoteJSON(s))
	}
	j.b.WriteByte(']')
}

// Raw writes a member whose value is already encoded JSON.
func (j *JSONBuilder) Raw(name string, v json.RawMessage) {
	j.member(name)
	j.b.Write(v)
}

// Object writes a nested object member filled in by fn.
func (j *JSONBuilder) Object(name string, fn func(*JSONBuilder)) {
	j.member(name)
	j.beginObject()
	fn(j)
	j.endObject()
}

// JSON returns the JSON written so far.
func (j *JSONBuilder) JSON() string { return j.b.String() }

// RawArray writes an array whose elements are already encoded JSON.
func (j *JSONBuilder) RawArray(name string, items []string) {
	j.member(name)
	j.b.WriteByte('[')
	for i, s := range items {
		if i > 0 {
			j.b.WriteByte(',')
		}
		j.b.WriteString(s)
	}
	j.b.WriteByte(']')
}
