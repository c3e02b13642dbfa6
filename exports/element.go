package exports

import (
	"bytes"
	"unicode/utf8"
)

// Field is one key of an Element. A nil Value encodes as JSON null.
type Field struct {
	Key   string
	Value *string
}

// Element is a JSON object built from one CSV row. Keys keep the order in
// which they were first set; setting an existing key replaces its value in
// place.
type Element struct {
	fields []Field
	index  map[string]int
}

// NewElement returns an empty element with room for size keys
func NewElement(size int) *Element {
	return &Element{
		fields: make([]Field, 0, size),
		index:  make(map[string]int, size),
	}
}

// Set assigns value to key
func (e *Element) Set(key string, value *string) {
	if i, ok := e.index[key]; ok {
		e.fields[i].Value = value
		return
	}
	e.index[key] = len(e.fields)
	e.fields = append(e.fields, Field{Key: key, Value: value})
}

// SetString assigns a string value to key
func (e *Element) SetString(key, value string) {
	e.Set(key, &value)
}

// SetNull assigns JSON null to key
func (e *Element) SetNull(key string) {
	e.Set(key, nil)
}

// Get returns the value stored for key and whether the key exists
func (e *Element) Get(key string) (*string, bool) {
	i, ok := e.index[key]
	if !ok {
		return nil, false
	}
	return e.fields[i].Value, true
}

// Fields returns the keys and values in order
func (e *Element) Fields() []Field {
	return e.fields
}

// Len returns the number of keys
func (e *Element) Len() int {
	return len(e.fields)
}

// MarshalJSON encodes the element with its keys in insertion order
func (e *Element) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, field := range e.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeString(&buf, field.Key)
		buf.WriteByte(':')
		if field.Value == nil {
			buf.WriteString("null")
			continue
		}
		writeString(&buf, *field.Value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

const hex = "0123456789abcdef"

// writeString appends s as a JSON string. It escapes like encoding/json with
// HTML escaping disabled: <, > and & are written as is.
func writeString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	start := 0
	for i := 0; i < len(s); {
		if b := s[i]; b < utf8.RuneSelf {
			if b >= 0x20 && b != '"' && b != '\\' {
				i++
				continue
			}
			buf.WriteString(s[start:i])
			switch b {
			case '"', '\\':
				buf.WriteByte('\\')
				buf.WriteByte(b)
			case '\b':
				buf.WriteString(`\b`)
			case '\f':
				buf.WriteString(`\f`)
			case '\n':
				buf.WriteString(`\n`)
			case '\r':
				buf.WriteString(`\r`)
			case '\t':
				buf.WriteString(`\t`)
			default:
				buf.WriteString(`\u00`)
				buf.WriteByte(hex[b>>4])
				buf.WriteByte(hex[b&0xF])
			}
			i++
			start = i
			continue
		}

		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == utf8.RuneError && size == 1:
			buf.WriteString(s[start:i])
			buf.WriteString(`\ufffd`)
		case r == '\u2028' || r == '\u2029':
			// Valid JSON, but not valid JavaScript
			buf.WriteString(s[start:i])
			buf.WriteString(`\u202`)
			buf.WriteByte(hex[r&0xF])
		default:
			i += size
			continue
		}
		i += size
		start = i
	}
	buf.WriteString(s[start:])
	buf.WriteByte('"')
}
