package fastgpt

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidBody is returned when the inbound body is not the JSON a route
// expects.
var ErrInvalidBody = errors.New("invalid request body")

// Projector turns the inbound request body into the outbound one.
type Projector interface {
	Project(raw []byte) ([]byte, error)
}

// PassThrough forwards the inbound JSON body unchanged. An empty body is sent
// as an empty object.
type PassThrough struct{}

func (PassThrough) Project(raw []byte) ([]byte, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return []byte("{}"), nil
	}
	if !json.Valid(raw) {
		return nil, ErrInvalidBody
	}
	return raw, nil
}

// Field selects one inbound body field, optionally under a new name. A field
// with a Value is a constant and ignores the inbound body.
type Field struct {
	From  string
	To    string
	Value any
}

// F projects an inbound field under its own name.
func F(name string) Field {
	return Field{From: name, To: name}
}

// Rename projects the inbound field from under the outbound name to.
func Rename(from, to string) Field {
	return Field{From: from, To: to}
}

// Const always sends value under name.
func Const(name string, value any) Field {
	return Field{To: name, Value: value}
}

// Fields builds an object from the listed fields, in order. Fields absent
// from the inbound body are omitted; explicit nulls are kept.
type Fields []Field

func (fs Fields) Project(raw []byte) ([]byte, error) {
	in := map[string]json.RawMessage{}
	if raw = bytes.TrimSpace(raw); len(raw) > 0 {
		if err := json.Unmarshal(raw, &in); err != nil {
			return nil, ErrInvalidBody
		}
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for _, f := range fs {
		var value []byte
		if f.From == "" {
			v, err := json.Marshal(f.Value)
			if err != nil {
				return nil, fmt.Errorf("encode constant %q: %w", f.To, err)
			}
			value = v
		} else {
			v, ok := in[f.From]
			if !ok {
				continue
			}
			value = v
		}
		key, err := json.Marshal(f.To)
		if err != nil {
			return nil, fmt.Errorf("encode field name %q: %w", f.To, err)
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
