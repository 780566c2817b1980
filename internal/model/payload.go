package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// PayloadKind discriminates the stored representations of a captured value.
type PayloadKind int

const (
	// PayloadAbsent means no value was sent (stored as SQL/JSON null).
	PayloadAbsent PayloadKind = iota
	// PayloadText is a raw textual value that is not a JSON object.
	PayloadText
	// PayloadObject is a structured key/value mapping.
	PayloadObject
)

// Payload is a tagged union over {absent, text, object}. Inbound bodies,
// headers and query parameters all use it so storage and classification can
// switch on the kind instead of type-asserting an untyped blob.
// The zero value is the absent payload.
type Payload struct {
	kind   PayloadKind
	text   string
	object map[string]any
}

// AbsentPayload returns the absent payload.
func AbsentPayload() Payload {
	return Payload{kind: PayloadAbsent}
}

// TextPayload returns a payload holding raw text.
func TextPayload(s string) Payload {
	return Payload{kind: PayloadText, text: s}
}

// ObjectPayload returns a payload holding a structured mapping.
// A nil map is treated as absent.
func ObjectPayload(m map[string]any) Payload {
	if m == nil {
		return AbsentPayload()
	}
	return Payload{kind: PayloadObject, object: m}
}

func (p Payload) Kind() PayloadKind { return p.kind }

// Text returns the raw text and whether the payload is textual.
func (p Payload) Text() (string, bool) {
	return p.text, p.kind == PayloadText
}

// Object returns the mapping and whether the payload is structured.
func (p Payload) Object() (map[string]any, bool) {
	return p.object, p.kind == PayloadObject
}

// MarshalJSON serializes absent as null, text as a JSON string and object
// as a JSON object.
func (p Payload) MarshalJSON() ([]byte, error) {
	switch p.kind {
	case PayloadText:
		return json.Marshal(p.text)
	case PayloadObject:
		return json.Marshal(p.object)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON is the inverse of MarshalJSON. JSON values that are neither
// null, a string nor an object (arrays, numbers, booleans) are kept as their
// raw text so nothing a caller sent is ever rejected.
func (p *Payload) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*p = AbsentPayload()
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = TextPayload(s)
	case '{':
		var m map[string]any
		if err := json.Unmarshal(data, &m); err != nil {
			return err
		}
		*p = ObjectPayload(m)
	default:
		*p = TextPayload(string(data))
	}
	return nil
}

// Value implements driver.Valuer so payloads persist as JSONB.
func (p Payload) Value() (driver.Value, error) {
	if p.kind == PayloadAbsent {
		return nil, nil
	}
	return p.MarshalJSON()
}

// Scan implements sql.Scanner for JSONB columns.
func (p *Payload) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*p = AbsentPayload()
		return nil
	case []byte:
		return p.UnmarshalJSON(v)
	case string:
		return p.UnmarshalJSON([]byte(v))
	default:
		return fmt.Errorf("cannot scan %T into Payload", src)
	}
}
