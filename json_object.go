package coinfolio

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// jsonObject collects the fields of a JSON object in insertion order.
// The first marshaling error sticks and is returned by MarshalJSON.
type jsonObject struct {
	keys   []string
	values []json.RawMessage
	err    error
}

// Set adds key with the JSON encoding of value.
func (o *jsonObject) Set(key string, value any) *jsonObject {
	if o.err != nil {
		return o
	}
	raw, err := json.Marshal(value)
	if err != nil {
		o.err = fmt.Errorf("cannot encode %q: %w", key, err)
		return o
	}
	o.keys = append(o.keys, key)
	o.values = append(o.values, raw)
	return o
}

// SetIf adds key only when ok.
func (o *jsonObject) SetIf(ok bool, key string, value any) *jsonObject {
	if !ok {
		return o
	}
	return o.Set(key, value)
}

func (o *jsonObject) MarshalJSON() ([]byte, error) {
	if o.err != nil {
		return nil, o.err
	}
	var b bytes.Buffer
	b.WriteByte('{')
	for i, key := range o.keys {
		if i > 0 {
			b.WriteByte(',')
		}
		k, _ := json.Marshal(key)
		b.Write(k)
		b.WriteByte(':')
		b.Write(o.values[i])
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}
