package transport

import (
	"fmt"
	"reflect"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type wireEnvelope struct {
	Type MessageType     `json:"type"`
	Data jsoniter.RawMessage `json:"data"`
}

// EncodeOutbound wraps an outbound frame in its {type, data} envelope and
// marshals it, the wire shape the teacher's Message.MarshalJSON produces.
func EncodeOutbound(v interface{}) ([]byte, error) {
	t, ok := OutboundTypeFor(v)
	if !ok {
		return nil, fmt.Errorf("transport: %T is not a registered outbound message", v)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(wireEnvelope{Type: t, Data: data})
}

// DecodeInbound reads a {type, data} envelope and unmarshals Data into the
// concrete Go type registered for Type, returning it as interface{}.
func DecodeInbound(raw []byte) (interface{}, error) {
	var envelope wireEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, err
	}
	rt, ok := InboundTypeFor(envelope.Type)
	if !ok {
		return nil, fmt.Errorf("transport: unknown inbound message type %q", envelope.Type)
	}
	ptr := reflect.New(rt).Interface()
	if err := json.Unmarshal(envelope.Data, ptr); err != nil {
		return nil, err
	}
	return ptr, nil
}
