package ecpay

import "encoding/json"

// Payload is an envelope or Data block as exchanged with the vendor API.
type Payload map[string]any

// Payload keys shared by every envelope.
const (
	FieldMerchantID = "MerchantID"
	FieldRqHeader   = "RqHeader"
	FieldData       = "Data"
	FieldTimestamp  = "Timestamp"
	FieldRtnCode    = "RtnCode"
	FieldRtnMsg     = "RtnMsg"
)

// Clone returns a deep copy. Nested maps and slices are copied so the clone
// can be mutated without touching the original.
func (p Payload) Clone() Payload {
	if p == nil {
		return nil
	}
	out := make(Payload, len(p))
	for k, v := range p {
		out[k] = cloneValue(v)
	}
	return out
}

// Map returns the nested payload stored under key, if it is a map.
func (p Payload) Map(key string) (Payload, bool) {
	switch v := p[key].(type) {
	case Payload:
		return v, true
	case map[string]any:
		return Payload(v), true
	default:
		return nil, false
	}
}

// String returns the string stored under key.
func (p Payload) String(key string) (string, bool) {
	s, ok := p[key].(string)
	return s, ok
}

// JSON encodes the payload.
func (p Payload) JSON() ([]byte, error) {
	return json.Marshal(p)
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case Payload:
		return t.Clone()
	case map[string]any:
		return map[string]any(Payload(t).Clone())
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	case []map[string]any:
		out := make([]map[string]any, len(t))
		for i, e := range t {
			out[i] = map[string]any(Payload(e).Clone())
		}
		return out
	default:
		return v
	}
}
