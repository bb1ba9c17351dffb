package ecpay

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// RequestHeader carries the RqHeader block of an envelope.
type RequestHeader struct {
	Timestamp int64
}

// NewRequestHeader returns a header stamped with now, or with the given
// unix timestamp. A timestamp that is not positive is rejected.
func NewRequestHeader(timestamp ...int64) (RequestHeader, error) {
	ts := time.Now().Unix()
	if len(timestamp) > 0 {
		ts = timestamp[0]
	}
	if ts <= 0 {
		return RequestHeader{}, &ValidationError{
			Field:   FieldTimestamp,
			Message: "must be a positive unix timestamp",
			Context: map[string]any{"value": ts},
		}
	}
	return RequestHeader{Timestamp: ts}, nil
}

// RequestHeaderFromPayload reads a header from a decoded RqHeader block.
func RequestHeaderFromPayload(m map[string]any) (RequestHeader, error) {
	v, ok := m[FieldTimestamp]
	if !ok || v == nil {
		return RequestHeader{}, newRequiredError(FieldTimestamp)
	}

	ts, ok := toInt64(v)
	if !ok {
		return RequestHeader{}, &ValidationError{
			Field:   FieldTimestamp,
			Message: "must be an integer",
			Context: map[string]any{"value": v},
		}
	}
	return NewRequestHeader(ts)
}

// ToPayload returns the RqHeader block.
func (h RequestHeader) ToPayload() map[string]any {
	return map[string]any{FieldTimestamp: h.Timestamp}
}

// toInt64 coerces the numeric shapes a decoded payload can carry.
func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint32:
		return int64(n), true
	case float64:
		if n != float64(int64(n)) {
			return 0, false
		}
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		return i, err == nil
	default:
		return 0, false
	}
}
