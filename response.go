package ecpay

import (
	"encoding/json"
	"strconv"
	"strings"
)

// SuccessCode is the RtnCode the API returns on success.
const SuccessCode = 1

// Response wraps a decoded API reply.
type Response struct {
	data    Payload
	decoded Payload
}

// NewResponse wraps data. An empty reply reads as RtnCode 0 with no message.
func NewResponse(data Payload) *Response {
	if len(data) == 0 {
		data = Payload{FieldRtnCode: 0, FieldRtnMsg: ""}
	}
	return &Response{data: data}
}

// IsSuccess reports whether RtnCode equals 1 exactly.
func (r *Response) IsSuccess() bool {
	code, ok := rtnCode(r.data[FieldRtnCode])
	return ok && code == SuccessCode
}

// IsError is the negation of IsSuccess.
func (r *Response) IsError() bool {
	return !r.IsSuccess()
}

// Code returns RtnCode, or 0 when it is absent or not numeric.
func (r *Response) Code() int {
	code, _ := rtnCode(r.data[FieldRtnCode])
	return code
}

// Message returns RtnMsg.
func (r *Response) Message() string {
	msg, _ := r.data[FieldRtnMsg].(string)
	return msg
}

// Data returns the raw reply.
func (r *Response) Data() Payload {
	return r.data
}

// DecodedData returns the decrypted Data block. It is nil until
// SetDecodedData is called, unless the reply carried Data as an object.
func (r *Response) DecodedData() Payload {
	if r.decoded != nil {
		return r.decoded
	}
	data, _ := r.data.Map(FieldData)
	return data
}

// SetDecodedData stores the decrypted Data block.
func (r *Response) SetDecodedData(p Payload) *Response {
	r.decoded = p
	return r
}

// Get returns the value for key, or def when absent.
func (r *Response) Get(key string, def any) any {
	if v, ok := r.data[key]; ok && v != nil {
		return v
	}
	return def
}

// Has reports whether key is present, even if its value is nil.
func (r *Response) Has(key string) bool {
	_, ok := r.data[key]
	return ok
}

// JSON encodes the raw reply.
func (r *Response) JSON() ([]byte, error) {
	return json.Marshal(r.data)
}

// Err returns an APIError carrying the code and message when the reply is
// not successful, nil otherwise.
func (r *Response) Err() error {
	if r.IsSuccess() {
		return nil
	}
	return newAPIError("", r.Code(), r.Message(), r.data)
}

// OnSuccess calls fn when the reply is successful.
func (r *Response) OnSuccess(fn func(*Response)) *Response {
	if r.IsSuccess() {
		fn(r)
	}
	return r
}

// OnError calls fn when the reply is not successful.
func (r *Response) OnError(fn func(*Response)) *Response {
	if r.IsError() {
		fn(r)
	}
	return r
}

// rtnCode coerces the numeric shapes RtnCode arrives in.
func rtnCode(v any) (int, bool) {
	switch n := v.(type) {
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil || f != float64(int(f)) {
			return 0, false
		}
		return int(f), true
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	default:
		i, ok := toInt64(v)
		return int(i), ok
	}
}
