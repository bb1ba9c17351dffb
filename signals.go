package ecpay

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for SDK events.
var (
	SignalEnvelopeEncoded  = capitan.NewSignal("ecpay.envelope.encoded", "Envelope Data block encrypted")
	SignalResponseDecoded  = capitan.NewSignal("ecpay.response.decoded", "Response Data block decrypted")
	SignalOperationMade    = capitan.NewSignal("ecpay.operation.made", "Factory resolved and built an operation")
	SignalRequestCompleted = capitan.NewSignal("ecpay.request.completed", "HTTP request finished")
)

// Keys for typed event data.
var (
	KeyTarget      = capitan.NewStringKey("target")
	KeyTypeName    = capitan.NewStringKey("type_name")
	KeyRequestPath = capitan.NewStringKey("request_path")
	KeyURL         = capitan.NewStringKey("url")
	KeyStatus      = capitan.NewIntKey("status")
	KeySize        = capitan.NewIntKey("size")
	KeyDuration    = capitan.NewDurationKey("duration")
	KeyError       = capitan.NewErrorKey("error")
)

// emitEncode emits an event when an envelope has been encrypted.
func emitEncode(ctx context.Context, path string, size int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyRequestPath.Field(path),
		KeySize.Field(size),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalEnvelopeEncoded, fields...)
	} else {
		capitan.Emit(ctx, SignalEnvelopeEncoded, fields...)
	}
}

// emitDecode emits an event when a response Data block has been decoded.
func emitDecode(ctx context.Context, path string, err error) {
	fields := []capitan.Field{
		KeyRequestPath.Field(path),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalResponseDecoded, fields...)
	} else {
		capitan.Emit(ctx, SignalResponseDecoded, fields...)
	}
}

// emitMake emits an event when the factory finishes a Make call.
func emitMake(ctx context.Context, target, typeName string, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyTarget.Field(target),
		KeyTypeName.Field(typeName),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalOperationMade, fields...)
	} else {
		capitan.Emit(ctx, SignalOperationMade, fields...)
	}
}

// emitRequest emits an event when a transport round trip finishes.
func emitRequest(ctx context.Context, url string, status int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyURL.Field(url),
		KeyStatus.Field(status),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalRequestCompleted, fields...)
	} else {
		capitan.Emit(ctx, SignalRequestCompleted, fields...)
	}
}
