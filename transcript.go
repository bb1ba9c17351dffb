package ecpay

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Transcript records one request/response exchange with personal data
// masked. Fingerprint hashes the unmasked request so two transcripts of
// the same request can be matched without storing it in clear.
type Transcript struct {
	ID          string    `json:"id" yaml:"id" bson:"id"`
	Operation   string    `json:"operation" yaml:"operation" bson:"operation"`
	RequestPath string    `json:"request_path" yaml:"request_path" bson:"request_path"`
	RecordedAt  time.Time `json:"recorded_at" yaml:"recorded_at" bson:"recorded_at"`
	Request     Payload   `json:"request" yaml:"request" bson:"request"`
	Envelope    Payload   `json:"envelope,omitempty" yaml:"envelope,omitempty" bson:"envelope,omitempty"`
	Response    Payload   `json:"response,omitempty" yaml:"response,omitempty" bson:"response,omitempty"`
	Fingerprint string    `json:"fingerprint" yaml:"fingerprint" bson:"fingerprint"`
}

// NewTranscript captures op's plaintext payload, masked with rules, along
// with the encrypted envelope and the reply when they are known. With no
// rules, an operation implementing Maskable supplies its own.
func NewTranscript(name string, op Operation, envelope, response Payload, rules map[string]MaskType) (*Transcript, error) {
	rules = rulesFor(op, rules)

	plain, err := op.Payload()
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(plain)
	if err != nil {
		return nil, &PayloadError{Reason: "encode transcript", Cause: err}
	}
	fingerprint, err := SHA256Hasher().Hash(raw)
	if err != nil {
		return nil, err
	}

	return &Transcript{
		ID:          uuid.NewString(),
		Operation:   name,
		RequestPath: op.RequestPath(),
		RecordedAt:  time.Now().UTC(),
		Request:     MaskPayload(plain, rules),
		Envelope:    envelope.Clone(),
		Response:    MaskPayload(response, rules),
		Fingerprint: fingerprint,
	}, nil
}

// Marshal encodes the transcript with c.
func (t *Transcript) Marshal(c Codec) ([]byte, error) {
	data, err := c.Marshal(t)
	if err != nil {
		return nil, &PayloadError{Reason: "marshal transcript as " + c.ContentType(), Cause: err}
	}
	return data, nil
}

// UnmarshalTranscript decodes a transcript written by Marshal.
func UnmarshalTranscript(c Codec, data []byte) (*Transcript, error) {
	var t Transcript
	if err := c.Unmarshal(data, &t); err != nil {
		return nil, &PayloadError{Reason: "unmarshal transcript as " + c.ContentType(), Cause: err}
	}
	return &t, nil
}
