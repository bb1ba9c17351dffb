package ecpay

import (
	"context"
	"strings"
)

// Client sends operations to one API host.
type Client struct {
	BaseURL   string
	Transport *Transport
}

// NewClient returns a client for baseURL. A nil transport uses the defaults.
func NewClient(baseURL string, transport *Transport) *Client {
	if transport == nil {
		transport = NewTransport(DefaultTransportConfig())
	}
	return &Client{BaseURL: baseURL, Transport: transport}
}

// Execute encrypts op, posts it and wraps the reply. When the reply
// carries an encrypted Data string it is decoded with the operation's
// encoder and exposed through Response.DecodedData.
func (c *Client) Execute(ctx context.Context, op Operation) (*Response, error) {
	envelope, err := op.Envelope()
	if err != nil {
		return nil, err
	}

	reply, err := c.Transport.Post(ctx, c.URL(op.RequestPath()), envelope)
	if err != nil {
		return nil, err
	}

	resp := NewResponse(reply)
	data, ok := reply[FieldData].(string)
	if !ok || data == "" {
		return resp, nil
	}

	encoder, err := op.PayloadEncoder()
	if err != nil {
		return resp, err
	}
	decoded, err := encoder.DecodeData(data)
	emitDecode(ctx, op.RequestPath(), err)
	if err != nil {
		return resp, err
	}
	return resp.SetDecodedData(decoded), nil
}

// URL joins the base URL and a request path.
func (c *Client) URL(path string) string {
	if path == "" {
		return c.BaseURL
	}
	return strings.TrimRight(c.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")
}
