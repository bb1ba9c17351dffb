package ecpay

// RawContent is an operation whose Data block is filled in by the caller.
// It only enforces the base MerchantID check.
type RawContent struct {
	*Content
}

// NewRawContent returns an empty raw operation. The Data block starts with
// the merchant id so the base check passes once the caller adds fields.
func NewRawContent(merchantID, hashKey, hashIV string) *RawContent {
	op := &RawContent{}
	op.Content = NewContent(merchantID, hashKey, hashIV, op)
	return op
}

// InitContent seeds Data with the merchant id.
func (r *RawContent) InitContent(c *Content) {
	c.Set(FieldMerchantID, c.MerchantID())
}

// Validation runs the base MerchantID check.
func (r *RawContent) Validation(c *Content) error {
	return c.ValidateBase(false)
}
