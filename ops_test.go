package ecpay

// testIssue is a minimal operation used across the package tests.
type testIssue struct {
	*Content
}

func newTestIssue(merchantID, hashKey, hashIV string) *testIssue {
	op := &testIssue{}
	op.Content = NewContent(merchantID, hashKey, hashIV, op)
	op.SetRequestPath("/B2CInvoice/Issue")
	return op
}

func (o *testIssue) InitContent(c *Content) {
	c.SetData(map[string]any{
		"MerchantID":   c.MerchantID(),
		"RelateNumber": "",
	})
}

func (o *testIssue) Validation(c *Content) error {
	if err := c.ValidateBase(false); err != nil {
		return err
	}
	if v, _ := c.Get("RelateNumber"); v == "" {
		return newRequiredError("RelateNumber")
	}
	return nil
}

// testQuery has no initializer hook.
type testQuery struct {
	*Content
}

func newTestQuery(merchantID, hashKey, hashIV string) *testQuery {
	op := &testQuery{}
	op.Content = NewContent(merchantID, hashKey, hashIV, op)
	op.SetRequestPath("/B2CInvoice/GetIssue")
	return op
}

func (o *testQuery) Validation(c *Content) error {
	return c.ValidateBase(true)
}
