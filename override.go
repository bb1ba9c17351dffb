package ecpay

// Override interfaces let operations supply behaviour that would otherwise
// be derived from struct tags or passed in by the caller.

// Maskable supplies the mask rules for an operation's payloads.
// NewTranscript uses them when it is given no rules.
type Maskable interface {
	// MaskRules returns payload keys mapped to mask types.
	MaskRules() map[string]MaskType
}

// rulesFor returns rules, or the operation's own rules when rules is empty.
func rulesFor(op Operation, rules map[string]MaskType) map[string]MaskType {
	if len(rules) > 0 {
		return rules
	}
	if m, ok := op.(Maskable); ok {
		return m.MaskRules()
	}
	return nil
}
