package backup

// DefaultPolicy returns the policy used when no tokens are given:
// back up at save time with DefaultExt using the built-in copy.
func DefaultPolicy() Policy {
	return Policy{
		Timing: AtSave,
		Ext:    DefaultExt,
	}
}

// Resolve folds tokens into a Policy, starting from DefaultPolicy.
//
// Each token class overrides the previous value of its class, so the last
// timing keyword wins when both Load and Save are present. Nil tokens, nil
// actions, empty extensions and Token implementations from other packages
// are ignored. Resolve never fails.
func Resolve(tokens ...Token) Policy {
	p := DefaultPolicy()
	for _, tok := range tokens {
		switch v := tok.(type) {
		case timingToken:
			p.Timing = Timing(v)
		case extToken:
			// An empty suffix would name the file itself.
			if v != "" {
				p.Ext = string(v)
			}
		case funcToken:
			if v != nil {
				p.Action = Action(v)
			}
		}
	}
	return p
}

// ParseToken classifies a raw string: "load" and "save" are timing keywords,
// anything else is an extension.
func ParseToken(s string) Token {
	switch s {
	case "load":
		return Load()
	case "save":
		return Save()
	default:
		return Ext(s)
	}
}

// ParseTokens applies ParseToken to each element of raw.
func ParseTokens(raw []string) []Token {
	tokens := make([]Token, 0, len(raw))
	for _, s := range raw {
		tokens = append(tokens, ParseToken(s))
	}
	return tokens
}
