package translator

import "context"

type identityTranslator struct{}

// NewIdentity returns a Translator that passes text through unchanged.
// Placeholder until a real translation backend is wired in.
func NewIdentity() Translator {
	return identityTranslator{}
}

func (identityTranslator) Translate(_ context.Context, text, _ string) (string, error) {
	return text, nil
}
