package question

import (
	"strings"

	"github.com/mcoot/truthdare-go/internal/model"
)

var (
	truthKeywords = []string{"truth", "confess", "tell"}
	dareKeywords  = []string{"dare", "do", "perform"}
)

// InferType guesses a question's type from its text by substring match,
// truth keywords first. Ambiguous text can be misclassified: "Call your ex
// and tell them" reads as TRUTH.
func InferType(text string) (model.QuestionType, bool) {
	lower := strings.ToLower(text)
	for _, kw := range truthKeywords {
		if strings.Contains(lower, kw) {
			return model.QuestionTypeTruth, true
		}
	}
	for _, kw := range dareKeywords {
		if strings.Contains(lower, kw) {
			return model.QuestionTypeDare, true
		}
	}
	return "", false
}

// providerKind maps a mode and optional preference to the provider kind
func providerKind(mode model.GameMode, preferred model.QuestionType) string {
	t, forced := mode.ForcedType()
	if !forced {
		t = preferred
	}
	switch t {
	case model.QuestionTypeTruth:
		return KindTruth
	case model.QuestionTypeDare:
		return KindDare
	default:
		return KindRandom
	}
}
