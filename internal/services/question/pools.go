package question

import "github.com/mcoot/truthdare-go/internal/model"

var truthPool = []string{
	"What's the most embarrassing thing that's ever happened to you?",
	"What's a secret you've never told anyone?",
	"Who was your first crush?",
	"What's your biggest fear?",
	"What's the worst lie you've ever told?",
	"What's something you're ashamed of?",
	"Who do you have a crush on right now?",
	"What's the most trouble you've ever gotten into?",
	"What's one thing you wish you could change about yourself?",
	"What's your guilty pleasure?",
}

var darePool = []string{
	"Do your best impression of someone in the room",
	"Call your ex and tell them you miss them",
	"Eat a spoonful of a condiment of the group's choice",
	"Let someone go through your phone for 1 minute",
	"Do 20 push-ups",
	"Sing a song chosen by the group",
	"Dance with no music for 1 minute",
	"Let the group post a status on your social media",
	"Text someone you haven't talked to in a year",
	"Do your best celebrity impression",
}

// FallbackPool returns the local questions for t
func FallbackPool(t model.QuestionType) []string {
	switch t {
	case model.QuestionTypeTruth:
		return truthPool
	case model.QuestionTypeDare:
		return darePool
	default:
		panic("question: no fallback pool for type " + string(t))
	}
}
