package service

import (
	"strings"

	"github.com/Harshitk-cp/aurora/internal/domain"
)

const (
	MatchedIntensity = 0.9
	NeutralIntensity = 0.5
	EmptyIntensity   = 0.1
)

// SentimentRule maps a set of lower-case keywords to an emotion.
type SentimentRule struct {
	Emotion  domain.Emotion
	Keywords []string
}

// Evaluated top to bottom; the first rule with a matching keyword wins.
var sentimentRules = []SentimentRule{
	{
		Emotion:  domain.EmotionAnger,
		Keywords: []string{"hate", "angry", "broken", "stupid", "annoying", "furious", "worst", "terrible", "useless"},
	},
	{
		Emotion:  domain.EmotionJoy,
		Keywords: []string{"love", "great", "awesome", "happy", "thanks", "thank you", "amazing", "excellent", "perfect"},
	},
	{
		Emotion:  domain.EmotionCuriosity,
		Keywords: []string{"how", "why", "what", "explain", "curious", "wonder"},
	},
	{
		Emotion:  domain.EmotionSadness,
		Keywords: []string{"sad", "depressed", "lonely", "unhappy", "cry", "miss"},
	},
	{
		Emotion:  domain.EmotionOmega,
		Keywords: []string{"singularity", "omega", "transcend", "god mode", "infinity"},
	},
}

// SentimentRules returns the classification rules in priority order.
func SentimentRules() []SentimentRule {
	out := make([]SentimentRule, len(sentimentRules))
	for i, r := range sentimentRules {
		out[i] = SentimentRule{Emotion: r.Emotion, Keywords: append([]string(nil), r.Keywords...)}
	}
	return out
}

// Classify is a pure keyword classifier over the lower-cased text.
func Classify(text string) domain.SentimentResult {
	if strings.TrimSpace(text) == "" {
		return domain.SentimentResult{Emotion: domain.EmotionNeutral, Intensity: EmptyIntensity}
	}
	lower := strings.ToLower(text)
	for _, rule := range sentimentRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				return domain.SentimentResult{Emotion: rule.Emotion, Intensity: MatchedIntensity}
			}
		}
	}
	return domain.SentimentResult{Emotion: domain.EmotionNeutral, Intensity: NeutralIntensity}
}
