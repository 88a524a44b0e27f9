package domain

type Emotion string

const (
	EmotionAnger     Emotion = "ANGER"
	EmotionJoy       Emotion = "JOY"
	EmotionCuriosity Emotion = "CURIOSITY"
	EmotionSadness   Emotion = "SADNESS"
	EmotionOmega     Emotion = "OMEGA"
	EmotionNeutral   Emotion = "NEUTRAL"
)

func ValidEmotion(e string) bool {
	switch Emotion(e) {
	case EmotionAnger, EmotionJoy, EmotionCuriosity, EmotionSadness, EmotionOmega, EmotionNeutral:
		return true
	}
	return false
}

// SentimentResult is the per-turn classification of a user message. It is
// never persisted.
type SentimentResult struct {
	Emotion   Emotion `json:"emotion"`
	Intensity float64 `json:"intensity"`
}

// Protocol is the named behavioral directive selected from a sentiment.
type Protocol string

const (
	ProtocolDeEscalation Protocol = "DE-ESCALATION"
	ProtocolCelebration  Protocol = "CELEBRATION"
	ProtocolTeacher      Protocol = "TEACHER"
	ProtocolEmpathy      Protocol = "EMPATHY"
	ProtocolOmega        Protocol = "OMEGA"
	ProtocolNeutral      Protocol = "NEUTRAL"
)

// ProtocolFor maps an emotion to its protocol. Unknown emotions fall back to NEUTRAL.
func ProtocolFor(e Emotion) Protocol {
	switch e {
	case EmotionAnger:
		return ProtocolDeEscalation
	case EmotionJoy:
		return ProtocolCelebration
	case EmotionCuriosity:
		return ProtocolTeacher
	case EmotionSadness:
		return ProtocolEmpathy
	case EmotionOmega:
		return ProtocolOmega
	default:
		return ProtocolNeutral
	}
}
