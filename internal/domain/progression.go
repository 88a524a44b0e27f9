package domain

const (
	// ExperiencePerTurn is awarded once for every chat turn.
	ExperiencePerTurn = 10
	// experiencePerLevel scales the level-up threshold.
	experiencePerLevel = 100
)

type Progression struct {
	ExperiencePoints int  `json:"experiencePoints"`
	Level            int  `json:"level"`
	LeveledUp        bool `json:"leveledUp"`
}

// LevelThreshold is the experience total at which the given level is left.
func LevelThreshold(level int) int {
	return level * experiencePerLevel
}

// AwardTurn applies one turn of experience to the state. Only a single
// level is granted per turn even if the threshold is overshot.
func (s *MemoryState) AwardTurn() Progression {
	s.ExperiencePoints += ExperiencePerTurn
	leveledUp := false
	if s.ExperiencePoints >= LevelThreshold(s.Level) {
		s.Level++
		leveledUp = true
	}
	return Progression{
		ExperiencePoints: s.ExperiencePoints,
		Level:            s.Level,
		LeveledUp:        leveledUp,
	}
}
