package game

import (
	"fmt"
	"time"

	"github.com/dd13556li/count/internal/game/round"
)

type Rules struct {
	TotalTurns       int
	PointsPerCorrect int
	NextTurnDelay    time.Duration
}

func DefaultRules() Rules {
	return Rules{
		TotalTurns:       10,
		PointsPerCorrect: 10,
		NextTurnDelay:    1500 * time.Millisecond,
	}
}

type Tier string

const (
	TierPerfect   Tier = "perfect"
	TierHigh      Tier = "high"
	TierMid       Tier = "mid"
	TierEncourage Tier = "encourage"
)

const (
	highPercent = 80
	midPercent  = 60
)

var tierMessages = map[Tier]string{
	TierPerfect:   "太厲害了，你%d題全部答對了，恭喜你得到%d分！",
	TierHigh:      "很棒喔，你總共答對了%d題，恭喜你得到了%d分。",
	TierMid:       "不錯喔，你總共答對了%d題，恭喜你得到了%d分。",
	TierEncourage: "要再加油喔，你總共答對了%d題，你得到了%d分。",
}

type Summary struct {
	Score   int    `json:"score"`
	Correct int    `json:"correct"`
	Total   int    `json:"total"`
	Tier    Tier   `json:"tier"`
	Message string `json:"message"`
}

// Session keeps score across the turns of one difficulty choice.
type Session struct {
	rules     Rules
	profile   round.Profile
	score     int
	turnIndex int
}

func NewSession(rules Rules) *Session {
	return &Session{rules: rules}
}

// Start resets the score and turn count for a new round at profile p.
func (s *Session) Start(p round.Profile) {
	s.profile = p
	s.score = 0
	s.turnIndex = 0
}

func (s *Session) RecordTurn(correct bool) {
	s.turnIndex++
	if correct {
		s.score += s.rules.PointsPerCorrect
	}
}

func (s *Session) Complete() bool {
	return s.turnIndex >= s.rules.TotalTurns
}

func (s *Session) Score() int { return s.score }
func (s *Session) TurnIndex() int { return s.turnIndex }
func (s *Session) TotalTurns() int { return s.rules.TotalTurns }
func (s *Session) Profile() round.Profile { return s.profile }

func (s *Session) Summary() Summary {
	max := s.rules.TotalTurns * s.rules.PointsPerCorrect
	correct := 0
	if s.rules.PointsPerCorrect > 0 {
		correct = s.score / s.rules.PointsPerCorrect
	}

	tier := TierEncourage
	switch {
	case s.score >= max:
		tier = TierPerfect
	case s.score*100 >= max*highPercent:
		tier = TierHigh
	case s.score*100 >= max*midPercent:
		tier = TierMid
	}

	return Summary{
		Score:   s.score,
		Correct: correct,
		Total:   s.rules.TotalTurns,
		Tier:    tier,
		Message: fmt.Sprintf(tierMessages[tier], correct, s.score),
	}
}
