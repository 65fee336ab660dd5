package game

import (
	"fmt"
	"strconv"

	"github.com/dd13556li/count/internal/game/numeral"
	"github.com/dd13556li/count/internal/game/round"
)

// Phrases lists every line a game can narrate for the given profiles,
// except the summary message.
func Phrases(profiles map[string]round.Profile) []string {
	largest := 0
	for _, p := range profiles {
		if p.MaxItems > largest {
			largest = p.MaxItems
		}
	}

	phrases := []string{promptText, optionsCueText, correctText}
	for n := 1; n <= largest; n++ {
		phrases = append(phrases, strconv.Itoa(n), fmt.Sprintf(wrongTextFormat, n))
		if c, err := numeral.Count(n); err == nil {
			phrases = append(phrases, c)
		}
	}
	return phrases
}
