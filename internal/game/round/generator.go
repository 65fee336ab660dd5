// Package round builds the items and answer choices for one counting turn.
package round

import (
	"math/rand"
	"time"
)

// Rand is the subset of *rand.Rand the generator draws from.
type Rand interface {
	Intn(n int) int
}

// Round is the generated content of a turn.
type Round struct {
	CorrectAnswer int
	ItemCount     int
	Options       []int
	Theme         string
	Icon          string
}

type Generator struct {
	rnd    Rand
	themes []Theme
}

// NewGenerator uses rnd (a time-seeded source when nil) and themes
// (DefaultThemes when empty).
func NewGenerator(rnd Rand, themes []Theme) *Generator {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if len(themes) == 0 {
		themes = DefaultThemes()
	}
	return &Generator{rnd: rnd, themes: themes}
}

// Generate draws a round for p. p must satisfy Validate.
func (g *Generator) Generate(p Profile) Round {
	answer := g.between(p.MinItems, p.MaxItems)

	theme := g.themes[g.rnd.Intn(len(g.themes))]
	icon := ""
	if len(theme.Icons) > 0 {
		icon = theme.Icons[g.rnd.Intn(len(theme.Icons))]
	}

	options := []int{answer}
	seen := map[int]bool{answer: true}
	for len(options) < p.OptionsCount {
		v := g.between(p.MinItems, p.MaxItems)
		if seen[v] {
			continue
		}
		seen[v] = true
		options = append(options, v)
	}
	g.shuffle(options)

	return Round{
		CorrectAnswer: answer,
		ItemCount:     answer,
		Options:       options,
		Theme:         theme.Key,
		Icon:          icon,
	}
}

func (g *Generator) between(min, max int) int {
	return min + g.rnd.Intn(max-min+1)
}

// shuffle is Fisher-Yates.
func (g *Generator) shuffle(v []int) {
	for i := len(v) - 1; i > 0; i-- {
		j := g.rnd.Intn(i + 1)
		v[i], v[j] = v[j], v[i]
	}
}
