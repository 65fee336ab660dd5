package round

import (
	"fmt"
	"sort"
)

// Profile bounds the size of a round.
type Profile struct {
	Key          string `json:"key" mapstructure:"-"`
	MinItems     int    `json:"min_items" mapstructure:"min_items"`
	MaxItems     int    `json:"max_items" mapstructure:"max_items"`
	OptionsCount int    `json:"options_count" mapstructure:"options_count"`
}

const (
	Easy    = "easy"
	Medium  = "medium"
	Hard    = "hard"
	Extreme = "extreme"
)

func DefaultProfiles() map[string]Profile {
	return map[string]Profile{
		Easy:    {Key: Easy, MinItems: 1, MaxItems: 10, OptionsCount: 2},
		Medium:  {Key: Medium, MinItems: 5, MaxItems: 15, OptionsCount: 3},
		Hard:    {Key: Hard, MinItems: 10, MaxItems: 15, OptionsCount: 4},
		Extreme: {Key: Extreme, MinItems: 15, MaxItems: 20, OptionsCount: 4},
	}
}

// Validate checks that the range can supply OptionsCount distinct values.
// Generate relies on this and never checks it itself.
func (p Profile) Validate() error {
	switch {
	case p.MinItems < 1:
		return fmt.Errorf("profile %q: min_items must be at least 1", p.Key)
	case p.MaxItems < p.MinItems:
		return fmt.Errorf("profile %q: max_items %d below min_items %d", p.Key, p.MaxItems, p.MinItems)
	case p.OptionsCount < 1:
		return fmt.Errorf("profile %q: options_count must be at least 1", p.Key)
	case p.MaxItems-p.MinItems+1 < p.OptionsCount:
		return fmt.Errorf("profile %q: range %d-%d too narrow for %d options", p.Key, p.MinItems, p.MaxItems, p.OptionsCount)
	}
	return nil
}

// Sorted returns profiles ordered by difficulty.
func Sorted(profiles map[string]Profile) []Profile {
	out := make([]Profile, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MaxItems != out[j].MaxItems {
			return out[i].MaxItems < out[j].MaxItems
		}
		if out[i].MinItems != out[j].MinItems {
			return out[i].MinItems < out[j].MinItems
		}
		return out[i].Key < out[j].Key
	})
	return out
}
