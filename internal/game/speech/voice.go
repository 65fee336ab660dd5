package speech

import "strings"

type Voice struct {
	Name string `json:"name" validate:"required"`
	Lang string `json:"lang" validate:"required"`
}

// PreferredVoices are tried in order among voices of the wanted language.
var PreferredVoices = []string{"Microsoft HsiaoChen Online", "Google 國語"}

// SelectVoice picks a voice for lang, favouring the names in preferred.
func SelectVoice(voices []Voice, lang string, preferred []string) (Voice, bool) {
	var matching []Voice
	for _, v := range voices {
		if v.Lang == lang {
			matching = append(matching, v)
		}
	}
	if len(matching) == 0 {
		return Voice{}, false
	}

	for _, name := range preferred {
		for _, v := range matching {
			if strings.Contains(v.Name, name) {
				return v, true
			}
		}
	}
	return matching[0], true
}
