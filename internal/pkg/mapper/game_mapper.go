package mapper

import (
	httpEntity "github.com/dd13556li/count/internal/delivery/http/entity"
	"github.com/dd13556li/count/internal/game/round"
)

// ConvertToDifficultyResponse converts a difficulty profile to its API shape.
func ConvertToDifficultyResponse(p round.Profile) httpEntity.DifficultyResponse {
	return httpEntity.DifficultyResponse{
		Key:          p.Key,
		MinItems:     p.MinItems,
		MaxItems:     p.MaxItems,
		OptionsCount: p.OptionsCount,
	}
}

// ConvertToDifficultyResponses keeps the profiles in difficulty order.
func ConvertToDifficultyResponses(profiles map[string]round.Profile) []httpEntity.DifficultyResponse {
	sorted := round.Sorted(profiles)
	res := make([]httpEntity.DifficultyResponse, 0, len(sorted))
	for _, p := range sorted {
		res = append(res, ConvertToDifficultyResponse(p))
	}
	return res
}
