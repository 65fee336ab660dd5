package round

type Theme struct {
	Key   string   `json:"key"`
	Icons []string `json:"icons"`
}

func DefaultThemes() []Theme {
	return []Theme{
		{Key: "fruits", Icons: []string{"🍎", "🍌", "🍇", "🍓", "🍊", "🥝", "🍍", "🍉", "🍑", "🍒", "🥭", "🥥"}},
		{Key: "animals", Icons: []string{"🐶", "🐱", "🐭", "🐹", "🐰", "🦊", "🐻", "🐼", "🐨", "🐯", "🦁", "🐮"}},
		{Key: "vehicles", Icons: []string{"🚗", "🚕", "🚌", "🚓", "🚑", "🚒", "🚚", "🚜", "🚲", "🚀", "✈️", "🚢"}},
	}
}
