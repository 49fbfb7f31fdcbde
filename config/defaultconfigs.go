package config

var DefaultConfig Config
var DefaultTheme Theme

func init() {
	DefaultTheme = Theme{
		DrawCheckerboard: true,
		Colors: ConfigColors{
			HiddenColor:      244,
			HiddenColorAlt:   243,
			RevealedColor:    253,
			RevealedColorAlt: 252,
			MineColor:        232,
			FlagColor:        160,
			CursorColorFG:    231,
			CursorColorBG:    25,
			ExplodedColorBG:  196,
			// 1 blue, 2 green, 3 red, 4 navy, 5 maroon, 6 teal, 7 black, 8 gray
			NumberColors: []int{21, 28, 160, 18, 88, 30, 232, 240},
		},
		Symbols: ConfigSymbols{
			Hidden: '■',
			Empty:  '·',
			Mine:   '*',
			Flag:   '⚑',
		},
	}

	DefaultConfig = Config{
		Theme: DefaultTheme,
		Game: GameConfig{
			ShowInstructions: true,
			TickMillis:       1000,
		},
	}
}
