package config

import "runtime"

// Default returns a configuration matching the stock asset pack.
func Default() *Config {
	return &Config{
		Paths: Paths{
			CardsFile:  "data/cards.csv",
			SigilsFile: "data/sigils.csv",
			TraitsFile: "data/traits.csv",
			AssetsDir:  "assets",
			FontsDir:   "data/fonts",
			ExportsDir: "exports",
			LogFile:    "error.log",
			Workers:    runtime.NumCPU(),
		},
		Layout: Layout{
			SigilImgSpace:            150,
			SigilSpace:               720,
			SigilImgScale:            100,
			SigilName:                40,
			SigilDescription:         30,
			TraitDescription:         30,
			SigilDescriptionIconSize: 30,
			TraitDescriptionIconSize: 30,
			SigilTopHeight:           640,
			SigilLowerTopHeight:      800,
			SigilLeftBorder:          60,
			ConduitTopHeight:         620,
			Name:                     80,
			CardNameTopHeight:        30,
			CardNameLeft:             60,
			MaxNameWidth:             600,
			FlavorText:               26,
			FlavorTextTopHeight:      1000,
			FlavorTextLeft:           300,
			FlavorTextWidth:          700,
			MaxFlavorTextWidth:       640,
			DescriptionTop:           585,
			CostBottom:               330,
			CostRightBorder:          780,
			Stats:                    90,
			HealthCoord:              Point{700, 900},
			MaxCommonHeight:          880,
			MaxCommonTerrainHeight:   930,
			MaxUncommonHeight:        870,
			MaxUncommonTerrainHeight: 920,
			MaxRareHeight:            map[string]int{},
			MaxRareTerrainHeight:     map[string]int{},
		},
		Flags: Flags{
			AllowDefaultFormatting:   true,
			AllowShorterFormatting:   true,
			AllowBaseGameDisplay:     true,
			AllowCardBottomRemoval:   true,
			PrioritizeRemovingBottom: false,
			WriteCardDescription:     true,
			BloodlessOutline:         true,
			ConduitTribeOverlay:      true,
		},
		Costs: Costs{
			Margin:   10,
			Blood:    CostKind{Overlap: 0},
			Bones:    CostKind{Overlap: 10, BigThreshold: 4},
			Distress: CostKind{Overlap: 30, BigThreshold: 6},
			Energy:   CostKind{BigThreshold: 6},
			Gems:     CostKind{Overlap: 10},
		},
		Export: Export{
			NormalFormatting:  true,
			Traitline:         "None",
			ProofSheetColumns: 5,
		},
		Icons:          map[string]bool{"sigil": true},
		TextColors:     map[string]RGB{},
		PowerCoord:     map[string]Point{},
		AttackSigilBox: map[string]Box{},
	}
}
