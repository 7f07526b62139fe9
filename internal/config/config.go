package config

import (
	"fmt"
	"image/color"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config is the read-only configuration shared by every render.
type Config struct {
	Paths   Paths    `yaml:"paths"`
	Layout  Layout   `yaml:"layout"`
	Flags   Flags    `yaml:"flags"`
	Costs   Costs    `yaml:"costs"`
	Export  Export   `yaml:"export"`
	Temples []string `yaml:"temples"`

	// Icons enables inline description icons by marker keyword.
	Icons          map[string]bool  `yaml:"icons"`
	TextColors     map[string]RGB   `yaml:"text_colors"`
	PowerCoord     map[string]Point `yaml:"power_coord"`
	AttackSigilBox map[string]Box   `yaml:"attack_sigil_box"`
}

type Paths struct {
	CardsFile     string `yaml:"cards_file" env:"CARDGEN_CARDS_FILE"`
	SigilsFile    string `yaml:"sigils_file" env:"CARDGEN_SIGILS_FILE"`
	TraitsFile    string `yaml:"traits_file" env:"CARDGEN_TRAITS_FILE"`
	AssetsDir     string `yaml:"assets_dir" env:"CARDGEN_ASSETS_DIR"`
	AssetsBaseURL string `yaml:"assets_base_url" env:"CARDGEN_ASSETS_BASE_URL"`
	FontsDir      string `yaml:"fonts_dir" env:"CARDGEN_FONTS_DIR"`
	Font          string `yaml:"font" env:"CARDGEN_FONT"`
	ExportsDir    string `yaml:"exports_dir" env:"CARDGEN_EXPORTS_DIR"`
	LogFile       string `yaml:"log_file" env:"CARDGEN_LOG_FILE"`
	Workers       int    `yaml:"workers" env:"CARDGEN_WORKERS"`
}

// Layout holds pixel constants. Sizes are font pixel heights.
type Layout struct {
	SigilImgSpace            int `yaml:"sigil_img_space"`
	SigilSpace               int `yaml:"sigil_space"`
	SigilImgScale            int `yaml:"sigil_img_scale"`
	SigilName                int `yaml:"sigil_name"`
	SigilDescription         int `yaml:"sigil_description"`
	TraitDescription         int `yaml:"trait_description"`
	SigilDescriptionIconSize int `yaml:"sigil_description_icon_size"`
	TraitDescriptionIconSize int `yaml:"trait_description_icon_size"`

	SigilTopHeight      int `yaml:"sigil_top_height"`
	SigilLowerTopHeight int `yaml:"sigil_lower_top_height"`
	SigilLeftBorder     int `yaml:"sigil_left_border"`
	ConduitTopHeight    int `yaml:"conduit_top_height"`

	Name              int `yaml:"name"`
	CardNameTopHeight int `yaml:"card_name_top_height"`
	CardNameLeft      int `yaml:"card_name_left_border"`
	MaxNameWidth      int `yaml:"max_name_width"`

	FlavorText          int `yaml:"flavor_text"`
	FlavorTextTopHeight int `yaml:"flavor_text_top_height"`
	FlavorTextLeft      int `yaml:"flavor_text_left"`
	FlavorTextWidth     int `yaml:"flavor_text_width"`
	MaxFlavorTextWidth  int `yaml:"max_flavor_text_width"`
	DescriptionTop      int `yaml:"description_top_height"`

	CostBottom      int `yaml:"cost_bottom"`
	CostRightBorder int `yaml:"cost_right_border"`

	Stats       int   `yaml:"stats"`
	HealthCoord Point `yaml:"health_coord"`

	MaxCommonHeight          int            `yaml:"max_common_height"`
	MaxCommonTerrainHeight   int            `yaml:"max_common_terrain_height"`
	MaxUncommonHeight        int            `yaml:"max_uncommon_height"`
	MaxUncommonTerrainHeight int            `yaml:"max_uncommon_terrain_height"`
	MaxRareHeight            map[string]int `yaml:"max_rare_height"`
	MaxRareTerrainHeight     map[string]int `yaml:"max_rare_terrain_height"`
}

// SigilDescSpace is the width left for sigil text next to the icon.
func (l Layout) SigilDescSpace() int {
	return l.SigilSpace - 5 - l.SigilImgSpace
}

type Flags struct {
	AllowDefaultFormatting   bool `yaml:"allow_default_formatting"`
	AllowShorterFormatting   bool `yaml:"allow_shorter_formatting"`
	AllowBaseGameDisplay     bool `yaml:"allow_base_game_display"`
	AllowCardBottomRemoval   bool `yaml:"allow_card_bottom_removal"`
	PrioritizeRemovingBottom bool `yaml:"prioritize_removing_bottom"`
	ShowOutlineOnly          bool `yaml:"show_outline_only"`
	TraitsAtBottom           bool `yaml:"traits_at_bottom"`
	CenterCardName           bool `yaml:"center_card_name"`
	TextOverArt              bool `yaml:"text_over_art"`
	WriteCardDescription     bool `yaml:"write_card_description"`
	BloodlessOutline         bool `yaml:"bloodless_outline"`
	ShowBloodlessText        bool `yaml:"show_bloodless_text"`
	BloodlessSigilToTrait    bool `yaml:"bloodless_sigil_to_trait"`
	ConduitTribeOverlay      bool `yaml:"conduit_tribe_overlay"`
	AttackSigilOnPowerStat   bool `yaml:"attack_sigil_on_power_stat"`
	RemovePowerStat          bool `yaml:"remove_power_stat_when_attack_sigil_present"`
}

// CostKind configures how repeated unit glyphs of one cost kind are joined.
type CostKind struct {
	Overlap int `yaml:"overlap"`
	// BigThreshold switches to a single pre-rendered glyph above this amount. 0 disables it.
	BigThreshold int `yaml:"big_threshold"`
}

type Costs struct {
	Margin   int      `yaml:"margin"`
	Blood    CostKind `yaml:"blood"`
	Bones    CostKind `yaml:"bones"`
	Distress CostKind `yaml:"distress"`
	Energy   CostKind `yaml:"energy"`
	Gems     CostKind `yaml:"gems"`
}

type Export struct {
	Color                RGB    `yaml:"color"`
	SortedByFolder       bool   `yaml:"sorted_by_folder"`
	NormalFormatting     bool   `yaml:"normal_formatting"`
	ShorterFormatting    bool   `yaml:"shorter_formatting"`
	BaseGameFormatting   bool   `yaml:"base_game_formatting"`
	SigilPatches         bool   `yaml:"sigil_patches"`
	SigilDescriptionIcon bool   `yaml:"sigil_description_icon"`
	TraitDescriptionIcon bool   `yaml:"trait_description_icon"`
	Traitline            string `yaml:"traitline"`
	ProofSheet           bool   `yaml:"proof_sheet"`
	ProofSheetQRText     string `yaml:"proof_sheet_qr_text"`
	ProofSheetColumns    int    `yaml:"proof_sheet_columns"`
}

// RGB decodes from a YAML [r, g, b] list.
type RGB struct{ R, G, B uint8 }

func (c *RGB) UnmarshalYAML(value *yaml.Node) error {
	var v []uint8
	if err := value.Decode(&v); err != nil {
		return err
	}
	if len(v) != 3 {
		return fmt.Errorf("line %d: color needs 3 components, got %d", value.Line, len(v))
	}
	*c = RGB{v[0], v[1], v[2]}
	return nil
}

func (c RGB) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// Point decodes from a YAML [x, y] list.
type Point struct{ X, Y int }

func (p *Point) UnmarshalYAML(value *yaml.Node) error {
	var v []int
	if err := value.Decode(&v); err != nil {
		return err
	}
	if len(v) != 2 {
		return fmt.Errorf("line %d: coordinate needs 2 components, got %d", value.Line, len(v))
	}
	*p = Point{v[0], v[1]}
	return nil
}

// Box decodes from a YAML [x0, y0, x1, y1] list.
type Box struct{ X0, Y0, X1, Y1 int }

func (b *Box) UnmarshalYAML(value *yaml.Node) error {
	var v []int
	if err := value.Decode(&v); err != nil {
		return err
	}
	if len(v) != 4 {
		return fmt.Errorf("line %d: box needs 4 components, got %d", value.Line, len(v))
	}
	*b = Box{v[0], v[1], v[2], v[3]}
	return nil
}

// Load reads a YAML file over the defaults, applies env overrides and validates.
func Load(path string) (*Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the tables that renders index by temple.
func (c *Config) Validate() error {
	if len(c.Temples) == 0 {
		return fmt.Errorf("config: temples must not be empty")
	}
	seen := map[string]bool{}
	for _, t := range c.Temples {
		if seen[t] {
			return fmt.Errorf("config: duplicate temple %q", t)
		}
		seen[t] = true
	}
	for _, t := range c.Temples {
		if _, ok := c.TextColors[t]; !ok {
			return fmt.Errorf("config: text_colors missing temple %q", t)
		}
		if _, ok := c.PowerCoord[t]; !ok {
			return fmt.Errorf("config: power_coord missing temple %q", t)
		}
	}
	f := c.Flags
	if !f.AllowDefaultFormatting && !f.AllowShorterFormatting && !f.AllowBaseGameDisplay {
		return fmt.Errorf("config: at least one sigil formatting mode must be allowed")
	}
	if c.Layout.SigilDescSpace() <= 0 {
		return fmt.Errorf("config: sigil_space too small for sigil_img_space")
	}
	if c.Paths.Workers <= 0 {
		c.Paths.Workers = runtime.NumCPU()
	}
	return nil
}

// HasTemple reports whether t is one of the configured temples.
func (c *Config) HasTemple(t string) bool {
	for _, x := range c.Temples {
		if x == t {
			return true
		}
	}
	return false
}

// TextColor returns the temple's text color, black when unknown.
func (c *Config) TextColor(temple string) color.NRGBA {
	if rgb, ok := c.TextColors[temple]; ok {
		return rgb.NRGBA()
	}
	return color.NRGBA{A: 0xff}
}
