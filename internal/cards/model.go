package cards

import (
	"fmt"
	"strconv"
	"strings"
)

// Tiers recognised by the layout tables.
const (
	TierCommon   = "Common"
	TierUncommon = "Uncommon"
	TierRare     = "Rare"
	TierSideDeck = "Side Deck"
	TierTalking  = "Talking"
)

// Record is one CSV row keyed by header.
type Record map[string]string

// Name identifies the row in logs and selections.
func (r Record) Name() string {
	if n, ok := r["Card Name"]; ok {
		return n
	}
	return r["Name"]
}

type Card struct {
	Name       string   `json:"name"`
	Tier       string   `json:"tier"`
	Temple     string   `json:"temple"`
	Cost       string   `json:"cost"`
	Tribes     []string `json:"tribes"`
	Sigils     []string `json:"sigils"`
	Tokens     []string `json:"tokens"`
	Traits     []string `json:"traits"`
	FlavorText string   `json:"flavor_text"`
	Health     int      `json:"health"`
	Power      int      `json:"power"`
}

func parseListCell(s, sep string) []string {
	if s == "None" || s == "" {
		return nil
	}
	return strings.Split(s, sep)
}

func parseStat(s string) (int, error) {
	switch strings.TrimSpace(s) {
	case "x", "X", "":
		return 0, nil
	}
	return strconv.Atoi(strings.TrimSpace(s))
}

// ParseCard reads the card table's columns.
func ParseCard(rec Record) (Card, error) {
	c := Card{
		Name:       rec["Card Name"],
		Tier:       rec["Tier"],
		Temple:     rec["Temple"],
		Cost:       rec["Cost"],
		Tribes:     parseListCell(rec["Tribes"], " "),
		Sigils:     parseListCell(rec["Sigils"], ", "),
		Tokens:     parseListCell(rec["Token"], ", "),
		Traits:     parseListCell(rec["Traits"], ", "),
		FlavorText: rec["Flavor Text"],
	}
	if c.Name == "" {
		return c, &DataError{Field: "Card Name", Err: fmt.Errorf("empty")}
	}
	var err error
	if c.Health, err = parseStat(rec["Health"]); err != nil {
		return c, &DataError{Card: c.Name, Field: "Health", Err: err}
	}
	if c.Power, err = parseStat(rec["Power"]); err != nil {
		return c, &DataError{Card: c.Name, Field: "Power", Err: err}
	}
	return c, nil
}

// Bloodless reports whether the card uses the terrain variant of the card back.
func (c Card) Bloodless() bool {
	return contains(c.Sigils, "Bloodless") || contains(c.Traits, "Bloodless")
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
