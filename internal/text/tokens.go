package text

import (
	"sort"
	"strings"
)

type Kind int

const (
	Word Kind = iota
	Icon
	ColonSep
)

func (k Kind) String() string {
	switch k {
	case Word:
		return "word"
	case Icon:
		return "icon"
	case ColonSep:
		return "colon"
	default:
		return "unknown"
	}
}

// Token is one unbreakable unit of the wrap stream. Icon tokens carry the
// marker content, e.g. "sigil:Airborne".
type Token struct {
	Kind Kind
	Text string
}

// AssetName maps an icon marker to its asset: "sigil:X" -> "sigils/X", anything
// else -> "icons/<name>".
func (t Token) AssetName() string {
	name := t.Text
	if i := strings.Index(name, ":"); i >= 0 {
		name = name[i+1:]
	}
	if strings.Contains(t.Text, "sigil") {
		return "sigils/" + name
	}
	return "icons/" + name
}

// Tokenize splits a description into words, colon separators and inline icons.
// Icon markers are written [kind:name]; a marker is kept only when its content
// contains an enabled key of icons (keys are tried in sorted order).
func Tokenize(description string, icons map[string]bool) []Token {
	description = strings.ReplaceAll(description, `"`, "''")
	parts := strings.Split(description, "[")
	segments := parts
	if len(parts) > 1 {
		segments = []string{parts[0]}
		for _, p := range parts[1:] {
			segments = append(segments, strings.Split(p, "]")...)
		}
	}

	keys := make([]string, 0, len(icons))
	for k := range icons {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out []Token
	for i, seg := range segments {
		if i%2 == 0 {
			clauses := strings.Split(seg, ":")
			for j, clause := range clauses {
				for _, w := range strings.Fields(clause) {
					out = append(out, Token{Kind: Word, Text: w})
				}
				if j != len(clauses)-1 {
					out = append(out, Token{Kind: ColonSep, Text: ":"})
				}
			}
			continue
		}
		for _, k := range keys {
			if !strings.Contains(seg, k) {
				continue
			}
			if icons[k] {
				if n := len(out); n > 0 && out[n-1].Kind == Word {
					out[n-1].Text += " "
				}
				out = append(out, Token{Kind: Icon, Text: seg})
			}
			break
		}
	}
	return out
}
