package deck

import (
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/youruser/cardgen/internal/util"
)

// ExportDeckText renders the deck as "<count>x<name>" lines sorted by name.
func ExportDeckText(d Deck) string {
	lines := []string{}
	if d.Name != "" {
		lines = append(lines, "# "+d.Name)
	}
	names := make([]string, 0, len(d.Cards))
	for name := range d.Cards {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		lines = append(lines, strings.TrimSpace(strconv.Itoa(d.Cards[name])+"x"+name))
	}
	return strings.Join(lines, "\n")
}

// WriteFile saves the deck list to path.
func WriteFile(d Deck, path string) error {
	if err := util.EnsureParent(path); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(ExportDeckText(d)+"\n"), 0o644)
}
