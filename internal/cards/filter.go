package cards

import "strings"

type span struct{ start, end string }

// Selection decides which rows of a table to export from a user inclusion list
// such as "Adder,Bee:Squirrel,Cat". "A:B" selects every row from A through B in
// table order. An empty list selects everything.
//
// Matching is stateful and must see rows in table order. Range ends are checked
// before standalone names, and open ranges before closed ones; the first match
// wins.
type Selection struct {
	all     bool
	names   []string
	spans   []span
	open    []string
	inRange bool
}

// ParseSelection reads a comma-separated inclusion list.
func ParseSelection(list string) *Selection {
	if strings.TrimSpace(list) == "" {
		return &Selection{all: true}
	}
	var items []string
	for _, it := range strings.Split(list, ",") {
		items = append(items, strings.ToUpper(strings.TrimSpace(it)))
	}
	return NewSelection(items)
}

// NewSelection takes upper-cased items. Ranges are pulled out scanning from the
// end, so they are tried in reverse order of appearance.
func NewSelection(items []string) *Selection {
	s := &Selection{}
	for i := len(items) - 1; i >= 0; i-- {
		start, end, ok := strings.Cut(items[i], ":")
		if !ok {
			continue
		}
		s.spans = append(s.spans, span{start, end})
	}
	for _, it := range items {
		if !strings.Contains(it, ":") {
			s.names = append(s.names, it)
		}
	}
	return s
}

// All reports whether every row is selected.
func (s *Selection) All() bool { return s.all }

// Match consumes one row name and reports whether it should be exported.
func (s *Selection) Match(name string) bool {
	name = strings.ToUpper(name)

	if s.isEnd(name) {
		found := false
		for i, start := range s.open {
			if s.endOf(start) == name {
				found = true
				s.open = append(s.open[:i], s.open[i+1:]...)
				s.dropSpan(start)
				if len(s.open) == 0 {
					s.inRange = false
				}
				break
			}
		}
		if !found {
			for i, sp := range s.spans {
				if sp.end == name {
					s.spans = append(s.spans[:i], s.spans[i+1:]...)
					break
				}
			}
		}
		return true
	}

	if s.inRange || s.all || s.hasName(name) {
		s.removeName(name)
		return true
	}

	if s.isStart(name) {
		s.open = append(s.open, name)
		s.inRange = true
		return true
	}
	return false
}

// Pending lists the entries that no row has satisfied yet.
func (s *Selection) Pending() []string {
	out := append([]string(nil), s.names...)
	for _, sp := range s.spans {
		out = append(out, sp.start+":"+sp.end)
	}
	return out
}

func (s *Selection) isEnd(name string) bool {
	for _, sp := range s.spans {
		if sp.end == name {
			return true
		}
	}
	return false
}

func (s *Selection) isStart(name string) bool {
	for _, sp := range s.spans {
		if sp.start == name {
			return true
		}
	}
	return false
}

// endOf returns the end of the first span keyed by start.
func (s *Selection) endOf(start string) string {
	for _, sp := range s.spans {
		if sp.start == start {
			return sp.end
		}
	}
	return ""
}

func (s *Selection) dropSpan(start string) {
	for i, sp := range s.spans {
		if sp.start == start {
			s.spans = append(s.spans[:i], s.spans[i+1:]...)
			return
		}
	}
}

func (s *Selection) hasName(name string) bool {
	for _, n := range s.names {
		if n == name {
			return true
		}
	}
	return false
}

func (s *Selection) removeName(name string) {
	for i, n := range s.names {
		if n == name {
			s.names = append(s.names[:i], s.names[i+1:]...)
			return
		}
	}
}
