// Package costs parses card cost strings and assembles their glyph strips.
package costs

import (
	"fmt"
	"strconv"
	"strings"
)

type Kind int

const (
	KindBlood Kind = iota
	KindBones
	KindEnergy
	KindGems
	KindDistress
)

func (k Kind) String() string {
	switch k {
	case KindBlood:
		return "blood"
	case KindBones:
		return "bones"
	case KindEnergy:
		return "energy"
	case KindGems:
		return "gems"
	case KindDistress:
		return "distress"
	default:
		return "unknown"
	}
}

// Cost is one component of a card's cost. The set of implementations is closed.
type Cost interface {
	Kind() Kind
	isCost()
}

type Blood struct{ Amount int }
type Bones struct{ Amount int }
type Distress struct{ Amount int }

// Energy holds the current energy cost and the max (overcharge) cost.
type Energy struct{ Current, Max int }

// Gems lists entries such as "2 rubies" or "1 shattered emerald".
type Gems struct{ Entries []string }

func (Blood) Kind() Kind    { return KindBlood }
func (Bones) Kind() Kind    { return KindBones }
func (Distress) Kind() Kind { return KindDistress }
func (Energy) Kind() Kind   { return KindEnergy }
func (Gems) Kind() Kind     { return KindGems }

func (Blood) isCost()    {}
func (Bones) isCost()    {}
func (Distress) isCost() {}
func (Energy) isCost()   {}
func (Gems) isCost()     {}

// MismatchError is returned when two different cost kinds are combined.
type MismatchError struct {
	Op          string
	Left, Right Kind
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("cannot %s %s and %s costs", e.Op, e.Left, e.Right)
}

// ParseError reports a cost clause that could not be understood.
type ParseError struct {
	Clause string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unknown cost %q: %v", e.Clause, e.Err)
	}
	return fmt.Sprintf("unknown cost type: %q", e.Clause)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Combine adds two costs of the same kind.
func Combine(a, b Cost) (Cost, error) {
	return merge("add", a, b, 1)
}

// Subtract removes b from a. Gem entries are removed one occurrence at a time.
func Subtract(a, b Cost) (Cost, error) {
	return merge("subtract", a, b, -1)
}

func merge(op string, a, b Cost, sign int) (Cost, error) {
	if a.Kind() != b.Kind() {
		return nil, &MismatchError{Op: op, Left: a.Kind(), Right: b.Kind()}
	}
	switch x := a.(type) {
	case Blood:
		return Blood{x.Amount + sign*b.(Blood).Amount}, nil
	case Bones:
		return Bones{x.Amount + sign*b.(Bones).Amount}, nil
	case Distress:
		return Distress{x.Amount + sign*b.(Distress).Amount}, nil
	case Energy:
		y := b.(Energy)
		return Energy{Current: x.Current + sign*y.Current, Max: x.Max + sign*y.Max}, nil
	case Gems:
		y := b.(Gems)
		out := append([]string(nil), x.Entries...)
		if sign > 0 {
			return Gems{Entries: append(out, y.Entries...)}, nil
		}
		for _, g := range y.Entries {
			for i, have := range out {
				if have == g {
					out = append(out[:i], out[i+1:]...)
					break
				}
			}
		}
		return Gems{Entries: out}, nil
	}
	return nil, fmt.Errorf("unhandled cost kind %s", a.Kind())
}

var gemWords = []string{"emerald", "sapphire", "ruby", "rubies", "topaz", "amethyst", "garnet", "prism"}

// IsFree reports the spellings that mean no cost at all.
func IsFree(s string) bool {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "NONE", "FREE":
		return true
	}
	return false
}

// Parse reads clauses like "2 blood + 3 bones + 1 energy + 2 max + 1 ruby".
// Energy and max clauses fold into one Energy; gem clauses fold into one Gems.
func Parse(s string) ([]Cost, error) {
	if IsFree(s) {
		return nil, nil
	}
	var out []Cost
	find := func(k Kind) int {
		for i, c := range out {
			if c.Kind() == k {
				return i
			}
		}
		return -1
	}

	for _, clause := range strings.Split(s, " + ") {
		clause = strings.TrimSpace(clause)
		switch {
		case strings.Contains(clause, "blood"):
			n, err := amount(clause)
			if err != nil {
				return nil, err
			}
			out = append(out, Blood{n})
		case strings.Contains(clause, "bone"):
			n, err := amount(clause)
			if err != nil {
				return nil, err
			}
			out = append(out, Bones{n})
		case strings.Contains(clause, "energy"), strings.Contains(clause, "max"):
			n, err := amount(clause)
			if err != nil {
				return nil, err
			}
			e := Energy{}
			i := find(KindEnergy)
			if i >= 0 {
				e = out[i].(Energy)
			}
			if strings.Contains(clause, "energy") {
				e.Current = n
			} else {
				e.Max = n
			}
			if i >= 0 {
				out[i] = e
			} else {
				out = append(out, e)
			}
		case containsAny(clause, gemWords):
			if _, err := amount(clause); err != nil {
				return nil, err
			}
			if i := find(KindGems); i >= 0 {
				g := out[i].(Gems)
				out[i] = Gems{Entries: append(g.Entries, clause)}
			} else {
				out = append(out, Gems{Entries: []string{clause}})
			}
		case strings.Contains(clause, "distress"):
			n, err := amount(clause)
			if err != nil {
				return nil, err
			}
			out = append(out, Distress{n})
		default:
			return nil, &ParseError{Clause: clause}
		}
	}
	return out, nil
}

func amount(clause string) (int, error) {
	first, _, _ := strings.Cut(clause, " ")
	n, err := strconv.Atoi(first)
	if err != nil {
		return 0, &ParseError{Clause: clause, Err: err}
	}
	return n, nil
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
