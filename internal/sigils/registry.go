package sigils

import "sort"

// Registry is the read-only set of sigil and trait definitions shared by every
// render. Build it once with a Builder before rendering starts.
type Registry struct {
	sigils map[string]Definition
	traits map[string]Definition
}

func (r *Registry) Sigil(name string) (Definition, bool) {
	d, ok := r.sigils[name]
	return d, ok
}

func (r *Registry) Trait(name string) (Definition, bool) {
	d, ok := r.traits[name]
	return d, ok
}

// Lookup resolves a card's element name, preferring the trait namespace.
func (r *Registry) Lookup(name string) (Definition, bool) {
	if d, ok := r.traits[name]; ok {
		return d, true
	}
	return r.Sigil(name)
}

func (r *Registry) SigilNames() []string { return sortedKeys(r.sigils) }
func (r *Registry) TraitNames() []string { return sortedKeys(r.traits) }

func sortedKeys(m map[string]Definition) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// MirrorRules decides which sigils are also registered as traits.
type MirrorRules struct {
	AttackSigilsAsTraits bool
	BloodlessAsTrait     bool
}

type Builder struct {
	rules  MirrorRules
	sigils map[string]Definition
	traits map[string]Definition
}

func NewBuilder(rules MirrorRules) *Builder {
	return &Builder{
		rules:  rules,
		sigils: map[string]Definition{},
		traits: map[string]Definition{},
	}
}

// AddSigil registers a sigil, mirroring it into the traits when the rules say so.
func (b *Builder) AddSigil(d Definition) {
	d.IsTrait = false
	b.sigils[d.Name] = d
	if (d.IsAttackSigil && b.rules.AttackSigilsAsTraits) || (d.Name == "Bloodless" && b.rules.BloodlessAsTrait) {
		b.AddTrait(d)
	}
}

func (b *Builder) AddTrait(d Definition) {
	b.traits[d.Name] = d.AsTrait()
}

// Build hands the definitions over to an immutable Registry. The builder must
// not be used afterwards.
func (b *Builder) Build() *Registry {
	r := &Registry{sigils: b.sigils, traits: b.traits}
	b.sigils, b.traits = nil, nil
	return r
}
