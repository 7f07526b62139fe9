package deck

// Deck counts exported cards by name.
type Deck struct {
	Name  string         `json:"name"`
	Cards map[string]int `json:"cards"` // card name -> count
}

func New(name string) *Deck {
	return &Deck{Name: name, Cards: map[string]int{}}
}

// Add records one copy of card.
func (d *Deck) Add(card string) {
	if d.Cards == nil {
		d.Cards = map[string]int{}
	}
	d.Cards[card]++
}

// Len is the number of copies across all cards.
func (d *Deck) Len() int {
	n := 0
	for _, c := range d.Cards {
		n += c
	}
	return n
}
