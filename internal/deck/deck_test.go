package deck

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExportDeckText(t *testing.T) {
	d := New("Beast starter")
	for _, c := range []string{"Wolf", "Stoat", "Wolf", "Adder"} {
		d.Add(c)
	}
	want := "# Beast starter\n1xAdder\n1xStoat\n2xWolf"
	if got := ExportDeckText(*d); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if d.Len() != 4 {
		t.Fatalf("expected 4 cards, got %d", d.Len())
	}
}

func TestWriteFile(t *testing.T) {
	var d Deck
	d.Add("Wolf")
	p := filepath.Join(t.TempDir(), "nested", "deck.txt")
	if err := WriteFile(d, p); err != nil {
		t.Fatalf("write: %v", err)
	}
	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(b) != "1xWolf\n" {
		t.Fatalf("unexpected contents %q", b)
	}
}
