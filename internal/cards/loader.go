package cards

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/youruser/cardgen/internal/sigils"
)

// LoadRecords reads a CSV file whose first row is the header.
func LoadRecords(path string) ([]Record, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	recs, err := ReadRecords(fp)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return recs, nil
}

// ReadRecords parses CSV with a header row into header-keyed records.
func ReadRecords(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("csv has no header")
	}
	header := rows[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	out := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(Record, len(header))
		for i, h := range header {
			if i < len(row) {
				rec[h] = row[i]
			} else {
				rec[h] = ""
			}
		}
		out = append(out, rec)
	}
	return out, nil
}

// LoadRegistry builds the sigil and trait registry from their tables. Either
// path may be empty. Bad rows are logged and skipped.
func LoadRegistry(sigilsPath, traitsPath string, rules sigils.MirrorRules) (*sigils.Registry, error) {
	b := sigils.NewBuilder(rules)
	if sigilsPath != "" {
		recs, err := LoadRecords(sigilsPath)
		if err != nil {
			return nil, err
		}
		for _, rec := range recs {
			d, err := sigils.FromRecord(rec, false)
			if err != nil {
				log.Printf("sigils: skipping row %v: %v", map[string]string(rec), err)
				continue
			}
			b.AddSigil(d)
		}
	}
	if traitsPath != "" {
		recs, err := LoadRecords(traitsPath)
		if err != nil {
			return nil, err
		}
		for _, rec := range recs {
			d, err := sigils.FromRecord(rec, true)
			if err != nil {
				log.Printf("traits: skipping row %v: %v", map[string]string(rec), err)
				continue
			}
			b.AddTrait(d)
		}
	}
	return b.Build(), nil
}
