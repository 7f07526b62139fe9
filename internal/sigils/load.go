package sigils

import (
	"fmt"
	"strings"
)

// truthy lists the spellings the tables use for a true boolean cell.
var truthy = map[string]bool{"True": true, "T": true, "t": true, "y": true, "Y": true, "Yes": true}

func IsTruthy(s string) bool { return truthy[strings.TrimSpace(s)] }

// FromRecord builds a definition from a sigil or trait table row.
func FromRecord(rec map[string]string, trait bool) (Definition, error) {
	name := strings.TrimSpace(rec["Name"])
	if name == "" {
		return Definition{}, fmt.Errorf("row has no Name")
	}
	d := Definition{
		Name:          name,
		Description:   rec["Description"],
		IsAttackSigil: IsTruthy(rec["Is_attack_sigil"]),
		IsTrait:       trait,
		CanBeColored:  trait || IsTruthy(rec["Can_be_colored"]),
	}
	return d, nil
}
