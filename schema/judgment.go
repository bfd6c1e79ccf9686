package schema

import (
	"fmt"
	"strings"
)

// Judgment is the hit classification of a single note, ordered from best to worst.
type Judgment uint8

// All judgments, best first.
const (
	Marvelous Judgment = iota
	Perfect
	Great
	Good
	Bad
	Miss
)

var judgmentNames = [...]string{"marvelous", "perfect", "great", "good", "bad", "miss"}

// String returns the lowercase judgment name.
func (j Judgment) String() string {
	if int(j) < len(judgmentNames) {
		return judgmentNames[j]
	}
	return fmt.Sprintf("judgment(%d)", j)
}

// BreaksCombo reports whether the judgment ends a combo.
func (j Judgment) BreaksCombo() bool {
	return j >= Good
}

// AtLeast reports whether j is as good as or better than other.
func (j Judgment) AtLeast(other Judgment) bool {
	return j <= other
}

// MarshalText encodes the judgment by name.
func (j Judgment) MarshalText() ([]byte, error) {
	return []byte(j.String()), nil
}

// UnmarshalText decodes a judgment name.
func (j *Judgment) UnmarshalText(b []byte) error {
	name := strings.ToLower(string(b))
	for i, n := range judgmentNames {
		if n == name {
			*j = Judgment(i)
			return nil
		}
	}
	return fmt.Errorf("unknown judgment %q", b)
}
