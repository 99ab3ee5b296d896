package bot

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrUnknownStrength = errors.New("unknown bot strength")

// Strength selects the decision cascade the bot plays with.
type Strength uint8

const (
	StrengthWeak Strength = iota
	StrengthBalanced
	StrengthStrong
)

func (s Strength) String() string {
	switch s {
	case StrengthBalanced:
		return "balanced"
	case StrengthStrong:
		return "strong"
	default:
		return "weak"
	}
}

// ParseStrength - accepts the wire names and the older difficulty labels.
func ParseStrength(s string) (Strength, error) {
	switch s {
	case "weak", "easy":
		return StrengthWeak, nil
	case "balanced", "moderate", "medium":
		return StrengthBalanced, nil
	case "strong", "hard":
		return StrengthStrong, nil
	default:
		return StrengthWeak, fmt.Errorf("%w: %q", ErrUnknownStrength, s)
	}
}

func (s Strength) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Strength) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %s", ErrUnknownStrength, data)
	}

	parsed, err := ParseStrength(raw)
	if err != nil {
		return err
	}

	*s = parsed
	return nil
}
