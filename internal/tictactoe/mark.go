package tictactoe

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrUnknownMark    = errors.New("unknown mark")
	ErrUnknownOutcome = errors.New("unknown outcome")
	ErrUnknownRules   = errors.New("unknown rules")
)

// Mark is what a cell holds: nothing, or one of the two players.
type Mark uint8

const (
	MarkNone Mark = iota
	MarkA
	MarkB
)

// Opponent - returns the other player's mark. MarkNone has no opponent.
func (m Mark) Opponent() Mark {
	switch m {
	case MarkA:
		return MarkB
	case MarkB:
		return MarkA
	default:
		return MarkNone
	}
}

func (m Mark) IsPlayer() bool {
	return m == MarkA || m == MarkB
}

func (m Mark) String() string {
	switch m {
	case MarkA:
		return "A"
	case MarkB:
		return "B"
	default:
		return ""
	}
}

// ParseMark - accepts the wire form plus the legacy X/O symbols.
func ParseMark(s string) (Mark, error) {
	switch s {
	case "":
		return MarkNone, nil
	case "A", "a", "X", "x":
		return MarkA, nil
	case "B", "b", "O", "o":
		return MarkB, nil
	default:
		return MarkNone, fmt.Errorf("%w: %q", ErrUnknownMark, s)
	}
}

func (m Mark) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *Mark) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = MarkNone
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %s", ErrUnknownMark, data)
	}

	parsed, err := ParseMark(raw)
	if err != nil {
		return err
	}

	*m = parsed
	return nil
}

// Outcome is the state of one sub-board as seen from the meta-board.
type Outcome uint8

const (
	OutcomeUndecided Outcome = iota
	OutcomeWonA
	OutcomeWonB
	OutcomeDrawn
)

// outcomeFor - maps a winning mark to its outcome.
func outcomeFor(m Mark) Outcome {
	switch m {
	case MarkA:
		return OutcomeWonA
	case MarkB:
		return OutcomeWonB
	default:
		return OutcomeUndecided
	}
}

// Owner - returns the mark that won the sub-board, MarkNone for undecided and drawn boards.
func (o Outcome) Owner() Mark {
	switch o {
	case OutcomeWonA:
		return MarkA
	case OutcomeWonB:
		return MarkB
	default:
		return MarkNone
	}
}

func (o Outcome) IsDecided() bool {
	return o != OutcomeUndecided
}

func (o Outcome) String() string {
	switch o {
	case OutcomeWonA:
		return "won_a"
	case OutcomeWonB:
		return "won_b"
	case OutcomeDrawn:
		return "drawn"
	default:
		return "undecided"
	}
}

// ParseOutcome - accepts the wire form and the legacy mark-or-empty encoding.
func ParseOutcome(s string) (Outcome, error) {
	switch s {
	case "undecided", "":
		return OutcomeUndecided, nil
	case "won_a", "A", "X":
		return OutcomeWonA, nil
	case "won_b", "B", "O":
		return OutcomeWonB, nil
	case "drawn", "draw", "tie", "-":
		return OutcomeDrawn, nil
	default:
		return OutcomeUndecided, fmt.Errorf("%w: %q", ErrUnknownOutcome, s)
	}
}

func (o Outcome) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

func (o *Outcome) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*o = OutcomeUndecided
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %s", ErrUnknownOutcome, data)
	}

	parsed, err := ParseOutcome(raw)
	if err != nil {
		return err
	}

	*o = parsed
	return nil
}

// Rules selects whether the played cell routes the opponent to a sub-board.
type Rules uint8

const (
	RulesStandard Rules = iota
	RulesFreePlay
)

func (r Rules) String() string {
	if r == RulesFreePlay {
		return "free-play"
	}
	return "standard"
}

func ParseRules(s string) (Rules, error) {
	switch s {
	case "standard", "":
		return RulesStandard, nil
	case "free-play", "free_play", "freeplay":
		return RulesFreePlay, nil
	default:
		return RulesStandard, fmt.Errorf("%w: %q", ErrUnknownRules, s)
	}
}

func (r Rules) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *Rules) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = RulesStandard
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %s", ErrUnknownRules, data)
	}

	parsed, err := ParseRules(raw)
	if err != nil {
		return err
	}

	*r = parsed
	return nil
}
