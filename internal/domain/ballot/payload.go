package ballot

import (
	"encoding/json"
	"fmt"
)

// Payload is the closed set of ballot shapes, one per voting method.
type Payload interface {
	Method() Method
}

// PluralityPayload picks a single option.
type PluralityPayload struct {
	OptionID string `json:"option_id"`
}

func (PluralityPayload) Method() Method { return MethodPlurality }

// ScoredPayload rates options on a 1..5 scale.
type ScoredPayload struct {
	Scores map[string]int `json:"scores"`
}

func (ScoredPayload) Method() Method { return MethodScored }

// RankedPayload lists distinct options by preference, highest first.
type RankedPayload struct {
	Ranking []string `json:"ranking"`
}

func (RankedPayload) Method() Method { return MethodRanked }

const minScore, maxScore = 1, 5

// ValidationError reports a caller-fixable problem with a submitted payload
// or decision definition.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Validate checks a payload against the decision's method, option ids and
// selection cap (0 = no cap). For ranked ballots the cap defaults to the
// number of options.
func Validate(p Payload, m Method, optionIDs []string, maxSelections int) error {
	if p == nil {
		return invalid("payload", "payload is required")
	}
	if p.Method() != m {
		return invalid("payload", "payload does not match voting method %s", m)
	}

	known := make(map[string]bool, len(optionIDs))
	for _, id := range optionIDs {
		known[id] = true
	}

	switch v := p.(type) {
	case PluralityPayload:
		if v.OptionID == "" {
			return invalid("option_id", "option_id is required")
		}
		if !known[v.OptionID] {
			return invalid("option_id", "unknown option %q", v.OptionID)
		}
	case ScoredPayload:
		if len(v.Scores) == 0 {
			return invalid("scores", "at least one score is required")
		}
		if maxSelections > 0 && len(v.Scores) > maxSelections {
			return invalid("scores", "at most %d options may be scored", maxSelections)
		}
		for id, score := range v.Scores {
			if !known[id] {
				return invalid("scores", "unknown option %q", id)
			}
			if score < minScore || score > maxScore {
				return invalid("scores", "score for %q must be between %d and %d", id, minScore, maxScore)
			}
		}
	case RankedPayload:
		limit := maxSelections
		if limit == 0 || limit > len(optionIDs) {
			limit = len(optionIDs)
		}
		if len(v.Ranking) < 2 {
			return invalid("ranking", "at least 2 preferences are required")
		}
		if len(v.Ranking) > limit {
			return invalid("ranking", "at most %d preferences are allowed", limit)
		}
		seen := make(map[string]bool, len(v.Ranking))
		for _, id := range v.Ranking {
			if !known[id] {
				return invalid("ranking", "unknown option %q", id)
			}
			if seen[id] {
				return invalid("ranking", "option %q ranked more than once", id)
			}
			seen[id] = true
		}
	default:
		return invalid("payload", "unsupported payload type")
	}
	return nil
}

// DecodePayload parses a raw JSON payload into the typed variant for the
// decision's voting method.
func DecodePayload(m Method, data []byte) (Payload, error) {
	switch m {
	case MethodPlurality:
		var p PluralityPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, invalid("payload", "invalid plurality payload")
		}
		return p, nil
	case MethodScored:
		var p ScoredPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, invalid("payload", "invalid scored payload")
		}
		return p, nil
	case MethodRanked:
		var p RankedPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, invalid("payload", "invalid ranked payload")
		}
		return p, nil
	}
	return nil, invalid("payload", "unknown voting method %q", m)
}

// EncodePayload serializes a payload for storage.
func EncodePayload(p Payload) ([]byte, error) {
	return json.Marshal(p)
}
