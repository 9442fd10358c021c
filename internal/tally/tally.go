package tally

import "math"

// Option is a candidate as declared on the decision, in declaration order.
type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// OptionResult is one option's line in a plurality or scored tally.
type OptionResult struct {
	OptionID     string  `json:"option_id"`
	Label        string  `json:"label"`
	Votes        int64   `json:"votes"`
	ScoreTotal   int64   `json:"score_total,omitempty"`
	AverageScore float64 `json:"average_score,omitempty"`
	Percentage   float64 `json:"percentage"`
}

// Round is one instant-runoff elimination round. Counts cover every option
// still in the race at the start of the round, including options at zero.
type Round struct {
	Number         int            `json:"number"`
	Counts         []OptionResult `json:"counts"`
	Eliminated     []string       `json:"eliminated,omitempty"`
	ExhaustedCount int64          `json:"exhausted_count"`
	Winner         string         `json:"winner,omitempty"`
	Tied           []string       `json:"tied,omitempty"`
}

// Result is the computed outcome of a decision's ballots. It is derived data,
// recomputed from the ballots on demand.
type Result struct {
	Method       string         `json:"method"`
	TotalBallots int64          `json:"total_ballots"`
	Options      []OptionResult `json:"options,omitempty"`
	Rounds       []Round        `json:"rounds,omitempty"`
	Winners      []string       `json:"winners"`
}

// percent rounds count/total to one decimal place of a percentage.
func percent(count, total int64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(count)/float64(total)*1000) / 10
}
