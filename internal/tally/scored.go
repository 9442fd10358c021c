package tally

import "math"

// Scored sums the scores given to each option across all ballots. Each ballot
// maps option ids to a score; ids and score range are assumed validated. An
// option never scored has an average of zero. Percentages are shares of the
// grand score total; winners are the options with the highest score total.
func Scored(options []Option, ballots []map[string]int) Result {
	totals := make(map[string]int64, len(options))
	rated := make(map[string]int64, len(options))
	var grand int64
	for _, scores := range ballots {
		for id, score := range scores {
			totals[id] += int64(score)
			rated[id]++
			grand += int64(score)
		}
	}

	res := Result{
		Method:       "scored",
		TotalBallots: int64(len(ballots)),
		Options:      make([]OptionResult, 0, len(options)),
		Winners:      []string{},
	}

	var max int64
	for _, opt := range options {
		st := totals[opt.ID]
		if st > max {
			max = st
		}
		var avg float64
		if rated[opt.ID] > 0 {
			avg = math.Round(float64(st)/float64(rated[opt.ID])*100) / 100
		}
		res.Options = append(res.Options, OptionResult{
			OptionID:     opt.ID,
			Label:        opt.Label,
			Votes:        rated[opt.ID],
			ScoreTotal:   st,
			AverageScore: avg,
			Percentage:   percent(st, grand),
		})
	}

	if len(ballots) == 0 {
		return res
	}
	for _, opt := range options {
		if totals[opt.ID] == max {
			res.Winners = append(res.Winners, opt.ID)
		}
	}
	return res
}
