package tally

// Ranked runs an instant-runoff tally. Each ballot is a preference list of
// option ids, highest preference first; ids are assumed validated. Rounds are
// recorded until a candidate holds a strict majority of the still-active
// ballots, a single candidate remains, or elimination would wipe out the
// field (a final tie).
//
// Options tied for fewest votes in a round are eliminated together. A ballot
// whose remaining preferences are all eliminated counts as exhausted and no
// longer contributes to the active total.
func Ranked(options []Option, ballots [][]string) Result {
	res := Result{
		Method:       "ranked",
		TotalBallots: int64(len(ballots)),
		Winners:      []string{},
	}
	if len(ballots) == 0 || len(options) == 0 {
		return res
	}

	remaining := make(map[string]bool, len(options))
	for _, opt := range options {
		remaining[opt.ID] = true
	}

	for number := 1; ; number++ {
		counts := make(map[string]int64, len(remaining))
		var active int64
		for _, ranking := range ballots {
			for _, id := range ranking {
				if remaining[id] {
					counts[id]++
					active++
					break
				}
			}
		}

		round := Round{
			Number:         number,
			ExhaustedCount: int64(len(ballots)) - active,
		}
		for _, opt := range options {
			if !remaining[opt.ID] {
				continue
			}
			round.Counts = append(round.Counts, OptionResult{
				OptionID:   opt.ID,
				Label:      opt.Label,
				Votes:      counts[opt.ID],
				Percentage: percent(counts[opt.ID], active),
			})
		}

		if len(remaining) == 1 {
			// Unopposed after eliminations; majority is not required.
			for _, opt := range options {
				if remaining[opt.ID] {
					round.Winner = opt.ID
					res.Winners = []string{opt.ID}
				}
			}
			res.Rounds = append(res.Rounds, round)
			return res
		}

		for _, opt := range options {
			if remaining[opt.ID] && counts[opt.ID]*2 > active {
				round.Winner = opt.ID
				res.Winners = []string{opt.ID}
				res.Rounds = append(res.Rounds, round)
				return res
			}
		}

		min := int64(-1)
		for id := range remaining {
			if min < 0 || counts[id] < min {
				min = counts[id]
			}
		}
		var lowest []string
		for _, opt := range options {
			if remaining[opt.ID] && counts[opt.ID] == min {
				lowest = append(lowest, opt.ID)
			}
		}

		if len(lowest) > 1 && len(remaining)-len(lowest) < 2 {
			// Eliminating the whole tied group would leave fewer than two
			// candidates: stop with no winner and report the tie.
			for _, opt := range options {
				if remaining[opt.ID] {
					round.Tied = append(round.Tied, opt.ID)
				}
			}
			res.Rounds = append(res.Rounds, round)
			return res
		}

		round.Eliminated = lowest
		for _, id := range lowest {
			delete(remaining, id)
		}
		res.Rounds = append(res.Rounds, round)
	}
}
