package tally

// Plurality counts one vote per ballot. picks holds each ballot's chosen
// option id; ids are assumed validated against the option set. Every option
// appears in the result, options with no votes at zero. All options sharing
// the maximum count are reported as winners.
func Plurality(options []Option, picks []string) Result {
	counts := make(map[string]int64, len(options))
	for _, pick := range picks {
		counts[pick]++
	}

	total := int64(len(picks))
	res := Result{
		Method:       "plurality",
		TotalBallots: total,
		Options:      make([]OptionResult, 0, len(options)),
		Winners:      []string{},
	}

	var max int64
	for _, opt := range options {
		c := counts[opt.ID]
		if c > max {
			max = c
		}
		res.Options = append(res.Options, OptionResult{
			OptionID:   opt.ID,
			Label:      opt.Label,
			Votes:      c,
			Percentage: percent(c, total),
		})
	}

	if total == 0 {
		return res
	}
	for _, opt := range options {
		if counts[opt.ID] == max {
			res.Winners = append(res.Winners, opt.ID)
		}
	}
	return res
}
