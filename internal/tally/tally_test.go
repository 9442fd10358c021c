package tally

import (
	"reflect"
	"testing"
)

var abc = []Option{
	{ID: "a", Label: "Option A"},
	{ID: "b", Label: "Option B"},
	{ID: "c", Label: "Option C"},
}

func TestPluralityCountsAndWinner(t *testing.T) {
	res := Plurality(abc, []string{"a", "a", "b", "a", "c"})

	if res.TotalBallots != 5 {
		t.Fatalf("expected 5 ballots, got %d", res.TotalBallots)
	}
	want := []struct {
		id    string
		votes int64
		pct   float64
	}{
		{"a", 3, 60.0},
		{"b", 1, 20.0},
		{"c", 1, 20.0},
	}
	for i, w := range want {
		got := res.Options[i]
		if got.OptionID != w.id || got.Votes != w.votes || got.Percentage != w.pct {
			t.Fatalf("option %d: got %+v, want %+v", i, got, w)
		}
	}
	if !reflect.DeepEqual(res.Winners, []string{"a"}) {
		t.Fatalf("expected winner a, got %v", res.Winners)
	}
}

func TestPluralityTieAtTop(t *testing.T) {
	res := Plurality(abc, []string{"a", "b", "a", "b", "c"})
	if !reflect.DeepEqual(res.Winners, []string{"a", "b"}) {
		t.Fatalf("expected tied winners [a b], got %v", res.Winners)
	}
}

func TestPluralityEmpty(t *testing.T) {
	res := Plurality(abc, nil)
	if res.TotalBallots != 0 || len(res.Winners) != 0 {
		t.Fatalf("empty ballot set must yield zero totals and no winner, got %+v", res)
	}
	for _, opt := range res.Options {
		if opt.Votes != 0 || opt.Percentage != 0 {
			t.Fatalf("expected zeroed option, got %+v", opt)
		}
	}
}

func TestScoredTotalsAndAverage(t *testing.T) {
	opts := []Option{{ID: "x", Label: "X"}, {ID: "y", Label: "Y"}}
	res := Scored(opts, []map[string]int{
		{"x": 5},
		{"x": 4, "y": 2},
		{"x": 3},
	})

	x := res.Options[0]
	if x.ScoreTotal != 12 {
		t.Fatalf("expected score total 12, got %d", x.ScoreTotal)
	}
	if x.AverageScore != 4 {
		t.Fatalf("expected average 4, got %v", x.AverageScore)
	}
	// 12 of 14 points.
	if x.Percentage != 85.7 {
		t.Fatalf("expected 85.7%%, got %v", x.Percentage)
	}
	if !reflect.DeepEqual(res.Winners, []string{"x"}) {
		t.Fatalf("expected winner x, got %v", res.Winners)
	}
}

func TestScoredNeverScoredOption(t *testing.T) {
	opts := []Option{{ID: "x", Label: "X"}, {ID: "y", Label: "Y"}}
	res := Scored(opts, []map[string]int{{"x": 3}})
	y := res.Options[1]
	if y.ScoreTotal != 0 || y.AverageScore != 0 || y.Percentage != 0 {
		t.Fatalf("unscored option must be zeroed, got %+v", y)
	}
}

func TestScoredTie(t *testing.T) {
	opts := []Option{{ID: "x", Label: "X"}, {ID: "y", Label: "Y"}}
	res := Scored(opts, []map[string]int{{"x": 4, "y": 4}})
	if !reflect.DeepEqual(res.Winners, []string{"x", "y"}) {
		t.Fatalf("expected tied winners [x y], got %v", res.Winners)
	}
}

func TestRankedTwoRoundWin(t *testing.T) {
	ballots := [][]string{
		{"a", "b", "c"},
		{"a", "c", "b"},
		{"b", "a", "c"},
		{"c", "b", "a"},
		{"c", "b", "a"},
	}
	res := Ranked(abc, ballots)

	if len(res.Rounds) != 2 {
		t.Fatalf("expected 2 rounds, got %d", len(res.Rounds))
	}

	r1 := res.Rounds[0]
	if got := votesByOption(r1); got["a"] != 2 || got["b"] != 1 || got["c"] != 2 {
		t.Fatalf("round 1 counts wrong: %v", got)
	}
	if !reflect.DeepEqual(r1.Eliminated, []string{"b"}) {
		t.Fatalf("round 1 must eliminate b, got %v", r1.Eliminated)
	}
	if r1.Winner != "" {
		t.Fatalf("round 1 must not have a winner")
	}

	r2 := res.Rounds[1]
	if got := votesByOption(r2); got["a"] != 3 || got["c"] != 2 {
		t.Fatalf("round 2 counts wrong: %v", got)
	}
	if r2.Winner != "a" {
		t.Fatalf("expected winner a, got %q", r2.Winner)
	}
	if !reflect.DeepEqual(res.Winners, []string{"a"}) {
		t.Fatalf("expected winners [a], got %v", res.Winners)
	}
}

func TestRankedZeroVoteOptionAppearsInRound(t *testing.T) {
	ballots := [][]string{{"a", "b"}, {"a", "c"}, {"b", "a"}}
	res := Ranked(abc, ballots)
	got := votesByOption(res.Rounds[0])
	if v, ok := got["c"]; !ok || v != 0 {
		t.Fatalf("option c must appear at zero in round 1, got %v", got)
	}
}

func TestRankedExhaustedBallots(t *testing.T) {
	// The c-only ballot exhausts once c is eliminated; a then holds a strict
	// majority of the five still-active ballots.
	ballots := [][]string{
		{"a"}, {"a"}, {"a"},
		{"b"}, {"b"},
		{"c"},
	}
	res := Ranked(abc, ballots)

	r1 := res.Rounds[0]
	if r1.ExhaustedCount != 0 {
		t.Fatalf("no ballot exhausted yet, got %d", r1.ExhaustedCount)
	}
	if !reflect.DeepEqual(r1.Eliminated, []string{"c"}) {
		t.Fatalf("round 1 must eliminate c (fewest), got %v", r1.Eliminated)
	}

	r2 := res.Rounds[1]
	if r2.ExhaustedCount != 1 {
		t.Fatalf("expected 1 exhausted ballot in round 2, got %d", r2.ExhaustedCount)
	}
	// 3 of 5 active ballots is a strict majority even though it is not a
	// majority of all 6 cast.
	if r2.Winner != "a" {
		t.Fatalf("expected winner a, got %q", r2.Winner)
	}
}

func TestRankedLastCandidateStandingWins(t *testing.T) {
	// A field reduced to a single candidate terminates with that candidate
	// as winner regardless of majority.
	res := Ranked([]Option{{ID: "a", Label: "A"}}, [][]string{{"a"}})
	if !reflect.DeepEqual(res.Winners, []string{"a"}) {
		t.Fatalf("expected winner a, got %v", res.Winners)
	}
	if res.Rounds[0].Winner != "a" {
		t.Fatalf("terminal round must carry the winner")
	}
}

func TestRankedFinalTie(t *testing.T) {
	ballots := [][]string{{"a", "b"}, {"b", "a"}}
	opts := []Option{{ID: "a", Label: "A"}, {ID: "b", Label: "B"}}
	res := Ranked(opts, ballots)

	if len(res.Winners) != 0 {
		t.Fatalf("full tie must have no winner, got %v", res.Winners)
	}
	last := res.Rounds[len(res.Rounds)-1]
	if !reflect.DeepEqual(last.Tied, []string{"a", "b"}) {
		t.Fatalf("expected final tie [a b], got %v", last.Tied)
	}
}

func TestRankedTieForFewestEliminatesAll(t *testing.T) {
	// b and c tie for fewest and are eliminated together; their ballots
	// redistribute, d overtakes a.
	opts := []Option{
		{ID: "a", Label: "A"},
		{ID: "b", Label: "B"},
		{ID: "c", Label: "C"},
		{ID: "d", Label: "D"},
	}
	ballots := [][]string{
		{"a"}, {"a"}, {"a"},
		{"b", "d"},
		{"c", "d"},
		{"d"}, {"d"}, {"d"},
	}
	res := Ranked(opts, ballots)

	r1 := res.Rounds[0]
	if !reflect.DeepEqual(r1.Eliminated, []string{"b", "c"}) {
		t.Fatalf("expected simultaneous elimination of b and c, got %v", r1.Eliminated)
	}
	if res.Rounds[1].Winner != "d" {
		t.Fatalf("expected winner d after redistribution, got %q", res.Rounds[1].Winner)
	}
}

func TestRankedEmpty(t *testing.T) {
	res := Ranked(abc, nil)
	if res.TotalBallots != 0 || len(res.Winners) != 0 || len(res.Rounds) != 0 {
		t.Fatalf("empty ballot set must yield an empty result, got %+v", res)
	}
}

func TestRankedDeterministicAcrossBallotOrder(t *testing.T) {
	ballots := [][]string{
		{"a", "b", "c"},
		{"a", "c", "b"},
		{"b", "a", "c"},
		{"c", "b", "a"},
		{"c", "b", "a"},
	}
	first := Ranked(abc, ballots)
	reversed := make([][]string, len(ballots))
	for i := range ballots {
		reversed[i] = ballots[len(ballots)-1-i]
	}
	second := Ranked(abc, reversed)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("tally must not depend on ballot arrival order")
	}
}

func votesByOption(r Round) map[string]int64 {
	out := make(map[string]int64, len(r.Counts))
	for _, c := range r.Counts {
		out[c.OptionID] = c.Votes
	}
	return out
}
