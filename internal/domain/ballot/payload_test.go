package ballot

import (
	"errors"
	"testing"
)

var opts = []string{"a", "b", "c"}

func TestValidatePlurality(t *testing.T) {
	if err := Validate(PluralityPayload{OptionID: "a"}, MethodPlurality, opts, 0); err != nil {
		t.Fatalf("expected valid payload, got %v", err)
	}
	if err := Validate(PluralityPayload{OptionID: "z"}, MethodPlurality, opts, 0); err == nil {
		t.Fatalf("unknown option must be rejected")
	}
	if err := Validate(PluralityPayload{}, MethodPlurality, opts, 0); err == nil {
		t.Fatalf("empty option must be rejected")
	}
}

func TestValidateMethodMismatch(t *testing.T) {
	err := Validate(PluralityPayload{OptionID: "a"}, MethodRanked, opts, 0)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestValidateScored(t *testing.T) {
	if err := Validate(ScoredPayload{Scores: map[string]int{"a": 5, "b": 1}}, MethodScored, opts, 0); err != nil {
		t.Fatalf("expected valid payload, got %v", err)
	}
	if err := Validate(ScoredPayload{Scores: map[string]int{"a": 6}}, MethodScored, opts, 0); err == nil {
		t.Fatalf("score above 5 must be rejected")
	}
	if err := Validate(ScoredPayload{Scores: map[string]int{"a": 0}}, MethodScored, opts, 0); err == nil {
		t.Fatalf("score below 1 must be rejected")
	}
	if err := Validate(ScoredPayload{Scores: map[string]int{"a": 3, "b": 3}}, MethodScored, opts, 1); err == nil {
		t.Fatalf("max_selections cap must be enforced")
	}
	if err := Validate(ScoredPayload{}, MethodScored, opts, 0); err == nil {
		t.Fatalf("empty scores must be rejected")
	}
}

func TestValidateRanked(t *testing.T) {
	if err := Validate(RankedPayload{Ranking: []string{"a", "c"}}, MethodRanked, opts, 0); err != nil {
		t.Fatalf("partial ranking must be allowed, got %v", err)
	}
	if err := Validate(RankedPayload{Ranking: []string{"a"}}, MethodRanked, opts, 0); err == nil {
		t.Fatalf("single-entry ranking must be rejected")
	}
	if err := Validate(RankedPayload{Ranking: []string{"a", "b", "a"}}, MethodRanked, opts, 0); err == nil {
		t.Fatalf("duplicate preference must be rejected")
	}
	if err := Validate(RankedPayload{Ranking: []string{"a", "b", "z"}}, MethodRanked, opts, 0); err == nil {
		t.Fatalf("unknown option must be rejected")
	}
	if err := Validate(RankedPayload{Ranking: []string{"a", "b", "c"}}, MethodRanked, opts, 2); err == nil {
		t.Fatalf("max_selections cap must be enforced")
	}
}

func TestDecodePayload(t *testing.T) {
	p, err := DecodePayload(MethodScored, []byte(`{"scores":{"a":4}}`))
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	sp, ok := p.(ScoredPayload)
	if !ok || sp.Scores["a"] != 4 {
		t.Fatalf("unexpected payload %+v", p)
	}

	if _, err := DecodePayload(Method("approval"), []byte(`{}`)); err == nil {
		t.Fatalf("unknown method must be rejected")
	}
}
