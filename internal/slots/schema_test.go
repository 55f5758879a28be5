package slots

import "testing"

func TestNextQuestionFollowsSchemaOrder(t *testing.T) {
	s := coffeeSchema(t)
	r := NewRecord(s)

	prompt, idx, ok := s.NextQuestion(r, 0)
	if !ok || idx != 0 || prompt != s[0].Prompt {
		t.Fatalf("first question = (%q, %d, %v), want index 0", prompt, idx, ok)
	}

	r.SetScalar("drinkType", "mocha")
	_, idx, ok = s.NextQuestion(r, 0)
	if !ok || idx != 1 {
		t.Fatalf("after drinkType, next index = %d, want 1", idx)
	}
}

func TestNextQuestionListFieldStates(t *testing.T) {
	s := coffeeSchema(t)
	r := NewRecord(s)
	r.SetScalar("drinkType", "mocha")
	r.SetScalar("size", "small")
	r.SetScalar("milk", "none")

	// Unanswered list field is missing.
	_, idx, ok := s.NextQuestion(r, 0)
	if !ok || idx != 3 {
		t.Fatalf("next index = %d (ok=%v), want 3 (extras)", idx, ok)
	}

	// Answered-with-empty is satisfied.
	r.SetList("extras", nil)
	_, idx, ok = s.NextQuestion(r, 0)
	if !ok || idx != 4 {
		t.Fatalf("next index = %d (ok=%v), want 4 (name)", idx, ok)
	}
}

func TestCompleteRequiresEveryField(t *testing.T) {
	s := coffeeSchema(t)
	r := NewRecord(s)
	r.SetScalar("drinkType", "latte")
	r.SetScalar("size", "medium")
	r.SetScalar("milk", "oat")
	r.SetList("extras", []string{})

	if s.Complete(r) {
		t.Fatalf("complete without name")
	}
	r.SetScalar("name", "Sam")
	if !s.Complete(r) {
		t.Fatalf("should be complete")
	}
}

func TestNextQuestionFromOffsetNeverLooksBack(t *testing.T) {
	s := coffeeSchema(t)
	r := NewRecord(s)
	r.SetScalar("size", "medium")

	// drinkType (index 0) is still missing but the scan starts past it.
	_, idx, ok := s.NextQuestion(r, 2)
	if !ok || idx != 2 {
		t.Fatalf("next index = %d (ok=%v), want 2", idx, ok)
	}
}

func TestRecordCloneIsIndependent(t *testing.T) {
	s := coffeeSchema(t)
	r := NewRecord(s)
	r.SetScalar("drinkType", "latte")
	r.SetList("extras", []string{"caramel"})

	c := r.Clone()
	c.SetScalar("drinkType", "mocha")
	items, _ := c.List("extras")
	items[0] = "mutated"

	if got := r.Scalar("drinkType"); got != "latte" {
		t.Fatalf("clone mutated original scalar: %q", got)
	}
	orig, _ := r.List("extras")
	if orig[0] != "caramel" {
		t.Fatalf("clone mutated original list: %v", orig)
	}
}

func TestLooksLikeIntent(t *testing.T) {
	p := CoffeeProfile()
	cases := []struct {
		text string
		want bool
	}{
		{"I'd like a cappuccino", true},
		{"can I order something", true},
		{"medium", true},
		{"what's the weather like", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := LooksLikeIntent(p, tc.text); got != tc.want {
			t.Fatalf("LooksLikeIntent(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}
