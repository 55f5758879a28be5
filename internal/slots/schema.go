package slots

// Kind classifies how a field is filled and how "missing" is decided.
type Kind int

const (
	// KindEnum fields match one value out of a fixed vocabulary.
	KindEnum Kind = iota
	// KindFree fields are captured by ordered regex templates.
	KindFree
	// KindList fields collect zero or more known items. An explicit
	// "none" answer yields an empty, non-nil list.
	KindList
)

// Field is a single slot the conversation must collect.
type Field struct {
	Key    string
	Prompt string
	Kind   Kind
	// Vocab holds allowed values for KindEnum and known item keywords
	// for KindList.
	Vocab []string
	// Patterns are tried in order for KindFree; the first match wins.
	// Each pattern must have one capture group.
	Patterns []Pattern
}

// Schema is the ordered list of fields a completed record requires.
// Order determines the default question sequence. A Schema is built once
// and never mutated afterwards.
type Schema []Field

// Find returns the field with the given key.
func (s Schema) Find(key string) (Field, bool) {
	for _, f := range s {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// missing reports whether the field is still unanswered in r.
// A list field answered with an empty list counts as satisfied.
func missing(f Field, r Record) bool {
	if f.Kind == KindList {
		_, answered := r.List(f.Key)
		return !answered
	}
	return r.Scalar(f.Key) == ""
}

// NextQuestion scans fields in order starting at from and returns the
// prompt and index of the first still-missing field. ok is false when
// every field from that point on is satisfied.
func (s Schema) NextQuestion(r Record, from int) (prompt string, index int, ok bool) {
	if from < 0 {
		from = 0
	}
	for i := from; i < len(s); i++ {
		if missing(s[i], r) {
			return s[i].Prompt, i, true
		}
	}
	return "", len(s), false
}

// Complete reports whether every field of the schema is satisfied.
func (s Schema) Complete(r Record) bool {
	_, _, ok := s.NextQuestion(r, 0)
	return !ok
}
