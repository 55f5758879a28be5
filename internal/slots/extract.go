package slots

import (
	"regexp"
	"sort"
	"strings"
)

// Pattern is one prioritized template for a free-text field. The
// regexp must carry exactly one capture group holding the value.
type Pattern struct {
	re *regexp.Regexp
}

// MustPattern compiles a template, panicking on a bad expression.
// Schemas are built at startup, so a bad pattern fails fast.
func MustPattern(expr string) Pattern {
	return Pattern{re: regexp.MustCompile(expr)}
}

var negations = []string{"none", "nothing", "nope"}

// negationPhrases covers the generic refusals plus "no <field>"
// ("no extras", "no symptoms").
func negationPhrases(f Field) []string {
	key := strings.ToLower(f.Key)
	out := append([]string{"no " + key, "no " + strings.TrimSuffix(key, "s")}, negations...)
	return out
}

// Extract runs the field heuristics for every still-missing field of
// the schema against one utterance. Already-filled fields are never
// touched; an utterance that matches nothing leaves the record as is.
func Extract(s Schema, r Record, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	low := strings.ToLower(text)

	for _, f := range s {
		switch f.Kind {
		case KindEnum:
			if r.Scalar(f.Key) != "" {
				continue
			}
			// Longest candidates first so multi-word members are not
			// shadowed by a shorter substring ("iced latte" vs "latte").
			if v := matchVocab(f.Vocab, low); v != "" {
				r.SetScalar(f.Key, v)
			}
		case KindList:
			if _, answered := r.List(f.Key); answered {
				continue
			}
			if containsAnyPhrase(low, negationPhrases(f)) {
				r.SetList(f.Key, nil)
				continue
			}
			if items := matchItems(f.Vocab, low); len(items) > 0 {
				r.SetList(f.Key, items)
			}
		case KindFree:
			if r.Scalar(f.Key) != "" {
				continue
			}
			for _, p := range f.Patterns {
				if m := p.re.FindStringSubmatch(text); m != nil {
					r.SetScalar(f.Key, strings.TrimSpace(m[1]))
					break
				}
			}
		}
	}
}

// AnswerPending treats the utterance as a direct answer to the field
// currently being asked. Only list fields get special handling: a
// comma-separated answer is segmented into items even when none of
// them is a known keyword.
func AnswerPending(f Field, r Record, text string) {
	if f.Kind != KindList {
		return
	}
	if _, answered := r.List(f.Key); answered {
		return
	}
	if !strings.Contains(text, ",") {
		return
	}
	r.SetList(f.Key, SplitList(text))
}

var listSeparators = regexp.MustCompile(`,| and | & `)

// SplitList segments a free-form list answer on commas and conjunctions.
func SplitList(text string) []string {
	var out []string
	for _, part := range listSeparators.Split(text, -1) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// matchVocab returns the first vocabulary member contained in the
// lowered text, candidates tried longest-first.
func matchVocab(vocab []string, low string) string {
	ordered := make([]string, len(vocab))
	copy(ordered, vocab)
	sort.SliceStable(ordered, func(i, j int) bool { return len(ordered[i]) > len(ordered[j]) })
	for _, v := range ordered {
		if containsPhrase(low, v) {
			return v
		}
	}
	return ""
}

// matchItems collects every known keyword present in the text,
// longest-first, skipping keywords already covered by a longer match.
func matchItems(vocab []string, low string) []string {
	ordered := make([]string, len(vocab))
	copy(ordered, vocab)
	sort.SliceStable(ordered, func(i, j int) bool { return len(ordered[i]) > len(ordered[j]) })
	var items []string
	for _, v := range ordered {
		if !containsPhrase(low, v) {
			continue
		}
		covered := false
		for _, got := range items {
			if strings.Contains(got, v) {
				covered = true
				break
			}
		}
		if !covered {
			items = append(items, v)
		}
	}
	return items
}

func containsAnyPhrase(low string, phrases []string) bool {
	for _, p := range phrases {
		if containsPhrase(low, p) {
			return true
		}
	}
	return false
}

// containsPhrase reports whether phrase occurs in low on word
// boundaries, so "oat" does not fire inside "goat".
func containsPhrase(low, phrase string) bool {
	for start := 0; ; {
		idx := strings.Index(low[start:], phrase)
		if idx < 0 {
			return false
		}
		idx += start
		end := idx + len(phrase)
		if boundaryBefore(low, idx) && boundaryAfter(low, end) {
			return true
		}
		start = idx + 1
	}
}

func boundaryBefore(s string, idx int) bool {
	if idx == 0 {
		return true
	}
	return !isWordByte(s[idx-1])
}

func boundaryAfter(s string, end int) bool {
	if end >= len(s) {
		return true
	}
	return !isWordByte(s[end])
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}
