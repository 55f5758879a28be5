package slots

// Record holds the values collected so far for one conversation.
// Scalar fields are strings; list fields distinguish "not yet answered"
// (absent) from "answered, none" (present and empty).
type Record struct {
	scalars map[string]string
	lists   map[string][]string
	schema  Schema
}

// NewRecord returns an empty record shaped by the schema.
func NewRecord(s Schema) Record {
	return Record{
		scalars: make(map[string]string),
		lists:   make(map[string][]string),
		schema:  s,
	}
}

// Scalar returns the current value of a scalar field ("" when unset).
func (r Record) Scalar(key string) string { return r.scalars[key] }

// SetScalar stores a scalar value. Callers are expected to check
// emptiness first; extraction never overwrites a filled field.
func (r Record) SetScalar(key, value string) { r.scalars[key] = value }

// List returns the items of a list field and whether it has been
// answered at all.
func (r Record) List(key string) (items []string, answered bool) {
	items, answered = r.lists[key]
	return items, answered
}

// SetList marks a list field as answered with the given items. Passing
// an empty slice records an explicit "none" answer.
func (r Record) SetList(key string, items []string) {
	if items == nil {
		items = []string{}
	}
	r.lists[key] = items
}

// Empty reports whether nothing has been collected yet.
func (r Record) Empty() bool {
	for _, v := range r.scalars {
		if v != "" {
			return false
		}
	}
	return len(r.lists) == 0
}

// Clone returns an independent copy of the record, for handing a
// snapshot to persistence.
func (r Record) Clone() Record {
	out := NewRecord(r.schema)
	for k, v := range r.scalars {
		out.scalars[k] = v
	}
	for k, v := range r.lists {
		items := make([]string, len(v))
		copy(items, v)
		out.lists[k] = items
	}
	return out
}

// Fields flattens the record into the persisted shape: every schema
// field keyed by name, unanswered list fields rendered as empty lists.
func (r Record) Fields() map[string]any {
	out := make(map[string]any, len(r.schema))
	for _, f := range r.schema {
		if f.Kind == KindList {
			items := r.lists[f.Key]
			if items == nil {
				items = []string{}
			}
			out[f.Key] = items
			continue
		}
		out[f.Key] = r.scalars[f.Key]
	}
	return out
}
