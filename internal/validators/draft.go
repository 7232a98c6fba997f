package validators

import "strings"

// Draft holds the raw, not yet submitted values of a create/edit form,
// keyed by wire field name.
type Draft map[string]string

func (d Draft) Get(field string) string {
	if d == nil {
		return ""
	}
	return d[field]
}

func (d Draft) Clone() Draft {
	out := make(Draft, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

func (d Draft) trimmed(field string) string {
	return strings.TrimSpace(d.Get(field))
}
