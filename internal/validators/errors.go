package validators

import "strings"

type FieldError struct {
	Field    string
	Messages []string
}

// FieldErrors collects every violation of a schema, grouped by field in
// schema order.
type FieldErrors struct {
	items []FieldError
}

func (e *FieldErrors) Add(field, message string) {
	for i := range e.items {
		if e.items[i].Field == field {
			e.items[i].Messages = append(e.items[i].Messages, message)
			return
		}
	}
	e.items = append(e.items, FieldError{Field: field, Messages: []string{message}})
}

func (e *FieldErrors) Len() int {
	if e == nil {
		return 0
	}
	return len(e.items)
}

func (e *FieldErrors) Has(field string) bool {
	return len(e.For(field)) > 0
}

func (e *FieldErrors) For(field string) []string {
	if e == nil {
		return nil
	}
	for _, it := range e.items {
		if it.Field == field {
			return it.Messages
		}
	}
	return nil
}

func (e *FieldErrors) Items() []FieldError {
	if e == nil {
		return nil
	}
	return e.items
}

// Map returns a copy keyed by field, for templates.
func (e *FieldErrors) Map() map[string][]string {
	out := make(map[string][]string, e.Len())
	for _, it := range e.Items() {
		out[it.Field] = append([]string(nil), it.Messages...)
	}
	return out
}

// Message renders one "- message" bullet per violation.
func (e *FieldErrors) Message() string {
	var lines []string
	for _, it := range e.Items() {
		for _, m := range it.Messages {
			lines = append(lines, "- "+m)
		}
	}
	return strings.Join(lines, "\n")
}

func (e *FieldErrors) Error() string {
	return "validation failed: " + strings.ReplaceAll(e.Message(), "\n", " ")
}

func (e *FieldErrors) ValidationFailed() bool {
	return e.Len() > 0
}

func (e *FieldErrors) orNil() error {
	if e.Len() == 0 {
		return nil
	}
	return e
}
