package httperr

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

type BodyKind int

const (
	BodyUnknown BodyKind = iota
	BodyText
	BodyFields
)

type FieldMessages struct {
	Field    string
	Messages []string
}

// ErrorBody is the decoded payload of a failed API call. The API answers
// either with a bare JSON string or with an object of field -> messages.
type ErrorBody struct {
	Kind   BodyKind
	Text   string
	Fields []FieldMessages
}

func (b ErrorBody) Messages() []string {
	switch b.Kind {
	case BodyText:
		return []string{b.Text}
	case BodyFields:
		var out []string
		for _, f := range b.Fields {
			out = append(out, f.Messages...)
		}
		return out
	default:
		return nil
	}
}

func (b ErrorBody) Message(fallback string) string {
	msgs := b.Messages()
	if len(msgs) == 0 {
		return fallback
	}
	return strings.Join(msgs, "\n")
}

func DecodeErrorBody(raw []byte) ErrorBody {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return ErrorBody{Kind: BodyUnknown}
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil && strings.TrimSpace(s) != "" {
			return ErrorBody{Kind: BodyText, Text: s}
		}
	case '{':
		keys, values, err := orderedObject(trimmed)
		if err != nil {
			break
		}
		var fields []FieldMessages
		for i, k := range keys {
			msgs := flatten(values[i])
			if len(msgs) == 0 {
				continue
			}
			fields = append(fields, FieldMessages{Field: k, Messages: msgs})
		}
		if len(fields) > 0 {
			return ErrorBody{Kind: BodyFields, Fields: fields}
		}
	case '[':
		if msgs := flatten(trimmed); len(msgs) > 0 {
			return ErrorBody{Kind: BodyFields, Fields: []FieldMessages{{Messages: msgs}}}
		}
	}

	return ErrorBody{Kind: BodyUnknown}
}

// orderedObject splits a JSON object into its keys and raw values, keeping
// the order in which the server wrote them.
func orderedObject(raw []byte) ([]string, []json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, nil, fmt.Errorf("expected object, got %v", tok)
	}

	var (
		keys   []string
		values []json.RawMessage
	)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("unexpected key token %v", tok)
		}
		var v json.RawMessage
		if err := dec.Decode(&v); err != nil {
			return nil, nil, err
		}
		keys = append(keys, key)
		values = append(values, v)
	}
	return keys, values, nil
}

func flatten(raw json.RawMessage) []string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if json.Unmarshal(trimmed, &s) != nil || s == "" {
			return nil
		}
		return []string{s}
	case '[':
		var items []json.RawMessage
		if json.Unmarshal(trimmed, &items) != nil {
			return nil
		}
		var out []string
		for _, it := range items {
			out = append(out, flatten(it)...)
		}
		return out
	case '{':
		_, values, err := orderedObject(trimmed)
		if err != nil {
			return nil
		}
		var out []string
		for _, v := range values {
			out = append(out, flatten(v)...)
		}
		return out
	case 'n':
		return nil
	default:
		return []string{string(trimmed)}
	}
}
