package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Stage is one labeled step of a roadmap with its ordered action items.
type Stage struct {
	Label string
	Items []string
}

// StageList is an ordered label -> items mapping. It serializes as a JSON
// object whose key order is the list order; a plain map would shuffle the
// stages, and stage order is meaningful (Classes 8-10 comes before Portfolio).
type StageList []Stage

// Get returns the items for a stage label.
func (s StageList) Get(label string) ([]string, bool) {
	for _, stage := range s {
		if stage.Label == label {
			return stage.Items, true
		}
	}
	return nil, false
}

// Labels returns the stage labels in order.
func (s StageList) Labels() []string {
	labels := make([]string, 0, len(s))
	for _, stage := range s {
		labels = append(labels, stage.Label)
	}
	return labels
}

// MarshalJSON encodes the stages as a JSON object in list order.
func (s StageList) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, stage := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		label, err := json.Marshal(stage.Label)
		if err != nil {
			return nil, err
		}
		items, err := json.Marshal(stage.Items)
		if err != nil {
			return nil, err
		}
		buf.Write(label)
		buf.WriteByte(':')
		buf.Write(items)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object preserving its key order.
// A JSON null leaves the list unchanged, per the json.Unmarshaler convention.
func (s *StageList) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("roadmap stages: expected JSON object, got %v", tok)
	}

	stages := StageList{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		label, ok := tok.(string)
		if !ok {
			return fmt.Errorf("roadmap stages: expected string key, got %v", tok)
		}

		var items []string
		if err := dec.Decode(&items); err != nil {
			return fmt.Errorf("roadmap stages: invalid items for %q: %w", label, err)
		}
		stages = append(stages, Stage{Label: label, Items: items})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*s = stages
	return nil
}
