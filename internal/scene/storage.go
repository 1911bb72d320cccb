package scene

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

type fileFormat struct {
	Elements []Element `json:"elements"`
}

// Load reads a scene file. Loading does not create history entries.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var payload fileFormat
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parse scene %s: %w", path, err)
	}
	s := New()
	for _, el := range payload.Elements {
		if el.ID == "" {
			return nil, fmt.Errorf("parse scene %s: element without id", path)
		}
		if _, dup := s.index[el.ID]; dup {
			return nil, fmt.Errorf("parse scene %s: duplicate element id %q", path, el.ID)
		}
		if el.Type == "" {
			el.Type = TypeFreeDraw
		}
		if el.Color == "" {
			el.Color = DefaultStrokeColor
		}
		if el.StrokeWidth <= 0 {
			el.StrokeWidth = DefaultStrokeWidth
		}
		s.index[el.ID] = len(s.elements)
		s.elements = append(s.elements, el.clone())
	}
	return s, nil
}

// Save writes the live elements to path, creating parent directories.
func (s *Scene) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	payload := fileFormat{Elements: []Element{}}
	for _, el := range s.Elements() {
		if el.Deleted {
			continue
		}
		payload.Elements = append(payload.Elements, el)
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
