package infra

import (
	_ "embed"
	"fmt"
	"log"
	"os"
	"tripzy/internal/models/trip_models"

	"gopkg.in/yaml.v3"
)

//go:embed vocabulary.yaml
var defaultVocabulary []byte

// LoadVocabulary reads the option lists from path, or the built-in file when path
// is empty.
func LoadVocabulary(path string) (*trip_models.Vocabulary, error) {
	data := defaultVocabulary
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read vocabulary %s: %w", path, err)
		}
		log.Printf("Loading vocabulary from %s", path)
	}
	return ParseVocabulary(data)
}

func ParseVocabulary(data []byte) (*trip_models.Vocabulary, error) {
	var v trip_models.Vocabulary
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("parse vocabulary: %w", err)
	}
	if len(v.Gazetteer) == 0 {
		return nil, fmt.Errorf("parse vocabulary: gazetteer is empty")
	}
	for _, m := range v.TravelModes {
		if m.Value == "" {
			return nil, fmt.Errorf("parse vocabulary: travel mode %q has no value", m.Label)
		}
	}
	return &v, nil
}
