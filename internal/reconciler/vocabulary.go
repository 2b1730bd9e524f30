package reconciler

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

//go:embed vocabulary.yaml
var defaultVocabularyYAML []byte

var defaultVocabulary = mustParseVocabulary(defaultVocabularyYAML)

// Vocabulary holds the read-only term tables used by the reconciler.
// A Vocabulary never changes after it is parsed and is safe to share
// between goroutines.
type Vocabulary struct {
	food        []string
	exclusion   []string
	descriptors []string
	negative    []string
	noise       []string
}

// vocabularyFile mirrors the YAML layout of a vocabulary table.
type vocabularyFile struct {
	Food        []string `yaml:"food"`
	Exclusion   []string `yaml:"exclusion"`
	Descriptors []string `yaml:"descriptors"`
	Negative    []string `yaml:"negative"`
	Noise       []string `yaml:"noise"`
}

// DefaultVocabulary returns the vocabulary compiled into the binary.
func DefaultVocabulary() *Vocabulary {
	return defaultVocabulary
}

// LoadVocabulary reads a YAML vocabulary file from disk.
func LoadVocabulary(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading vocabulary %s: %w", path, err)
	}
	return ParseVocabulary(data)
}

// ParseVocabulary parses a YAML vocabulary table. Terms are normalized the
// same way detections are; blank terms are dropped and duplicates keep their
// first position.
func ParseVocabulary(data []byte) (*Vocabulary, error) {
	var f vocabularyFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing vocabulary: %w", err)
	}

	v := &Vocabulary{
		food:        normalizeTerms(f.Food),
		exclusion:   normalizeTerms(f.Exclusion),
		descriptors: normalizeTerms(f.Descriptors),
		negative:    normalizeTerms(f.Negative),
		noise:       normalizeTerms(f.Noise),
	}
	if len(v.food) == 0 {
		return nil, errors.New("parsing vocabulary: food table is empty")
	}
	return v, nil
}

func mustParseVocabulary(data []byte) *Vocabulary {
	v, err := ParseVocabulary(data)
	if err != nil {
		panic(err)
	}
	return v
}

// FoodTerms returns the canonical food terms in match order.
func (v *Vocabulary) FoodTerms() []string { return slices.Clone(v.food) }

// ExclusionTerms returns the non-food terms.
func (v *Vocabulary) ExclusionTerms() []string { return slices.Clone(v.exclusion) }

// DescriptorTerms returns the food-category words used by the heuristic fallback.
func (v *Vocabulary) DescriptorTerms() []string { return slices.Clone(v.descriptors) }

// NegativeTerms returns the packaging, material and color words that veto a
// heuristic match.
func (v *Vocabulary) NegativeTerms() []string { return slices.Clone(v.negative) }

// NoiseWords returns the words stripped from heuristic names.
func (v *Vocabulary) NoiseWords() []string { return slices.Clone(v.noise) }

func normalizeTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	seen := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		t = normalizeText(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
