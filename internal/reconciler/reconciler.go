// Package reconciler turns raw image-classifier output into a short,
// deduplicated list of pantry item names.
//
// Labels and localized objects returned by the vision service are merged,
// filtered by score, stripped of non-food detections, matched against a
// curated food vocabulary and, failing that, accepted by a descriptor
// heuristic. The result is capped and ordered by first acceptance.
// Reconcile is pure: it performs no I/O and keeps no state between calls.
package reconciler

import (
	"math"
	"strings"
)

// Source identifies which classifier feature produced a detection.
type Source string

const (
	SourceLabel  Source = "label"
	SourceObject Source = "object"
)

// Confidence is the coarse confidence attached to a result.
type Confidence string

const (
	ConfidenceHigh Confidence = "high"
	ConfidenceLow  Confidence = "low"
)

// Detection is a single scored label or object name from the classifier.
type Detection struct {
	Text   string  `json:"text"`
	Score  float64 `json:"score"`
	Source Source  `json:"source"`
}

// CandidateItem is an accepted name. Matched is true when the name is a
// canonical vocabulary term and false when it came from the heuristic.
type CandidateItem struct {
	Name    string `json:"name"`
	Matched bool   `json:"matched"`
}

// Result is the outcome of one reconciliation.
type Result struct {
	Items      []string        `json:"items"`
	Candidates []CandidateItem `json:"candidates"`
	// Confidence is high when at least one item was accepted.
	Confidence Confidence `json:"confidence"`
	// LabelConfidence is high when the classifier returned any labels at
	// all, regardless of whether they survived filtering.
	LabelConfidence Confidence `json:"label_confidence"`
	TotalDetections int        `json:"total_detections"`
}

const (
	DefaultLabelFloor         = 0.3
	DefaultHeuristicThreshold = 0.4
	DefaultMaxItems           = 15
)

// Config holds the tunable thresholds.
type Config struct {
	// LabelFloor drops every detection scoring at or below it.
	LabelFloor float64
	// HeuristicThreshold is the score a detection must exceed to be
	// accepted without a vocabulary match.
	HeuristicThreshold float64
	// MaxItems caps the number of returned names.
	MaxItems int
	// ExclusionEnabled turns on the non-food exclusion pass.
	ExclusionEnabled bool
}

// DefaultConfig returns the permissive dual-threshold configuration.
func DefaultConfig() Config {
	return Config{
		LabelFloor:         DefaultLabelFloor,
		HeuristicThreshold: DefaultHeuristicThreshold,
		MaxItems:           DefaultMaxItems,
		ExclusionEnabled:   true,
	}
}

// StrictConfig returns the single-threshold configuration: one 0.5 bar for
// everything, no exclusion pass, at most 10 items.
func StrictConfig() Config {
	return Config{
		LabelFloor:         0.5,
		HeuristicThreshold: 0.5,
		MaxItems:           10,
		ExclusionEnabled:   false,
	}
}

// Reconciler applies a Config and a Vocabulary to classifier output.
// It is immutable and safe for concurrent use.
type Reconciler struct {
	cfg   Config
	vocab *Vocabulary
}

// New creates a Reconciler. A nil vocab selects DefaultVocabulary and a
// non-positive MaxItems selects DefaultMaxItems.
func New(cfg Config, vocab *Vocabulary) *Reconciler {
	if vocab == nil {
		vocab = DefaultVocabulary()
	}
	if cfg.MaxItems <= 0 {
		cfg.MaxItems = DefaultMaxItems
	}
	return &Reconciler{cfg: cfg, vocab: vocab}
}

// Config returns the configuration the Reconciler was built with.
func (r *Reconciler) Config() Config { return r.cfg }

// Reconcile runs labels and objects through DefaultConfig and DefaultVocabulary.
func Reconcile(labels, objects []Detection) Result {
	return New(DefaultConfig(), nil).Reconcile(labels, objects)
}

// Reconcile merges both detection lists and returns the accepted names.
// It never fails; empty or unusable input yields an empty, low-confidence
// result.
func (r *Reconciler) Reconcile(labels, objects []Detection) Result {
	res := Result{
		Items:           []string{},
		Candidates:      []CandidateItem{},
		Confidence:      ConfidenceLow,
		LabelConfidence: ConfidenceLow,
		TotalDetections: len(labels) + len(objects),
	}
	if len(labels) > 0 {
		res.LabelConfidence = ConfidenceHigh
	}

	seen := make(map[string]struct{})
	for _, d := range merge(labels, objects) {
		if len(res.Items) >= r.cfg.MaxItems {
			break
		}
		cand, ok := r.evaluate(d)
		if !ok {
			continue
		}
		name := strings.TrimSpace(cand.Name)
		if len([]rune(name)) <= 1 {
			continue
		}
		key := dedupKey(name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		cand.Name = name
		res.Items = append(res.Items, name)
		res.Candidates = append(res.Candidates, cand)
	}

	if len(res.Items) > 0 {
		res.Confidence = ConfidenceHigh
	}
	return res
}

// merge concatenates labels and objects, tagging each with the list it came from.
func merge(labels, objects []Detection) []Detection {
	out := make([]Detection, 0, len(labels)+len(objects))
	for _, d := range labels {
		d.Source = SourceLabel
		out = append(out, d)
	}
	for _, d := range objects {
		d.Source = SourceObject
		out = append(out, d)
	}
	return out
}

// evaluate decides whether a single detection yields a candidate.
func (r *Reconciler) evaluate(d Detection) (CandidateItem, bool) {
	if math.IsNaN(d.Score) || d.Score <= r.cfg.LabelFloor {
		return CandidateItem{}, false
	}

	text := normalizeText(d.Text)
	// An empty or one-letter text is contained in almost every term.
	if len([]rune(text)) < 2 {
		return CandidateItem{}, false
	}

	if r.cfg.ExclusionEnabled {
		if _, excluded := firstRelated(text, r.vocab.exclusion); excluded {
			return CandidateItem{}, false
		}
	}

	if term, ok := r.matchFood(text); ok {
		return CandidateItem{Name: term, Matched: true}, true
	}

	if d.Score <= r.cfg.HeuristicThreshold {
		return CandidateItem{}, false
	}
	if _, ok := firstRelated(text, r.vocab.descriptors); !ok {
		return CandidateItem{}, false
	}
	if _, ok := firstRelated(text, r.vocab.negative); ok {
		return CandidateItem{}, false
	}
	return CandidateItem{Name: cleanName(text, r.vocab.noise), Matched: false}, true
}

// matchFood prefers an exact vocabulary term, then the first related term in
// table order.
func (r *Reconciler) matchFood(text string) (string, bool) {
	for _, term := range r.vocab.food {
		if term == text {
			return term, true
		}
	}
	return firstRelated(text, r.vocab.food)
}
