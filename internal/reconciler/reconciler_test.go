package reconciler_test

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pantrify/internal/reconciler"
)

func label(text string, score float64) reconciler.Detection {
	return reconciler.Detection{Text: text, Score: score}
}

func TestReconcile_EmptyInput(t *testing.T) {
	res := reconciler.Reconcile(nil, nil)

	assert.Empty(t, res.Items)
	assert.NotNil(t, res.Items)
	assert.Equal(t, reconciler.ConfidenceLow, res.Confidence)
	assert.Equal(t, reconciler.ConfidenceLow, res.LabelConfidence)
	assert.Equal(t, 0, res.TotalDetections)
}

func TestReconcile_SingleVocabularyLabel(t *testing.T) {
	res := reconciler.Reconcile([]reconciler.Detection{label("apple", 0.9)}, nil)

	assert.Equal(t, []string{"apple"}, res.Items)
	assert.Equal(t, reconciler.ConfidenceHigh, res.Confidence)
	require.Len(t, res.Candidates, 1)
	assert.True(t, res.Candidates[0].Matched)
}

func TestReconcile_NonFoodExcluded(t *testing.T) {
	res := reconciler.Reconcile(
		[]reconciler.Detection{label("plate", 0.9)},
		[]reconciler.Detection{label("ceramic plate", 0.8)},
	)

	assert.Empty(t, res.Items)
	assert.Equal(t, reconciler.ConfidenceLow, res.Confidence)
	assert.Equal(t, reconciler.ConfidenceHigh, res.LabelConfidence)
	assert.Equal(t, 2, res.TotalDetections)
}

func TestReconcile_CanonicalTermPreferredOverRawText(t *testing.T) {
	res := reconciler.Reconcile([]reconciler.Detection{label("fresh organic banana", 0.6)}, nil)

	assert.Equal(t, []string{"banana"}, res.Items)
	assert.Equal(t, reconciler.ConfidenceHigh, res.Confidence)
}

func TestReconcile_HeuristicFallback(t *testing.T) {
	res := reconciler.Reconcile([]reconciler.Detection{label("dairy product", 0.45)}, nil)

	assert.Equal(t, []string{"Dairy product"}, res.Items)
	require.Len(t, res.Candidates, 1)
	assert.False(t, res.Candidates[0].Matched)
	assert.Equal(t, reconciler.ConfidenceHigh, res.Confidence)
}

func TestReconcile_HeuristicNeedsHigherScore(t *testing.T) {
	// Above the floor but not above the heuristic threshold.
	res := reconciler.Reconcile([]reconciler.Detection{label("dairy product", 0.4)}, nil)

	assert.Empty(t, res.Items)
	assert.Equal(t, reconciler.ConfidenceLow, res.Confidence)
}

func TestReconcile_VocabularyMatchOnlyNeedsFloor(t *testing.T) {
	res := reconciler.Reconcile([]reconciler.Detection{label("carrot", 0.31)}, nil)
	assert.Equal(t, []string{"carrot"}, res.Items)

	res = reconciler.Reconcile([]reconciler.Detection{label("carrot", 0.3)}, nil)
	assert.Empty(t, res.Items, "score equal to the floor is discarded")
}

func TestReconcile_CapPreservesInsertionOrder(t *testing.T) {
	terms := reconciler.DefaultVocabulary().FoodTerms()[:20]
	var labels []reconciler.Detection
	for _, term := range terms {
		labels = append(labels, label(term, 0.9))
	}

	res := reconciler.Reconcile(labels, nil)

	assert.Len(t, res.Items, 15)
	assert.Equal(t, terms[:15], res.Items)
}

func TestReconcile_CapMonotonic(t *testing.T) {
	terms := reconciler.DefaultVocabulary().FoodTerms()[:20]
	var labels []reconciler.Detection
	for _, term := range terms {
		labels = append(labels, label(term, 0.9))
	}

	cfg := reconciler.DefaultConfig()
	wide := reconciler.New(cfg, nil).Reconcile(labels, nil)
	cfg.MaxItems = 10
	narrow := reconciler.New(cfg, nil).Reconcile(labels, nil)

	assert.Len(t, narrow.Items, 10)
	assert.Equal(t, wide.Items[:10], narrow.Items)
}

func TestReconcile_DeduplicatesCaseInsensitively(t *testing.T) {
	res := reconciler.Reconcile(
		[]reconciler.Detection{label("Apple", 0.9), label("apples", 0.8), label("APPLE", 0.7)},
		[]reconciler.Detection{label("apple", 0.95)},
	)

	assert.Equal(t, []string{"apple"}, res.Items)
}

func TestReconcile_HeuristicNamesDedupAcrossCase(t *testing.T) {
	res := reconciler.Reconcile(
		[]reconciler.Detection{label("Seafood", 0.8)},
		[]reconciler.Detection{label("seafood", 0.9)},
	)

	assert.Equal(t, []string{"Seafood"}, res.Items)
}

func TestReconcile_ExactTermBeatsEarlierCompound(t *testing.T) {
	// "pineapple" is declared before "apple" and contains it.
	res := reconciler.Reconcile([]reconciler.Detection{label("apple", 0.9), label("pineapple", 0.9)}, nil)

	assert.Equal(t, []string{"apple", "pineapple"}, res.Items)
}

func TestReconcile_IceCreamIsNotCream(t *testing.T) {
	res := reconciler.Reconcile([]reconciler.Detection{label("Ice Cream", 0.9)}, nil)
	assert.Equal(t, []string{"ice cream"}, res.Items)

	res = reconciler.Reconcile([]reconciler.Detection{label("cream", 0.9)}, nil)
	assert.Equal(t, []string{"cream"}, res.Items)
}

func TestReconcile_FirstRelatedTermWins(t *testing.T) {
	res := reconciler.Reconcile([]reconciler.Detection{label("grilled chicken breast fillet", 0.9)}, nil)
	assert.Equal(t, []string{"chicken breast"}, res.Items)

	res = reconciler.Reconcile([]reconciler.Detection{label("chicken wing", 0.9)}, nil)
	assert.Equal(t, []string{"chicken"}, res.Items)
}

func TestReconcile_ObjectsFollowLabels(t *testing.T) {
	res := reconciler.Reconcile(
		[]reconciler.Detection{label("milk", 0.8)},
		[]reconciler.Detection{label("Banana", 0.9), label("Tomato", 0.7)},
	)

	assert.Equal(t, []string{"milk", "banana", "tomato"}, res.Items)
}

func TestReconcile_NegativeDescriptorVetoesHeuristic(t *testing.T) {
	res := reconciler.Reconcile([]reconciler.Detection{label("plastic food", 0.9)}, nil)

	assert.Empty(t, res.Items)
}

func TestReconcile_NoiseWordsStripped(t *testing.T) {
	res := reconciler.Reconcile([]reconciler.Detection{label("Fresh Frozen Seafood Medley", 0.8)}, nil)

	assert.Equal(t, []string{"Seafood medley"}, res.Items)
}

func TestReconcile_OnlyNoiseIsDropped(t *testing.T) {
	// "organic" is a descriptor but cleans to nothing.
	res := reconciler.Reconcile([]reconciler.Detection{label("organic", 0.9)}, nil)

	assert.Empty(t, res.Items)
	assert.Equal(t, reconciler.ConfidenceLow, res.Confidence)
}

func TestReconcile_BlankAndShortTextIgnored(t *testing.T) {
	res := reconciler.Reconcile(
		[]reconciler.Detection{label("", 0.99), label("  ", 0.99), label("a", 0.99)},
		[]reconciler.Detection{label("x", 0.99)},
	)

	assert.Empty(t, res.Items)
	assert.Equal(t, 4, res.TotalDetections)
}

func TestReconcile_NaNScoreIgnored(t *testing.T) {
	res := reconciler.Reconcile([]reconciler.Detection{label("apple", math.NaN())}, nil)

	assert.Empty(t, res.Items)
}

func TestReconcile_UnicodeNormalized(t *testing.T) {
	// Fullwidth letters fold to ASCII under NFKC.
	res := reconciler.Reconcile([]reconciler.Detection{label("ＢＡＮＡＮＡ", 0.9)}, nil)

	assert.Equal(t, []string{"banana"}, res.Items)
}

func TestReconcile_StrictConfigSkipsExclusion(t *testing.T) {
	r := reconciler.New(reconciler.StrictConfig(), nil)

	// Without the exclusion pass "butter knife" matches the vocabulary.
	res := r.Reconcile([]reconciler.Detection{label("butter knife", 0.9), label("rice", 0.45)}, nil)
	assert.Equal(t, []string{"butter"}, res.Items)

	def := reconciler.Reconcile([]reconciler.Detection{label("butter knife", 0.9), label("rice", 0.45)}, nil)
	assert.Equal(t, []string{"rice"}, def.Items)
}

func TestReconcile_Idempotent(t *testing.T) {
	labels := []reconciler.Detection{
		label("Food", 0.97), label("Fruit", 0.9), label("Banana", 0.88),
		label("Tableware", 0.8), label("Natural foods", 0.75), label("Apple", 0.7),
	}
	objects := []reconciler.Detection{label("Banana", 0.8), label("Bowl", 0.7), label("Orange", 0.6)}

	first := reconciler.Reconcile(labels, objects)
	second := reconciler.Reconcile(labels, objects)

	assert.Equal(t, first, second)
	assert.Equal(t, []string{"Food", "Fruit", "banana", "Foods", "apple", "orange"}, first.Items)
}

func TestReconcile_InputsNotMutated(t *testing.T) {
	labels := []reconciler.Detection{{Text: "Apple", Score: 0.9, Source: reconciler.SourceObject}}

	reconciler.Reconcile(labels, nil)

	assert.Equal(t, "Apple", labels[0].Text)
	assert.Equal(t, reconciler.SourceObject, labels[0].Source)
}

func TestReconcile_Invariants(t *testing.T) {
	vocab := reconciler.DefaultVocabulary()
	pool := append(vocab.FoodTerms(), vocab.ExclusionTerms()...)
	pool = append(pool, vocab.DescriptorTerms()...)
	pool = append(pool, "", "a", "Fresh Fruit", "organic", "dinner plate", "Raw Meat", "plastic bottle")

	rng := rand.New(rand.NewSource(42))
	randomDetections := func(n int) []reconciler.Detection {
		out := make([]reconciler.Detection, n)
		for i := range out {
			text := pool[rng.Intn(len(pool))]
			if rng.Intn(3) == 0 {
				text = strings.ToUpper(text)
			}
			out[i] = label(text, rng.Float64())
		}
		return out
	}

	for i := 0; i < 200; i++ {
		labels := randomDetections(rng.Intn(30))
		objects := randomDetections(rng.Intn(30))

		for _, maxItems := range []int{10, 15} {
			cfg := reconciler.DefaultConfig()
			cfg.MaxItems = maxItems
			res := reconciler.New(cfg, nil).Reconcile(labels, objects)

			t.Run(fmt.Sprintf("case_%d_cap_%d", i, maxItems), func(t *testing.T) {
				assert.LessOrEqual(t, len(res.Items), maxItems)
				assert.Len(t, res.Candidates, len(res.Items))

				seen := map[string]bool{}
				for _, item := range res.Items {
					key := strings.ToLower(strings.TrimSpace(item))
					assert.False(t, seen[key], "duplicate item %q", item)
					seen[key] = true
					assert.Greater(t, len([]rune(strings.TrimSpace(item))), 1)
				}

				if len(res.Items) == 0 {
					assert.Equal(t, reconciler.ConfidenceLow, res.Confidence)
				} else {
					assert.Equal(t, reconciler.ConfidenceHigh, res.Confidence)
				}
			})
		}
	}
}
