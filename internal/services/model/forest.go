package model

import (
	"math/rand"
	"sort"
	"sync"

	"StockPulse/internal/domain/models"
)

// TrainedModel is the serialized form of a fitted forest: the trees plus
// the observed class value set. Immutable after training; safe for
// concurrent Predict calls.
type TrainedModel struct {
	Classes     []int          `json:"classes"`
	Trees       []DecisionTree `json:"trees"`
	NumFeatures int            `json:"num_features"`
	MaxDepth    int            `json:"max_depth"`
	Seed        int64          `json:"seed"`
}

// fitForest trains treeCount trees over the matrix. Tree construction runs
// on a small worker pool; each tree derives its rng from (seed, index) and
// writes only its own slot, so the result is identical to a sequential
// build with the same seed, tree count and row order.
func fitForest(x [][]float64, y []int, treeCount, maxDepth, workers int, seed int64) *TrainedModel {
	classes := observedClasses(y)
	classIdx := make(map[int]int, len(classes))
	for i, c := range classes {
		classIdx[c] = i
	}
	yIdx := make([]int, len(y))
	for i, v := range y {
		yIdx[i] = classIdx[v]
	}

	trees := make([]DecisionTree, treeCount)
	if workers < 1 {
		workers = 1
	}
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range jobs {
				rng := rand.New(rand.NewSource(seed + int64(t)))
				trees[t] = growTree(x, yIdx, len(classes), maxDepth, rng)
			}
		}()
	}
	for t := 0; t < treeCount; t++ {
		jobs <- t
	}
	close(jobs)
	wg.Wait()

	return &TrainedModel{
		Classes:     classes,
		Trees:       trees,
		NumFeatures: len(x[0]),
		MaxDepth:    maxDepth,
		Seed:        seed,
	}
}

// PredictProba averages per-class probabilities over all trees, indexed by
// position in Classes.
func (m *TrainedModel) PredictProba(vec []float64) []float64 {
	probs := make([]float64, len(m.Classes))
	for i := range m.Trees {
		leaf := m.Trees[i].PredictProba(vec)
		for j, p := range leaf {
			probs[j] += p
		}
	}
	for j := range probs {
		probs[j] /= float64(len(m.Trees))
	}
	return probs
}

// PredictClass returns the winning class value and its probability. Ties
// resolve to the lower class value, keeping the decision deterministic.
func (m *TrainedModel) PredictClass(vec []float64) (class int, confidence float64) {
	probs := m.PredictProba(vec)
	best := 0
	for j := 1; j < len(probs); j++ {
		if probs[j] > probs[best] {
			best = j
		}
	}
	return m.Classes[best], probs[best]
}

// Prediction maps the winning class onto the inference contract.
func (m *TrainedModel) Prediction(vec []float64) models.Prediction {
	class, conf := m.PredictClass(vec)
	return models.Prediction{
		Direction:  models.DirectionLabel(class),
		Confidence: conf,
		Value:      class,
	}
}

// observedClasses returns the sorted distinct label values in y. The fixed
// {-1,0,1} set is deliberately not forced: absent classes stay out of the
// model and its reports.
func observedClasses(y []int) []int {
	seen := make(map[int]bool, 3)
	for _, v := range y {
		seen[v] = true
	}
	out := make([]int, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}
