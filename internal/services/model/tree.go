package model

import (
	"math"
	"math/rand"
	"sort"
)

// TreeNode is one node of a decision tree in flat-array form, which keeps
// the trained model JSON-serializable for the artifact store. Feature is
// -1 on leaves; Left/Right index into the owning tree's node slice.
type TreeNode struct {
	Feature   int       `json:"feature"`
	Threshold float64   `json:"threshold"`
	Left      int       `json:"left"`
	Right     int       `json:"right"`
	Probs     []float64 `json:"probs,omitempty"`
}

// DecisionTree is a single Gini-split classification tree.
type DecisionTree struct {
	Nodes []TreeNode `json:"nodes"`
}

// PredictProba walks the tree and returns the leaf class distribution,
// indexed by class position.
func (t *DecisionTree) PredictProba(vec []float64) []float64 {
	i := 0
	for {
		n := t.Nodes[i]
		if n.Feature < 0 {
			return n.Probs
		}
		if vec[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

// treeBuilder grows one tree from a bootstrap sample. All randomness comes
// from the builder's own rng, so construction is reproducible per tree.
type treeBuilder struct {
	x          [][]float64
	y          []int // class indices
	numClasses int
	maxDepth   int
	maxFeats   int
	rng        *rand.Rand
	nodes      []TreeNode
}

func growTree(x [][]float64, y []int, numClasses, maxDepth int, rng *rand.Rand) DecisionTree {
	numFeats := len(x[0])
	maxFeats := int(math.Sqrt(float64(numFeats)))
	if maxFeats < 1 {
		maxFeats = 1
	}
	b := &treeBuilder{x: x, y: y, numClasses: numClasses, maxDepth: maxDepth, maxFeats: maxFeats, rng: rng}

	idx := make([]int, len(x))
	for i := range idx {
		idx[i] = rng.Intn(len(x)) // bootstrap with replacement
	}
	b.build(idx, 0)
	return DecisionTree{Nodes: b.nodes}
}

// build appends the subtree for the given sample indices and returns its
// root position.
func (b *treeBuilder) build(idx []int, depth int) int {
	counts := make([]int, b.numClasses)
	for _, i := range idx {
		counts[b.y[i]]++
	}

	pos := len(b.nodes)
	if depth >= b.maxDepth || len(idx) < 2 || isPure(counts) {
		b.nodes = append(b.nodes, leaf(counts))
		return pos
	}

	feat, thresh, ok := b.bestSplit(idx, counts)
	if !ok {
		b.nodes = append(b.nodes, leaf(counts))
		return pos
	}

	var left, right []int
	for _, i := range idx {
		if b.x[i][feat] <= thresh {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		b.nodes = append(b.nodes, leaf(counts))
		return pos
	}

	b.nodes = append(b.nodes, TreeNode{Feature: feat, Threshold: thresh})
	l := b.build(left, depth+1)
	r := b.build(right, depth+1)
	b.nodes[pos].Left = l
	b.nodes[pos].Right = r
	return pos
}

// bestSplit evaluates Gini impurity over a random sqrt-d feature subset and
// all distinct-value boundaries within it.
func (b *treeBuilder) bestSplit(idx []int, parentCounts []int) (feature int, threshold float64, ok bool) {
	feats := b.rng.Perm(len(b.x[0]))[:b.maxFeats]
	sort.Ints(feats) // stable evaluation order regardless of perm order

	bestGini := math.Inf(1)
	type pair struct {
		v float64
		c int
	}
	pairs := make([]pair, 0, len(idx))

	for _, f := range feats {
		pairs = pairs[:0]
		for _, i := range idx {
			pairs = append(pairs, pair{v: b.x[i][f], c: b.y[i]})
		}
		sort.Slice(pairs, func(i, j int) bool { return pairs[i].v < pairs[j].v })

		leftCounts := make([]int, b.numClasses)
		rightCounts := append([]int(nil), parentCounts...)
		nLeft := 0
		nTotal := len(pairs)

		for i := 0; i < nTotal-1; i++ {
			leftCounts[pairs[i].c]++
			rightCounts[pairs[i].c]--
			nLeft++
			if pairs[i].v == pairs[i+1].v {
				continue
			}
			g := weightedGini(leftCounts, nLeft, rightCounts, nTotal-nLeft)
			if g < bestGini {
				bestGini = g
				feature = f
				threshold = (pairs[i].v + pairs[i+1].v) / 2
				ok = true
			}
		}
	}
	return feature, threshold, ok
}

func weightedGini(left []int, nLeft int, right []int, nRight int) float64 {
	n := float64(nLeft + nRight)
	return float64(nLeft)/n*gini(left, nLeft) + float64(nRight)/n*gini(right, nRight)
}

func gini(counts []int, n int) float64 {
	if n == 0 {
		return 0
	}
	g := 1.0
	for _, c := range counts {
		p := float64(c) / float64(n)
		g -= p * p
	}
	return g
}

func isPure(counts []int) bool {
	seen := 0
	for _, c := range counts {
		if c > 0 {
			seen++
		}
	}
	return seen <= 1
}

func leaf(counts []int) TreeNode {
	total := 0
	for _, c := range counts {
		total += c
	}
	probs := make([]float64, len(counts))
	if total > 0 {
		for i, c := range counts {
			probs[i] = float64(c) / float64(total)
		}
	}
	return TreeNode{Feature: -1, Probs: probs}
}
