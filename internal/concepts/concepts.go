// Package concepts offers the built-in concept vocabulary used for
// autocomplete and quick picks.
package concepts

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// DefaultLimit caps Suggest when the caller passes a non-positive limit.
const DefaultLimit = 6

// MinQueryRunes is the shortest query that produces suggestions.
const MinQueryRunes = 2

var dictionary = []string{
	"Neural Networks", "Gradient Descent", "Backpropagation", "Eigenvalues & Eigenvectors",
	"Fourier Transform", "Navier-Stokes Equations", "Schrödinger Equation", "Maxwell's Equations",
	"General Relativity", "Quantum Entanglement", "Chaos Theory", "Fractal Geometry",
	"Voronoi Tesselation", "Transformer Architecture", "Large Language Model",
	"Convolutional Network", "Recurrent Neural Network", "Fibonacci Sequence", "Golden Ratio",
	"Turing Machine", "Cellular Automata", "Conway's Game of Life", "Monte Carlo Simulation",
	"Bayesian Inference", "Markov Chains", "Entropy & Information Theory", "Fluid Dynamics",
	"String Theory", "Dark Matter Topology", "Riemann Hypothesis", "Euler's Identity",
	"Heisenberg Uncertainty Principle", "Tensor Calculus", "Graph Theory", "Double Slit Experiment",
	"Superposition", "Event Horizon", "Cybernetics", "Genetic Algorithms", "Reinforcement Learning",
}

var quickPicks = []string{
	"Gradient Descent",
	"Transformers & Attention",
	"Backpropagation",
	"Eigenvectors",
}

var folded = foldAll(dictionary)

func foldAll(terms []string) []string {
	caser := cases.Fold()
	out := make([]string, len(terms))
	for i, t := range terms {
		out[i] = caser.String(t)
	}
	return out
}

// All returns the whole dictionary.
func All() []string {
	return append([]string(nil), dictionary...)
}

// QuickPicks returns the concepts offered as one-click starting points.
func QuickPicks() []string {
	return append([]string(nil), quickPicks...)
}

// Suggest returns up to limit dictionary terms containing query, ignoring
// case, in dictionary order.
func Suggest(query string, limit int) []string {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < MinQueryRunes {
		return nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	needle := cases.Fold().String(query)
	var out []string
	for i, term := range folded {
		if strings.Contains(term, needle) {
			out = append(out, dictionary[i])
			if len(out) == limit {
				break
			}
		}
	}
	return out
}
