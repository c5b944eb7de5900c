// Package tfidf provides a deterministic, network-free embedder. Vectors are
// TF-IDF weights over the vocabulary of the corpus the embedder was fitted on,
// L2-normalized so cosine similarity reduces to a dot product. Terms outside
// the fitted vocabulary contribute nothing; a query sharing no terms with the
// corpus embeds to the zero vector.
package tfidf

import (
	"context"
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/w-h-a/premind/embedder"
)

type tfidfEmbedder struct {
	vocab map[string]int
	terms []string
	idf   []float64
}

func (e *tfidfEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	counts := make(map[int]int)
	for _, tok := range tokenize(text) {
		if i, ok := e.vocab[tok]; ok {
			counts[i]++
		}
	}

	vec := make([]float32, len(e.terms))
	var norm float64
	for i, n := range counts {
		w := float64(n) * e.idf[i]
		vec[i] = float32(w)
		norm += w * w
	}

	if norm > 0 {
		scale := float32(1 / math.Sqrt(norm))
		for i := range vec {
			vec[i] *= scale
		}
	}

	return vec, nil
}

// NewEmbedder fits an embedder on the given document corpus.
func NewEmbedder(docs []string) embedder.Embedder {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]bool)
		for _, tok := range tokenize(doc) {
			if !seen[tok] {
				seen[tok] = true
				df[tok]++
			}
		}
	}

	terms := make([]string, 0, len(df))
	for tok := range df {
		terms = append(terms, tok)
	}
	sort.Strings(terms)

	e := &tfidfEmbedder{
		vocab: make(map[string]int, len(terms)),
		terms: terms,
		idf:   make([]float64, len(terms)),
	}

	n := float64(len(docs))
	for i, tok := range terms {
		e.vocab[tok] = i
		e.idf[i] = math.Log((1+n)/(1+float64(df[tok]))) + 1
	}

	return e
}

func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	toks := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) < 2 {
			continue
		}
		toks = append(toks, f)
	}
	return toks
}
