package csv

import (
	"context"
	"log/slog"
	"sort"

	"github.com/w-h-a/premind/embedder"
	"github.com/w-h-a/premind/embedder/tfidf"
	"github.com/w-h-a/premind/retriever"
)

type csvRetriever struct {
	options    retriever.Options
	records    []retriever.Record
	byID       map[string]int
	embeddings [][]float32
	embedder   embedder.Embedder
}

func (r *csvRetriever) Lookup(ctx context.Context, policyID string, opts ...retriever.LookupOption) ([]retriever.Record, error) {
	options := retriever.NewLookupOptions(opts...)

	if i, ok := r.byID[policyID]; ok {
		return []retriever.Record{r.records[i].Clone()}, nil
	}

	vec, err := r.embedder.Embed(ctx, "policy_id: "+policyID)
	if err != nil {
		return nil, err
	}

	type scored struct {
		idx   int
		score float64
	}

	candidates := make([]scored, 0, len(r.records))
	for i := range r.records {
		score := embedder.CosineSimilarity(vec, r.embeddings[i])
		if score <= 0 {
			continue
		}
		candidates = append(candidates, scored{idx: i, score: score})
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if len(candidates) > options.Limit {
		candidates = candidates[:options.Limit]
	}

	results := make([]retriever.Record, 0, len(candidates))
	for _, c := range candidates {
		results = append(results, r.records[c.idx].Clone())
	}

	return results, nil
}

// NewRetriever loads the policyholder CSV at the configured location and
// builds the in-memory index. The index is read-only after construction.
func NewRetriever(opts ...retriever.Option) retriever.Retriever {
	options := retriever.NewOptions(opts...)

	records, err := ReadFile(options.Location)
	if err != nil {
		detail := "failed to load records for csv retriever"
		slog.ErrorContext(context.Background(), detail, "error", err)
		panic(detail)
	}

	r := &csvRetriever{
		options: options,
		records: records,
		byID:    make(map[string]int, len(records)),
	}

	docs := make([]string, len(records))
	for i, rec := range records {
		r.byID[rec.PolicyID()] = i
		docs[i] = rec.Document()
	}

	emb := options.Embedder
	if emb == nil {
		emb = tfidf.NewEmbedder(docs)
	}
	r.embedder = emb

	for i, doc := range docs {
		vec, err := emb.Embed(options.Context, doc)
		if err != nil {
			detail := "failed to index records for csv retriever"
			slog.ErrorContext(options.Context, detail, "policy_id", records[i].PolicyID(), "error", err)
			panic(detail)
		}
		r.embeddings = append(r.embeddings, vec)
	}

	return r
}
