package retriever

import "context"

// Retriever looks up policyholder records. An exact policy id match is
// returned alone; otherwise implementations fall back to similarity search
// and return zero or more approximate records, best first.
type Retriever interface {
	Lookup(ctx context.Context, policyID string, opts ...LookupOption) ([]Record, error)
}

// Seeder is implemented by stores that can be provisioned with records.
type Seeder interface {
	Seed(ctx context.Context, records []Record) error
}
