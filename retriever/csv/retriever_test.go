package csv

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/w-h-a/premind/retriever"
)

const testCSV = `policy_id,name,email,phone,due_date,premium_amount,notes
P001,Asha Rao,asha.rao@example.com,+91-9876543210,2025-09-15,12000,Prefers email reminders about the gold plan
P002,Vikram Mehta,vikram.m@example.com,+91-9123456780,2025-10-01,8500,Asked about the gold plan last quarter
P003,Leila Khan,leila.khan@example.com,+91-9988776655,2025-08-30,15600,Recently upgraded to the gold plan
`

func writeTestCSV(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "policyholders.csv")

	if err := os.WriteFile(path, []byte(testCSV), 0o644); err != nil {
		t.Fatalf("failed to write test csv: %v", err)
	}

	return path
}

func TestLookupExactMatch(t *testing.T) {
	r := NewRetriever(retriever.WithLocation(writeTestCSV(t)))

	records, err := r.Lookup(context.Background(), "P001")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}

	if len(records) != 1 {
		t.Fatalf("expected exactly 1 record for an exact id, got %d", len(records))
	}

	if got := records[0].PolicyID(); got != "P001" {
		t.Errorf("expected policy id P001, got %q", got)
	}

	if got := records[0].Get(retriever.FieldName); got != "Asha Rao" {
		t.Errorf("expected name Asha Rao, got %q", got)
	}
}

func TestLookupUnknownIDReturnsNothing(t *testing.T) {
	r := NewRetriever(retriever.WithLocation(writeTestCSV(t)))

	records, err := r.Lookup(context.Background(), "P999")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}

	if len(records) != 0 {
		t.Fatalf("expected no records for an id with no overlap, got %d", len(records))
	}
}

func TestLookupNearMissFallsBack(t *testing.T) {
	r := NewRetriever(retriever.WithLocation(writeTestCSV(t)))

	records, err := r.Lookup(context.Background(), "P001-archived")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}

	if len(records) != 1 {
		t.Fatalf("expected 1 fallback record, got %d", len(records))
	}

	if got := records[0].PolicyID(); got != "P001" {
		t.Errorf("expected fallback to land on P001, got %q", got)
	}
}

func TestLookupFallbackRespectsLimit(t *testing.T) {
	r := NewRetriever(retriever.WithLocation(writeTestCSV(t)))

	// every test record mentions the gold plan, so this matches all three
	records, err := r.Lookup(context.Background(), "gold")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("expected the default limit of 2 records, got %d", len(records))
	}

	records, err = r.Lookup(context.Background(), "gold", retriever.WithLookupLimit(1))
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}

	if len(records) != 1 {
		t.Fatalf("expected 1 record with an explicit limit, got %d", len(records))
	}
}

func TestLookupReturnsCopies(t *testing.T) {
	r := NewRetriever(retriever.WithLocation(writeTestCSV(t)))

	records, err := r.Lookup(context.Background(), "P002")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}

	records[0][retriever.FieldName] = "mutated"

	records, err = r.Lookup(context.Background(), "P002")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}

	if got := records[0].Get(retriever.FieldName); got != "Vikram Mehta" {
		t.Errorf("expected stored record to be untouched, got name %q", got)
	}
}

func TestReadRecordsPadsShortRows(t *testing.T) {
	records, err := readRecords(strings.NewReader("policy_id,name,email\nP010,Omar Said\n"))
	if err != nil {
		t.Fatalf("failed to read records: %v", err)
	}

	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	if got := records[0].Get(retriever.FieldEmail); got != "" {
		t.Errorf("expected missing email to read as empty, got %q", got)
	}
}
