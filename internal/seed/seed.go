// Package seed loads a full raw-label document set into the store, replacing
// any prior contents. One bad document is skipped and logged; it never stops
// the rest of the batch.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"

	"drugdex/m/domain"
	"drugdex/m/internal/label"
)

// Store is the persistence capability the orchestrator consumes.
type Store interface {
	DeleteAllFAQs(ctx context.Context) error
	DeleteAllDrugs(ctx context.Context) error
	CreateDrug(ctx context.Context, drug *domain.Drug) error
	CreateFAQ(ctx context.Context, faq *domain.DrugFAQ) error
}

// Summary reports the outcome of one seeding run.
type Summary struct {
	RunID  string
	Drugs  int
	FAQs   int
	Failed int
}

// LoadFile reads the whole input file into memory and decodes it as a JSON
// array of raw label documents. Any read or parse error is fatal to the run.
func LoadFile(path string) ([]map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file %s: %w", path, err)
	}
	var docs []map[string]any
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("parsing seed file %s: %w", path, err)
	}
	return docs, nil
}

// Run clears the stored drugs and FAQs, then canonicalizes and persists each
// raw document in input order, deriving three FAQ entries per record. A
// failure on one document is reported and skipped; the loop continues with
// the next. Clearing failures abort the run since continuing would mix old
// and new records.
func Run(ctx context.Context, st Store, rep Reporter, docs []map[string]any) (Summary, error) {
	summary := Summary{RunID: uuid.NewString()}

	if err := st.DeleteAllFAQs(ctx); err != nil {
		return summary, fmt.Errorf("clearing faqs: %w", err)
	}
	if err := st.DeleteAllDrugs(ctx); err != nil {
		return summary, fmt.Errorf("clearing drugs: %w", err)
	}

	for _, raw := range docs {
		drug := label.Canonicalize(raw)
		created, err := seedOne(ctx, st, &drug)
		if err != nil {
			summary.Failed++
			rep.Failure(drug.Name, err)
			continue
		}
		summary.Drugs++
		summary.FAQs += created
		rep.Success(drug.Name)
	}

	rep.Summarize(summary)
	return summary, nil
}

// seedOne persists one canonical record and its FAQs, returning how many
// FAQs were created.
func seedOne(ctx context.Context, st Store, drug *domain.Drug) (int, error) {
	if err := st.CreateDrug(ctx, drug); err != nil {
		return 0, err
	}
	created := 0
	for _, faq := range label.BuildFAQs(*drug) {
		faq := faq
		if err := st.CreateFAQ(ctx, &faq); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}
