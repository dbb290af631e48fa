// Package store is the sqlx-backed persistence layer for drugs, FAQs and
// users. Callers treat it as an opaque capability; schema details stay here.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"drugdex/m/domain"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

type Store struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// WithTx runs fn inside a single transaction, rolling back on error.
func (s *Store) WithTx(ctx context.Context, fn func(tx *Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := fn(&Tx{tx: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Tx exposes the write operations available inside a transaction.
type Tx struct {
	tx *sqlx.Tx
}

func (t *Tx) DeleteAllFAQs(ctx context.Context) error {
	_, err := t.tx.ExecContext(ctx, `DELETE FROM drug_faqs`)
	return err
}

func (t *Tx) DeleteAllDrugs(ctx context.Context) error {
	_, err := t.tx.ExecContext(ctx, `DELETE FROM drugs`)
	return err
}

// CreateDrug inserts a canonical record and sets its ID.
func (t *Tx) CreateDrug(ctx context.Context, drug *domain.Drug) error {
	brandNames, err := json.Marshal(drug.BrandNames)
	if err != nil {
		return fmt.Errorf("encoding brand names: %w", err)
	}
	var rawLabel []byte
	if drug.RawLabelData != nil {
		rawLabel, err = json.Marshal(drug.RawLabelData)
		if err != nil {
			return fmt.Errorf("encoding raw label data: %w", err)
		}
	}

	res, err := t.tx.ExecContext(ctx, `INSERT INTO drugs
        (name, generic_name, brand_names, slug, manufacturer, route,
         indications, warnings, dosage_info, adverse_reactions,
         contraindications, boxed_warning, raw_label_data, published)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		drug.Name, drug.GenericName, string(brandNames), drug.Slug,
		drug.Manufacturer, drug.Route, drug.Indications, drug.Warnings,
		drug.DosageInfo, drug.AdverseReactions, drug.Contraindications,
		drug.BoxedWarning, nullableText(rawLabel), drug.Published)
	if err != nil {
		return fmt.Errorf("inserting drug %q: %w", drug.Name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	drug.ID = id
	return nil
}

func (t *Tx) CreateFAQ(ctx context.Context, faq *domain.DrugFAQ) error {
	res, err := t.tx.ExecContext(ctx,
		`INSERT INTO drug_faqs (drug_id, question, answer) VALUES (?, ?, ?)`,
		faq.DrugID, faq.Question, faq.Answer)
	if err != nil {
		return fmt.Errorf("inserting faq for drug %d: %w", faq.DrugID, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	faq.ID = id
	return nil
}

func nullableText(b []byte) *string {
	if len(b) == 0 {
		return nil
	}
	s := string(b)
	return &s
}

// drugRow carries the JSON-encoded columns that domain.Drug keeps as Go
// values.
type drugRow struct {
	domain.Drug
	BrandNamesRaw string  `db:"brand_names"`
	RawLabelRaw   *string `db:"raw_label_data"`
}

func (r *drugRow) toDomain(includeRaw bool) (domain.Drug, error) {
	drug := r.Drug
	if r.BrandNamesRaw != "" {
		if err := json.Unmarshal([]byte(r.BrandNamesRaw), &drug.BrandNames); err != nil {
			return drug, fmt.Errorf("decoding brand names for drug %d: %w", drug.ID, err)
		}
	}
	if includeRaw && r.RawLabelRaw != nil {
		if err := json.Unmarshal([]byte(*r.RawLabelRaw), &drug.RawLabelData); err != nil {
			return drug, fmt.Errorf("decoding raw label data for drug %d: %w", drug.ID, err)
		}
	}
	return drug, nil
}

const drugColumns = `id, name, generic_name, brand_names, slug, manufacturer,
    route, indications, warnings, dosage_info, adverse_reactions,
    contraindications, boxed_warning, raw_label_data, published, created_at`

// ListDrugs returns published drugs ordered by name, optionally filtered by a
// case-insensitive match on name or generic name.
func (s *Store) ListDrugs(ctx context.Context, query string, limit, offset int) ([]domain.Drug, error) {
	var rows []drugRow
	var err error
	if query != "" {
		pattern := "%" + query + "%"
		err = s.db.SelectContext(ctx, &rows, `SELECT `+drugColumns+` FROM drugs
            WHERE published = 1 AND (name LIKE ? OR generic_name LIKE ?)
            ORDER BY name LIMIT ? OFFSET ?`, pattern, pattern, limit, offset)
	} else {
		err = s.db.SelectContext(ctx, &rows, `SELECT `+drugColumns+` FROM drugs
            WHERE published = 1 ORDER BY name LIMIT ? OFFSET ?`, limit, offset)
	}
	if err != nil {
		return nil, fmt.Errorf("listing drugs: %w", err)
	}

	drugs := make([]domain.Drug, 0, len(rows))
	for i := range rows {
		drug, err := rows[i].toDomain(false)
		if err != nil {
			return nil, err
		}
		drugs = append(drugs, drug)
	}
	return drugs, nil
}

// GetDrugBySlug returns one drug including its raw label data.
func (s *Store) GetDrugBySlug(ctx context.Context, slug string) (domain.Drug, error) {
	var row drugRow
	err := s.db.GetContext(ctx, &row,
		`SELECT `+drugColumns+` FROM drugs WHERE slug = ?`, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Drug{}, ErrNotFound
	}
	if err != nil {
		return domain.Drug{}, fmt.Errorf("loading drug %q: %w", slug, err)
	}
	return row.toDomain(true)
}

// GetDrugByID returns one drug including its raw label data.
func (s *Store) GetDrugByID(ctx context.Context, id int64) (domain.Drug, error) {
	var row drugRow
	err := s.db.GetContext(ctx, &row,
		`SELECT `+drugColumns+` FROM drugs WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Drug{}, ErrNotFound
	}
	if err != nil {
		return domain.Drug{}, fmt.Errorf("loading drug %d: %w", id, err)
	}
	return row.toDomain(true)
}

// UpdateLabel replaces the label-derived fields of an existing drug.
func (s *Store) UpdateLabel(ctx context.Context, drug domain.Drug) error {
	brandNames, err := json.Marshal(drug.BrandNames)
	if err != nil {
		return fmt.Errorf("encoding brand names: %w", err)
	}
	var rawLabel []byte
	if drug.RawLabelData != nil {
		rawLabel, err = json.Marshal(drug.RawLabelData)
		if err != nil {
			return fmt.Errorf("encoding raw label data: %w", err)
		}
	}

	res, err := s.db.ExecContext(ctx, `UPDATE drugs SET
        name = ?, generic_name = ?, brand_names = ?, manufacturer = ?,
        indications = ?, warnings = ?, dosage_info = ?, adverse_reactions = ?,
        raw_label_data = ?
        WHERE id = ?`,
		drug.Name, drug.GenericName, string(brandNames), drug.Manufacturer,
		drug.Indications, drug.Warnings, drug.DosageInfo,
		drug.AdverseReactions, nullableText(rawLabel), drug.ID)
	if err != nil {
		return fmt.Errorf("updating drug %d: %w", drug.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListFAQs returns the FAQ entries for one drug in insertion order.
func (s *Store) ListFAQs(ctx context.Context, drugID int64) ([]domain.DrugFAQ, error) {
	var faqs []domain.DrugFAQ
	err := s.db.SelectContext(ctx, &faqs,
		`SELECT id, drug_id, question, answer FROM drug_faqs WHERE drug_id = ? ORDER BY id`,
		drugID)
	if err != nil {
		return nil, fmt.Errorf("listing faqs for drug %d: %w", drugID, err)
	}
	return faqs, nil
}
