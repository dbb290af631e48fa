package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drugdex/m/domain"
	"drugdex/m/internal/database"
	"drugdex/m/internal/migrations"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	migrations.Run(db)
	return New(db)
}

func strPtr(s string) *string { return &s }

func TestDrugRoundTrip(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	drug := domain.Drug{
		Name:        "Lisinopril",
		GenericName: strPtr("lisinopril"),
		BrandNames:  []string{"Zestril", "Prinivil"},
		Slug:        "lisinopril",
		Indications: strPtr("Treatment of hypertension."),
		RawLabelData: map[string]any{
			"drugName": "Lisinopril",
			"label":    map[string]any{"genericName": "lisinopril"},
		},
		Published: true,
	}

	err := st.WithTx(ctx, func(tx *Tx) error {
		return tx.CreateDrug(ctx, &drug)
	})
	require.NoError(t, err)
	require.NotZero(t, drug.ID)

	got, err := st.GetDrugBySlug(ctx, "lisinopril")
	require.NoError(t, err)
	assert.Equal(t, "Lisinopril", got.Name)
	assert.Equal(t, []string{"Zestril", "Prinivil"}, got.BrandNames)
	require.NotNil(t, got.Indications)
	assert.Equal(t, "Treatment of hypertension.", *got.Indications)
	require.NotNil(t, got.RawLabelData)
	assert.Equal(t, "Lisinopril", got.RawLabelData["drugName"])
	assert.Nil(t, got.Route)

	_, err = st.GetDrugBySlug(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	err := st.WithTx(ctx, func(tx *Tx) error {
		drug := domain.Drug{Name: "Aspirin", Slug: "aspirin", Published: true}
		if err := tx.CreateDrug(ctx, &drug); err != nil {
			return err
		}
		return assert.AnError
	})
	require.Error(t, err)

	_, err = st.GetDrugBySlug(ctx, "aspirin")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteAllReplacesCatalog(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	err := st.WithTx(ctx, func(tx *Tx) error {
		drug := domain.Drug{Name: "Old", Slug: "old", Published: true}
		if err := tx.CreateDrug(ctx, &drug); err != nil {
			return err
		}
		faq := domain.DrugFAQ{DrugID: drug.ID, Question: "Q", Answer: "A"}
		return tx.CreateFAQ(ctx, &faq)
	})
	require.NoError(t, err)

	err = st.WithTx(ctx, func(tx *Tx) error {
		if err := tx.DeleteAllFAQs(ctx); err != nil {
			return err
		}
		if err := tx.DeleteAllDrugs(ctx); err != nil {
			return err
		}
		drug := domain.Drug{Name: "New", Slug: "new", Published: true}
		return tx.CreateDrug(ctx, &drug)
	})
	require.NoError(t, err)

	drugs, err := st.ListDrugs(ctx, "", 10, 0)
	require.NoError(t, err)
	require.Len(t, drugs, 1)
	assert.Equal(t, "New", drugs[0].Name)

	_, err = st.GetDrugBySlug(ctx, "old")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateLabel(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	drug := domain.Drug{Name: "Metformin", Slug: "metformin", Published: true}
	err := st.WithTx(ctx, func(tx *Tx) error {
		return tx.CreateDrug(ctx, &drug)
	})
	require.NoError(t, err)

	drug.Indications = strPtr("Type 2 diabetes.")
	drug.BrandNames = []string{"Glucophage"}
	require.NoError(t, st.UpdateLabel(ctx, drug))

	got, err := st.GetDrugByID(ctx, drug.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Indications)
	assert.Equal(t, "Type 2 diabetes.", *got.Indications)
	assert.Equal(t, []string{"Glucophage"}, got.BrandNames)

	missing := domain.Drug{ID: 9999, Name: "Ghost", Slug: "ghost"}
	assert.ErrorIs(t, st.UpdateLabel(ctx, missing), ErrNotFound)
}

func TestUsers(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	user := domain.User{
		Username: "editor1",
		Email:    "ed@example.com",
		Password: "hashed",
		Role:     "editor",
	}
	require.NoError(t, st.CreateUser(ctx, &user))
	require.NotZero(t, user.ID)

	got, err := st.GetUserByEmail(ctx, "ed@example.com")
	require.NoError(t, err)
	assert.Equal(t, "editor1", got.Username)
	assert.Equal(t, "hashed", got.Password)

	_, err = st.GetUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}
