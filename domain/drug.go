package domain

// Drug is the canonical record produced by the label pipeline. Name and Slug
// are never empty; every other text field is either nil or non-empty trimmed
// text. An empty-after-trim value is never stored, it becomes nil.
type Drug struct {
	ID                int64          `db:"id" json:"id"`
	Name              string         `db:"name" json:"name"`
	GenericName       *string        `db:"generic_name" json:"generic_name"`
	BrandNames        []string       `db:"-" json:"brand_names"`
	Slug              string         `db:"slug" json:"slug"`
	Manufacturer      *string        `db:"manufacturer" json:"manufacturer"`
	Route             *string        `db:"route" json:"route"`
	Indications       *string        `db:"indications" json:"indications"`
	Warnings          *string        `db:"warnings" json:"warnings"`
	DosageInfo        *string        `db:"dosage_info" json:"dosage_info"`
	AdverseReactions  *string        `db:"adverse_reactions" json:"adverse_reactions"`
	Contraindications *string        `db:"contraindications" json:"contraindications"`
	BoxedWarning      *string        `db:"boxed_warning" json:"boxed_warning"`
	RawLabelData      map[string]any `db:"-" json:"raw_label_data,omitempty"`
	Published         bool           `db:"published" json:"published"`
	CreatedAt         string         `db:"created_at" json:"created_at"`
}
