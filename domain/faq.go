package domain

// DrugFAQ is derived from a drug's canonical fields during seeding and is
// never updated afterward. FAQs live and die with their drug.
type DrugFAQ struct {
	ID       int64  `db:"id" json:"id"`
	DrugID   int64  `db:"drug_id" json:"drug_id"`
	Question string `db:"question" json:"question"`
	Answer   string `db:"answer" json:"answer"`
}
