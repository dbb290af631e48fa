package label

import (
	"fmt"

	"drugdex/m/domain"
)

// answerLimit bounds FAQ answers taken from label text; longer excerpts are
// cut and marked with an ellipsis.
const answerLimit = 300

// BuildFAQs synthesizes the three standard FAQ entries for a canonical drug
// record: usage, dosage and side effects. When the backing field is nil the
// answer is a generic sentence naming the drug instead of an empty string.
func BuildFAQs(drug domain.Drug) []domain.DrugFAQ {
	return []domain.DrugFAQ{
		{
			DrugID:   drug.ID,
			Question: fmt.Sprintf("What is %s used for?", drug.Name),
			Answer:   answerFrom(drug.Indications, drug.Name),
		},
		{
			DrugID:   drug.ID,
			Question: fmt.Sprintf("How should %s be taken?", drug.Name),
			Answer:   answerFrom(drug.DosageInfo, drug.Name),
		},
		{
			DrugID:   drug.ID,
			Question: fmt.Sprintf("What are the side effects of %s?", drug.Name),
			Answer:   answerFrom(drug.AdverseReactions, drug.Name),
		},
	}
}

func answerFrom(text *string, drugName string) string {
	if text == nil {
		return fmt.Sprintf("Please consult your healthcare provider or the full prescribing information for %s.", drugName)
	}
	runes := []rune(*text)
	if len(runes) <= answerLimit {
		return *text
	}
	return string(runes[:answerLimit]) + "..."
}
