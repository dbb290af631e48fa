// Package label maps raw drug-label documents from the regulatory feed into
// canonical drug records and derives their secondary content.
package label

import (
	"strings"

	"drugdex/m/domain"
	"drugdex/m/internal/sanitize"
)

// UnknownDrugName is stored when a document carries no usable drug name.
const UnknownDrugName = "Unknown Drug"

// Canonicalize maps one raw label document into a canonical drug record. It
// never fails: absent or malformed fields degrade to nil or to defaults, and
// the returned record always has a non-empty Name and Slug. The raw document
// is retained verbatim on the record for audit.
func Canonicalize(raw map[string]any) domain.Drug {
	name := UnknownDrugName
	if s := sanitize.Scalar(raw["drugName"]); s != nil {
		name = *s
	}

	labelData, _ := raw["label"].(map[string]any)

	generic := sanitize.Scalar(raw["genericName"])
	if generic == nil && labelData != nil {
		generic = sanitize.Scalar(labelData["genericName"])
	}

	// The top-level labeler field wins over the nested manufacturer entry.
	manufacturer := sanitize.Scalar(raw["labeler"])
	if manufacturer == nil && labelData != nil {
		manufacturer = sanitize.Scalar(labelData["manufacturer"])
	}

	slug := ""
	if s := sanitize.Scalar(raw["slug"]); s != nil {
		slug = *s
	}
	if slug == "" {
		slug = Slugify(name)
	}
	if slug == "" {
		// A name made entirely of punctuation slugs to nothing.
		slug = Slugify(UnknownDrugName)
	}

	var brandNames []string
	if sanitize.Scalar(raw["drugName"]) != nil {
		brandNames = []string{name}
	}

	drug := domain.Drug{
		Name:         name,
		GenericName:  generic,
		BrandNames:   brandNames,
		Slug:         slug,
		Manufacturer: manufacturer,
		RawLabelData: raw,
		Published:    true,
	}

	if labelData != nil {
		drug.Indications = sanitize.ExtractCleanText(labelData["indicationsAndUsage"])
		drug.Warnings = sanitize.ExtractCleanText(labelData["warnings"])
		drug.DosageInfo = sanitize.ExtractCleanText(labelData["dosageAndAdministration"])
		drug.AdverseReactions = sanitize.ExtractCleanText(labelData["adverseReactions"])
	}

	// No extraction source exists for route, contraindications or the boxed
	// warning in the current feed; they stay nil rather than being guessed.
	return drug
}

// Slugify lowercases a name, replaces every run of non-alphanumeric
// characters with a single hyphen and trims leading and trailing hyphens.
// The same name always yields the same slug.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.Trim(b.String(), "-")
}
