package sanitize

import (
	"regexp"
	"strings"
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// ExtractText turns a label section into a single text blob. Sections arrive
// in four shapes, checked in fixed order: a plain string, an object with a
// "text" field, an object with an "items" list (joined with ". "), and
// finally any object at all, which falls back to FirstText. An object
// carrying both "text" and "items" always yields the "text" value.
func ExtractText(section any) *string {
	switch val := section.(type) {
	case string:
		return Scalar(val)
	case map[string]any:
		if text, ok := val["text"]; ok {
			if s := Scalar(text); s != nil {
				return s
			}
		}
		if items, ok := val["items"]; ok {
			if list := StringList(items); list != nil {
				joined := strings.Join(list, ". ")
				return Scalar(joined)
			}
		}
		return FirstText(val)
	default:
		return nil
	}
}

// StripHTML removes anything resembling a tag, collapses runs of whitespace
// to single spaces and trims. It is a best-effort stripper for the markup the
// regulatory feed embeds in section text, not an HTML parser; entities are
// left as-is.
func StripHTML(s string) string {
	stripped := tagPattern.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(stripped), " ")
}

// ExtractCleanText is ExtractText followed by StripHTML, for the sections
// known to carry markup. An empty-after-strip result is nil.
func ExtractCleanText(section any) *string {
	text := ExtractText(section)
	if text == nil {
		return nil
	}
	return Scalar(StripHTML(*text))
}
