package api

import (
	"fmt"

	"drugdex/m/internal/sanitize"
)

// ValidationError reports a structurally invalid request field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

// ValidateLabelPayload shape-checks and sanitizes an inbound label document
// in place, before it reaches any persistence logic. Structural violations —
// no body at all, a non-object label, a non-string drugId — reject the whole
// request. Wrong-typed well-known scalar fields are neutralized to absent
// instead, and the returned warnings name them. Nested structures are pruned
// recursively: empty strings and null values are dropped, and a sub-object
// left empty is removed entirely. No HTML stripping or text extraction
// happens here; this is a shape normalizer, not a content canonicalizer.
func ValidateLabelPayload(payload map[string]any) ([]string, *ValidationError) {
	if payload == nil {
		return nil, &ValidationError{Field: "body", Message: "request body is required"}
	}
	if raw, ok := payload["label"]; ok && raw != nil {
		if _, isObject := raw.(map[string]any); !isObject {
			return nil, &ValidationError{Field: "label", Message: "label must be an object"}
		}
	}
	if raw, ok := payload["drugId"]; ok && raw != nil {
		if _, isString := raw.(string); !isString {
			return nil, &ValidationError{Field: "drugId", Message: "drugId must be a string"}
		}
	}

	var warnings []string
	for _, field := range []string{"drugName", "genericName", "labeler", "slug"} {
		raw, ok := payload[field]
		if !ok {
			continue
		}
		s := sanitize.Scalar(raw)
		if s == nil {
			if _, isString := raw.(string); !isString && raw != nil {
				warnings = append(warnings, field)
			}
			delete(payload, field)
			continue
		}
		payload[field] = *s
	}

	if raw, ok := payload["brandNames"]; ok {
		if list := sanitize.StringList(raw); list != nil {
			payload["brandNames"] = list
		} else {
			if raw != nil {
				warnings = append(warnings, "brandNames")
			}
			delete(payload, "brandNames")
		}
	}

	if raw, ok := payload["label"]; ok {
		if cleaned := sanitize.Object(raw); cleaned != nil {
			payload["label"] = cleaned
		} else {
			delete(payload, "label")
		}
	}

	return warnings, nil
}
