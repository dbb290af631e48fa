package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateLabelPayloadRejections(t *testing.T) {
	tests := []struct {
		name      string
		payload   map[string]any
		wantField string
	}{
		{name: "missing body", payload: nil, wantField: "body"},
		{
			name:      "label not an object",
			payload:   map[string]any{"label": "just a string"},
			wantField: "label",
		},
		{
			name:      "label is an array",
			payload:   map[string]any{"label": []any{"a"}},
			wantField: "label",
		},
		{
			name:      "drugId not a string",
			payload:   map[string]any{"drugId": float64(12)},
			wantField: "drugId",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings, err := ValidateLabelPayload(tt.payload)
			require.NotNil(t, err)
			assert.Equal(t, tt.wantField, err.Field)
			assert.Empty(t, warnings)
		})
	}
}

func TestValidateLabelPayloadRejectsBeforeSanitizing(t *testing.T) {
	payload := map[string]any{
		"drugId":   float64(12),
		"drugName": "  untouched  ",
		"label":    map[string]any{"blank": ""},
	}

	_, err := ValidateLabelPayload(payload)
	require.NotNil(t, err)

	// Rejection happens before any nested sanitization.
	assert.Equal(t, "  untouched  ", payload["drugName"])
	assert.Equal(t, map[string]any{"blank": ""}, payload["label"])
}

func TestValidateLabelPayloadSanitizesInPlace(t *testing.T) {
	payload := map[string]any{
		"drugId":      "abc-123",
		"drugName":    "  Lisinopril  ",
		"genericName": "   ",
		"brandNames":  []any{" Zestril ", "", "Prinivil"},
		"label": map[string]any{
			"indicationsAndUsage": " hypertension ",
			"empty":               map[string]any{"a": "", "b": nil},
		},
	}

	warnings, err := ValidateLabelPayload(payload)
	require.Nil(t, err)
	assert.Empty(t, warnings)

	assert.Equal(t, "abc-123", payload["drugId"])
	assert.Equal(t, "Lisinopril", payload["drugName"])
	assert.NotContains(t, payload, "genericName")
	assert.Equal(t, []string{"Zestril", "Prinivil"}, payload["brandNames"])
	assert.Equal(t, map[string]any{"indicationsAndUsage": "hypertension"}, payload["label"])
}

func TestValidateLabelPayloadNeutralizesWrongTypes(t *testing.T) {
	payload := map[string]any{
		"drugName":   true,
		"labeler":    []any{"not", "a", "string"},
		"brandNames": float64(9),
	}

	warnings, err := ValidateLabelPayload(payload)
	require.Nil(t, err)

	assert.ElementsMatch(t, []string{"drugName", "labeler", "brandNames"}, warnings)
	assert.NotContains(t, payload, "drugName")
	assert.NotContains(t, payload, "labeler")
	assert.NotContains(t, payload, "brandNames")
}

func TestValidateLabelPayloadDropsEmptyLabel(t *testing.T) {
	payload := map[string]any{
		"drugName": "Aspirin",
		"label":    map[string]any{"a": "", "b": map[string]any{"c": "  "}},
	}

	_, err := ValidateLabelPayload(payload)
	require.Nil(t, err)
	assert.NotContains(t, payload, "label")
}
