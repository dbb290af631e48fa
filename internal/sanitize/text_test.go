package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractText(t *testing.T) {
	tests := []struct {
		name    string
		section any
		want    string
		wantNil bool
	}{
		{name: "plain string", section: "  take daily  ", want: "take daily"},
		{name: "text field", section: map[string]any{"text": "from text"}, want: "from text"},
		{
			name:    "text wins over items",
			section: map[string]any{"text": "A", "items": []any{"B", "C"}},
			want:    "A",
		},
		{
			name:    "items joined",
			section: map[string]any{"items": []any{"nausea", "headache"}},
			want:    "nausea. headache",
		},
		{
			name:    "items with blanks",
			section: map[string]any{"items": []any{" dizziness ", ""}},
			want:    "dizziness",
		},
		{
			name:    "fallback to first text value",
			section: map[string]any{"note": "fallback wins", "z": "not this"},
			want:    "fallback wins",
		},
		{name: "number", section: float64(5), wantNil: true},
		{name: "nil", section: nil, wantNil: true},
		{name: "empty object", section: map[string]any{}, wantNil: true},
		{
			name:    "empty items and no text",
			section: map[string]any{"items": []any{"", " "}},
			wantNil: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractText(tt.section)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "removes tags", input: "<p>Take <b>once</b> daily.</p>", want: "Take once daily."},
		{name: "collapses whitespace", input: "a\n\n  b\t c", want: "a b c"},
		{name: "unclosed bracket kept", input: "dose < 5mg", want: "dose < 5mg"},
		{name: "entities untouched", input: "5&nbsp;mg", want: "5&nbsp;mg"},
		{name: "only markup", input: "<div><br/></div>", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripHTML(tt.input))
		})
	}
}

func TestExtractCleanText(t *testing.T) {
	got := ExtractCleanText(map[string]any{"text": "<p>For  hypertension.</p>"})
	require.NotNil(t, got)
	assert.Equal(t, "For hypertension.", *got)

	assert.Nil(t, ExtractCleanText("<br/>"))
	assert.Nil(t, ExtractCleanText(nil))
}
