package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMapping(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Mapping
		wantErr bool
	}{
		{
			name:  "single pair",
			input: "accent1:accent2",
			want:  Mapping{"accent1": "accent2"},
		},
		{
			name:  "multiple pairs",
			input: "accent1:accent2,dk1:lt1",
			want:  Mapping{"accent1": "accent2", "dk1": "lt1"},
		},
		{
			name:  "whitespace tolerated",
			input: " accent1 : accent2 , dk1 : lt1 ",
			want:  Mapping{"accent1": "accent2", "dk1": "lt1"},
		},
		{
			name:  "swap pair",
			input: "accent1:accent2,accent2:accent1",
			want:  Mapping{"accent1": "accent2", "accent2": "accent1"},
		},
		{
			name:  "identical pair repeated",
			input: "accent1:accent2,accent1:accent2",
			want:  Mapping{"accent1": "accent2"},
		},
		{
			name:  "trailing comma",
			input: "hlink:folHlink,",
			want:  Mapping{"hlink": "folHlink"},
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
		{
			name:    "only commas",
			input:   ",,",
			wantErr: true,
		},
		{
			name:    "missing target",
			input:   "accent1:",
			wantErr: true,
		},
		{
			name:    "missing source",
			input:   ":accent2",
			wantErr: true,
		},
		{
			name:    "no separator",
			input:   "accent1",
			wantErr: true,
		},
		{
			name:    "too many separators",
			input:   "accent1:accent2:accent3",
			wantErr: true,
		},
		{
			name:    "unknown source",
			input:   "accent9:accent1",
			wantErr: true,
		},
		{
			name:    "unknown target",
			input:   "accent1:accent9",
			wantErr: true,
		},
		{
			name:    "hex value as target",
			input:   "accent1:BBFFCC",
			wantErr: true,
		},
		{
			name:    "hex value as source",
			input:   "FF0000:accent1",
			wantErr: true,
		},
		{
			name:    "conflicting targets",
			input:   "accent1:accent2,accent1:accent3",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMapping(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMapping_CaseSensitive(t *testing.T) {
	_, err := ParseMapping("Accent1:accent2")
	assert.Error(t, err)

	_, err = ParseMapping("folhlink:hlink")
	assert.Error(t, err)
}

func TestMapping_Pairs(t *testing.T) {
	m := Mapping{"dk1": "lt1", "accent1": "accent2"}
	assert.Equal(t, []string{"accent1→accent2", "dk1→lt1"}, m.Pairs())
}

func TestNormalizeThemeNames(t *testing.T) {
	assert.Nil(t, NormalizeThemeNames(nil))
	assert.Equal(t,
		[]string{"theme1.xml", "theme2.xml"},
		NormalizeThemeNames([]string{"theme1", "theme2.xml"}))
}

func TestSchemeColorNames_MatchValidSet(t *testing.T) {
	require.Len(t, SchemeColorNames, 12)
	for _, name := range SchemeColorNames {
		assert.True(t, ValidSchemeColors[name], name)
	}
	assert.Len(t, ValidSchemeColors, len(SchemeColorNames))
}

func TestColorScheme_ColorRoundTrip(t *testing.T) {
	var scheme ColorScheme
	for i, name := range SchemeColorNames {
		scheme.SetColor(name, string(rune('A'+i)))
	}
	for i, name := range SchemeColorNames {
		assert.Equal(t, string(rune('A'+i)), scheme.Color(name))
	}

	scheme.SetColor("bogus", "XX")
	assert.Equal(t, "", scheme.Color("bogus"))
}
