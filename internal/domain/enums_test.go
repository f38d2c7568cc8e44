package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{input: "word2meaning", want: ModeWordToMeaning},
		{input: " W2M ", want: ModeWordToMeaning},
		{input: "meaning2word", want: ModeMeaningToWord},
		{input: "m2w", want: ModeMeaningToWord},
		{input: "both", wantErr: true},
		{input: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.input)
		if tt.wantErr {
			require.Error(t, err, "input %q", tt.input)
			assert.True(t, errors.Is(err, ErrValidation))
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
		assert.True(t, got.IsValid())
	}
}

func TestPOS_Labels(t *testing.T) {
	t.Parallel()

	for _, p := range AllPOS {
		require.True(t, p.IsValid())
		back, ok := POSFromLabel(p.Label())
		require.True(t, ok, "label %q", p.Label())
		assert.Equal(t, p, back)
	}

	_, ok := POSFromLabel("부")
	assert.False(t, ok)
	assert.False(t, POS("adverb").IsValid())
	assert.Equal(t, []POS{POSNoun, POSVerb, POSAdj}, AllPOS)
}

func TestParseExportFormat(t *testing.T) {
	t.Parallel()

	f, err := ParseExportFormat("XLSX")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)

	f, err = ParseExportFormat("csv")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	_, err = ParseExportFormat("xls")
	assert.ErrorIs(t, err, ErrValidation)
}
