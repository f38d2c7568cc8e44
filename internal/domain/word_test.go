package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWordRecord_PresentPOSAndMeaningText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		rec         WordRecord
		wantPOS     []POS
		wantMeaning string
	}{
		{
			name:        "all three",
			rec:         WordRecord{Word: "respect", Noun: []string{"존경", "면"}, Verb: []string{"존경하다"}, Adj: []string{"존경할 만한"}},
			wantPOS:     []POS{POSNoun, POSVerb, POSAdj},
			wantMeaning: "(명) 존경 / 면 · (동) 존경하다 · (형) 존경할 만한",
		},
		{
			name:        "verb only",
			rec:         WordRecord{Word: "run", Verb: []string{"달리다"}},
			wantPOS:     []POS{POSVerb},
			wantMeaning: "(동) 달리다",
		},
		{
			name:        "none",
			rec:         WordRecord{Word: "the"},
			wantPOS:     []POS{},
			wantMeaning: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.wantPOS, tt.rec.PresentPOS())
			assert.Equal(t, tt.wantMeaning, tt.rec.MeaningText())
		})
	}
}

func TestWordRecord_CloneIsDeep(t *testing.T) {
	t.Parallel()

	orig := WordRecord{Word: "a", DayKey: "1", Noun: []string{"x"}}
	c := orig.Clone()
	c.Noun[0] = "changed"

	assert.Equal(t, "x", orig.Noun[0])
}

func TestRow_First(t *testing.T) {
	t.Parallel()

	r := Row{"날짜": "  ", "day": "3", "word": "run"}
	assert.Equal(t, "3", r.First("날짜", "day"))
	assert.Equal(t, "run", r.First("단어", "word"))
	assert.Equal(t, "", r.First("명사"))
}

func TestBankIdentity(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "1respect", BankIdentity("1", "Respect"))
	assert.Equal(t, BankIdentity("1", " RESPECT "), BankIdentity(" 1", "respect"))
	assert.NotEqual(t, BankIdentity("1", "respect"), BankIdentity("2", "respect"))
}
