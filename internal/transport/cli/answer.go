package cli

import (
	"strings"

	"github.com/heartmarshall/daydrill/internal/domain"
	"github.com/heartmarshall/daydrill/internal/service/quiz"
)

// parseAnswer fills a draft from one input line. In meaning-to-word mode the
// whole line is the word. In word-to-meaning mode the line is split on ';'
// and the parts fill the present parts of speech in order.
func parseAnswer(v quiz.View, line string) domain.Draft {
	var d domain.Draft
	if v.Mode == domain.ModeMeaningToWord {
		d.Word = line
		return d
	}

	parts := strings.Split(line, ";")
	for i, p := range v.PresentPOS {
		if i >= len(parts) {
			break
		}
		text := strings.TrimSpace(parts[i])
		switch p {
		case domain.POSNoun:
			d.Noun = text
		case domain.POSVerb:
			d.Verb = text
		case domain.POSAdj:
			d.Adj = text
		}
	}
	return d
}
