package domain

import "strings"

// Mode is the direction of a drill.
type Mode string

const (
	ModeWordToMeaning Mode = "word2meaning"
	ModeMeaningToWord Mode = "meaning2word"
)

func (m Mode) String() string { return string(m) }

func (m Mode) IsValid() bool {
	switch m {
	case ModeWordToMeaning, ModeMeaningToWord:
		return true
	}
	return false
}

// ParseMode accepts the canonical names plus the short forms "w2m" and "m2w".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "word2meaning", "w2m":
		return ModeWordToMeaning, nil
	case "meaning2word", "m2w":
		return ModeMeaningToWord, nil
	}
	return "", NewValidationError("mode", "must be word2meaning or meaning2word")
}

// POS is a part-of-speech meaning slot of a word record.
type POS string

const (
	POSNoun POS = "noun"
	POSVerb POS = "verb"
	POSAdj  POS = "adj"
)

// AllPOS lists the slots in display order.
var AllPOS = []POS{POSNoun, POSVerb, POSAdj}

func (p POS) String() string { return string(p) }

func (p POS) IsValid() bool {
	switch p {
	case POSNoun, POSVerb, POSAdj:
		return true
	}
	return false
}

// Label returns the short marker used in rendered meaning text.
func (p POS) Label() string {
	switch p {
	case POSNoun:
		return "명"
	case POSVerb:
		return "동"
	case POSAdj:
		return "형"
	}
	return ""
}

// POSFromLabel maps a marker back to its slot.
func POSFromLabel(label string) (POS, bool) {
	switch label {
	case "명":
		return POSNoun, true
	case "동":
		return POSVerb, true
	case "형":
		return POSAdj, true
	}
	return "", false
}

// SessionState is the phase of the quiz state machine.
type SessionState string

const (
	SessionIdle     SessionState = "idle"
	SessionActive   SessionState = "active"
	SessionRevealed SessionState = "revealed"
	SessionFinished SessionState = "finished"
)

func (s SessionState) String() string { return string(s) }

// Focus names the input that should receive the next keystroke.
type Focus string

const (
	FocusNone    Focus = ""
	FocusNoun    Focus = "noun"
	FocusVerb    Focus = "verb"
	FocusAdj     Focus = "adj"
	FocusWord    Focus = "word"
	FocusAdvance Focus = "advance"
)

// ExportFormat is the spreadsheet container used for bank export.
type ExportFormat string

const (
	FormatXLSX ExportFormat = "xlsx"
	FormatCSV  ExportFormat = "csv"
)

func (f ExportFormat) String() string { return string(f) }

// ParseExportFormat validates a format name.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch ExportFormat(strings.ToLower(strings.TrimSpace(s))) {
	case FormatXLSX:
		return FormatXLSX, nil
	case FormatCSV:
		return FormatCSV, nil
	}
	return "", NewValidationError("format", "must be xlsx or csv")
}
