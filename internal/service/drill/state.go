package drill

import "github.com/heartmarshall/daydrill/internal/service/quiz"

// DayInfo describes one selectable day.
type DayInfo struct {
	Key      string `json:"key"`
	Count    int    `json:"count"`
	Selected bool   `json:"selected"`
}

// BankInfo summarises the wrong-answer bank.
type BankInfo struct {
	Count     int  `json:"count"`
	Recovered bool `json:"recovered"`
}

// State is everything a host needs to render the drill.
type State struct {
	Words   int       `json:"words"`
	Days    []DayInfo `json:"days"`
	Session quiz.View `json:"session"`
	Bank    BankInfo  `json:"bank"`
}

// State returns a consistent snapshot of catalog, selection, session and bank.
func (s *Service) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := s.catalog.DayKeys()
	days := make([]DayInfo, len(keys))
	for i, k := range keys {
		days[i] = DayInfo{Key: k, Count: s.catalog.CountByDay(k), Selected: s.selected[k]}
	}
	return State{
		Words:   s.catalog.Len(),
		Days:    days,
		Session: s.session.Snapshot(),
		Bank:    BankInfo{Count: s.bank.Len(), Recovered: s.bank.Recovered()},
	}
}
