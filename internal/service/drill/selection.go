package drill

import (
	"fmt"

	"github.com/heartmarshall/daydrill/internal/domain"
)

// ToggleDay flips the selection of one day and reports the new state.
func (s *Service) ToggleDay(day string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	day = domain.FormatDayKey(day)
	if !s.catalog.HasDay(day) {
		return false, fmt.Errorf("drill: day %q: %w", day, domain.ErrNotFound)
	}
	if s.selected[day] {
		delete(s.selected, day)
		return false, nil
	}
	s.selected[day] = true
	return true, nil
}

// SelectAll selects every day of the catalog.
func (s *Service) SelectAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, d := range s.catalog.DayKeys() {
		s.selected[d] = true
	}
}

// ClearSelection deselects every day.
func (s *Service) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()

	clear(s.selected)
}

// SelectedDays returns the selected day keys in display order.
func (s *Service) SelectedDays() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.selectedDays()
}
