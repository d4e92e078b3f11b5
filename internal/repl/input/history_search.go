package input

import (
	"github.com/sahilm/fuzzy"
)

// historySearch is the state of a Ctrl+R reverse search. Matches are ranked by
// fuzzy score; entries with equal scores keep history order, newest first.
type historySearch struct {
	active  bool
	query   []rune
	matches []fuzzy.Match
	index   int

	// restored when the search is cancelled
	savedText string
	savedPos  int
}

func (s *historySearch) start(text string, pos int) {
	*s = historySearch{active: true, savedText: text, savedPos: pos}
}

func (s *historySearch) reset() {
	*s = historySearch{}
}

// update recomputes matches against history, which is ordered newest first.
func (s *historySearch) update(history []string) {
	s.index = 0
	if len(s.query) == 0 {
		s.matches = nil
		return
	}
	s.matches = fuzzy.Find(string(s.query), history)
}

func (s *historySearch) addRunes(runes []rune, history []string) {
	s.query = append(s.query, runes...)
	s.update(history)
}

func (s *historySearch) deleteRune(history []string) {
	if len(s.query) == 0 {
		return
	}
	s.query = s.query[:len(s.query)-1]
	s.update(history)
}

// next steps to the next older match, wrapping around.
func (s *historySearch) next() {
	if len(s.matches) > 0 {
		s.index = (s.index + 1) % len(s.matches)
	}
}

func (s *historySearch) current() (fuzzy.Match, bool) {
	if s.index < 0 || s.index >= len(s.matches) {
		return fuzzy.Match{}, false
	}
	return s.matches[s.index], true
}
