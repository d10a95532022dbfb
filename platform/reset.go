package platform

import "github.com/sarchlab/ambabridge/rtl"

// resetSequencer holds the active-low reset for a number of cycles after it
// is armed.
type resetSequencer struct {
	name   string
	nrst   *rtl.Signal[bool]
	cycles int
	left   int
}

func (s *resetSequencer) Name() string {
	return s.name
}

func (s *resetSequencer) arm() {
	s.left = s.cycles
}

func (s *resetSequencer) Drive() {
	s.nrst.Write(s.left == 0)
}

func (s *resetSequencer) Eval() {}

func (s *resetSequencer) Commit() {
	if s.left > 0 {
		s.left--
	}
}
