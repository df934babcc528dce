// Package startup sequences environment bring-up and teardown.
//
// Subsystems initialize bottom-up; a failure mid-sequence unwinds the
// already-initialized stages in reverse before the error is returned, so a
// failed bring-up leaves nothing behind. Teardown notifies stages
// top-to-bottom.
package startup

import (
	"fmt"

	"github.com/silver3-github/ucxxrt/crt/exit"
	"github.com/silver3-github/ucxxrt/crt/ptd"
)

// Stage is one subsystem in the bring-up sequence. Init may be nil for
// stages that only participate in teardown; Uninit may be nil for stages
// with nothing to release.
type Stage struct {
	Name   string
	Init   func() error
	Uninit func()
}

// Sequencer runs stages in order and remembers how far it got, so teardown
// and failure unwinding release exactly the stages that came up.
type Sequencer struct {
	stages []Stage
	done   int
}

// NewSequencer builds a sequencer over the given stages, bottom first.
func NewSequencer(stages ...Stage) *Sequencer {
	return &Sequencer{stages: stages}
}

// Initialize runs stage inits bottom-up. On failure it uninitializes the
// stages that already completed, in reverse order, and returns the failing
// stage's error. After a failure the sequencer is back in its initial
// state and may be retried.
func (s *Sequencer) Initialize() error {
	for i, st := range s.stages {
		if st.Init == nil {
			s.done = i + 1
			continue
		}
		if err := st.Init(); err != nil {
			s.unwind()
			return fmt.Errorf("startup: %s: %w", st.Name, err)
		}
		s.done = i + 1
	}
	return nil
}

// Uninitialize tears initialized stages down top-to-bottom. Idempotent.
func (s *Sequencer) Uninitialize() {
	s.unwind()
}

func (s *Sequencer) unwind() {
	for i := s.done - 1; i >= 0; i-- {
		if u := s.stages[i].Uninit; u != nil {
			u()
		}
	}
	s.done = 0
}

// RuntimeStages wires the standard environment stages: the thread-data
// registry first, then the exit tables above it. Teardown therefore flushes
// quick-exit and regular exit handlers before the registry drains.
func RuntimeStages(reg *ptd.Registry, onExit, quickExit *exit.Table) []Stage {
	return []Stage{
		{
			Name:   "thread-data",
			Init:   reg.Initialize,
			Uninit: reg.Teardown,
		},
		{
			Name: "exit-tables",
			Uninit: func() {
				quickExit.Run()
				onExit.Run()
			},
		},
	}
}
