package api

import (
	"github.com/coreos/go-semver/semver"

	coroengine "github.com/wippyai/coro-engine"
	"github.com/wippyai/coro-engine/engine"
)

// APIName is the well-known name the engine publishes its function
// table under.
const APIName = "coro.api"

// The exported API version. Consumers must be built against the same
// major; the minor is the revision and carries compatible additions.
var APIVersion = semver.Version{Major: 4, Minor: 0}

// Table is the versioned function table a dependent module consumes
// after the handshake. It is a plain struct of bound functions so a
// consumer holds exactly the operations the version it was built
// against promised, independent of whatever else the engine grows.
type Table struct {
	Version semver.Version

	// Coroutine state primitives
	Transfer func(from, to engine.Coroutine)
	Save     func(c engine.Coroutine, mask coroengine.SaveMask) coroengine.SaveMask

	// Scheduling
	Schedule    func()
	Cede        func() bool
	CedeNotself func() bool
	Ready       func(c engine.Coroutine) bool
	IsReady     func(c engine.Coroutine) bool
	NReady      func() int
	Current     func() engine.Coroutine
}

// Export builds the function table for a scheduler at the current
// API version.
func Export(s *engine.Scheduler) *Table {
	return &Table{
		Version:     APIVersion,
		Transfer:    s.Transfer,
		Save:        s.Save,
		Schedule:    s.Schedule,
		Cede:        s.Cede,
		CedeNotself: s.CedeNotself,
		Ready:       s.Ready,
		IsReady:     s.IsReady,
		NReady:      s.NReady,
		Current:     s.Current,
	}
}
