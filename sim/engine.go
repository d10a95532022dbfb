package sim

// TimeTeller tells the current simulated time.
type TimeTeller interface {
	CurrentTime() VTimeInSec
}

// EventScheduler accepts events to handle in the future.
type EventScheduler interface {
	Schedule(e Event)
}

// A SimulationEndHandler is called once the simulation finishes.
type SimulationEndHandler interface {
	Handle(now VTimeInSec)
}

// An Engine handles scheduled events in time order. Clock domains schedule
// one event per edge on it.
type Engine interface {
	Hookable
	TimeTeller
	EventScheduler

	// Run handles events until none is left.
	Run() error

	// Pause blocks Run before the next event until Continue is called.
	Pause()
	Continue()

	RegisterSimulationEndHandler(handler SimulationEndHandler)

	// Finished calls every registered SimulationEndHandler.
	Finished()
}
