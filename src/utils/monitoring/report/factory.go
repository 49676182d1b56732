package report

import (
	"go.uber.org/atomic"
)

type FactoryErrors struct {
	Unauthorized  atomic.Int64 `json:"unauthorized"`
	DbEventInsert atomic.Int64 `json:"db_event_insert"`
	DbStateUpdate atomic.Int64 `json:"db_state_update"`
}

type FactoryState struct {
	ProjectsSubmitted      atomic.Uint64 `json:"projects_submitted"`
	ProjectsApproved       atomic.Uint64 `json:"projects_approved"`
	ProjectsRejected       atomic.Uint64 `json:"projects_rejected"`
	CollectionsCreated721  atomic.Uint64 `json:"collections_created_721"`
	CollectionsCreated1155 atomic.Uint64 `json:"collections_created_1155"`
	TokensMinted           atomic.Uint64 `json:"tokens_minted"`
	EventsEmitted          atomic.Uint64 `json:"events_emitted"`

	AverageEventsEmittedPerMinute atomic.Float64 `json:"average_events_emitted_per_minute"`

	// Refreshed by the listing stats job
	ListingsActive  atomic.Uint64 `json:"listings_active"`
	ListingsElapsed atomic.Uint64 `json:"listings_elapsed"`
}

type FactoryReport struct {
	State  FactoryState  `json:"state"`
	Errors FactoryErrors `json:"errors"`
}
