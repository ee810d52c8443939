package http

import (
	"github.com/nats-io/nats.go"
	"github.com/repcheck/repcheck-api/internal/adapters/postgres"
	"github.com/repcheck/repcheck-api/internal/adapters/valkey"
	"github.com/repcheck/repcheck-api/internal/core/ports"
	"github.com/repcheck/repcheck-api/internal/core/usecases"
)

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Areas           *usecases.AreaService
	Precincts       *usecases.PrecinctService
	Representatives *usecases.RepresentativeService
	Bills           *usecases.BillService
	NATS            *nats.Conn
	Publisher       ports.EventPublisher
	DB              *postgres.DB
	Cache           *valkey.Cache

	// SummaryKey guards POST /v1/bills/summary; empty disables the endpoint.
	SummaryKey string
}
