//go:build wireinject
// +build wireinject

package ledger

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/mams-platform/mams/internal/ledger/delivery/http"
	"github.com/mams-platform/mams/internal/ledger/domain"
	"github.com/mams-platform/mams/internal/ledger/repository"
	"github.com/mams-platform/mams/internal/ledger/usecase/command"
	"github.com/mams-platform/mams/internal/ledger/usecase/query"
)

// ProvideLedgerRepository provides the traced ledger repository
func ProvideLedgerRepository(db *gorm.DB) domain.LedgerRepository {
	return repository.NewTracedLedgerRepository(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideLedgerRepository,
)

var CommandHandlerSet = wire.NewSet(
	command.NewRecordPurchaseHandler,
	command.NewRecordTransferHandler,
	command.NewRecordAssignmentHandler,
	command.NewRecordExpenditureHandler,
)

var QueryHandlerSet = wire.NewSet(
	query.NewGetInventoryHandler,
	query.NewListInventoryHandler,
	query.NewListMovementsHandler,
)

// InitializeHTTPHandler initializes the ledger HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, publisher command.MovementPublisher) (*http.LedgerHandler, error) {
	wire.Build(
		RepositorySet,
		CommandHandlerSet,
		QueryHandlerSet,
		http.NewLedgerHandler,
	)
	return nil, nil
}
