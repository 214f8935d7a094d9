//go:build wireinject
// +build wireinject

package catalog

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/mams-platform/mams/internal/catalog/delivery/http"
	"github.com/mams-platform/mams/internal/catalog/domain"
	"github.com/mams-platform/mams/internal/catalog/repository"
	"github.com/mams-platform/mams/internal/catalog/usecase/command"
	"github.com/mams-platform/mams/internal/catalog/usecase/query"
)

// ProvideEquipmentTypeRepository provides the equipment type repository
func ProvideEquipmentTypeRepository(db *gorm.DB) domain.EquipmentTypeRepository {
	return repository.NewGormEquipmentTypeRepository(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideEquipmentTypeRepository,
)

var HandlerSet = wire.NewSet(
	command.NewCreateEquipmentTypeHandler,
	command.NewUpdateEquipmentTypeHandler,
	command.NewDeleteEquipmentTypeHandler,
	query.NewGetEquipmentTypeHandler,
	query.NewListEquipmentTypesHandler,
)

// InitializeHTTPHandler initializes the catalog HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB) (*http.EquipmentTypeHandler, error) {
	wire.Build(
		RepositorySet,
		HandlerSet,
		http.NewEquipmentTypeHandler,
	)
	return nil, nil
}
