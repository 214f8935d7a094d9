//go:build wireinject
// +build wireinject

package directory

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/mams-platform/mams/internal/directory/delivery/http"
	"github.com/mams-platform/mams/internal/directory/domain"
	"github.com/mams-platform/mams/internal/directory/repository"
	"github.com/mams-platform/mams/internal/directory/usecase/command"
	"github.com/mams-platform/mams/internal/directory/usecase/query"
)

// ProvideUserRepository provides the user repository
func ProvideUserRepository(db *gorm.DB) domain.UserRepository {
	return repository.NewGormUserRepository(db)
}

// ProvideBaseRepository provides the base repository
func ProvideBaseRepository(db *gorm.DB) domain.BaseRepository {
	return repository.NewGormBaseRepository(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideUserRepository,
	ProvideBaseRepository,
)

var HandlerSet = wire.NewSet(
	command.NewCreateBaseHandler,
	command.NewRegisterUserHandler,
	command.NewLoginUserHandler,
	command.NewAssignBaseHandler,
	command.NewChangeRoleHandler,
	query.NewGetUserHandler,
	query.NewListUsersHandler,
	query.NewListBasesHandler,
)

// InitializeHTTPHandler initializes the directory HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB) (*http.DirectoryHandler, error) {
	wire.Build(
		RepositorySet,
		HandlerSet,
		http.NewDirectoryHandler,
	)
	return nil, nil
}
