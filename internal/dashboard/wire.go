//go:build wireinject
// +build wireinject

package dashboard

import (
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/mams-platform/mams/internal/dashboard/cache"
	"github.com/mams-platform/mams/internal/dashboard/delivery/http"
	"github.com/mams-platform/mams/internal/dashboard/domain"
	"github.com/mams-platform/mams/internal/dashboard/repository"
	"github.com/mams-platform/mams/internal/dashboard/usecase/query"
)

// ProvideSummaryRepository provides the summary aggregation repository
func ProvideSummaryRepository(db *gorm.DB) domain.SummaryRepository {
	return repository.NewGormSummaryRepository(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideSummaryRepository,
)

var HandlerSet = wire.NewSet(
	cache.NewSummaryCache,
	query.NewComputeSummaryHandler,
)

// InitializeHTTPHandler initializes the dashboard HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, redisClient *redis.Client) (*http.DashboardHandler, error) {
	wire.Build(
		RepositorySet,
		HandlerSet,
		http.NewDashboardHandler,
	)
	return nil, nil
}
