package analytics

import (
	"creativeflow/internal/cache"
	users_services "creativeflow/internal/features/users/services"
	cache_utils "creativeflow/internal/util/cache"
	"creativeflow/internal/util/logger"
	"time"
)

var analyticsRepository = &AnalyticsRepository{}
var analyticsService = &AnalyticsService{
	analyticsRepository: analyticsRepository,
	logger:              logger.GetLogger(),
	statsCacheUtil: cache_utils.NewCacheUtil[ProjectStats](cache.GetCache(), "cf_stats:").
		WithExpiry(5 * time.Minute),
}
var analyticsController = &AnalyticsController{
	analyticsService: analyticsService,
}

func GetAnalyticsService() *AnalyticsService {
	return analyticsService
}

func GetAnalyticsController() *AnalyticsController {
	return analyticsController
}

func SetupDependencies() {
	users_services.GetUserService().SetEventWriter(analyticsService)
	users_services.GetManagementService().SetEventWriter(analyticsService)
}
