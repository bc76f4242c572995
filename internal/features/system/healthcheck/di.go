package system_healthcheck

import (
	"creativeflow/internal/cache"
	"creativeflow/internal/features/disk"
)

var healthcheckService = &HealthcheckService{
	diskService: disk.GetDiskService(),
	cacheClient: cache.GetCache(),
}
var healthcheckController = &HealthcheckController{
	healthcheckService,
}

func GetHealthcheckController() *HealthcheckController {
	return healthcheckController
}
