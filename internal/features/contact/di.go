package contact

import (
	"creativeflow/internal/config"
	"creativeflow/internal/features/analytics"
	"creativeflow/internal/util/logger"
	rate_limit "creativeflow/internal/util/rate_limit"
)

var contactRepository = &ContactRepository{}
var contactService = &ContactService{
	contactRepository: contactRepository,
	analyticsService:  analytics.GetAnalyticsService(),
	rateLimiter:       rate_limit.NewRateLimiter("cf_contact_rl:"),
	perMinute:         config.GetEnv().ContactRateLimitPerMinute,
	logger:            logger.GetLogger(),
}
var contactController = &ContactController{
	contactService: contactService,
}

func GetContactService() *ContactService {
	return contactService
}

func GetContactController() *ContactController {
	return contactController
}
