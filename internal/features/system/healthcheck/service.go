package system_healthcheck

import (
	"context"
	"errors"
	"fmt"
	"time"

	"creativeflow/internal/features/disk"
	"creativeflow/internal/storage"

	"github.com/valkey-io/valkey-go"
)

const (
	checkTimeout       = 3 * time.Second
	maxDiskUsedPercent = 95.0
)

var ErrUnhealthy = errors.New("service unhealthy")

type HealthcheckResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Cache    string `json:"cache"`
	Disk     string `json:"disk"`
}

type HealthcheckService struct {
	diskService *disk.DiskService
	cacheClient valkey.Client
}

// IsHealthy reports every component. The error wraps ErrUnhealthy and names
// the first failing component.
func (s *HealthcheckService) IsHealthy(ctx context.Context) (*HealthcheckResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	response := &HealthcheckResponse{Status: "ok", Database: "ok", Cache: "disabled", Disk: "ok"}
	var failure error

	if err := s.checkDatabase(ctx); err != nil {
		response.Database = "failed"
		failure = fmt.Errorf("%w: database: %v", ErrUnhealthy, err)
	}

	if s.cacheClient != nil {
		response.Cache = "ok"
		if err := s.cacheClient.Do(ctx, s.cacheClient.B().Ping().Build()).Error(); err != nil {
			response.Cache = "failed"
			if failure == nil {
				failure = fmt.Errorf("%w: cache: %v", ErrUnhealthy, err)
			}
		}
	}

	usage, err := s.diskService.GetDiskUsage()
	switch {
	case err != nil:
		response.Disk = "failed"
		if failure == nil {
			failure = fmt.Errorf("%w: disk: %v", ErrUnhealthy, err)
		}
	case usage.UsedPercent > maxDiskUsedPercent:
		response.Disk = fmt.Sprintf("%.1f%% used", usage.UsedPercent)
		if failure == nil {
			failure = fmt.Errorf("%w: disk is %.1f%% full", ErrUnhealthy, usage.UsedPercent)
		}
	}

	if failure != nil {
		response.Status = "unavailable"
	}

	return response, failure
}

func (s *HealthcheckService) checkDatabase(ctx context.Context) error {
	sqlDB, err := storage.GetDb().DB()
	if err != nil {
		return err
	}

	return sqlDB.PingContext(ctx)
}
