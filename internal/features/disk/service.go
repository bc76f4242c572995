package disk

import (
	"fmt"
	"os"

	gopsutil_disk "github.com/shirou/gopsutil/v4/disk"
)

type DiskUsage struct {
	Path        string  `json:"path"`
	TotalBytes  uint64  `json:"totalBytes"`
	UsedBytes   uint64  `json:"usedBytes"`
	FreeBytes   uint64  `json:"freeBytes"`
	UsedPercent float64 `json:"usedPercent"`
}

type DiskService struct {
	uploadsDir string
}

// GetDiskUsage reports the filesystem holding the uploads directory.
func (s *DiskService) GetDiskUsage() (*DiskUsage, error) {
	if err := os.MkdirAll(s.uploadsDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}

	usage, err := gopsutil_disk.Usage(s.uploadsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read disk usage: %w", err)
	}

	return &DiskUsage{
		Path:        s.uploadsDir,
		TotalBytes:  usage.Total,
		UsedBytes:   usage.Used,
		FreeBytes:   usage.Free,
		UsedPercent: usage.UsedPercent,
	}, nil
}
