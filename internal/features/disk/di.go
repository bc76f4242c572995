package disk

import (
	"creativeflow/internal/config"
)

var fileStore = NewLocalFileStore(config.GetEnv().UploadsDir)
var diskService = &DiskService{
	uploadsDir: config.GetEnv().UploadsDir,
}
var diskController = &DiskController{
	diskService: diskService,
}

func GetFileStore() *LocalFileStore {
	return fileStore
}

func GetDiskService() *DiskService {
	return diskService
}

func GetDiskController() *DiskController {
	return diskController
}
