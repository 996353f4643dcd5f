package server

import (
	"HyperAdmin/handler"
)

type Handlers struct {
	Resource  *handler.ResourceHandler
	Points    *handler.PointHandler
	Review    *handler.ReviewHandler
	Dashboard *handler.DashboardHandler
	Upload    *handler.UploadHandler
}
