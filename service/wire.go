package service

import (
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewNotifier,

	wire.Struct(new(ResourceService), "*"),
	wire.Bind(new(IResourceService), new(*ResourceService)),

	wire.Struct(new(PointService), "*"),
	wire.Bind(new(IPointService), new(*PointService)),

	wire.Struct(new(ReviewService), "*"),
	wire.Bind(new(IReviewService), new(*ReviewService)),

	wire.Struct(new(DashboardService), "*"),
	wire.Bind(new(IDashboardService), new(*DashboardService)),

	wire.Struct(new(AuditService), "*"),
	wire.Bind(new(IAuditService), new(*AuditService)),

	wire.Struct(new(UploadService), "*"),
	wire.Bind(new(IUploadService), new(*UploadService)),
)
