//go:build wireinject
// +build wireinject

package main

import (
	"HyperAdmin/config"
	"HyperAdmin/dao"
	"HyperAdmin/handler"
	"HyperAdmin/pkg/client"
	"HyperAdmin/pkg/database"
	hoss "HyperAdmin/pkg/oss"
	"HyperAdmin/pkg/server"
	"HyperAdmin/service"

	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss"
	"github.com/google/wire"
)

func InitServer(cfg *config.Config) *server.AppProvider {
	wire.Build(
		database.NewDB,
		client.NewRedisClient,
		client.NewSessionStore,
		client.NewSessionKeys,
		client.NewSessionMigrator,

		config.ProvideBackendConfig,
		config.ProvideOssConfig,
		newBackendClient,
		hoss.NewClient,
		wire.Bind(new(hoss.Putter), new(*oss.Client)),
		hoss.NewUploader,

		dao.ProviderSet,
		service.ProviderSet,

		wire.Struct(new(handler.ResourceHandler), "*"),
		wire.Struct(new(handler.PointHandler), "*"),
		wire.Struct(new(handler.ReviewHandler), "*"),
		wire.Struct(new(handler.DashboardHandler), "*"),
		wire.Struct(new(handler.UploadHandler), "*"),

		server.NewGinEngine,
		wire.Struct(new(server.Handlers), "*"),
		wire.Struct(new(server.AppProvider), "*"),
	)
	return nil
}
