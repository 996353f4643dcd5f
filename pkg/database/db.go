package database

import (
	"HyperAdmin/config"
	"HyperAdmin/models"
	"HyperAdmin/pkg/log"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// NewDB 初始化审计库连接并同步表结构
func NewDB(conf *config.Config) *gorm.DB {
	db, err := gorm.Open(mysql.Open(conf.MySQL.Dsn()), &gorm.Config{})
	if err != nil {
		log.L.Fatal("failed to connect database", zap.Error(err))
	}
	if err := db.AutoMigrate(&models.AdminAudit{}); err != nil {
		log.L.Fatal("failed to migrate admin_audits", zap.Error(err))
	}
	log.L.Info("connect database success", zap.String("database", conf.MySQL.Database))
	return db
}
