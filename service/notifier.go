package service

import (
	"HyperAdmin/dao"
	"HyperAdmin/pkg/log"
	"HyperAdmin/pkg/notify"
)

// NewNotifier 通知同时写日志和审计表
func NewNotifier(audit *dao.Audit) notify.Sink {
	return notify.Multi(
		&notify.ZapSink{Logger: log.L},
		&notify.AuditSink{Writer: audit},
	)
}
