package service

import (
	"HyperAdmin/dao"
	"HyperAdmin/models"
	"HyperAdmin/pkg/listctl"
	"context"
)

type AuditService struct {
	AuditDAO *dao.Audit
}

var _ IAuditService = (*AuditService)(nil)

type IAuditService interface {
	List(ctx context.Context, req listctl.PageRequest) (listctl.State[models.AdminAudit], error)
	Get(ctx context.Context, id uint64) (*models.AdminAudit, error)
}

func (a *AuditService) List(ctx context.Context, req listctl.PageRequest) (listctl.State[models.AdminAudit], error) {
	ctrl := listctl.New(a.AuditDAO.List, req, fetchObserver("audits"))
	err := ctrl.Refresh(ctx)
	return ctrl.State(), err
}

func (a *AuditService) Get(ctx context.Context, id uint64) (*models.AdminAudit, error) {
	return a.AuditDAO.Get(ctx, id)
}
