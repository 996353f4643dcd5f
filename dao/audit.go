package dao

import (
	"HyperAdmin/models"
	"HyperAdmin/pkg/listctl"
	"HyperAdmin/pkg/snowflake"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Audit struct {
	Repo[models.AdminAudit]
}

func NewAudit(db *gorm.DB) *Audit {
	return &Audit{
		Repo: NewRepo[models.AdminAudit](db),
	}
}

func (a *Audit) Record(ctx context.Context, adminID uint64, action, target, kind, msg string, detail any) error {
	record := &models.AdminAudit{
		ID:      uint64(snowflake.GenID()),
		AdminID: adminID,
		Action:  action,
		Target:  target,
		Result:  kind,
		Message: msg,
	}
	if detail != nil {
		raw, err := json.Marshal(detail)
		if err != nil {
			return fmt.Errorf("dao.Audit.Record marshal detail: %w", err)
		}
		record.Detail = datatypes.JSON(raw)
	}
	if err := a.Create(ctx, record); err != nil {
		return fmt.Errorf("dao.Audit.Record error: %w", err)
	}
	return nil
}

// Get 不存在时返回 gorm.ErrRecordNotFound
func (a *Audit) Get(ctx context.Context, id uint64) (*models.AdminAudit, error) {
	record, err := a.FindByWhere(ctx, "id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("dao.Audit.Get error: %w", err)
	}
	return record, nil
}

// List 支持 action / result / admin_id 筛选，search 模糊匹配 message 与 target
func (a *Audit) List(ctx context.Context, req listctl.PageRequest) (*listctl.PageResult[models.AdminAudit], error) {
	req = req.Normalize()
	scope := func(db *gorm.DB) *gorm.DB {
		if v := req.Filters["action"]; v != "" {
			db = db.Where("action = ?", v)
		}
		if v := req.Filters["result"]; v != "" {
			db = db.Where("result = ?", v)
		}
		if v := req.Filters["admin_id"]; v != "" {
			if id, err := strconv.ParseUint(v, 10, 64); err == nil {
				db = db.Where("admin_id = ?", id)
			}
		}
		if req.HasSearch() {
			like := "%" + req.Search + "%"
			db = db.Where("message LIKE ? OR target LIKE ?", like, like)
		}
		return db
	}

	items, total, err := a.Paginate(ctx, req.Page, req.PageSize, "id DESC", scope)
	if err != nil {
		return nil, fmt.Errorf("dao.Audit.List error: %w", err)
	}
	return &listctl.PageResult[models.AdminAudit]{
		Items:        items,
		CurrentPage:  req.Page,
		TotalPages:   listctl.TotalPagesFor(int(total), req.PageSize),
		TotalItems:   int(total),
		ItemsPerPage: req.PageSize,
	}, nil
}
