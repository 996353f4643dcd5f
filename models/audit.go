package models

import (
	"time"

	"gorm.io/datatypes"
)

// AdminAudit 后台操作留痕，每次增删改/审核/积分调整的结果各记一条
type AdminAudit struct {
	ID        uint64         `gorm:"primaryKey;column:id" json:"id,string"`                  // snowflake
	AdminID   uint64         `gorm:"column:admin_id;index:idx_admin_id" json:"admin_id"`     // 操作人
	Action    string         `gorm:"column:action;size:64;index:idx_action" json:"action"`   // product.delete / points.adjust / review.approve ...
	Target    string         `gorm:"column:target;size:128" json:"target"`                   // products/12
	Result    string         `gorm:"column:result;size:16;index:idx_result" json:"result"`   // success / error / info
	Message   string         `gorm:"column:message;size:512" json:"message"`                 // 通知文案
	Detail    datatypes.JSON `gorm:"column:detail" json:"detail,omitempty"`                  // 请求快照
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (AdminAudit) TableName() string {
	return "admin_audits"
}
