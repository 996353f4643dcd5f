package types

import (
	"HyperAdmin/pkg/points"

	"github.com/shopspring/decimal"
)

// PointsAccount 后端返回的积分账户
type PointsAccount struct {
	UserID      uint64          `json:"user_id"`
	Nickname    string          `json:"nickname"`
	Balance     decimal.Decimal `json:"balance"`
	TotalEarned decimal.Decimal `json:"total_earned"`
	TotalUsed   decimal.Decimal `json:"total_used"`
}

type PointsLedgerEntry struct {
	ID        uint64          `json:"id"`
	Amount    decimal.Decimal `json:"amount"`  // 正数入账，负数支出
	Balance   decimal.Decimal `json:"balance"` // 变动后余额
	Reason    string          `json:"reason"`
	Operator  string          `json:"operator"`
	CreatedAt string          `json:"created_at"`
}

// AdjustPointsReq 积分调整请求体，confirmed=false 时只返回预览
type AdjustPointsReq struct {
	Direction      points.Direction `json:"direction" binding:"required,oneof=add subtract"`
	Amount         decimal.Decimal  `json:"amount" binding:"required"`
	ReasonCode     string           `json:"reason_code" binding:"required"`
	FreeformReason string           `json:"freeform_reason"`
	Notes          string           `json:"notes" binding:"max=500"`
	Confirmed      bool             `json:"confirmed"`
}

func (r AdjustPointsReq) Adjustment() points.AdjustmentRequest {
	return points.AdjustmentRequest{
		Direction:      r.Direction,
		Amount:         r.Amount,
		ReasonCode:     r.ReasonCode,
		FreeformReason: r.FreeformReason,
		Notes:          r.Notes,
	}
}

// SubmitAdjustmentReq 发往后端的积分调整
type SubmitAdjustmentReq struct {
	Type   points.Direction `json:"type"`
	Amount decimal.Decimal  `json:"amount"`
	Reason string           `json:"reason"`
	Code   string           `json:"reason_code"`
	Notes  string           `json:"notes,omitempty"`
}

type AdjustPointsResp struct {
	Preview    *points.Adjustment `json:"preview"`
	Submitted  bool               `json:"submitted"`
	NewBalance decimal.Decimal    `json:"new_balance"`
}
