package points

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type Direction string

const (
	Add      Direction = "add"
	Subtract Direction = "subtract"
)

// 调整原因
const (
	ReasonSigninBonus      = "signin_bonus"
	ReasonOrderRefund      = "order_refund"
	ReasonCompensation     = "compensation"
	ReasonManualCorrection = "manual_correction"
	ReasonFraudReversal    = "fraud_reversal"
	ReasonCustom           = "custom"
)

var reasonLabels = map[string]string{
	ReasonSigninBonus:      "签到奖励补发",
	ReasonOrderRefund:      "订单退款返还",
	ReasonCompensation:     "系统/人工补偿",
	ReasonManualCorrection: "余额人工更正",
	ReasonFraudReversal:    "违规积分回收",
	ReasonCustom:           "其他",
}

// ReasonLabel 返回原因码的展示文案，未知原因码原样返回
func ReasonLabel(code string) string {
	if l, ok := reasonLabels[code]; ok {
		return l
	}
	return code
}

func ValidReason(code string) bool {
	_, ok := reasonLabels[code]
	return ok
}

// AdjustmentRequest 后台积分调整请求
type AdjustmentRequest struct {
	Direction      Direction       `json:"direction"`
	Amount         decimal.Decimal `json:"amount"`
	ReasonCode     string          `json:"reason_code"`
	FreeformReason string          `json:"freeform_reason,omitempty"`
	Notes          string          `json:"notes,omitempty"`
}

// Reason 提交给后端的原因文本
func (r AdjustmentRequest) Reason() string {
	if r.ReasonCode == ReasonCustom {
		return strings.TrimSpace(r.FreeformReason)
	}
	return ReasonLabel(r.ReasonCode)
}

// Validate 只做与余额无关的字段校验
func (r AdjustmentRequest) Validate() error {
	switch r.Direction {
	case Add, Subtract:
	default:
		return &ValidationError{Field: "direction", Msg: fmt.Sprintf("unknown direction %q", r.Direction)}
	}
	if !r.Amount.IsPositive() {
		return &ValidationError{Field: "amount", Msg: "must be greater than 0"}
	}
	if !ValidReason(r.ReasonCode) {
		return &ValidationError{Field: "reason_code", Msg: fmt.Sprintf("unknown reason code %q", r.ReasonCode)}
	}
	if r.ReasonCode == ReasonCustom && strings.TrimSpace(r.FreeformReason) == "" {
		return &ValidationError{Field: "freeform_reason", Msg: "required when reason_code is custom"}
	}
	return nil
}

// Adjustment 校验通过后的调整预览
type Adjustment struct {
	CurrentBalance decimal.Decimal `json:"current_balance"`
	NewBalance     decimal.Decimal `json:"new_balance"`
	Direction      Direction       `json:"direction"`
	Amount         decimal.Decimal `json:"amount"`
	Reason         string          `json:"reason"`
}

// SignedAmount 入账为正，扣减为负
func (a Adjustment) SignedAmount() decimal.Decimal {
	if a.Direction == Subtract {
		return a.Amount.Neg()
	}
	return a.Amount
}

// Summary 二次确认弹窗的正文
func (a Adjustment) Summary() string {
	verb := "增加"
	if a.Direction == Subtract {
		verb = "扣减"
	}
	return fmt.Sprintf("%s %s 积分（%s），余额 %s → %s",
		verb, a.Amount.String(), a.Reason, a.CurrentBalance.String(), a.NewBalance.String())
}

// ComputeAdjustment 计算调整后的余额。扣减超过余额时返回 *InsufficientBalanceError，
// 调用方不得继续提交。
func ComputeAdjustment(currentBalance decimal.Decimal, req AdjustmentRequest) (*Adjustment, error) {
	if currentBalance.IsNegative() {
		return nil, &ValidationError{Field: "current_balance", Msg: "must not be negative"}
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	adj := &Adjustment{
		CurrentBalance: currentBalance,
		Direction:      req.Direction,
		Amount:         req.Amount,
		Reason:         req.Reason(),
	}
	switch req.Direction {
	case Add:
		adj.NewBalance = currentBalance.Add(req.Amount)
	case Subtract:
		if req.Amount.GreaterThan(currentBalance) {
			return nil, &InsufficientBalanceError{CurrentBalance: currentBalance, Requested: req.Amount}
		}
		adj.NewBalance = currentBalance.Sub(req.Amount)
	}
	return adj, nil
}
