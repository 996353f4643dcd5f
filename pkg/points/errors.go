package points

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

type InsufficientBalanceError struct {
	CurrentBalance decimal.Decimal
	Requested      decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: current %s, requested %s", e.CurrentBalance, e.Requested)
}

// IsValidation 本地校验失败（含余额不足），不应进入网络层
func IsValidation(err error) bool {
	var ve *ValidationError
	var ie *InsufficientBalanceError
	return errors.As(err, &ve) || errors.As(err, &ie)
}
