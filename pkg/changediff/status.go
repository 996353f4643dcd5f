package changediff

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Status 变更申请状态，pending 只能流转到 approved 或 rejected，二者均为终态
type Status string

const (
	Pending  Status = "pending"
	Approved Status = "approved"
	Rejected Status = "rejected"
)

func (s Status) Terminal() bool {
	return s == Approved || s == Rejected
}

func CanTransition(from, to Status) bool {
	return from == Pending && to.Terminal()
}

// Review 一次审核动作
type Review struct {
	Status Status `json:"status"`
	Notes  string `json:"notes,omitempty"`
}

// ValidateReview 校验从 current 状态执行审核是否合法
func ValidateReview(current Status, r Review) error {
	if !r.Status.Terminal() {
		return &TransitionError{From: current, To: r.Status}
	}
	if !CanTransition(current, r.Status) {
		return &TransitionError{From: current, To: r.Status}
	}
	return nil
}

// ParseStatus 兼容大小写
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	switch st {
	case Pending, Approved, Rejected:
		return st, nil
	}
	return "", fmt.Errorf("changediff: unknown status %q", s)
}

// UnmarshalJSON 后端返回的状态统一转小写，未知值原样保留，由 ValidateReview 拒绝
func (s *Status) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	st, err := ParseStatus(raw)
	if err != nil {
		st = Status(raw)
	}
	*s = st
	return nil
}

type TransitionError struct {
	From Status
	To   Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("changediff: cannot move change request from %q to %q", e.From, e.To)
}
