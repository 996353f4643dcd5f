package types

import (
	"encoding/json"

	"HyperAdmin/pkg/changediff"
)

// ChangeRequest 用户提交的资料变更申请
type ChangeRequest struct {
	ID            uint64            `json:"id"`
	UserID        uint64            `json:"user_id"`
	Type          string            `json:"type"` // profile / account
	Status        changediff.Status `json:"status"`
	CurrentData   json.RawMessage   `json:"current_data"`
	RequestedData json.RawMessage   `json:"requested_data"`
	ReviewNotes   string            `json:"review_notes,omitempty"`
	CreatedAt     string            `json:"created_at"`
}

type ReviewReq struct {
	Status    changediff.Status `json:"status" binding:"required,oneof=approved rejected"`
	Notes     string            `json:"notes" binding:"max=500"`
	Confirmed bool              `json:"confirmed"`
}

type ChangeRequestDiff struct {
	ID      uint64             `json:"id"`
	UserID  uint64             `json:"user_id"`
	Type    string             `json:"type"`
	Status  changediff.Status  `json:"status"`
	Entries []changediff.Entry `json:"entries"`
}
