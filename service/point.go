package service

import (
	"HyperAdmin/pkg/apiclient"
	"HyperAdmin/pkg/confirm"
	"HyperAdmin/pkg/listctl"
	"HyperAdmin/pkg/notify"
	"HyperAdmin/pkg/points"
	"HyperAdmin/types"
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

type PointService struct {
	Client   *apiclient.Client
	Notifier notify.Sink
}

var _ IPointService = (*PointService)(nil)

type IPointService interface {
	Account(ctx context.Context, userID uint64) (*types.PointsAccount, error)
	History(ctx context.Context, userID uint64, req listctl.PageRequest) (listctl.State[types.PointsLedgerEntry], error)

	// Preview 只做本地计算，不提交
	Preview(ctx context.Context, userID uint64, req points.AdjustmentRequest) (*points.Adjustment, error)
	// Adjust 本地校验 → 二次确认 → 提交。校验失败不会发请求。
	Adjust(ctx context.Context, userID uint64, req points.AdjustmentRequest, prompt confirm.Prompter) (*types.AdjustPointsResp, error)
}

func (p *PointService) Account(ctx context.Context, userID uint64) (*types.PointsAccount, error) {
	env, err := p.Client.Get(ctx, fmt.Sprintf(pathPointsAccount, userID), nil)
	if err != nil {
		return nil, err
	}
	var acc types.PointsAccount
	if err := env.Decode(&acc); err != nil {
		return nil, fmt.Errorf("decode points account: %w", err)
	}
	acc.UserID = userID
	return &acc, nil
}

func (p *PointService) History(ctx context.Context, userID uint64, req listctl.PageRequest) (listctl.State[types.PointsLedgerEntry], error) {
	fetch := apiclient.FetchPage[types.PointsLedgerEntry](p.Client, fmt.Sprintf(pathPointsHistory, userID))
	ctrl := listctl.New(fetch, req, fetchObserver("points.history"))
	err := ctrl.Refresh(ctx)
	return ctrl.State(), err
}

func (p *PointService) Preview(ctx context.Context, userID uint64, req points.AdjustmentRequest) (*points.Adjustment, error) {
	// 先做与余额无关的校验，避免无效请求去查余额
	if err := req.Validate(); err != nil {
		return nil, err
	}
	acc, err := p.Account(ctx, userID)
	if err != nil {
		return nil, err
	}
	return points.ComputeAdjustment(acc.Balance, req)
}

func (p *PointService) Adjust(ctx context.Context, userID uint64, req points.AdjustmentRequest, prompt confirm.Prompter) (*types.AdjustPointsResp, error) {
	adj, err := p.Preview(ctx, userID, req)
	if err != nil {
		return nil, err
	}
	resp := &types.AdjustPointsResp{Preview: adj, NewBalance: adj.NewBalance}

	target := fmt.Sprintf("points/%d", userID)
	err = mutate(ctx, p.Notifier, prompt, mutation{
		action:  "points.adjust",
		target:  target,
		detail:  req,
		title:   "积分调整",
		body:    fmt.Sprintf("用户 #%d：%s", userID, adj.Summary()),
		success: fmt.Sprintf("积分调整成功，用户 #%d 当前余额 %s", userID, adj.NewBalance),
	}, func(ctx context.Context) error {
		env, err := p.Client.Post(ctx, fmt.Sprintf(pathPointsAdjust, userID), types.SubmitAdjustmentReq{
			Type:   adj.Direction,
			Amount: adj.Amount,
			Reason: adj.Reason,
			Code:   req.ReasonCode,
			Notes:  req.Notes,
		})
		if err != nil {
			return err
		}
		resp.Submitted = true
		// 以后端返回的余额为准
		for _, path := range []string{"newBalance", "new_balance", "balance"} {
			if v := env.Data.Get(path); v.Exists() {
				if nb, err := decimal.NewFromString(v.String()); err == nil {
					resp.NewBalance = nb
				}
				break
			}
		}
		return nil
	})
	if errors.Is(err, confirm.ErrDeclined) {
		return resp, err
	}
	if err != nil {
		return nil, err
	}
	return resp, nil
}
