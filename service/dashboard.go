package service

import (
	"HyperAdmin/pkg/apiclient"
	"HyperAdmin/pkg/log"
	"HyperAdmin/types"
	"context"
	"net/url"

	"github.com/sourcegraph/conc"
	"go.uber.org/zap"
)

type DashboardService struct {
	Client  *apiclient.Client
	Reviews IReviewService
}

var _ IDashboardService = (*DashboardService)(nil)

type IDashboardService interface {
	// Overview 各面板并发加载，单个面板失败只体现在该面板
	Overview(ctx context.Context, loginRange string) *types.Overview
}

func (d *DashboardService) Overview(ctx context.Context, loginRange string) *types.Overview {
	if loginRange == "" {
		loginRange = "7d"
	}
	out := &types.Overview{}

	var wg conc.WaitGroup
	wg.Go(func() {
		var stats types.DashboardStats
		if err := d.load(ctx, pathStats, nil, &stats); err != nil {
			out.Stats.Error = panelError("stats", err)
			return
		}
		out.Stats.Data = &stats
	})
	wg.Go(func() {
		stats := types.LoginStats{Range: loginRange}
		if err := d.load(ctx, pathLoginStats, url.Values{"range": {loginRange}}, &stats.Series); err != nil {
			out.LoginStats.Error = panelError("login_stats", err)
			return
		}
		out.LoginStats.Data = &stats
	})
	wg.Go(func() {
		n, err := d.Reviews.PendingCount(ctx)
		if err != nil {
			out.PendingReviews.Error = panelError("pending_reviews", err)
			return
		}
		out.PendingReviews.Data = &types.PendingReviews{Count: n}
	})
	if r := wg.WaitAndRecover(); r != nil {
		log.L.Error("dashboard panel panicked", zap.Any("panic", r.Value))
	}
	return out
}

func (d *DashboardService) load(ctx context.Context, path string, query url.Values, out any) error {
	env, err := d.Client.Get(ctx, path, query)
	if err != nil {
		return err
	}
	return env.Decode(out)
}

func panelError(panel string, err error) string {
	log.L.Warn("dashboard panel failed", zap.String("panel", panel), zap.Error(err))
	return UserMessage(err)
}
