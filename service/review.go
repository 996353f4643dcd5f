package service

import (
	"HyperAdmin/config"
	"HyperAdmin/pkg/apiclient"
	"HyperAdmin/pkg/changediff"
	"HyperAdmin/pkg/confirm"
	"HyperAdmin/pkg/listctl"
	"HyperAdmin/pkg/notify"
	"HyperAdmin/types"
	"context"
	"fmt"
)

type ReviewService struct {
	Config   *config.Config
	Client   *apiclient.Client
	Notifier notify.Sink
}

var _ IReviewService = (*ReviewService)(nil)

type IReviewService interface {
	List(ctx context.Context, req listctl.PageRequest) (listctl.State[types.ChangeRequest], error)
	Get(ctx context.Context, id uint64) (*types.ChangeRequest, error)
	Diff(ctx context.Context, id uint64) (*types.ChangeRequestDiff, error)
	Review(ctx context.Context, id uint64, review changediff.Review, prompt confirm.Prompter) error
	PendingCount(ctx context.Context) (int, error)
}

// List 未指定 status 时只列待审核
func (r *ReviewService) List(ctx context.Context, req listctl.PageRequest) (listctl.State[types.ChangeRequest], error) {
	if _, ok := req.Filters["status"]; !ok {
		filters := map[string]string{"status": string(changediff.Pending)}
		for k, v := range req.Filters {
			filters[k] = v
		}
		req.Filters = filters
	}
	fetch := apiclient.FetchPage[types.ChangeRequest](r.Client, pathChangeRequests)
	ctrl := listctl.New(fetch, req, fetchObserver("change-requests"))
	err := ctrl.Refresh(ctx)
	return ctrl.State(), err
}

func (r *ReviewService) Get(ctx context.Context, id uint64) (*types.ChangeRequest, error) {
	env, err := r.Client.Get(ctx, fmt.Sprintf(pathChangeRequest, id), nil)
	if err != nil {
		return nil, err
	}
	var cr types.ChangeRequest
	if err := env.Decode(&cr); err != nil {
		return nil, fmt.Errorf("decode change request %d: %w", id, err)
	}
	return &cr, nil
}

func (r *ReviewService) Diff(ctx context.Context, id uint64) (*types.ChangeRequestDiff, error) {
	cr, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	rules := r.Config.Review
	entries, err := changediff.DiffJSON(
		orEmptyObject(cr.CurrentData),
		orEmptyObject(cr.RequestedData),
		rules.HiddenFields,
		changediff.ClassifyByName(rules.ImageFields, rules.StructuredFields),
	)
	if err != nil {
		return nil, err
	}
	return &types.ChangeRequestDiff{
		ID:      cr.ID,
		UserID:  cr.UserID,
		Type:    cr.Type,
		Status:  cr.Status,
		Entries: entries,
	}, nil
}

func (r *ReviewService) Review(ctx context.Context, id uint64, review changediff.Review, prompt confirm.Prompter) error {
	cr, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := changediff.ValidateReview(cr.Status, review); err != nil {
		return err
	}

	verb := "通过"
	if review.Status == changediff.Rejected {
		verb = "驳回"
	}
	return mutate(ctx, r.Notifier, prompt, mutation{
		action:  "review." + string(review.Status),
		target:  fmt.Sprintf("change-requests/%d", id),
		detail:  review,
		title:   verb + "变更申请",
		body:    fmt.Sprintf("确定%s用户 #%d 的变更申请 #%d？", verb, cr.UserID, id),
		success: fmt.Sprintf("变更申请 #%d 已%s", id, verb),
	}, func(ctx context.Context) error {
		_, err := r.Client.Put(ctx, fmt.Sprintf(pathReview, id), review)
		return err
	})
}

func (r *ReviewService) PendingCount(ctx context.Context) (int, error) {
	st, err := r.List(ctx, listctl.PageRequest{Page: 1, PageSize: 1})
	if err != nil {
		return 0, err
	}
	return st.TotalItems, nil
}

func orEmptyObject(raw []byte) []byte {
	if len(raw) == 0 || string(raw) == "null" {
		return []byte("{}")
	}
	return raw
}
