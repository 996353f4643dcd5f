package service

import (
	"context"
	"errors"
	"fmt"

	"HyperAdmin/pkg/apiclient"
	"HyperAdmin/pkg/confirm"
	"HyperAdmin/pkg/listctl"
	"HyperAdmin/pkg/log"
	"HyperAdmin/pkg/notify"

	"go.uber.org/zap"
)

// 后端 API 路径
const (
	pathPointsAccount  = "/admin/points/%d"
	pathPointsHistory  = "/admin/points/%d/history"
	pathPointsAdjust   = "/admin/points/%d/adjust"
	pathChangeRequests = "/admin/change-requests"
	pathChangeRequest  = "/admin/change-requests/%d"
	pathReview         = "/admin/change-requests/%d/review"
	pathStats          = "/admin/stats"
	pathLoginStats     = "/admin/login-stats"
)

type operatorKey struct{}

// Operator 当前操作的管理员
type Operator struct {
	ID   uint64
	Name string
}

func WithOperator(ctx context.Context, op Operator) context.Context {
	return context.WithValue(ctx, operatorKey{}, op)
}

func OperatorFrom(ctx context.Context) Operator {
	op, _ := ctx.Value(operatorKey{}).(Operator)
	return op
}

// UserMessage 把错误转成可以直接展示给管理员的文案
func UserMessage(err error) string {
	var se *apiclient.ServerError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &se):
		return se.Message
	case errors.Is(err, apiclient.ErrUnauthorized):
		return "登录已失效，请重新登录"
	case apiclient.IsNetwork(err):
		return "网络异常，请稍后重试"
	case errors.Is(err, confirm.ErrDeclined):
		return "操作已取消"
	default:
		return err.Error()
	}
}

type mutation struct {
	action  string
	target  string
	detail  any
	title   string
	body    string
	success string
}

// mutate 确认 → 执行 → 通知。未确认时不发请求、不通知。
func mutate(ctx context.Context, sink notify.Sink, prompt confirm.Prompter, m mutation, do func(ctx context.Context) error) error {
	if err := confirm.Require(ctx, prompt, m.title, m.body); err != nil {
		return err
	}

	op := OperatorFrom(ctx)
	ctx = notify.WithActor(ctx, notify.Actor{AdminID: op.ID, Action: m.action, Target: m.target, Detail: m.detail})
	if err := do(ctx); err != nil {
		sink.Notify(ctx, notify.Error, fmt.Sprintf("%s失败：%s", m.title, UserMessage(err)))
		return err
	}
	sink.Notify(ctx, notify.Success, m.success)
	return nil
}

// fetchObserver 列表取数日志
func fetchObserver(resource string) listctl.Option {
	return listctl.WithObserver(func(ev listctl.Event) {
		log.L.Debug("list fetch",
			zap.String("resource", resource),
			zap.Uint64("seq", ev.Seq),
			zap.Int("page", ev.Request.Page),
			zap.Duration("duration", ev.Duration),
			zap.Bool("discarded", ev.Discarded),
			zap.Bool("clamped", ev.Clamped),
			zap.Error(ev.Err),
		)
	})
}
