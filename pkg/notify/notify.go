package notify

import (
	"context"

	"go.uber.org/zap"
)

type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
	Info    Kind = "info"
)

// Sink 操作结果通知，调用方不关心返回
type Sink interface {
	Notify(ctx context.Context, kind Kind, msg string)
}

type SinkFunc func(ctx context.Context, kind Kind, msg string)

func (f SinkFunc) Notify(ctx context.Context, kind Kind, msg string) {
	f(ctx, kind, msg)
}

type ZapSink struct {
	Logger *zap.Logger
}

func (z *ZapSink) Notify(_ context.Context, kind Kind, msg string) {
	switch kind {
	case Error:
		z.Logger.Warn("notify", zap.String("kind", string(kind)), zap.String("msg", msg))
	default:
		z.Logger.Info("notify", zap.String("kind", string(kind)), zap.String("msg", msg))
	}
}

type multi []Sink

func Multi(sinks ...Sink) Sink {
	return multi(sinks)
}

func (m multi) Notify(ctx context.Context, kind Kind, msg string) {
	for _, s := range m {
		if s != nil {
			s.Notify(ctx, kind, msg)
		}
	}
}

// Recorder 收集通知，CLI 输出和测试使用
type Recorder struct {
	Items []Item
}

type Item struct {
	Kind Kind
	Msg  string
}

func (r *Recorder) Notify(_ context.Context, kind Kind, msg string) {
	r.Items = append(r.Items, Item{Kind: kind, Msg: msg})
}

func (r *Recorder) Last() (Item, bool) {
	if len(r.Items) == 0 {
		return Item{}, false
	}
	return r.Items[len(r.Items)-1], true
}
