package notify

import (
	"context"

	"HyperAdmin/pkg/log"

	"go.uber.org/zap"
)

type actorKey struct{}

type Actor struct {
	AdminID uint64
	Action  string
	Target  string
	Detail  any
}

// WithActor 让 AuditSink 知道是谁对什么做了什么
func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, a)
}

func ActorFrom(ctx context.Context) (Actor, bool) {
	a, ok := ctx.Value(actorKey{}).(Actor)
	return a, ok
}

// AuditWriter 由 dao.Audit 实现
type AuditWriter interface {
	Record(ctx context.Context, adminID uint64, action, target, kind, msg string, detail any) error
}

type AuditSink struct {
	Writer AuditWriter
}

// Notify 只记录带 Actor 的通知，写库失败仅打日志
func (a *AuditSink) Notify(ctx context.Context, kind Kind, msg string) {
	actor, ok := ActorFrom(ctx)
	if !ok {
		return
	}
	if err := a.Writer.Record(ctx, actor.AdminID, actor.Action, actor.Target, string(kind), msg, actor.Detail); err != nil {
		log.L.Error("write audit record", zap.Error(err), zap.String("action", actor.Action))
	}
}
