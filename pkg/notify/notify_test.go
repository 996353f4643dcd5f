package notify

import (
	"context"
	"errors"
	"testing"
)

type fakeWriter struct {
	calls []string
	err   error
}

func (f *fakeWriter) Record(_ context.Context, adminID uint64, action, target, kind, msg string, _ any) error {
	f.calls = append(f.calls, action+"|"+target+"|"+kind+"|"+msg)
	return f.err
}

func TestMultiAndAudit(t *testing.T) {
	rec := &Recorder{}
	w := &fakeWriter{}
	sink := Multi(rec, &AuditSink{Writer: w}, nil)

	sink.Notify(context.Background(), Info, "no actor")
	ctx := WithActor(context.Background(), Actor{AdminID: 1, Action: "delete", Target: "products/3"})
	sink.Notify(ctx, Success, "deleted")

	if len(rec.Items) != 2 {
		t.Fatalf("recorder missed notifications: %+v", rec.Items)
	}
	if len(w.calls) != 1 || w.calls[0] != "delete|products/3|success|deleted" {
		t.Fatalf("unexpected audit calls: %v", w.calls)
	}
	if last, _ := rec.Last(); last.Kind != Success {
		t.Fatalf("unexpected last item %+v", last)
	}
}

func TestAuditSink_WriteErrorSwallowed(t *testing.T) {
	w := &fakeWriter{err: errors.New("db down")}
	ctx := WithActor(context.Background(), Actor{Action: "x"})
	(&AuditSink{Writer: w}).Notify(ctx, Error, "boom")
	if len(w.calls) != 1 {
		t.Fatalf("writer not called")
	}
}
