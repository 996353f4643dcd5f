package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"HyperAdmin/config"
	"HyperAdmin/pkg/apiclient"
	"HyperAdmin/pkg/changediff"
	"HyperAdmin/pkg/confirm"
	"HyperAdmin/pkg/listctl"
	"HyperAdmin/pkg/notify"
	hoss "HyperAdmin/pkg/oss"
	"HyperAdmin/pkg/points"
	"HyperAdmin/types"

	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss"
	"github.com/shopspring/decimal"
)

// backend 记录收到的请求，按 "METHOD path" 返回固定响应
type backend struct {
	mu     sync.Mutex
	routes map[string]string
	calls  []string
	bodies map[string]string
}

func newBackend(t *testing.T, routes map[string]string) (*backend, *apiclient.Client) {
	t.Helper()
	b := &backend{routes: routes, bodies: map[string]string{}}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		b.mu.Lock()
		b.calls = append(b.calls, key)
		b.bodies[key] = string(raw)
		b.mu.Unlock()

		resp, ok := routes[key]
		if !ok {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"success":false,"message":"boom"}`))
			return
		}
		_, _ = w.Write([]byte(resp))
	}))
	t.Cleanup(srv.Close)
	return b, apiclient.New(&config.Backend{BaseURL: srv.URL}, nil)
}

func (b *backend) called(key string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, c := range b.calls {
		if c == key {
			return true
		}
	}
	return false
}

func subtract(amount string) points.AdjustmentRequest {
	return points.AdjustmentRequest{
		Direction:  points.Subtract,
		Amount:     decimal.RequireFromString(amount),
		ReasonCode: points.ReasonManualCorrection,
	}
}

const accountResp = `{"success":true,"data":{"user_id":7,"balance":50}}`

func TestPointService_InsufficientBalanceNeverSubmits(t *testing.T) {
	b, client := newBackend(t, map[string]string{"GET /admin/points/7": accountResp})
	rec := &notify.Recorder{}
	svc := &PointService{Client: client, Notifier: rec}

	_, err := svc.Adjust(context.Background(), 7, subtract("75"), confirm.Static(true))
	var ie *points.InsufficientBalanceError
	if !errors.As(err, &ie) {
		t.Fatalf("expected insufficient balance, got %v", err)
	}
	if b.called("POST /admin/points/7/adjust") {
		t.Fatalf("adjust must not be submitted")
	}
	if len(rec.Items) != 0 {
		t.Fatalf("unexpected notifications %+v", rec.Items)
	}
}

func TestPointService_InvalidRequestSkipsBalanceLookup(t *testing.T) {
	b, client := newBackend(t, map[string]string{"GET /admin/points/7": accountResp})
	svc := &PointService{Client: client, Notifier: &notify.Recorder{}}

	req := subtract("0")
	if _, err := svc.Preview(context.Background(), 7, req); !points.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if b.called("GET /admin/points/7") {
		t.Fatalf("balance should not be fetched for invalid input")
	}
}

func TestPointService_DeclinedReturnsPreview(t *testing.T) {
	b, client := newBackend(t, map[string]string{"GET /admin/points/7": accountResp})
	rec := &notify.Recorder{}
	svc := &PointService{Client: client, Notifier: rec}

	resp, err := svc.Adjust(context.Background(), 7, subtract("50"), confirm.Static(false))
	if !errors.Is(err, confirm.ErrDeclined) {
		t.Fatalf("expected declined, got %v", err)
	}
	if resp == nil || resp.Submitted || !resp.Preview.NewBalance.IsZero() {
		t.Fatalf("unexpected preview %+v", resp)
	}
	if b.called("POST /admin/points/7/adjust") {
		t.Fatalf("declined adjust must not be submitted")
	}
	if len(rec.Items) != 0 {
		t.Fatalf("declined adjust must not notify")
	}
}

func TestPointService_AdjustSubmits(t *testing.T) {
	b, client := newBackend(t, map[string]string{
		"GET /admin/points/7":         accountResp,
		"POST /admin/points/7/adjust": `{"success":true,"data":{"newBalance":"49"}}`,
	})
	rec := &notify.Recorder{}
	svc := &PointService{Client: client, Notifier: rec}

	resp, err := svc.Adjust(context.Background(), 7, subtract("1"), confirm.Static(true))
	if err != nil {
		t.Fatalf("Adjust: %v", err)
	}
	if !resp.Submitted || resp.NewBalance.String() != "49" {
		t.Fatalf("unexpected resp %+v", resp)
	}

	var sent map[string]any
	_ = json.Unmarshal([]byte(b.bodies["POST /admin/points/7/adjust"]), &sent)
	if sent["type"] != "subtract" || sent["amount"] != "1" {
		t.Fatalf("unexpected body %v", sent)
	}
	last, _ := rec.Last()
	if last.Kind != notify.Success {
		t.Fatalf("expected success notification, got %+v", last)
	}
}

func TestPointService_ServerRejectionNotifiesVerbatim(t *testing.T) {
	_, client := newBackend(t, map[string]string{"GET /admin/points/7": accountResp})
	rec := &notify.Recorder{}
	svc := &PointService{Client: client, Notifier: rec}

	_, err := svc.Adjust(context.Background(), 7, subtract("1"), confirm.Static(true))
	if !apiclient.IsServer(err) {
		t.Fatalf("expected server error, got %v", err)
	}
	last, _ := rec.Last()
	if last.Kind != notify.Error || last.Msg != "积分调整失败：boom" {
		t.Fatalf("unexpected notification %+v", last)
	}
}

func newReviewService(client *apiclient.Client, rec notify.Sink) *ReviewService {
	rules := config.DefaultReview()
	rules.HiddenFields = append(rules.HiddenFields, "password")
	return &ReviewService{
		Config:   &config.Config{Review: rules},
		Client:   client,
		Notifier: rec,
	}
}

const changeRequestResp = `{"success":true,"data":{
	"id":3,"user_id":9,"type":"profile","status":"pending",
	"current_data":{"nickname":"a","avatar":"x.png","password":"p"},
	"requested_data":{"nickname":"b","avatar":"x.png","bio":"hi","password":"q"}
}}`

func TestReviewService_Diff(t *testing.T) {
	_, client := newBackend(t, map[string]string{"GET /admin/change-requests/3": changeRequestResp})
	svc := newReviewService(client, &notify.Recorder{})

	d, err := svc.Diff(context.Background(), 3)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if len(d.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %+v", d.Entries)
	}
	if d.Entries[0].Field != "nickname" || d.Entries[1].Field != "bio" || d.Entries[1].OldValue != nil {
		t.Fatalf("unexpected entries %+v", d.Entries)
	}
}

func TestReviewService_ReviewTerminalRejected(t *testing.T) {
	b, client := newBackend(t, map[string]string{
		"GET /admin/change-requests/3": `{"success":true,"data":{"id":3,"status":"approved"}}`,
	})
	svc := newReviewService(client, &notify.Recorder{})

	err := svc.Review(context.Background(), 3, changediff.Review{Status: changediff.Rejected}, confirm.Static(true))
	var te *changediff.TransitionError
	if !errors.As(err, &te) {
		t.Fatalf("expected transition error, got %v", err)
	}
	if b.called("PUT /admin/change-requests/3/review") {
		t.Fatalf("terminal request must not be reviewed")
	}
}

func TestReviewService_ReviewMixedCaseStatus(t *testing.T) {
	b, client := newBackend(t, map[string]string{
		"GET /admin/change-requests/3":        `{"success":true,"data":{"id":3,"status":"Pending"}}`,
		"PUT /admin/change-requests/3/review": `{"success":true}`,
	})
	svc := newReviewService(client, &notify.Recorder{})

	err := svc.Review(context.Background(), 3, changediff.Review{Status: changediff.Rejected}, confirm.Static(true))
	if err != nil {
		t.Fatalf("Review: %v", err)
	}
	if !b.called("PUT /admin/change-requests/3/review") {
		t.Fatalf("pending request should be reviewed")
	}
}

func TestReviewService_Review(t *testing.T) {
	b, client := newBackend(t, map[string]string{
		"GET /admin/change-requests/3":        changeRequestResp,
		"PUT /admin/change-requests/3/review": `{"success":true}`,
	})
	rec := &notify.Recorder{}
	svc := newReviewService(client, rec)

	err := svc.Review(context.Background(), 3, changediff.Review{Status: changediff.Approved, Notes: "ok"}, confirm.Static(true))
	if err != nil {
		t.Fatalf("Review: %v", err)
	}
	if b.bodies["PUT /admin/change-requests/3/review"] != `{"status":"approved","notes":"ok"}` {
		t.Fatalf("unexpected body %s", b.bodies["PUT /admin/change-requests/3/review"])
	}
	if last, _ := rec.Last(); last.Kind != notify.Success {
		t.Fatalf("expected success, got %+v", last)
	}
}

func TestReviewService_ListDefaultsToPending(t *testing.T) {
	var status string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status = r.URL.Query().Get("status")
		_, _ = w.Write([]byte(`{"success":true,"data":[],"pagination":{"currentPage":1,"totalPages":0,"totalItems":0,"itemsPerPage":10}}`))
	}))
	defer srv.Close()
	svc := newReviewService(apiclient.New(&config.Backend{BaseURL: srv.URL}, nil), &notify.Recorder{})

	st, err := svc.List(context.Background(), listctl.PageRequest{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if status != "pending" || !st.Empty() {
		t.Fatalf("status=%q state=%+v", status, st)
	}
}

func TestDashboardService_PanelsIndependent(t *testing.T) {
	_, client := newBackend(t, map[string]string{
		"GET /admin/stats":           `{"success":true,"data":{"total_users":12}}`,
		"GET /admin/change-requests": `{"success":true,"data":[],"pagination":{"currentPage":1,"totalPages":4,"totalItems":4,"itemsPerPage":1}}`,
	})
	svc := &DashboardService{Client: client, Reviews: newReviewService(client, &notify.Recorder{})}

	out := svc.Overview(context.Background(), "")
	if out.Stats.Data == nil || out.Stats.Data.TotalUsers != 12 {
		t.Fatalf("stats panel: %+v", out.Stats)
	}
	if out.LoginStats.Data != nil || out.LoginStats.Error != "boom" {
		t.Fatalf("login stats panel should fail alone: %+v", out.LoginStats)
	}
	if out.PendingReviews.Data == nil || out.PendingReviews.Data.Count != 4 {
		t.Fatalf("pending panel: %+v", out.PendingReviews)
	}
}

func TestResourceService_DeleteDeclined(t *testing.T) {
	b, client := newBackend(t, map[string]string{"DELETE /admin/products/1": `{"success":true}`})
	rec := &notify.Recorder{}
	svc := &ResourceService{Client: client, Notifier: rec}
	res, _ := types.LookupResource("products")

	if err := svc.Delete(context.Background(), res, "1", confirm.Static(false)); !errors.Is(err, confirm.ErrDeclined) {
		t.Fatalf("expected declined, got %v", err)
	}
	if b.called("DELETE /admin/products/1") || len(rec.Items) != 0 {
		t.Fatalf("declined delete must be a no-op")
	}

	if err := svc.Delete(context.Background(), res, "1", confirm.Static(true)); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if last, _ := rec.Last(); last.Msg != "商品已删除" {
		t.Fatalf("unexpected notification %+v", last)
	}
}

func TestResourceService_ListClampsToLastPage(t *testing.T) {
	var pages []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		pages = append(pages, page)
		if page == "9" {
			_, _ = w.Write([]byte(`{"success":true,"data":[],"pagination":{"currentPage":9,"totalPages":2,"totalItems":12,"itemsPerPage":10}}`))
			return
		}
		_, _ = w.Write([]byte(`{"success":true,"data":[{"id":11},{"id":12}],"pagination":{"currentPage":2,"totalPages":2,"totalItems":12,"itemsPerPage":10}}`))
	}))
	defer srv.Close()
	svc := &ResourceService{Client: apiclient.New(&config.Backend{BaseURL: srv.URL}, nil), Notifier: &notify.Recorder{}}
	res, _ := types.LookupResource("products")

	st, err := svc.List(context.Background(), res, listctl.PageRequest{Page: 9, PageSize: 10})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if st.CurrentPage != 2 || len(st.Items) != 2 || st.Items[1].ID() != "12" {
		t.Fatalf("unexpected state %+v", st)
	}
	if len(pages) != 2 {
		t.Fatalf("expected a second fetch, got %v", pages)
	}
}

type fakePutter struct {
	keys    []string
	deleted []string
	putErr  error
}

func (f *fakePutter) PutObject(_ context.Context, req *oss.PutObjectRequest, _ ...func(*oss.Options)) (*oss.PutObjectResult, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	f.keys = append(f.keys, *req.Key)
	return &oss.PutObjectResult{}, nil
}

func (f *fakePutter) DeleteObject(_ context.Context, req *oss.DeleteObjectRequest, _ ...func(*oss.Options)) (*oss.DeleteObjectResult, error) {
	f.deleted = append(f.deleted, *req.Key)
	return &oss.DeleteObjectResult{}, nil
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func newUploadService(t *testing.T, client *apiclient.Client, putter *fakePutter) *UploadService {
	t.Helper()
	return &UploadService{
		Uploader: hoss.NewUploader(putter, &config.OssConfig{Bucket: "b", CdnDomain: "https://cdn.example.com"}),
		Client:   client,
		Notifier: &notify.Recorder{},
	}
}

func TestUploadService_DeclinedSkipsUpload(t *testing.T) {
	b, client := newBackend(t, map[string]string{"POST /admin/gallery": `{"success":true,"data":{"id":1}}`})
	putter := &fakePutter{}
	svc := newUploadService(t, client, putter)
	res, _ := types.LookupResource("gallery")
	img := pngBytes(t, 4, 3)

	_, err := svc.UploadImage(context.Background(), res, "cover", bytes.NewReader(img), int64(len(img)), confirm.Static(false))
	if !errors.Is(err, confirm.ErrDeclined) {
		t.Fatalf("expected declined, got %v", err)
	}
	if len(putter.keys) != 0 || b.called("POST /admin/gallery") {
		t.Fatalf("declined upload must not touch oss or backend")
	}
}

func TestUploadService_UploadAndRegister(t *testing.T) {
	b, client := newBackend(t, map[string]string{"POST /admin/gallery": `{"success":true,"data":{"id":1}}`})
	putter := &fakePutter{}
	svc := newUploadService(t, client, putter)
	res, _ := types.LookupResource("gallery")
	img := pngBytes(t, 4, 3)

	resp, err := svc.UploadImage(context.Background(), res, "cover", bytes.NewReader(img), int64(len(img)), confirm.Static(true))
	if err != nil {
		t.Fatalf("UploadImage: %v", err)
	}
	if len(putter.keys) != 1 || resp.Width != 4 || resp.Height != 3 {
		t.Fatalf("unexpected result %+v keys=%v", resp, putter.keys)
	}
	if resp.Url != "https://cdn.example.com/"+putter.keys[0] {
		t.Fatalf("unexpected url %s", resp.Url)
	}
	var sent map[string]any
	_ = json.Unmarshal([]byte(b.bodies["POST /admin/gallery"]), &sent)
	if sent["url"] != resp.Url || sent["title"] != "cover" {
		t.Fatalf("unexpected registration body %v", sent)
	}
	rec := svc.Notifier.(*notify.Recorder)
	if len(rec.Items) != 1 || rec.Items[0].Kind != notify.Success || len(putter.deleted) != 0 {
		t.Fatalf("expected a single success notification, got %+v deleted=%v", rec.Items, putter.deleted)
	}
}

func TestUploadService_RegisterFailureRemovesObject(t *testing.T) {
	b, client := newBackend(t, nil)
	putter := &fakePutter{}
	svc := newUploadService(t, client, putter)
	res, _ := types.LookupResource("gallery")
	img := pngBytes(t, 4, 3)

	_, err := svc.UploadImage(context.Background(), res, "cover", bytes.NewReader(img), int64(len(img)), confirm.Static(true))
	var se *apiclient.ServerError
	if !errors.As(err, &se) {
		t.Fatalf("expected server error, got %v", err)
	}
	if !b.called("POST /admin/gallery") || len(putter.keys) != 1 {
		t.Fatalf("expected one put and one registration attempt, keys=%v", putter.keys)
	}
	if len(putter.deleted) != 1 || putter.deleted[0] != putter.keys[0] {
		t.Fatalf("uploaded object must be removed, deleted=%v keys=%v", putter.deleted, putter.keys)
	}
	last, ok := svc.Notifier.(*notify.Recorder).Last()
	if !ok || last.Kind != notify.Error || last.Msg != "上传图库失败：boom" {
		t.Fatalf("unexpected notification %+v", last)
	}
}

func TestUploadService_PutFailureNotifies(t *testing.T) {
	b, client := newBackend(t, map[string]string{"POST /admin/gallery": `{"success":true,"data":{"id":1}}`})
	putter := &fakePutter{putErr: errors.New("oss unavailable")}
	svc := newUploadService(t, client, putter)
	res, _ := types.LookupResource("gallery")
	img := pngBytes(t, 4, 3)

	if _, err := svc.UploadImage(context.Background(), res, "cover", bytes.NewReader(img), int64(len(img)), confirm.Static(true)); err == nil {
		t.Fatalf("expected put failure")
	}
	if b.called("POST /admin/gallery") || len(putter.deleted) != 0 {
		t.Fatalf("failed put must not register or delete")
	}
	last, ok := svc.Notifier.(*notify.Recorder).Last()
	if !ok || last.Kind != notify.Error {
		t.Fatalf("expected error notification, got %+v", last)
	}
}

func TestUploadService_RejectsNonImageResource(t *testing.T) {
	_, client := newBackend(t, nil)
	svc := newUploadService(t, client, &fakePutter{})
	res, _ := types.LookupResource("products")
	if _, err := svc.UploadImage(context.Background(), res, "x", bytes.NewReader(nil), 1, confirm.Static(true)); !errors.Is(err, ErrNotImageResource) {
		t.Fatalf("expected ErrNotImageResource, got %v", err)
	}
}
