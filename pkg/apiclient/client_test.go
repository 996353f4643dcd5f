package apiclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"HyperAdmin/config"
	"HyperAdmin/pkg/listctl"
	"HyperAdmin/pkg/session"
)

type product struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func newTestClient(t *testing.T, h http.HandlerFunc, sessions session.Provider) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(&config.Backend{BaseURL: srv.URL + "/"}, sessions)
}

func TestDo_BearerFromSession(t *testing.T) {
	ctx := context.Background()
	sessions := session.NewManager(session.NewMemoryStore(), session.NewKeys("t"))
	_ = sessions.SetSession(ctx, "abc", &session.Profile{AdminID: 1})

	var got string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":1,"name":"tea"}}`))
	}, sessions)

	env, err := c.Get(ctx, "/admin/products/1", nil)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "Bearer abc" {
		t.Fatalf("unexpected auth header %q", got)
	}
	var p product
	if err := env.Decode(&p); err != nil || p.Name != "tea" {
		t.Fatalf("decode: %+v %v", p, err)
	}
}

func TestDo_ContextTokenWins(t *testing.T) {
	var got string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"success":true}`))
	}, nil)

	if _, err := c.Get(WithToken(context.Background(), "ctx-token"), "/x", nil); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "Bearer ctx-token" {
		t.Fatalf("unexpected auth header %q", got)
	}
}

func TestDo_UnauthorizedClearsSession(t *testing.T) {
	ctx := context.Background()
	sessions := session.NewManager(session.NewMemoryStore(), session.NewKeys("t"))
	_ = sessions.SetSession(ctx, "expired", &session.Profile{AdminID: 1})

	cleared := false
	sessions.Subscribe(func(ev session.Event) {
		if ev.Kind == session.EventCleared {
			cleared = true
		}
	})

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, sessions)

	if _, err := c.Get(ctx, "/x", nil); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if !cleared {
		t.Fatalf("session listeners not notified")
	}
	if _, err := sessions.GetToken(ctx); !errors.Is(err, session.ErrNoSession) {
		t.Fatalf("token should be cleared, got %v", err)
	}
}

func TestDo_ServerRejected(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"message":"分类下仍有商品"}`))
	}, nil)

	_, err := c.Delete(context.Background(), "/admin/categories/3")
	var se *ServerError
	if !errors.As(err, &se) || se.Message != "分类下仍有商品" {
		t.Fatalf("expected verbatim server error, got %v", err)
	}
}

func TestDo_HTTPErrorWithoutBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}, nil)

	_, err := c.Get(context.Background(), "/x", nil)
	var se *ServerError
	if !errors.As(err, &se) || se.Status != http.StatusBadGateway || se.Message != "Bad Gateway" {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestDo_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := New(&config.Backend{BaseURL: url}, nil)
	_, err := c.Get(context.Background(), "/x", nil)
	if !IsNetwork(err) {
		t.Fatalf("expected network error, got %v", err)
	}
}

func TestFetchPage(t *testing.T) {
	var query string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"success":true,"data":[{"id":11,"name":"a"},{"id":12,"name":"b"}],
			"pagination":{"currentPage":2,"totalPages":3,"totalItems":22,"itemsPerPage":10}}`))
	}, nil)

	fetch := FetchPage[product](c, "/admin/products")
	res, err := fetch(context.Background(), listctl.PageRequest{Page: 2, PageSize: 10, Search: "a"})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if query != "limit=10&page=2&search=a" {
		t.Fatalf("unexpected query %q", query)
	}
	if len(res.Items) != 2 || res.CurrentPage != 2 || res.TotalPages != 3 || res.TotalItems != 22 || res.ItemsPerPage != 10 {
		t.Fatalf("unexpected page: %+v", res)
	}
}

func TestDecodePage_ItemsObjectWithoutPagination(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":{"items":[{"id":1}]}}`))
	}, nil)

	res, err := FetchPage[product](c, "/admin/gallery")(context.Background(), listctl.PageRequest{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(res.Items) != 1 || res.TotalPages != 1 || res.CurrentPage != 1 {
		t.Fatalf("unexpected page: %+v", res)
	}
}

func TestDecodePage_FullPageWithoutPaginationAllowsNext(t *testing.T) {
	var pages []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		pages = append(pages, r.URL.Query().Get("page"))
		if r.URL.Query().Get("page") == "1" {
			_, _ = w.Write([]byte(`{"success":true,"data":[{"id":1},{"id":2}]}`))
			return
		}
		_, _ = w.Write([]byte(`{"success":true,"data":[{"id":3}]}`))
	}, nil)

	ctl := listctl.New(FetchPage[product](c, "/admin/products"), listctl.PageRequest{Page: 1, PageSize: 2})
	if err := ctl.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	if st := ctl.State(); st.TotalPages != 2 || st.TotalItems != 2 {
		t.Fatalf("full page should leave room for a next page: %+v", st)
	}
	if err := ctl.GoToPage(context.Background(), 2); err != nil {
		t.Fatalf("GoToPage: %v", err)
	}
	st := ctl.State()
	if st.CurrentPage != 2 || len(st.Items) != 1 || st.Items[0].ID != 3 || st.TotalPages != 2 || st.TotalItems != 3 {
		t.Fatalf("unexpected second page: %+v", st)
	}
	if len(pages) != 2 || pages[1] != "2" {
		t.Fatalf("unexpected fetches %v", pages)
	}
}
