package listctl

import (
	"context"
	"errors"
	"maps"
	"strings"
	"sync"
	"time"
)

// ErrSuperseded 请求返回时已有更新的请求发出，本次结果被丢弃
var ErrSuperseded = errors.New("listctl: response superseded by a newer request")

// FetchFunc 由调用方提供的取数函数，控制器本身不做 I/O
type FetchFunc[T any] func(ctx context.Context, req PageRequest) (*PageResult[T], error)

// State 控制器对外暴露的快照。Loading、Err 与空结果三者互相独立。
type State[T any] struct {
	Request      PageRequest
	Items        []T
	CurrentPage  int
	TotalPages   int
	TotalItems   int
	ItemsPerPage int
	Loading      bool
	Loaded       bool
	Err          error
}

// Empty 已成功加载且没有数据
func (s State[T]) Empty() bool {
	return s.Loaded && s.Err == nil && len(s.Items) == 0
}

// Event 每次取数完成后回调，用于日志和指标
type Event struct {
	Seq       uint64
	Request   PageRequest
	Duration  time.Duration
	Err       error
	Discarded bool
	Clamped   bool
}

type Option func(*options)

type options struct {
	observer func(Event)
}

func WithObserver(fn func(Event)) Option {
	return func(o *options) {
		o.observer = fn
	}
}

// Controller 管理列表页的分页、搜索、筛选状态。
// 每次发出的请求带递增序号，只有最新序号的响应会被应用。
type Controller[T any] struct {
	fetch FetchFunc[T]
	opts  options

	mu    sync.Mutex
	seq   uint64
	req   PageRequest
	state State[T]
}

func New[T any](fetch FetchFunc[T], initial PageRequest, opts ...Option) *Controller[T] {
	c := &Controller[T]{fetch: fetch}
	for _, opt := range opts {
		opt(&c.opts)
	}
	c.req = initial.Normalize()
	c.state = State[T]{
		Request:      c.req,
		CurrentPage:  c.req.Page,
		ItemsPerPage: c.req.PageSize,
	}
	return c
}

// State 返回当前快照
func (c *Controller[T]) State() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Request 返回下一次 Refresh 将发出的请求
func (c *Controller[T]) Request() PageRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.req
}

// Load 首次加载，等价于 Refresh
func (c *Controller[T]) Load(ctx context.Context) error {
	return c.Refresh(ctx)
}

// Refresh 原样重发当前请求，用于增删改之后刷新列表
func (c *Controller[T]) Refresh(ctx context.Context) error {
	c.mu.Lock()
	next := c.req.withPage(c.req.Page)
	c.mu.Unlock()
	return c.issue(ctx, next)
}

// SetSearch 更新搜索词并回到第一页
func (c *Controller[T]) SetSearch(ctx context.Context, term string) error {
	c.mu.Lock()
	next := c.req.withPage(1)
	next.Search = strings.TrimSpace(term)
	c.mu.Unlock()
	return c.issue(ctx, next)
}

// SetFilter 合并筛选条件并回到第一页，value 为空表示移除该条件
func (c *Controller[T]) SetFilter(ctx context.Context, key, value string) error {
	c.mu.Lock()
	next := c.req.withPage(1)
	filters := maps.Clone(next.Filters)
	if filters == nil {
		filters = make(map[string]string)
	}
	if value == "" {
		delete(filters, key)
	} else {
		filters[key] = value
	}
	next.Filters = cloneFilters(filters)
	c.mu.Unlock()
	return c.issue(ctx, next)
}

// SetPageSize 修改每页条数并回到第一页
func (c *Controller[T]) SetPageSize(ctx context.Context, size int) error {
	c.mu.Lock()
	next := c.req.withPage(1)
	next.PageSize = size
	next = next.Normalize()
	c.mu.Unlock()
	return c.issue(ctx, next)
}

// GoToPage 跳转到第 n 页；n 越界时不做任何事
func (c *Controller[T]) GoToPage(ctx context.Context, n int) error {
	c.mu.Lock()
	if n < 1 || n > c.state.TotalPages {
		c.mu.Unlock()
		return nil
	}
	next := c.req.withPage(n)
	c.mu.Unlock()
	return c.issue(ctx, next)
}

func (c *Controller[T]) issue(ctx context.Context, next PageRequest) error {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.req = next
	c.state.Request = next
	c.state.Loading = true
	c.mu.Unlock()

	start := time.Now()
	res, err := c.fetch(ctx, next)

	clamped := false
	if err == nil && res != nil && outOfRange(next, res) {
		// 删除等操作让结果集变短，按服务端给出的总页数重取最后一页
		c.mu.Lock()
		stale := seq != c.seq
		if !stale {
			next = next.withPage(res.TotalPages)
			c.req = next
			c.state.Request = next
		}
		c.mu.Unlock()
		if !stale {
			clamped = true
			res, err = c.fetch(ctx, next)
		}
	}

	c.mu.Lock()
	ev := Event{Seq: seq, Request: next, Duration: time.Since(start), Err: err, Clamped: clamped}
	switch {
	case seq != c.seq:
		ev.Discarded = true
		err = ErrSuperseded
	case err != nil:
		c.state.Loading = false
		c.state.Err = err
	default:
		if res == nil {
			res = &PageResult[T]{}
		}
		c.apply(next, res)
	}
	c.mu.Unlock()

	if c.opts.observer != nil {
		c.opts.observer(ev)
	}
	return err
}

func (c *Controller[T]) apply(req PageRequest, res *PageResult[T]) {
	perPage := res.ItemsPerPage
	if perPage <= 0 {
		perPage = req.PageSize
	}
	totalPages := res.TotalPages
	if totalPages <= 0 && res.TotalItems > 0 {
		totalPages = TotalPagesFor(res.TotalItems, perPage)
	}

	items := res.Items
	if len(items) > perPage {
		items = items[:perPage]
	}
	// 状态只整体替换，不在原切片上修改
	items = append(make([]T, 0, len(items)), items...)

	current := res.CurrentPage
	if current < 1 {
		current = req.Page
	}
	current = min(max(current, 1), max(totalPages, 1))

	c.req = req.withPage(current)
	c.state = State[T]{
		Request:      c.req,
		Items:        items,
		CurrentPage:  current,
		TotalPages:   totalPages,
		TotalItems:   res.TotalItems,
		ItemsPerPage: perPage,
		Loaded:       true,
	}
}

func outOfRange[T any](req PageRequest, res *PageResult[T]) bool {
	if res.TotalPages <= 0 {
		return false
	}
	return res.CurrentPage > res.TotalPages || (req.Page > res.TotalPages && len(res.Items) == 0)
}
