package listctl

import (
	"maps"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PageRequest 一次列表请求的全部参数，构造后不再修改
type PageRequest struct {
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
	Search   string            `json:"search,omitempty"`
	Filters  map[string]string `json:"filters,omitempty"`
}

// Normalize 返回补齐默认值后的副本
func (r PageRequest) Normalize() PageRequest {
	out := r
	if out.Page < 1 {
		out.Page = 1
	}
	if out.PageSize < 1 {
		out.PageSize = DefaultPageSize
	}
	if out.PageSize > MaxPageSize {
		out.PageSize = MaxPageSize
	}
	out.Search = strings.TrimSpace(out.Search)
	out.Filters = cloneFilters(out.Filters)
	return out
}

// HasSearch 空白搜索词视为不过滤
func (r PageRequest) HasSearch() bool {
	return strings.TrimSpace(r.Search) != ""
}

func (r PageRequest) withPage(page int) PageRequest {
	out := r
	out.Page = page
	out.Filters = cloneFilters(r.Filters)
	return out
}

// Values 编码为后端 API 的查询参数
func (r PageRequest) Values() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(r.Page))
	v.Set("limit", strconv.Itoa(r.PageSize))
	if r.HasSearch() {
		v.Set("search", strings.TrimSpace(r.Search))
	}
	keys := make([]string, 0, len(r.Filters))
	for k := range r.Filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v.Set(k, r.Filters[k])
	}
	return v
}

func cloneFilters(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	return maps.Clone(in)
}

// PageResult 后端返回的一页数据
type PageResult[T any] struct {
	Items        []T `json:"items"`
	CurrentPage  int `json:"current_page"`
	TotalPages   int `json:"total_pages"`
	TotalItems   int `json:"total_items"`
	ItemsPerPage int `json:"items_per_page"`
}

// TotalPagesFor 按条数计算总页数，仅在服务端未给出时使用
func TotalPagesFor(totalItems, perPage int) int {
	if totalItems <= 0 || perPage <= 0 {
		return 0
	}
	return (totalItems + perPage - 1) / perPage
}
