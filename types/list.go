package types

import (
	"HyperAdmin/pkg/listctl"
)

// ListQuery 列表查询参数，未声明的 query 参数作为筛选条件
type ListQuery struct {
	Page   int    `form:"page,default=1" binding:"min=1"`
	Limit  int    `form:"limit,default=10" binding:"min=1,max=100"`
	Search string `form:"search"`
}

func (q ListQuery) PageRequest(filters map[string]string) listctl.PageRequest {
	return listctl.PageRequest{
		Page:     q.Page,
		PageSize: q.Limit,
		Search:   q.Search,
		Filters:  filters,
	}.Normalize()
}

type Pagination struct {
	CurrentPage  int   `json:"current_page"`
	TotalPages   int   `json:"total_pages"`
	TotalItems   int   `json:"total_items"`
	ItemsPerPage int   `json:"items_per_page"`
	Window       []int `json:"window"` // 0 为省略号
}

type ListResp[T any] struct {
	Items      []T        `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// NewListResp 由控制器快照生成响应
func NewListResp[T any](s listctl.State[T]) *ListResp[T] {
	items := s.Items
	if items == nil {
		items = []T{}
	}
	return &ListResp[T]{
		Items: items,
		Pagination: Pagination{
			CurrentPage:  s.CurrentPage,
			TotalPages:   s.TotalPages,
			TotalItems:   s.TotalItems,
			ItemsPerPage: s.ItemsPerPage,
			Window:       listctl.PageWindow(s.CurrentPage, s.TotalPages, 2),
		},
	}
}
