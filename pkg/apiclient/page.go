package apiclient

import (
	"context"

	"HyperAdmin/pkg/listctl"

	"github.com/tidwall/gjson"
)

// FetchPage 把一个列表接口适配为 listctl.FetchFunc
func FetchPage[T any](c *Client, path string) listctl.FetchFunc[T] {
	return func(ctx context.Context, req listctl.PageRequest) (*listctl.PageResult[T], error) {
		env, err := c.Get(ctx, path, req.Values())
		if err != nil {
			return nil, err
		}
		return DecodePage[T](env, req)
	}
}

// DecodePage data 可以是数组，也可以是 {items: [...]}；分页信息缺失时按本页推算
func DecodePage[T any](env *Envelope, req listctl.PageRequest) (*listctl.PageResult[T], error) {
	items := make([]T, 0)
	data := env.Data
	if data.IsObject() && data.Get("items").Exists() {
		data = data.Get("items")
	}
	if data.Exists() && data.Type != gjson.Null {
		if err := unmarshal(data.Raw, &items); err != nil {
			return nil, err
		}
	}

	res := &listctl.PageResult[T]{Items: items}
	p := env.Pagination
	if !p.Exists() {
		p = env.Data.Get("pagination")
	}
	if p.Exists() {
		res.CurrentPage = firstInt(p, "currentPage", "current_page", "page")
		res.TotalPages = firstInt(p, "totalPages", "total_pages")
		res.TotalItems = firstInt(p, "totalItems", "total_items", "total")
		res.ItemsPerPage = firstInt(p, "itemsPerPage", "items_per_page", "limit", "page_size")
		return res, nil
	}

	// 没有分页信息时只能推算：本页满了就认为后面可能还有一页，TotalItems 为下限
	page := max(req.Page, 1)
	res.CurrentPage = page
	res.ItemsPerPage = req.PageSize
	res.TotalItems = (page-1)*req.PageSize + len(items)
	switch {
	case len(items) == 0:
		res.TotalPages = page - 1
	case req.PageSize > 0 && len(items) >= req.PageSize:
		res.TotalPages = page + 1
	default:
		res.TotalPages = page
	}
	return res, nil
}

func firstInt(doc gjson.Result, paths ...string) int {
	for _, p := range paths {
		if v := doc.Get(p); v.Exists() {
			return int(v.Int())
		}
	}
	return 0
}
