package types

import "encoding/json"

// Record 后端返回的通用资源对象，字段由后端决定
type Record map[string]any

// ID 以字符串形式取出主键
func (r Record) ID() string {
	switch v := r["id"].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return ""
	}
}

// Resource 后台可管理的列表资源
type Resource struct {
	Name    string   // 路由名：products
	Path    string   // 后端路径：/admin/products
	Label   string   // 展示名
	Columns []string // CLI 列表展示的字段
}

var Resources = []Resource{
	{Name: "products", Path: "/admin/products", Label: "商品", Columns: []string{"id", "name", "price", "stock", "status"}},
	{Name: "categories", Path: "/admin/categories", Label: "分类", Columns: []string{"id", "name", "sort", "status"}},
	{Name: "subscriptions", Path: "/admin/subscriptions", Label: "订阅", Columns: []string{"id", "user_id", "plan", "status", "expires_at"}},
	{Name: "blogs", Path: "/admin/blogs", Label: "文章", Columns: []string{"id", "title", "author", "status"}},
	{Name: "videos", Path: "/admin/videos", Label: "视频", Columns: []string{"id", "title", "duration", "status"}},
	{Name: "gallery", Path: "/admin/gallery", Label: "图库", Columns: []string{"id", "title", "url"}},
	{Name: "login-images", Path: "/admin/login-images", Label: "登录页图片", Columns: []string{"id", "title", "url", "active"}},
}

func LookupResource(name string) (Resource, bool) {
	for _, r := range Resources {
		if r.Name == name {
			return r, true
		}
	}
	return Resource{}, false
}
