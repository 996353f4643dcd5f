package handler

import (
	"HyperAdmin/pkg/apiclient"
	"HyperAdmin/pkg/context"
	"HyperAdmin/pkg/listctl"
	"HyperAdmin/pkg/response"
	"HyperAdmin/service"
	"HyperAdmin/types"
	stdctx "context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// requestCtx 带上当前管理员和透传给后端的 token
func requestCtx(c *gin.Context) stdctx.Context {
	ctx := c.Request.Context()
	if token := context.GetToken(c); token != "" {
		ctx = apiclient.WithToken(ctx, token)
	}
	adminID, _ := context.GetAdminID(c)
	return service.WithOperator(ctx, service.Operator{ID: adminID, Name: c.GetString(context.CtxAdminName)})
}

var reservedQuery = map[string]struct{}{"page": {}, "limit": {}, "search": {}, "range": {}, "confirmed": {}}

// bindList 解析分页参数，其余 query 参数都作为筛选条件
func bindList(c *gin.Context) (listctl.PageRequest, error) {
	var q types.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return listctl.PageRequest{}, response.NewError(http.StatusBadRequest, err.Error())
	}
	filters := make(map[string]string)
	for k, v := range c.Request.URL.Query() {
		if _, ok := reservedQuery[k]; ok || len(v) == 0 || v[0] == "" {
			continue
		}
		filters[k] = v[0]
	}
	return q.PageRequest(filters), nil
}

func paramUint(c *gin.Context, name string) (uint64, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		return 0, response.NewError(http.StatusBadRequest, name+" 参数错误")
	}
	return v, nil
}

func confirmedQuery(c *gin.Context) bool {
	ok, _ := strconv.ParseBool(c.Query("confirmed"))
	return ok
}
