package context

import (
	"HyperAdmin/pkg/response"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	CtxAdminID   = "admin_id"
	CtxAdminName = "admin_name"
	CtxToken     = "access_token"
)

type HandlerFunc func(*gin.Context) error

func Wrap(h func(*gin.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h(c); err != nil {

			// 如果已经写过响应，直接返回
			if c.Writer.Written() {
				return
			}
			// 业务错误
			var be *response.BizError
			if errors.As(err, &be) {
				status := be.Code
				if status < 400 || status > 599 {
					status = http.StatusOK
				}
				c.JSON(status, response.Response{
					Code: be.Code,
					Msg:  be.Msg,
					Data: be.Data,
				})
				return
			}
			c.JSON(http.StatusInternalServerError, response.Response{
				Code: 500,
				Msg:  err.Error(),
			})
		}
	}
}

func GetAdminID(c *gin.Context) (uint64, error) {
	v, ok := c.Get(CtxAdminID)
	if !ok {
		return 0, errors.New("admin_id 不存在")
	}

	uid, ok := v.(uint64)
	if !ok {
		return 0, errors.New("admin_id 类型错误")
	}

	return uid, nil
}

// GetToken 取出中间件透传的 access token，用于转发到后端 API
func GetToken(c *gin.Context) string {
	return c.GetString(CtxToken)
}
