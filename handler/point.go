package handler

import (
	"HyperAdmin/config"
	"HyperAdmin/middleware"
	"HyperAdmin/pkg/confirm"
	"HyperAdmin/pkg/context"
	"HyperAdmin/pkg/response"
	"HyperAdmin/service"
	"HyperAdmin/types"
	"net/http"

	"github.com/gin-gonic/gin"
)

type PointHandler struct {
	Config       *config.Config
	PointService service.IPointService
}

func (p *PointHandler) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(p.Config.Jwt.Secret))
	g := r.Group("/v1/admin/points", authorize)
	g.GET("/:user_id", context.Wrap(p.Account))
	g.GET("/:user_id/history", context.Wrap(p.History))
	g.POST("/:user_id/preview", context.Wrap(p.Preview))
	g.POST("/:user_id/adjust", context.Wrap(p.Adjust))
}

func (p *PointHandler) Account(c *gin.Context) error {
	userID, err := paramUint(c, "user_id")
	if err != nil {
		return err
	}
	acc, err := p.PointService.Account(requestCtx(c), userID)
	if err != nil {
		return bizError(err, nil)
	}
	response.Success(c, acc)
	return nil
}

func (p *PointHandler) History(c *gin.Context) error {
	userID, err := paramUint(c, "user_id")
	if err != nil {
		return err
	}
	req, err := bindList(c)
	if err != nil {
		return err
	}
	st, err := p.PointService.History(requestCtx(c), userID, req)
	if err != nil {
		return bizError(err, nil)
	}
	response.Success(c, types.NewListResp(st))
	return nil
}

func (p *PointHandler) Preview(c *gin.Context) error {
	userID, req, err := p.bind(c)
	if err != nil {
		return err
	}
	adj, err := p.PointService.Preview(requestCtx(c), userID, req.Adjustment())
	if err != nil {
		return bizError(err, nil)
	}
	response.Success(c, adj)
	return nil
}

// Adjust confirmed=false 时返回 409 和预览，前端弹窗确认后带 confirmed=true 重新提交
func (p *PointHandler) Adjust(c *gin.Context) error {
	userID, req, err := p.bind(c)
	if err != nil {
		return err
	}
	resp, err := p.PointService.Adjust(requestCtx(c), userID, req.Adjustment(), confirm.Static(req.Confirmed))
	if err != nil {
		var preview any
		if resp != nil {
			preview = resp.Preview
		}
		return bizError(err, preview)
	}
	response.Success(c, resp)
	return nil
}

func (p *PointHandler) bind(c *gin.Context) (uint64, *types.AdjustPointsReq, error) {
	userID, err := paramUint(c, "user_id")
	if err != nil {
		return 0, nil, err
	}
	var req types.AdjustPointsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return 0, nil, response.NewError(http.StatusBadRequest, err.Error())
	}
	return userID, &req, nil
}
