package handler

import (
	"HyperAdmin/config"
	"HyperAdmin/middleware"
	"HyperAdmin/pkg/context"
	"HyperAdmin/pkg/response"
	"HyperAdmin/service"
	"HyperAdmin/types"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	Config           *config.Config
	DashboardService service.IDashboardService
	AuditService     service.IAuditService
}

func (h *DashboardHandler) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))
	g := r.Group("/v1/admin", authorize)
	g.GET("/dashboard", context.Wrap(h.Overview)) // ?range=7d
	g.GET("/audits", context.Wrap(h.Audits))
	g.GET("/audits/:id", context.Wrap(h.AuditDetail))
}

// Overview 面板错误放在各自的 error 字段里，整体始终 200
func (h *DashboardHandler) Overview(c *gin.Context) error {
	response.Success(c, h.DashboardService.Overview(requestCtx(c), c.Query("range")))
	return nil
}

func (h *DashboardHandler) Audits(c *gin.Context) error {
	req, err := bindList(c)
	if err != nil {
		return err
	}
	st, err := h.AuditService.List(c.Request.Context(), req)
	if err != nil {
		return bizError(err, nil)
	}
	response.Success(c, types.NewListResp(st))
	return nil
}

func (h *DashboardHandler) AuditDetail(c *gin.Context) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return err
	}
	record, err := h.AuditService.Get(c.Request.Context(), id)
	if err != nil {
		return bizError(err, nil)
	}
	response.Success(c, record)
	return nil
}
