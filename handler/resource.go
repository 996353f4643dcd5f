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

type ResourceHandler struct {
	Config          *config.Config
	ResourceService service.IResourceService
}

func (h *ResourceHandler) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))
	g := r.Group("/v1/admin/resources/:resource", authorize)
	g.GET("", context.Wrap(h.List))
	g.POST("", context.Wrap(h.Create))
	g.GET("/:id", context.Wrap(h.Get))
	g.PUT("/:id", context.Wrap(h.Update))
	g.DELETE("/:id", context.Wrap(h.Delete)) // ?confirmed=true
}

func (h *ResourceHandler) resource(c *gin.Context) (types.Resource, error) {
	res, ok := types.LookupResource(c.Param("resource"))
	if !ok {
		return res, response.NewError(http.StatusNotFound, "未知资源: "+c.Param("resource"))
	}
	return res, nil
}

func (h *ResourceHandler) List(c *gin.Context) error {
	res, err := h.resource(c)
	if err != nil {
		return err
	}
	req, err := bindList(c)
	if err != nil {
		return err
	}
	st, err := h.ResourceService.List(requestCtx(c), res, req)
	if err != nil {
		return bizError(err, nil)
	}
	response.Success(c, types.NewListResp(st))
	return nil
}

func (h *ResourceHandler) Get(c *gin.Context) error {
	res, err := h.resource(c)
	if err != nil {
		return err
	}
	rec, err := h.ResourceService.Get(requestCtx(c), res, c.Param("id"))
	if err != nil {
		return bizError(err, nil)
	}
	response.Success(c, rec)
	return nil
}

func (h *ResourceHandler) Create(c *gin.Context) error {
	res, err := h.resource(c)
	if err != nil {
		return err
	}
	var body types.Record
	if err := c.ShouldBindJSON(&body); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}
	rec, err := h.ResourceService.Create(requestCtx(c), res, body, confirm.Static(confirmedQuery(c)))
	if err != nil {
		return bizError(err, body)
	}
	response.Success(c, rec)
	return nil
}

func (h *ResourceHandler) Update(c *gin.Context) error {
	res, err := h.resource(c)
	if err != nil {
		return err
	}
	var body types.Record
	if err := c.ShouldBindJSON(&body); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}
	rec, err := h.ResourceService.Update(requestCtx(c), res, c.Param("id"), body, confirm.Static(confirmedQuery(c)))
	if err != nil {
		return bizError(err, body)
	}
	response.Success(c, rec)
	return nil
}

func (h *ResourceHandler) Delete(c *gin.Context) error {
	res, err := h.resource(c)
	if err != nil {
		return err
	}
	id := c.Param("id")
	if err := h.ResourceService.Delete(requestCtx(c), res, id, confirm.Static(confirmedQuery(c))); err != nil {
		return bizError(err, gin.H{"resource": res.Name, "id": id})
	}
	response.Success(c, nil)
	return nil
}
