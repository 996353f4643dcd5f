package handler

import (
	"HyperAdmin/config"
	"HyperAdmin/middleware"
	"HyperAdmin/pkg/changediff"
	"HyperAdmin/pkg/confirm"
	"HyperAdmin/pkg/context"
	"HyperAdmin/pkg/response"
	"HyperAdmin/service"
	"HyperAdmin/types"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	Config        *config.Config
	ReviewService service.IReviewService
}

func (h *ReviewHandler) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))
	g := r.Group("/v1/admin/reviews", authorize)
	g.GET("", context.Wrap(h.List))
	g.GET("/:id", context.Wrap(h.Diff))
	g.PUT("/:id", context.Wrap(h.Review))
}

func (h *ReviewHandler) List(c *gin.Context) error {
	req, err := bindList(c)
	if err != nil {
		return err
	}
	st, err := h.ReviewService.List(requestCtx(c), req)
	if err != nil {
		return bizError(err, nil)
	}
	response.Success(c, types.NewListResp(st))
	return nil
}

func (h *ReviewHandler) Diff(c *gin.Context) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return err
	}
	d, err := h.ReviewService.Diff(requestCtx(c), id)
	if err != nil {
		return bizError(err, nil)
	}
	response.Success(c, d)
	return nil
}

func (h *ReviewHandler) Review(c *gin.Context) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return err
	}
	var req types.ReviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}
	review := changediff.Review{Status: req.Status, Notes: req.Notes}
	if err := h.ReviewService.Review(requestCtx(c), id, review, confirm.Static(req.Confirmed)); err != nil {
		return bizError(err, review)
	}
	response.Success(c, nil)
	return nil
}
