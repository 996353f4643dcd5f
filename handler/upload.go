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

type UploadHandler struct {
	Config        *config.Config
	UploadService service.IUploadService
}

func (h *UploadHandler) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))
	r.POST("/v1/admin/uploads/:resource", authorize, context.Wrap(h.UploadImage))
}

// UploadImage multipart: file, title, confirmed
func (h *UploadHandler) UploadImage(c *gin.Context) error {
	res, ok := types.LookupResource(c.Param("resource"))
	if !ok {
		return response.NewError(http.StatusNotFound, "未知资源: "+c.Param("resource"))
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return response.NewError(http.StatusBadRequest, "缺少文件")
	}
	f, err := fh.Open()
	if err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}
	defer f.Close()

	title := c.PostForm("title")
	if title == "" {
		title = fh.Filename
	}
	confirmed := c.PostForm("confirmed") == "true"
	resp, err := h.UploadService.UploadImage(requestCtx(c), res, title, f, fh.Size, confirm.Static(confirmed))
	if err != nil {
		return bizError(err, gin.H{"resource": res.Name, "title": title, "size": fh.Size})
	}
	response.Success(c, resp)
	return nil
}
