package handler

import (
	"HyperAdmin/pkg/apiclient"
	"HyperAdmin/pkg/changediff"
	"HyperAdmin/pkg/confirm"
	"HyperAdmin/pkg/oss"
	"HyperAdmin/pkg/points"
	"HyperAdmin/pkg/response"
	"HyperAdmin/service"
	"errors"
	"net/http"

	"gorm.io/gorm"
)

// bizError 把下游错误映射为 HTTP 状态码，preview 只在未确认时返回
func bizError(err error, preview any) error {
	var (
		ve  *points.ValidationError
		ie  *points.InsufficientBalanceError
		te  *changediff.TransitionError
		fe  *changediff.FormatError
		se  *apiclient.ServerError
		msg = service.UserMessage(err)
	)
	switch {
	case errors.As(err, &ve), errors.As(err, &ie), errors.As(err, &te), errors.As(err, &fe),
		errors.Is(err, oss.ErrImageSize), errors.Is(err, oss.ErrImageType), errors.Is(err, service.ErrNotImageResource):
		return response.NewError(http.StatusBadRequest, err.Error())
	case errors.Is(err, gorm.ErrRecordNotFound):
		return response.NewError(http.StatusNotFound, "记录不存在")
	case errors.Is(err, apiclient.ErrUnauthorized):
		return response.NewError(http.StatusUnauthorized, msg)
	case errors.Is(err, confirm.ErrDeclined):
		return response.NewError(http.StatusConflict, "操作需要确认").WithData(preview)
	case errors.As(err, &se):
		return response.NewError(http.StatusUnprocessableEntity, se.Message)
	case apiclient.IsNetwork(err):
		return response.NewError(http.StatusBadGateway, msg)
	default:
		return response.NewError(http.StatusInternalServerError, err.Error())
	}
}
