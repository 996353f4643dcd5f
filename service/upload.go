package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"HyperAdmin/pkg/apiclient"
	"HyperAdmin/pkg/confirm"
	"HyperAdmin/pkg/log"
	"HyperAdmin/pkg/notify"
	"HyperAdmin/pkg/oss"
	"HyperAdmin/types"

	"go.uber.org/zap"
)

var ErrNotImageResource = errors.New("resource does not accept images")

type UploadService struct {
	Uploader *oss.Uploader
	Client   *apiclient.Client
	Notifier notify.Sink
}

var _ IUploadService = (*UploadService)(nil)

type IUploadService interface {
	// UploadImage 图片先传 OSS，再在后端登记为图库/登录页图片
	UploadImage(ctx context.Context, res types.Resource, title string, r io.ReadSeeker, size int64, prompt confirm.Prompter) (*types.UploadImageResp, error)
}

func (u *UploadService) UploadImage(ctx context.Context, res types.Resource, title string, r io.ReadSeeker, size int64, prompt confirm.Prompter) (*types.UploadImageResp, error) {
	if res.Name != "gallery" && res.Name != "login-images" {
		return nil, fmt.Errorf("%w: %s", ErrNotImageResource, res.Name)
	}

	var resp *types.UploadImageResp
	err := mutate(ctx, u.Notifier, prompt, mutation{
		action:  res.Name + ".upload",
		target:  res.Name,
		detail:  map[string]any{"title": title, "size": size},
		title:   "上传" + res.Label,
		body:    fmt.Sprintf("确定上传《%s》到%s？", title, res.Label),
		success: res.Label + "上传成功",
	}, func(ctx context.Context) error {
		obj, err := u.Uploader.PutImage(ctx, res.Name, r, size)
		if err != nil {
			return err
		}
		var rec types.Record
		env, err := u.Client.Post(ctx, res.Path, types.Record{
			"title":  title,
			"url":    obj.Url,
			"width":  obj.Width,
			"height": obj.Height,
		})
		if err == nil {
			err = env.Decode(&rec)
		}
		if err != nil {
			// 登记失败，OSS 上的对象没有任何引用
			if derr := u.Uploader.Delete(context.WithoutCancel(ctx), obj.Key); derr != nil {
				log.L.Warn("delete orphan object", zap.String("key", obj.Key), zap.Error(derr))
			}
			return err
		}
		resp = &types.UploadImageResp{Record: rec, Url: obj.Url, Width: obj.Width, Height: obj.Height}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
