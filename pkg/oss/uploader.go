package oss

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"strings"
	"time"

	"HyperAdmin/config"
	"HyperAdmin/pkg/snowflake"

	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss"
	_ "golang.org/x/image/webp"
)

const MaxImageSize int64 = 10 << 20 // 10MB

var (
	ErrImageSize = errors.New("image size invalid")
	ErrImageType = errors.New("unsupported image type")
)

var extByMime = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// Putter *oss.Client 满足该接口
type Putter interface {
	PutObject(ctx context.Context, request *oss.PutObjectRequest, optFns ...func(*oss.Options)) (*oss.PutObjectResult, error)
	DeleteObject(ctx context.Context, request *oss.DeleteObjectRequest, optFns ...func(*oss.Options)) (*oss.DeleteObjectResult, error)
}

type Object struct {
	Key         string `json:"key"`
	Url         string `json:"url"`
	ContentType string `json:"content_type"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Size        int64  `json:"size"`
}

type Uploader struct {
	client  Putter
	bucket  string
	baseURL string
	now     func() time.Time
}

func NewUploader(client Putter, conf *config.OssConfig) *Uploader {
	base := conf.CdnDomain
	if base == "" {
		base = fmt.Sprintf("https://%s.%s", conf.Bucket, conf.Endpoint)
	}
	return &Uploader{
		client:  client,
		bucket:  conf.Bucket,
		baseURL: strings.TrimRight(base, "/"),
		now:     time.Now,
	}
}

// PutImage 校验类型与尺寸后上传，key 形如 gallery/2026/10/15/<id>.jpg
func (u *Uploader) PutImage(ctx context.Context, dir string, r io.ReadSeeker, size int64) (*Object, error) {
	if size <= 0 || size > MaxImageSize {
		return nil, ErrImageSize
	}

	head := make([]byte, 512)
	n, err := r.Read(head)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	contentType := http.DetectContentType(head[:n])
	ext, ok := extByMime[contentType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrImageType, contentType)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	cfg, _, err := image.DecodeConfig(r)
	if err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrImageType, err)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s/%s/%d.%s", strings.Trim(dir, "/"), u.now().Format("2006/01/02"), snowflake.GenID(), ext)
	if _, err := u.client.PutObject(ctx, &oss.PutObjectRequest{
		Bucket:      oss.Ptr(u.bucket),
		Key:         oss.Ptr(key),
		ContentType: oss.Ptr(contentType),
		Body:        io.LimitReader(r, MaxImageSize+1),
	}); err != nil {
		return nil, err
	}

	return &Object{
		Key:         key,
		Url:         u.baseURL + "/" + key,
		ContentType: contentType,
		Width:       cfg.Width,
		Height:      cfg.Height,
		Size:        size,
	}, nil
}

// Delete 删除已上传的对象，后端登记失败时回滚用
func (u *Uploader) Delete(ctx context.Context, key string) error {
	_, err := u.client.DeleteObject(ctx, &oss.DeleteObjectRequest{
		Bucket: oss.Ptr(u.bucket),
		Key:    oss.Ptr(key),
	})
	return err
}
