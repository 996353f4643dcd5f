package service

import (
	"HyperAdmin/pkg/apiclient"
	"HyperAdmin/pkg/confirm"
	"HyperAdmin/pkg/listctl"
	"HyperAdmin/pkg/notify"
	"HyperAdmin/types"
	"context"
	"fmt"
)

type ResourceService struct {
	Client   *apiclient.Client
	Notifier notify.Sink
}

var _ IResourceService = (*ResourceService)(nil)

type IResourceService interface {
	// Controller 返回绑定该资源的列表控制器，CLI 交互浏览使用
	Controller(res types.Resource, initial listctl.PageRequest) *listctl.Controller[types.Record]
	List(ctx context.Context, res types.Resource, req listctl.PageRequest) (listctl.State[types.Record], error)
	Get(ctx context.Context, res types.Resource, id string) (types.Record, error)
	Create(ctx context.Context, res types.Resource, body types.Record, prompt confirm.Prompter) (types.Record, error)
	Update(ctx context.Context, res types.Resource, id string, body types.Record, prompt confirm.Prompter) (types.Record, error)
	Delete(ctx context.Context, res types.Resource, id string, prompt confirm.Prompter) error
}

func (s *ResourceService) Controller(res types.Resource, initial listctl.PageRequest) *listctl.Controller[types.Record] {
	return listctl.New(apiclient.FetchPage[types.Record](s.Client, res.Path), initial, fetchObserver(res.Name))
}

// List 用一次性的控制器取数，服务端页码越界时同样会回退到最后一页
func (s *ResourceService) List(ctx context.Context, res types.Resource, req listctl.PageRequest) (listctl.State[types.Record], error) {
	ctrl := s.Controller(res, req)
	err := ctrl.Refresh(ctx)
	return ctrl.State(), err
}

func (s *ResourceService) Get(ctx context.Context, res types.Resource, id string) (types.Record, error) {
	env, err := s.Client.Get(ctx, res.Path+"/"+id, nil)
	if err != nil {
		return nil, err
	}
	var rec types.Record
	if err := env.Decode(&rec); err != nil {
		return nil, fmt.Errorf("decode %s/%s: %w", res.Name, id, err)
	}
	return rec, nil
}

func (s *ResourceService) Create(ctx context.Context, res types.Resource, body types.Record, prompt confirm.Prompter) (types.Record, error) {
	var created types.Record
	err := mutate(ctx, s.Notifier, prompt, mutation{
		action:  res.Name + ".create",
		target:  res.Name,
		detail:  body,
		title:   "新建" + res.Label,
		body:    fmt.Sprintf("确定新建%s？", res.Label),
		success: res.Label + "创建成功",
	}, func(ctx context.Context) error {
		env, err := s.Client.Post(ctx, res.Path, body)
		if err != nil {
			return err
		}
		return env.Decode(&created)
	})
	return created, err
}

func (s *ResourceService) Update(ctx context.Context, res types.Resource, id string, body types.Record, prompt confirm.Prompter) (types.Record, error) {
	var updated types.Record
	err := mutate(ctx, s.Notifier, prompt, mutation{
		action:  res.Name + ".update",
		target:  res.Name + "/" + id,
		detail:  body,
		title:   "更新" + res.Label,
		body:    fmt.Sprintf("确定保存对%s #%s 的修改？", res.Label, id),
		success: res.Label + "更新成功",
	}, func(ctx context.Context) error {
		env, err := s.Client.Put(ctx, res.Path+"/"+id, body)
		if err != nil {
			return err
		}
		return env.Decode(&updated)
	})
	return updated, err
}

func (s *ResourceService) Delete(ctx context.Context, res types.Resource, id string, prompt confirm.Prompter) error {
	return mutate(ctx, s.Notifier, prompt, mutation{
		action:  res.Name + ".delete",
		target:  res.Name + "/" + id,
		title:   "删除" + res.Label,
		body:    fmt.Sprintf("删除后无法恢复，确定删除%s #%s？", res.Label, id),
		success: res.Label + "已删除",
	}, func(ctx context.Context) error {
		_, err := s.Client.Delete(ctx, res.Path+"/"+id)
		return err
	})
}
