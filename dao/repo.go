package dao

import (
	"context"

	"gorm.io/gorm"
)

type Repo[T any] struct {
	Db *gorm.DB
}

func NewRepo[T any](db *gorm.DB) Repo[T] {
	return Repo[T]{Db: db}
}

func (r *Repo[T]) Create(ctx context.Context, v *T) error {
	return r.Db.WithContext(ctx).Create(v).Error
}

func (r *Repo[T]) FindByWhere(ctx context.Context, where string, args ...any) (*T, error) {
	var v T
	if err := r.Db.WithContext(ctx).Where(where, args...).First(&v).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

// Paginate 先 count 再取当前页，两次查询各自构建
func (r *Repo[T]) Paginate(ctx context.Context, page, size int, order string, scopes ...func(*gorm.DB) *gorm.DB) ([]T, int64, error) {
	build := func() *gorm.DB {
		return r.Db.WithContext(ctx).Model(new(T)).Scopes(scopes...)
	}

	var total int64
	if err := build().Count(&total).Error; err != nil {
		return nil, 0, err
	}
	items := make([]T, 0, size)
	if total == 0 {
		return items, 0, nil
	}
	q := build().Limit(size).Offset((page - 1) * size)
	if order != "" {
		q = q.Order(order)
	}
	if err := q.Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
