package repository

import (
    "context"

    "gorm.io/gorm"
    "gorm.io/gorm/clause"

    "github.com/shenlye/tricore-api/internal/model"
)

type CategoryRepository interface {
    GetOrCreate(ctx context.Context, name, slug string) (*model.Category, error)
    GetBySlug(ctx context.Context, slug string) (*model.Category, error)
    List(ctx context.Context) ([]*model.Category, error)
}

type categoryRepository struct {
    db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository { return &categoryRepository{db: db} }

// GetOrCreate 以名称解析分类，不存在则创建
// 插入用 ON CONFLICT DO NOTHING，并发下由唯一索引兜底，随后统一回查
func (r *categoryRepository) GetOrCreate(ctx context.Context, name, slug string) (*model.Category, error) {
    c := &model.Category{Name: name, Slug: slug}
    if err := r.db.WithContext(ctx).
        Clauses(clause.OnConflict{DoNothing: true}).
        Create(c).Error; err != nil {
        return nil, err
    }
    var out model.Category
    if err := r.db.WithContext(ctx).Where("name = ?", name).First(&out).Error; err != nil {
        return nil, err
    }
    return &out, nil
}

func (r *categoryRepository) GetBySlug(ctx context.Context, slug string) (*model.Category, error) {
    var c model.Category
    if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&c).Error; err != nil {
        return nil, err
    }
    return &c, nil
}

func (r *categoryRepository) List(ctx context.Context) ([]*model.Category, error) {
    var res []*model.Category
    err := r.db.WithContext(ctx).Order("name").Find(&res).Error
    return res, err
}
