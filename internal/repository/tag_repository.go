package repository

import (
    "context"

    "gorm.io/gorm"
    "gorm.io/gorm/clause"

    "github.com/shenlye/tricore-api/internal/model"
)

type TagRepository interface {
    GetOrCreate(ctx context.Context, name string) (*model.Tag, error)
    GetByName(ctx context.Context, name string) (*model.Tag, error)
    List(ctx context.Context) ([]*model.Tag, error)
}

type tagRepository struct {
    db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository { return &tagRepository{db: db} }

func (r *tagRepository) GetOrCreate(ctx context.Context, name string) (*model.Tag, error) {
    t := &model.Tag{Name: name}
    if err := r.db.WithContext(ctx).
        Clauses(clause.OnConflict{DoNothing: true}).
        Create(t).Error; err != nil {
        return nil, err
    }
    var out model.Tag
    if err := r.db.WithContext(ctx).Where("name = ?", name).First(&out).Error; err != nil {
        return nil, err
    }
    return &out, nil
}

func (r *tagRepository) GetByName(ctx context.Context, name string) (*model.Tag, error) {
    var t model.Tag
    if err := r.db.WithContext(ctx).Where("name = ?", name).First(&t).Error; err != nil {
        return nil, err
    }
    return &t, nil
}

func (r *tagRepository) List(ctx context.Context) ([]*model.Tag, error) {
    var res []*model.Tag
    err := r.db.WithContext(ctx).Order("name").Find(&res).Error
    return res, err
}
