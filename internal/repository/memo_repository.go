package repository

import (
    "context"

    "gorm.io/gorm"

    "github.com/shenlye/tricore-api/internal/model"
)

type MemoRepository interface {
    GetByID(ctx context.Context, id uint, onlyPublished bool) (*model.Memo, error)
    Create(ctx context.Context, memo *model.Memo) error
    Updates(ctx context.Context, id uint, values map[string]any) (int64, error)
    SoftDelete(ctx context.Context, id uint) (int64, error)
    List(ctx context.Context, onlyPublished bool, offset, limit int) ([]*model.Memo, int64, error)
}

type memoRepository struct {
    db *gorm.DB
}

func NewMemoRepository(db *gorm.DB) MemoRepository { return &memoRepository{db: db} }

func (r *memoRepository) GetByID(ctx context.Context, id uint, onlyPublished bool) (*model.Memo, error) {
    q := r.db.WithContext(ctx).Where("id = ?", id)
    if onlyPublished {
        q = q.Where("is_published = ?", true)
    }
    var memo model.Memo
    if err := q.First(&memo).Error; err != nil {
        return nil, err
    }
    return &memo, nil
}

func (r *memoRepository) Create(ctx context.Context, memo *model.Memo) error {
    return r.db.WithContext(ctx).Create(memo).Error
}

func (r *memoRepository) Updates(ctx context.Context, id uint, values map[string]any) (int64, error) {
    res := r.db.WithContext(ctx).
        Model(&model.Memo{}).
        Where("id = ?", id).
        Updates(values)
    return res.RowsAffected, res.Error
}

func (r *memoRepository) SoftDelete(ctx context.Context, id uint) (int64, error) {
    res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Memo{})
    return res.RowsAffected, res.Error
}

func (r *memoRepository) List(ctx context.Context, onlyPublished bool, offset, limit int) ([]*model.Memo, int64, error) {
    base := r.db.WithContext(ctx).Model(&model.Memo{})
    if onlyPublished {
        base = base.Where("is_published = ?", true)
    }
    var total int64
    if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
        return nil, 0, err
    }
    var rows []*model.Memo
    err := base.Session(&gorm.Session{}).
        Order("created_at DESC").
        Offset(offset).Limit(limit).
        Find(&rows).Error
    return rows, total, err
}
