package repository

import (
    "context"

    "gorm.io/gorm"

    "github.com/shenlye/tricore-api/internal/model"
)

type FriendLinkRepository interface {
    GetByID(ctx context.Context, id uint) (*model.FriendLink, error)
    Create(ctx context.Context, link *model.FriendLink) error
    Updates(ctx context.Context, id uint, values map[string]any) (int64, error)
    Delete(ctx context.Context, id uint) (int64, error)
    List(ctx context.Context, ascending bool, offset, limit int) ([]*model.FriendLink, int64, error)
}

type friendLinkRepository struct {
    db *gorm.DB
}

func NewFriendLinkRepository(db *gorm.DB) FriendLinkRepository {
    return &friendLinkRepository{db: db}
}

func (r *friendLinkRepository) GetByID(ctx context.Context, id uint) (*model.FriendLink, error) {
    var link model.FriendLink
    if err := r.db.WithContext(ctx).First(&link, id).Error; err != nil {
        return nil, err
    }
    return &link, nil
}

func (r *friendLinkRepository) Create(ctx context.Context, link *model.FriendLink) error {
    return r.db.WithContext(ctx).Create(link).Error
}

func (r *friendLinkRepository) Updates(ctx context.Context, id uint, values map[string]any) (int64, error) {
    res := r.db.WithContext(ctx).
        Model(&model.FriendLink{}).
        Where("id = ?", id).
        Updates(values)
    return res.RowsAffected, res.Error
}

func (r *friendLinkRepository) Delete(ctx context.Context, id uint) (int64, error) {
    res := r.db.WithContext(ctx).Delete(&model.FriendLink{}, id)
    return res.RowsAffected, res.Error
}

func (r *friendLinkRepository) List(ctx context.Context, ascending bool, offset, limit int) ([]*model.FriendLink, int64, error) {
    var total int64
    if err := r.db.WithContext(ctx).Model(&model.FriendLink{}).Count(&total).Error; err != nil {
        return nil, 0, err
    }
    order := "created_at DESC"
    if ascending {
        order = "created_at ASC"
    }
    var rows []*model.FriendLink
    err := r.db.WithContext(ctx).
        Order(order).
        Offset(offset).Limit(limit).
        Find(&rows).Error
    return rows, total, err
}
