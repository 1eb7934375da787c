package repository

import (
    "context"

    "gorm.io/gorm"

    "github.com/shenlye/tricore-api/internal/model"
)

type PostLinkRepository interface {
    Create(ctx context.Context, link *model.PostLink) error
    Delete(ctx context.Context, sourceID, targetID uint) (bool, error)
    ListBySource(ctx context.Context, postID uint) ([]*model.PostLink, error)
    ListByTarget(ctx context.Context, postID uint) ([]*model.PostLink, error)
}

type postLinkRepository struct {
    db *gorm.DB
}

func NewPostLinkRepository(db *gorm.DB) PostLinkRepository { return &postLinkRepository{db: db} }

// Create 同一事务内插入边并累加目标文章的反链计数
func (r *postLinkRepository) Create(ctx context.Context, link *model.PostLink) error {
    return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
        if err := tx.Create(link).Error; err != nil {
            return err
        }
        return tx.Model(&model.Post{}).
            Where("id = ?", link.TargetPostID).
            UpdateColumn("backlinks_count", gorm.Expr("backlinks_count + 1")).Error
    })
}

// Delete 删除边并递减计数，返回是否存在匹配的边
func (r *postLinkRepository) Delete(ctx context.Context, sourceID, targetID uint) (bool, error) {
    deleted := false
    err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
        res := tx.Where("source_post_id = ? AND target_post_id = ?", sourceID, targetID).
            Delete(&model.PostLink{})
        if res.Error != nil {
            return res.Error
        }
        if res.RowsAffected == 0 {
            return nil
        }
        deleted = true
        return tx.Model(&model.Post{}).
            Where("id = ?", targetID).
            UpdateColumn("backlinks_count", gorm.Expr("backlinks_count - 1")).Error
    })
    return deleted, err
}

func (r *postLinkRepository) ListBySource(ctx context.Context, postID uint) ([]*model.PostLink, error) {
    var res []*model.PostLink
    err := r.db.WithContext(ctx).
        Where("source_post_id = ?", postID).
        Preload("TargetPost").
        Find(&res).Error
    return res, err
}

func (r *postLinkRepository) ListByTarget(ctx context.Context, postID uint) ([]*model.PostLink, error) {
    var res []*model.PostLink
    err := r.db.WithContext(ctx).
        Where("target_post_id = ?", postID).
        Preload("SourcePost").
        Find(&res).Error
    return res, err
}
