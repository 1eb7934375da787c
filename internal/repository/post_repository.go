package repository

import (
    "context"

    "gorm.io/gorm"

    "github.com/shenlye/tricore-api/internal/model"
)

// PostListFilter 列表查询条件，分类/标签已在服务层解析为 ID
type PostListFilter struct {
    CategoryID    *uint
    TagID         *uint
    OnlyPublished bool
    Offset        int
    Limit         int
}

type PostRepository interface {
    GetByID(ctx context.Context, id uint, onlyPublished bool) (*model.Post, error)
    GetBySlug(ctx context.Context, slug string, onlyPublished bool) (*model.Post, error)
    ExistsBySlug(ctx context.Context, slug string) (bool, error)
    Create(ctx context.Context, post *model.Post) error
    Updates(ctx context.Context, id uint, values map[string]any) error
    ReplaceTags(ctx context.Context, post *model.Post, tags []model.Tag) error
    SoftDelete(ctx context.Context, id uint, slugSuffix string) (int64, error)
    List(ctx context.Context, f PostListFilter) ([]*model.Post, int64, error)
    Search(ctx context.Context, q string, limit int, onlyPublished bool) ([]*model.Post, error)
}

type postRepository struct {
    db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository { return &postRepository{db: db} }

func (r *postRepository) GetByID(ctx context.Context, id uint, onlyPublished bool) (*model.Post, error) {
    return r.getOne(ctx, "posts.id = ?", id, onlyPublished)
}

func (r *postRepository) GetBySlug(ctx context.Context, slug string, onlyPublished bool) (*model.Post, error) {
    return r.getOne(ctx, "posts.slug = ?", slug, onlyPublished)
}

func (r *postRepository) getOne(ctx context.Context, cond string, arg any, onlyPublished bool) (*model.Post, error) {
    q := r.db.WithContext(ctx).Where(cond, arg)
    if onlyPublished {
        q = q.Where("posts.is_published = ?", true)
    }
    var post model.Post
    err := q.Preload("Category").Preload("Tags").First(&post).Error
    if err != nil {
        return nil, err
    }
    return &post, nil
}

func (r *postRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
    var cnt int64
    err := r.db.WithContext(ctx).
        Model(&model.Post{}).
        Where("slug = ?", slug).
        Count(&cnt).Error
    return cnt > 0, err
}

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
    return r.db.WithContext(ctx).Omit("Tags").Create(post).Error
}

func (r *postRepository) Updates(ctx context.Context, id uint, values map[string]any) error {
    if len(values) == 0 {
        return nil
    }
    return r.db.WithContext(ctx).
        Model(&model.Post{}).
        Where("id = ?", id).
        Updates(values).Error
}

// ReplaceTags 整体替换文章的标签关联
func (r *postRepository) ReplaceTags(ctx context.Context, post *model.Post, tags []model.Tag) error {
    return r.db.WithContext(ctx).Model(post).Association("Tags").Replace(&tags)
}

// SoftDelete 打删除标记并在同一写入里改写 slug，腾出原 slug 供复用
func (r *postRepository) SoftDelete(ctx context.Context, id uint, slugSuffix string) (int64, error) {
    res := r.db.WithContext(ctx).
        Model(&model.Post{}).
        Where("id = ?", id).
        Updates(map[string]any{
            "deleted_at": gorm.Expr("CURRENT_TIMESTAMP"),
            "slug":       gorm.Expr("slug || ?", "_del_"+slugSuffix),
        })
    return res.RowsAffected, res.Error
}

func (r *postRepository) List(ctx context.Context, f PostListFilter) ([]*model.Post, int64, error) {
    base := r.db.WithContext(ctx).Model(&model.Post{})
    if f.OnlyPublished {
        base = base.Where("posts.is_published = ?", true)
    }
    if f.CategoryID != nil {
        base = base.Where("posts.category_id = ?", *f.CategoryID)
    }
    if f.TagID != nil {
        base = base.Joins(
            "JOIN posts_to_tags pt ON pt.post_id = posts.id AND pt.tag_id = ?", *f.TagID)
    }

    var total int64
    if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
        return nil, 0, err
    }

    // 列表不带正文，单篇获取时才返回
    var rows []*model.Post
    err := base.Session(&gorm.Session{}).
        Omit("content").
        Preload("Category").Preload("Tags").
        Order("posts.created_at DESC").
        Offset(f.Offset).Limit(f.Limit).
        Find(&rows).Error
    return rows, total, err
}

func (r *postRepository) Search(ctx context.Context, q string, limit int, onlyPublished bool) ([]*model.Post, error) {
    query := r.db.WithContext(ctx).
        Model(&model.Post{}).
        Select("id", "title", "slug").
        Where("title LIKE ?", "%"+q+"%")
    if onlyPublished {
        query = query.Where("is_published = ?", true)
    }
    var rows []*model.Post
    err := query.Order("created_at DESC").Limit(limit).Find(&rows).Error
    return rows, err
}
