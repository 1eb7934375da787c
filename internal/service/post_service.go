package service

import (
    "context"
    "regexp"
    "strconv"
    "strings"
    "time"

    "github.com/google/uuid"

    "github.com/shenlye/tricore-api/internal/model"
    "github.com/shenlye/tricore-api/internal/repository"
)

var digitsRe = regexp.MustCompile(`^\d+$`)

// PostView 文章对外表示，description 缺省时由正文派生
type PostView struct {
    ID             uint       `json:"id"`
    Title          *string    `json:"title"`
    Slug           *string    `json:"slug"`
    Content        string     `json:"content,omitempty"`
    Description    string     `json:"description"`
    Categories     []string   `json:"categories"`
    Tags           []string   `json:"tags"`
    Cover          *string    `json:"cover"`
    IsPublished    bool       `json:"isPublished"`
    PublishedAt    *time.Time `json:"publishedAt"`
    GrowthStage    string     `json:"growthStage"`
    IsPinned       bool       `json:"isPinned"`
    BacklinksCount int64      `json:"backlinksCount"`
    CreatedAt      time.Time  `json:"createdAt"`
    UpdatedAt      time.Time  `json:"updatedAt"`
}

// PostSummary 搜索结果条目
type PostSummary struct {
    ID    uint    `json:"id"`
    Title *string `json:"title"`
    Slug  *string `json:"slug"`
}

// CreatePostInput 创建文章入参，category/tags 为名称，服务内解析
type CreatePostInput struct {
    Title       *string
    Content     string
    Slug        *string
    Description *string
    Cover       *string
    IsPublished bool
    GrowthStage *string
    IsPinned    *bool
    Category    *string
    Tags        []string
    AuthorID    uint
}

// UpdatePostInput 部分更新：nil 指针表示未提供，空串/空切片表示清空
type UpdatePostInput struct {
    Title       *string
    Content     *string
    Slug        *string
    Description *string
    Cover       *string
    IsPublished *bool
    GrowthStage *string
    IsPinned    *bool
    Category    *string
    Tags        []string
}

type PostService interface {
    GetByIdentifier(ctx context.Context, identifier string, onlyPublished bool) (*PostView, error)
    List(ctx context.Context, page, limit int, categorySlug, tagName string, onlyPublished bool) ([]*PostView, int64, error)
    Search(ctx context.Context, q string, limit int, onlyPublished bool) ([]*PostSummary, error)
    Create(ctx context.Context, input CreatePostInput) (*PostView, error)
    Update(ctx context.Context, id uint, input UpdatePostInput) (*PostView, error)
    Delete(ctx context.Context, id uint) error
}

type postService struct {
    postRepo     repository.PostRepository
    categoryRepo repository.CategoryRepository
    tagRepo      repository.TagRepository
}

func NewPostService(
    postRepo repository.PostRepository,
    categoryRepo repository.CategoryRepository,
    tagRepo repository.TagRepository,
) PostService {
    return &postService{postRepo: postRepo, categoryRepo: categoryRepo, tagRepo: tagRepo}
}

// getPost 纯数字标识按 ID 查，否则按 slug 查
func (s *postService) getPost(ctx context.Context, identifier string, onlyPublished bool) (*model.Post, error) {
    var (
        post *model.Post
        err  error
    )
    if digitsRe.MatchString(identifier) {
        id, pErr := strconv.ParseUint(identifier, 10, 64)
        if pErr != nil {
            return nil, ErrPostNotFound
        }
        post, err = s.postRepo.GetByID(ctx, uint(id), onlyPublished)
    } else {
        post, err = s.postRepo.GetBySlug(ctx, identifier, onlyPublished)
    }
    if err != nil {
        if isNotFoundErr(err) {
            return nil, ErrPostNotFound
        }
        return nil, err
    }
    return post, nil
}

func (s *postService) GetByIdentifier(ctx context.Context, identifier string, onlyPublished bool) (*PostView, error) {
    post, err := s.getPost(ctx, identifier, onlyPublished)
    if err != nil {
        return nil, err
    }
    return formatPost(post, true), nil
}

func (s *postService) List(ctx context.Context, page, limit int, categorySlug, tagName string, onlyPublished bool) ([]*PostView, int64, error) {
    if page < 1 {
        page = 1
    }
    if limit < 1 {
        limit = 10
    }
    if limit > 100 {
        limit = 100
    }

    filter := repository.PostListFilter{
        OnlyPublished: onlyPublished,
        Offset:        (page - 1) * limit,
        Limit:         limit,
    }

    // 名称解析失败返回空页而不是报错
    if categorySlug != "" {
        category, err := s.categoryRepo.GetBySlug(ctx, categorySlug)
        if err != nil {
            if isNotFoundErr(err) {
                return []*PostView{}, 0, nil
            }
            return nil, 0, err
        }
        filter.CategoryID = &category.ID
    }
    if tagName != "" {
        tag, err := s.tagRepo.GetByName(ctx, tagName)
        if err != nil {
            if isNotFoundErr(err) {
                return []*PostView{}, 0, nil
            }
            return nil, 0, err
        }
        filter.TagID = &tag.ID
    }

    rows, total, err := s.postRepo.List(ctx, filter)
    if err != nil {
        return nil, 0, err
    }
    views := make([]*PostView, len(rows))
    for i, p := range rows {
        views[i] = formatPost(p, false)
    }
    return views, total, nil
}

func (s *postService) Search(ctx context.Context, q string, limit int, onlyPublished bool) ([]*PostSummary, error) {
    if limit < 1 {
        limit = 10
    }
    if limit > 50 {
        limit = 50
    }
    rows, err := s.postRepo.Search(ctx, q, limit, onlyPublished)
    if err != nil {
        return nil, err
    }
    out := make([]*PostSummary, len(rows))
    for i, p := range rows {
        out[i] = &PostSummary{ID: p.ID, Title: p.Title, Slug: p.Slug}
    }
    return out, nil
}

func (s *postService) Create(ctx context.Context, input CreatePostInput) (*PostView, error) {
    slug := ""
    if input.Slug != nil && *input.Slug != "" {
        slug = *input.Slug
    } else {
        slug = GenerateSlug(input.Title)
    }

    // 预检不保证唯一，插入阶段的约束冲突仍需兜底
    exists, err := s.postRepo.ExistsBySlug(ctx, slug)
    if err != nil {
        return nil, err
    }
    if exists {
        return nil, ErrSlugTaken
    }

    post := &model.Post{
        Title:       input.Title,
        Content:     input.Content,
        Slug:        &slug,
        Description: input.Description,
        Cover:       input.Cover,
        IsPublished: input.IsPublished,
        AuthorID:    &input.AuthorID,
        GrowthStage: model.GrowthStageSeed,
    }
    if input.GrowthStage != nil {
        post.GrowthStage = *input.GrowthStage
    }
    if input.IsPinned != nil {
        post.IsPinned = *input.IsPinned
    }
    if input.IsPublished {
        now := time.Now()
        post.PublishedAt = &now
    }

    if input.Category != nil && *input.Category != "" {
        category, err := s.categoryRepo.GetOrCreate(ctx, *input.Category, Slugify(*input.Category))
        if err != nil {
            return nil, err
        }
        post.CategoryID = &category.ID
    }

    if err := s.postRepo.Create(ctx, post); err != nil {
        if isDuplicateErr(err) {
            return nil, ErrSlugTaken
        }
        return nil, err
    }

    if input.Tags != nil {
        if err := s.syncTags(ctx, post, input.Tags); err != nil {
            return nil, err
        }
    }

    created, err := s.postRepo.GetByID(ctx, post.ID, false)
    if err != nil {
        return nil, err
    }
    return formatPost(created, true), nil
}

func (s *postService) Update(ctx context.Context, id uint, input UpdatePostInput) (*PostView, error) {
    values := map[string]any{}
    if input.Title != nil {
        values["title"] = *input.Title
    }
    if input.Content != nil {
        values["content"] = *input.Content
    }
    if input.Slug != nil {
        values["slug"] = *input.Slug
    }
    if input.Description != nil {
        values["description"] = *input.Description
    }
    if input.Cover != nil {
        values["cover"] = *input.Cover
    }
    if input.IsPublished != nil {
        values["is_published"] = *input.IsPublished
        if *input.IsPublished {
            values["published_at"] = time.Now()
        }
    }
    if input.GrowthStage != nil {
        values["growth_stage"] = *input.GrowthStage
    }
    if input.IsPinned != nil {
        values["is_pinned"] = *input.IsPinned
    }
    if input.Category != nil {
        if *input.Category == "" {
            values["category_id"] = nil
        } else {
            category, err := s.categoryRepo.GetOrCreate(ctx, *input.Category, Slugify(*input.Category))
            if err != nil {
                return nil, err
            }
            values["category_id"] = category.ID
        }
    }

    if err := s.postRepo.Updates(ctx, id, values); err != nil {
        if isDuplicateErr(err) {
            return nil, ErrSlugTaken
        }
        return nil, err
    }

    if input.Tags != nil {
        if err := s.syncTags(ctx, &model.Post{ID: id}, input.Tags); err != nil {
            return nil, err
        }
    }

    updated, err := s.postRepo.GetByID(ctx, id, false)
    if err != nil {
        if isNotFoundErr(err) {
            return nil, ErrPostNotFound
        }
        return nil, err
    }
    return formatPost(updated, true), nil
}

func (s *postService) Delete(ctx context.Context, id uint) error {
    suffix := uuid.New().String()[:8]
    rows, err := s.postRepo.SoftDelete(ctx, id, suffix)
    if err != nil {
        return err
    }
    if rows == 0 {
        return ErrPostNotFound
    }
    return nil
}

// syncTags 整体替换文章标签集合
func (s *postService) syncTags(ctx context.Context, post *model.Post, names []string) error {
    tags := make([]model.Tag, 0, len(names))
    seen := make(map[string]struct{}, len(names))
    for _, name := range names {
        name = strings.TrimSpace(name)
        if name == "" {
            continue
        }
        if _, ok := seen[name]; ok {
            continue
        }
        seen[name] = struct{}{}
        tag, err := s.tagRepo.GetOrCreate(ctx, name)
        if err != nil {
            return err
        }
        tags = append(tags, *tag)
    }
    return s.postRepo.ReplaceTags(ctx, post, tags)
}

func formatPost(post *model.Post, includeContent bool) *PostView {
    description := ""
    if post.Description != nil {
        description = *post.Description
    } else if post.Content != "" {
        description = DeriveExcerpt(post.Content)
    }

    categories := []string{}
    if post.Category != nil {
        categories = append(categories, post.Category.Name)
    }
    tags := make([]string, len(post.Tags))
    for i, t := range post.Tags {
        tags[i] = t.Name
    }

    view := &PostView{
        ID:             post.ID,
        Title:          post.Title,
        Slug:           post.Slug,
        Description:    description,
        Categories:     categories,
        Tags:           tags,
        Cover:          post.Cover,
        IsPublished:    post.IsPublished,
        PublishedAt:    post.PublishedAt,
        GrowthStage:    post.GrowthStage,
        IsPinned:       post.IsPinned,
        BacklinksCount: post.BacklinksCount,
        CreatedAt:      post.CreatedAt,
        UpdatedAt:      post.UpdatedAt,
    }
    if includeContent {
        view.Content = post.Content
    }
    return view
}
