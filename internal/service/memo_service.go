package service

import (
    "context"
    "time"

    "github.com/shenlye/tricore-api/internal/model"
    "github.com/shenlye/tricore-api/internal/repository"
)

// MemoView 短笔记对外表示
type MemoView struct {
    ID          uint      `json:"id"`
    Content     string    `json:"content"`
    IsPublished bool      `json:"isPublished"`
    CreatedAt   time.Time `json:"createdAt"`
    UpdatedAt   time.Time `json:"updatedAt"`
}

// UpdateMemoInput 部分更新，nil 表示未提供
type UpdateMemoInput struct {
    Content     *string
    IsPublished *bool
}

type MemoService interface {
    Get(ctx context.Context, id uint, onlyPublished bool) (*MemoView, error)
    List(ctx context.Context, page, limit int, onlyPublished bool) ([]*MemoView, int64, error)
    Create(ctx context.Context, content string, isPublished bool, authorID uint) (*MemoView, error)
    Update(ctx context.Context, id uint, input UpdateMemoInput) (*MemoView, error)
    Delete(ctx context.Context, id uint) error
}

type memoService struct {
    memoRepo repository.MemoRepository
}

func NewMemoService(memoRepo repository.MemoRepository) MemoService {
    return &memoService{memoRepo: memoRepo}
}

func (s *memoService) Get(ctx context.Context, id uint, onlyPublished bool) (*MemoView, error) {
    memo, err := s.memoRepo.GetByID(ctx, id, onlyPublished)
    if err != nil {
        if isNotFoundErr(err) {
            return nil, ErrMemoNotFound
        }
        return nil, err
    }
    return formatMemo(memo), nil
}

func (s *memoService) List(ctx context.Context, page, limit int, onlyPublished bool) ([]*MemoView, int64, error) {
    if page < 1 {
        page = 1
    }
    if limit < 1 {
        limit = 10
    }
    if limit > 100 {
        limit = 100
    }
    rows, total, err := s.memoRepo.List(ctx, onlyPublished, (page-1)*limit, limit)
    if err != nil {
        return nil, 0, err
    }
    views := make([]*MemoView, len(rows))
    for i, m := range rows {
        views[i] = formatMemo(m)
    }
    return views, total, nil
}

func (s *memoService) Create(ctx context.Context, content string, isPublished bool, authorID uint) (*MemoView, error) {
    memo := &model.Memo{
        Content:     content,
        IsPublished: isPublished,
        AuthorID:    &authorID,
    }
    if err := s.memoRepo.Create(ctx, memo); err != nil {
        return nil, err
    }
    return formatMemo(memo), nil
}

func (s *memoService) Update(ctx context.Context, id uint, input UpdateMemoInput) (*MemoView, error) {
    values := map[string]any{}
    if input.Content != nil {
        values["content"] = *input.Content
    }
    if input.IsPublished != nil {
        values["is_published"] = *input.IsPublished
    }
    if len(values) > 0 {
        rows, err := s.memoRepo.Updates(ctx, id, values)
        if err != nil {
            return nil, err
        }
        if rows == 0 {
            return nil, ErrMemoNotFound
        }
    }
    memo, err := s.memoRepo.GetByID(ctx, id, false)
    if err != nil {
        if isNotFoundErr(err) {
            return nil, ErrMemoNotFound
        }
        return nil, err
    }
    return formatMemo(memo), nil
}

func (s *memoService) Delete(ctx context.Context, id uint) error {
    rows, err := s.memoRepo.SoftDelete(ctx, id)
    if err != nil {
        return err
    }
    if rows == 0 {
        return ErrMemoNotFound
    }
    return nil
}

func formatMemo(memo *model.Memo) *MemoView {
    return &MemoView{
        ID:          memo.ID,
        Content:     memo.Content,
        IsPublished: memo.IsPublished,
        CreatedAt:   memo.CreatedAt,
        UpdatedAt:   memo.UpdatedAt,
    }
}
