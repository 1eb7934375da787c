package service

import (
    "context"
    "time"

    "github.com/shenlye/tricore-api/internal/model"
    "github.com/shenlye/tricore-api/internal/repository"
)

// CreateFriendLinkInput 友链入参，URL 格式校验在绑定层完成
type CreateFriendLinkInput struct {
    Title    string
    Link     string
    Avatar   *string
    Desc     *string
    Date     *time.Time
    Feed     *string
    Comment  *string
    Category *string
}

// UpdateFriendLinkInput 部分更新，nil 表示未提供
type UpdateFriendLinkInput struct {
    Title    *string
    Link     *string
    Avatar   *string
    Desc     *string
    Date     *time.Time
    Feed     *string
    Comment  *string
    Category *string
}

type FriendLinkService interface {
    Get(ctx context.Context, id uint) (*model.FriendLink, error)
    List(ctx context.Context, page, limit int, ascending bool) ([]*model.FriendLink, int64, error)
    Create(ctx context.Context, input CreateFriendLinkInput) (*model.FriendLink, error)
    Update(ctx context.Context, id uint, input UpdateFriendLinkInput) (*model.FriendLink, error)
    Delete(ctx context.Context, id uint) error
}

type friendLinkService struct {
    linkRepo repository.FriendLinkRepository
}

func NewFriendLinkService(linkRepo repository.FriendLinkRepository) FriendLinkService {
    return &friendLinkService{linkRepo: linkRepo}
}

func (s *friendLinkService) Get(ctx context.Context, id uint) (*model.FriendLink, error) {
    link, err := s.linkRepo.GetByID(ctx, id)
    if err != nil {
        if isNotFoundErr(err) {
            return nil, ErrFriendLinkNotFound
        }
        return nil, err
    }
    return link, nil
}

func (s *friendLinkService) List(ctx context.Context, page, limit int, ascending bool) ([]*model.FriendLink, int64, error) {
    if page < 1 {
        page = 1
    }
    if limit < 1 {
        limit = 20
    }
    if limit > 100 {
        limit = 100
    }
    return s.linkRepo.List(ctx, ascending, (page-1)*limit, limit)
}

func (s *friendLinkService) Create(ctx context.Context, input CreateFriendLinkInput) (*model.FriendLink, error) {
    link := &model.FriendLink{
        Title:    input.Title,
        Link:     input.Link,
        Avatar:   input.Avatar,
        Desc:     input.Desc,
        Date:     input.Date,
        Feed:     input.Feed,
        Comment:  input.Comment,
        Category: input.Category,
    }
    if err := s.linkRepo.Create(ctx, link); err != nil {
        return nil, err
    }
    return link, nil
}

func (s *friendLinkService) Update(ctx context.Context, id uint, input UpdateFriendLinkInput) (*model.FriendLink, error) {
    values := map[string]any{}
    if input.Title != nil {
        values["title"] = *input.Title
    }
    if input.Link != nil {
        values["link"] = *input.Link
    }
    if input.Avatar != nil {
        values["avatar"] = *input.Avatar
    }
    if input.Desc != nil {
        values["desc"] = *input.Desc
    }
    if input.Date != nil {
        values["date"] = *input.Date
    }
    if input.Feed != nil {
        values["feed"] = *input.Feed
    }
    if input.Comment != nil {
        values["comment"] = *input.Comment
    }
    if input.Category != nil {
        values["category"] = *input.Category
    }
    if len(values) > 0 {
        rows, err := s.linkRepo.Updates(ctx, id, values)
        if err != nil {
            return nil, err
        }
        if rows == 0 {
            return nil, ErrFriendLinkNotFound
        }
    }
    return s.Get(ctx, id)
}

func (s *friendLinkService) Delete(ctx context.Context, id uint) error {
    rows, err := s.linkRepo.Delete(ctx, id)
    if err != nil {
        return err
    }
    if rows == 0 {
        return ErrFriendLinkNotFound
    }
    return nil
}
