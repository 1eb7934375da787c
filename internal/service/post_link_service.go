package service

import (
    "context"

    "github.com/shenlye/tricore-api/internal/model"
    "github.com/shenlye/tricore-api/internal/repository"
)

// LinkedPost 图查询里的对端文章
type LinkedPost struct {
    ID      uint    `json:"id"`
    Title   *string `json:"title"`
    Slug    *string `json:"slug"`
    Context *string `json:"context"`
}

// PostLinkGraph 出链与入链两个视图
type PostLinkGraph struct {
    Outgoing []LinkedPost `json:"outgoing"`
    Incoming []LinkedPost `json:"incoming"`
}

type PostLinkService interface {
    AddLink(ctx context.Context, sourceID, targetID uint, linkContext *string) (*model.PostLink, error)
    RemoveLink(ctx context.Context, sourceID, targetID uint) error
    GetLinks(ctx context.Context, postID uint) (*PostLinkGraph, error)
}

type postLinkService struct {
    postRepo repository.PostRepository
    linkRepo repository.PostLinkRepository
}

func NewPostLinkService(postRepo repository.PostRepository, linkRepo repository.PostLinkRepository) PostLinkService {
    return &postLinkService{postRepo: postRepo, linkRepo: linkRepo}
}

func (s *postLinkService) AddLink(ctx context.Context, sourceID, targetID uint, linkContext *string) (*model.PostLink, error) {
    if _, err := s.postRepo.GetByID(ctx, sourceID, false); err != nil {
        if isNotFoundErr(err) {
            return nil, ErrPostNotFound
        }
        return nil, err
    }
    if _, err := s.postRepo.GetByID(ctx, targetID, false); err != nil {
        if isNotFoundErr(err) {
            return nil, ErrTargetPostNotFound
        }
        return nil, err
    }
    if sourceID == targetID {
        return nil, ErrSelfLink
    }

    link := &model.PostLink{
        SourcePostID: sourceID,
        TargetPostID: targetID,
        Context:      linkContext,
    }
    if err := s.linkRepo.Create(ctx, link); err != nil {
        if isDuplicateErr(err) {
            return nil, ErrLinkExists
        }
        return nil, err
    }
    return link, nil
}

func (s *postLinkService) RemoveLink(ctx context.Context, sourceID, targetID uint) error {
    deleted, err := s.linkRepo.Delete(ctx, sourceID, targetID)
    if err != nil {
        return err
    }
    if !deleted {
        return ErrLinkNotFound
    }
    return nil
}

func (s *postLinkService) GetLinks(ctx context.Context, postID uint) (*PostLinkGraph, error) {
    if _, err := s.postRepo.GetByID(ctx, postID, false); err != nil {
        if isNotFoundErr(err) {
            return nil, ErrPostNotFound
        }
        return nil, err
    }

    outgoing, err := s.linkRepo.ListBySource(ctx, postID)
    if err != nil {
        return nil, err
    }
    incoming, err := s.linkRepo.ListByTarget(ctx, postID)
    if err != nil {
        return nil, err
    }

    graph := &PostLinkGraph{Outgoing: []LinkedPost{}, Incoming: []LinkedPost{}}
    for _, l := range outgoing {
        if l.TargetPost == nil {
            // 对端已软删除
            continue
        }
        graph.Outgoing = append(graph.Outgoing, LinkedPost{
            ID:      l.TargetPost.ID,
            Title:   l.TargetPost.Title,
            Slug:    l.TargetPost.Slug,
            Context: l.Context,
        })
    }
    for _, l := range incoming {
        if l.SourcePost == nil {
            continue
        }
        graph.Incoming = append(graph.Incoming, LinkedPost{
            ID:      l.SourcePost.ID,
            Title:   l.SourcePost.Title,
            Slug:    l.SourcePost.Slug,
            Context: l.Context,
        })
    }
    return graph, nil
}
