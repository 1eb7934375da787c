package service

import (
    "context"

    "github.com/shenlye/tricore-api/internal/model"
    "github.com/shenlye/tricore-api/internal/repository"
)

// TaxonomyService 分类与标签的只读列表
type TaxonomyService interface {
    Categories(ctx context.Context) ([]*model.Category, error)
    Tags(ctx context.Context) ([]*model.Tag, error)
}

type taxonomyService struct {
    categoryRepo repository.CategoryRepository
    tagRepo      repository.TagRepository
}

func NewTaxonomyService(categoryRepo repository.CategoryRepository, tagRepo repository.TagRepository) TaxonomyService {
    return &taxonomyService{categoryRepo: categoryRepo, tagRepo: tagRepo}
}

func (s *taxonomyService) Categories(ctx context.Context) ([]*model.Category, error) {
    return s.categoryRepo.List(ctx)
}

func (s *taxonomyService) Tags(ctx context.Context) ([]*model.Tag, error) {
    return s.tagRepo.List(ctx)
}
