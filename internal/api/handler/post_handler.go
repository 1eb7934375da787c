package handler

import (
    "errors"
    "strconv"

    "github.com/gin-gonic/gin"

    "github.com/shenlye/tricore-api/internal/api/middleware"
    "github.com/shenlye/tricore-api/internal/service"
    "github.com/shenlye/tricore-api/pkg/response"
)

type createPostRequest struct {
    Title       *string  `json:"title"`
    Slug        *string  `json:"slug" binding:"omitempty,slugfmt"`
    Content     string   `json:"content" binding:"required"`
    Description *string  `json:"description"`
    Cover       *string  `json:"cover" binding:"omitempty,url"`
    IsPublished bool     `json:"isPublished"`
    GrowthStage *string  `json:"growthStage" binding:"omitempty,oneof=seed budding growing evergreen"`
    IsPinned    *bool    `json:"isPinned"`
    Category    *string  `json:"category"`
    Tags        []string `json:"tags"`
}

type updatePostRequest struct {
    Title       *string  `json:"title"`
    Slug        *string  `json:"slug" binding:"omitempty,slugfmt"`
    Content     *string  `json:"content"`
    Description *string  `json:"description"`
    Cover       *string  `json:"cover" binding:"omitempty,url"`
    IsPublished *bool    `json:"isPublished"`
    GrowthStage *string  `json:"growthStage" binding:"omitempty,oneof=seed budding growing evergreen"`
    IsPinned    *bool    `json:"isPinned"`
    Category    *string  `json:"category"`
    Tags        []string `json:"tags"`
}

// GetPost 按 ID 或 slug 获取单篇文章
// @Summary 获取文章
// @Tags 文章
// @Param id path string true "文章 ID 或 slug"
// @Success 200 {object} response.Response{data=service.PostView}
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/{id} [get]
func (h *Handler) GetPost(c *gin.Context) {
    onlyPublished := !middleware.IsAdmin(c)
    view, err := h.postSvc.GetByIdentifier(c.Request.Context(), c.Param("id"), onlyPublished)
    if err != nil {
        if errors.Is(err, service.ErrPostNotFound) {
            response.NotFound(c, "Post not found")
            return
        }
        response.InternalError(c, err)
        return
    }
    response.Success(c, view)
}

// ListPosts 分页列出文章，可按分类 slug 与标签名过滤
// @Summary 文章列表
// @Tags 文章
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(10)
// @Param category query string false "分类 slug"
// @Param tag query string false "标签名"
// @Success 200 {object} response.Response{data=[]service.PostView,meta=response.Meta}
// @Router /api/v1/posts [get]
func (h *Handler) ListPosts(c *gin.Context) {
    page, limit := pageParams(c, 10)
    onlyPublished := !middleware.IsAdmin(c)

    views, total, err := h.postSvc.List(c.Request.Context(), page, limit,
        c.Query("category"), c.Query("tag"), onlyPublished)
    if err != nil {
        response.InternalError(c, err)
        return
    }
    response.Paginated(c, views, total, page, limit)
}

// SearchPosts 按标题子串搜索（用于链接自动补全）
// @Summary 搜索文章
// @Tags 文章
// @Param q query string true "搜索词"
// @Param limit query int false "数量上限" default(10)
// @Success 200 {object} response.Response{data=[]service.PostSummary}
// @Failure 400 {object} response.Response
// @Router /api/v1/posts/search [get]
func (h *Handler) SearchPosts(c *gin.Context) {
    q := c.Query("q")
    if q == "" {
        response.BadRequest(c, "q is required")
        return
    }
    limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
    onlyPublished := !middleware.IsAdmin(c)

    results, err := h.postSvc.Search(c.Request.Context(), q, limit, onlyPublished)
    if err != nil {
        response.InternalError(c, err)
        return
    }
    response.Success(c, results)
}

// CreatePost 创建文章（管理员）
// @Summary 创建文章
// @Tags 文章
// @Security Bearer
// @Param request body createPostRequest true "文章内容"
// @Success 201 {object} response.Response{data=service.PostView}
// @Failure 409 {object} response.Response
// @Router /api/v1/posts [post]
func (h *Handler) CreatePost(c *gin.Context) {
    var req createPostRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.BadRequest(c, err.Error())
        return
    }
    claims := middleware.CurrentClaims(c)

    view, err := h.postSvc.Create(c.Request.Context(), service.CreatePostInput{
        Title:       req.Title,
        Content:     req.Content,
        Slug:        req.Slug,
        Description: req.Description,
        Cover:       req.Cover,
        IsPublished: req.IsPublished,
        GrowthStage: req.GrowthStage,
        IsPinned:    req.IsPinned,
        Category:    req.Category,
        Tags:        req.Tags,
        AuthorID:    claims.UserID,
    })
    if err != nil {
        if errors.Is(err, service.ErrSlugTaken) {
            response.Conflict(c, "Slug already exists, please choose a different one")
            return
        }
        response.InternalError(c, err)
        return
    }
    response.Created(c, view)
}

// UpdatePost 部分更新文章（管理员）
// @Summary 更新文章
// @Tags 文章
// @Security Bearer
// @Param id path int true "文章 ID"
// @Param request body updatePostRequest true "变更字段"
// @Success 200 {object} response.Response{data=service.PostView}
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/v1/posts/{id} [patch]
func (h *Handler) UpdatePost(c *gin.Context) {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        response.BadRequest(c, "invalid post id")
        return
    }
    var req updatePostRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.BadRequest(c, err.Error())
        return
    }

    view, err := h.postSvc.Update(c.Request.Context(), uint(id), service.UpdatePostInput{
        Title:       req.Title,
        Slug:        req.Slug,
        Content:     req.Content,
        Description: req.Description,
        Cover:       req.Cover,
        IsPublished: req.IsPublished,
        GrowthStage: req.GrowthStage,
        IsPinned:    req.IsPinned,
        Category:    req.Category,
        Tags:        req.Tags,
    })
    if err != nil {
        switch {
        case errors.Is(err, service.ErrPostNotFound):
            response.NotFound(c, "Post not found")
        case errors.Is(err, service.ErrSlugTaken):
            response.Conflict(c, "Slug already exists, please choose a different one")
        default:
            response.InternalError(c, err)
        }
        return
    }
    response.Success(c, view)
}

// DeletePost 软删除文章并腾出 slug（管理员）
// @Summary 删除文章
// @Tags 文章
// @Security Bearer
// @Param id path int true "文章 ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/{id} [delete]
func (h *Handler) DeletePost(c *gin.Context) {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        response.BadRequest(c, "invalid post id")
        return
    }
    if err := h.postSvc.Delete(c.Request.Context(), uint(id)); err != nil {
        if errors.Is(err, service.ErrPostNotFound) {
            response.NotFound(c, "Post not found")
            return
        }
        response.InternalError(c, err)
        return
    }
    response.Success(c, gin.H{"id": id})
}
