package handler

import (
    "errors"
    "strconv"

    "github.com/gin-gonic/gin"

    "github.com/shenlye/tricore-api/internal/api/middleware"
    "github.com/shenlye/tricore-api/internal/service"
    "github.com/shenlye/tricore-api/pkg/response"
)

type createMemoRequest struct {
    Content     string `json:"content" binding:"required"`
    IsPublished bool   `json:"isPublished"`
}

type updateMemoRequest struct {
    Content     *string `json:"content"`
    IsPublished *bool   `json:"isPublished"`
}

// ListMemos 分页列出短笔记
// @Summary 笔记列表
// @Tags 笔记
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=[]service.MemoView,meta=response.Meta}
// @Router /api/v1/memos [get]
func (h *Handler) ListMemos(c *gin.Context) {
    page, limit := pageParams(c, 10)
    onlyPublished := !middleware.IsAdmin(c)

    views, total, err := h.memoSvc.List(c.Request.Context(), page, limit, onlyPublished)
    if err != nil {
        response.InternalError(c, err)
        return
    }
    response.Paginated(c, views, total, page, limit)
}

// GetMemo 获取单条笔记
// @Summary 获取笔记
// @Tags 笔记
// @Param id path int true "笔记 ID"
// @Success 200 {object} response.Response{data=service.MemoView}
// @Failure 404 {object} response.Response
// @Router /api/v1/memos/{id} [get]
func (h *Handler) GetMemo(c *gin.Context) {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        response.BadRequest(c, "invalid memo id")
        return
    }
    view, err := h.memoSvc.Get(c.Request.Context(), uint(id), !middleware.IsAdmin(c))
    if err != nil {
        if errors.Is(err, service.ErrMemoNotFound) {
            response.NotFound(c, "Memo not found")
            return
        }
        response.InternalError(c, err)
        return
    }
    response.Success(c, view)
}

// CreateMemo 创建笔记（管理员）
// @Summary 创建笔记
// @Tags 笔记
// @Security Bearer
// @Param request body createMemoRequest true "笔记内容"
// @Success 201 {object} response.Response{data=service.MemoView}
// @Router /api/v1/memos [post]
func (h *Handler) CreateMemo(c *gin.Context) {
    var req createMemoRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.BadRequest(c, err.Error())
        return
    }
    claims := middleware.CurrentClaims(c)
    view, err := h.memoSvc.Create(c.Request.Context(), req.Content, req.IsPublished, claims.UserID)
    if err != nil {
        response.InternalError(c, err)
        return
    }
    response.Created(c, view)
}

// UpdateMemo 部分更新笔记（管理员）
// @Summary 更新笔记
// @Tags 笔记
// @Security Bearer
// @Param id path int true "笔记 ID"
// @Param request body updateMemoRequest true "变更字段"
// @Success 200 {object} response.Response{data=service.MemoView}
// @Failure 404 {object} response.Response
// @Router /api/v1/memos/{id} [patch]
func (h *Handler) UpdateMemo(c *gin.Context) {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        response.BadRequest(c, "invalid memo id")
        return
    }
    var req updateMemoRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.BadRequest(c, err.Error())
        return
    }
    view, err := h.memoSvc.Update(c.Request.Context(), uint(id), service.UpdateMemoInput{
        Content:     req.Content,
        IsPublished: req.IsPublished,
    })
    if err != nil {
        if errors.Is(err, service.ErrMemoNotFound) {
            response.NotFound(c, "Memo not found")
            return
        }
        response.InternalError(c, err)
        return
    }
    response.Success(c, view)
}

// DeleteMemo 软删除笔记（管理员）
// @Summary 删除笔记
// @Tags 笔记
// @Security Bearer
// @Param id path int true "笔记 ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/memos/{id} [delete]
func (h *Handler) DeleteMemo(c *gin.Context) {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        response.BadRequest(c, "invalid memo id")
        return
    }
    if err := h.memoSvc.Delete(c.Request.Context(), uint(id)); err != nil {
        if errors.Is(err, service.ErrMemoNotFound) {
            response.NotFound(c, "Memo not found")
            return
        }
        response.InternalError(c, err)
        return
    }
    response.Success(c, gin.H{"id": id})
}
