package handler

import (
    "errors"
    "strconv"

    "github.com/gin-gonic/gin"

    "github.com/shenlye/tricore-api/internal/service"
    "github.com/shenlye/tricore-api/pkg/response"
)

type addPostLinkRequest struct {
    TargetPostID uint    `json:"targetPostId" binding:"required"`
    Context      *string `json:"context"`
}

// AddPostLink 添加数字花园有向边（管理员）
// @Summary 添加文章链接
// @Tags 数字花园
// @Security Bearer
// @Param id path int true "源文章 ID"
// @Param request body addPostLinkRequest true "目标文章与上下文"
// @Success 201 {object} response.Response{data=model.PostLink}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/v1/posts/{id}/links [post]
func (h *Handler) AddPostLink(c *gin.Context) {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        response.BadRequest(c, "invalid post id")
        return
    }
    var req addPostLinkRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.BadRequest(c, err.Error())
        return
    }

    link, err := h.linkSvc.AddLink(c.Request.Context(), uint(id), req.TargetPostID, req.Context)
    if err != nil {
        switch {
        case errors.Is(err, service.ErrPostNotFound):
            response.NotFound(c, "Source post not found")
        case errors.Is(err, service.ErrTargetPostNotFound):
            response.BadRequest(c, "Target post not found")
        case errors.Is(err, service.ErrSelfLink):
            response.BadRequest(c, "Cannot link a post to itself")
        case errors.Is(err, service.ErrLinkExists):
            response.Conflict(c, "Link already exists")
        default:
            response.InternalError(c, err)
        }
        return
    }
    response.Created(c, link)
}

// RemovePostLink 删除有向边（管理员）
// @Summary 删除文章链接
// @Tags 数字花园
// @Security Bearer
// @Param id path int true "源文章 ID"
// @Param targetId path int true "目标文章 ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/{id}/links/{targetId} [delete]
func (h *Handler) RemovePostLink(c *gin.Context) {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        response.BadRequest(c, "invalid post id")
        return
    }
    targetID, err := strconv.ParseUint(c.Param("targetId"), 10, 64)
    if err != nil {
        response.BadRequest(c, "invalid target post id")
        return
    }

    if err := h.linkSvc.RemoveLink(c.Request.Context(), uint(id), uint(targetID)); err != nil {
        if errors.Is(err, service.ErrLinkNotFound) {
            response.NotFound(c, "Link not found")
            return
        }
        response.InternalError(c, err)
        return
    }
    response.Success(c, gin.H{"success": true})
}

// GetPostLinks 查询出链与入链
// @Summary 查询文章链接关系
// @Tags 数字花园
// @Param id path int true "文章 ID"
// @Success 200 {object} response.Response{data=service.PostLinkGraph}
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/{id}/links [get]
func (h *Handler) GetPostLinks(c *gin.Context) {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        response.BadRequest(c, "invalid post id")
        return
    }
    graph, err := h.linkSvc.GetLinks(c.Request.Context(), uint(id))
    if err != nil {
        if errors.Is(err, service.ErrPostNotFound) {
            response.NotFound(c, "Post not found")
            return
        }
        response.InternalError(c, err)
        return
    }
    response.Success(c, graph)
}
