package handler

import (
    "errors"
    "strconv"
    "time"

    "github.com/gin-gonic/gin"

    "github.com/shenlye/tricore-api/internal/service"
    "github.com/shenlye/tricore-api/pkg/response"
)

type createFriendLinkRequest struct {
    Title    string     `json:"title" binding:"required,max=200"`
    Link     string     `json:"link" binding:"required,url"`
    Avatar   *string    `json:"avatar" binding:"omitempty,url"`
    Desc     *string    `json:"desc" binding:"omitempty,max=500"`
    Date     *time.Time `json:"date"`
    Feed     *string    `json:"feed" binding:"omitempty,url"`
    Comment  *string    `json:"comment" binding:"omitempty,max=500"`
    Category *string    `json:"category" binding:"omitempty,max=100"`
}

type updateFriendLinkRequest struct {
    Title    *string    `json:"title" binding:"omitempty,min=1,max=200"`
    Link     *string    `json:"link" binding:"omitempty,url"`
    Avatar   *string    `json:"avatar" binding:"omitempty,url"`
    Desc     *string    `json:"desc" binding:"omitempty,max=500"`
    Date     *time.Time `json:"date"`
    Feed     *string    `json:"feed" binding:"omitempty,url"`
    Comment  *string    `json:"comment" binding:"omitempty,max=500"`
    Category *string    `json:"category" binding:"omitempty,max=100"`
}

// ListFriendLinks 友链列表
// @Summary 友链列表
// @Tags 友链
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Param orderBy query string false "排序方式 asc/desc" default(desc)
// @Success 200 {object} response.Response{data=[]model.FriendLink,meta=response.Meta}
// @Router /api/v1/links [get]
func (h *Handler) ListFriendLinks(c *gin.Context) {
    page, limit := pageParams(c, 20)
    ascending := c.DefaultQuery("orderBy", "desc") == "asc"

    links, total, err := h.friendSvc.List(c.Request.Context(), page, limit, ascending)
    if err != nil {
        response.InternalError(c, err)
        return
    }
    response.Paginated(c, links, total, page, limit)
}

// GetFriendLink 获取单条友链
// @Summary 获取友链
// @Tags 友链
// @Param id path int true "友链 ID"
// @Success 200 {object} response.Response{data=model.FriendLink}
// @Failure 404 {object} response.Response
// @Router /api/v1/links/{id} [get]
func (h *Handler) GetFriendLink(c *gin.Context) {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        response.BadRequest(c, "invalid link id")
        return
    }
    link, err := h.friendSvc.Get(c.Request.Context(), uint(id))
    if err != nil {
        if errors.Is(err, service.ErrFriendLinkNotFound) {
            response.NotFound(c, "Link not found")
            return
        }
        response.InternalError(c, err)
        return
    }
    response.Success(c, link)
}

// CreateFriendLink 创建友链（管理员）
// @Summary 创建友链
// @Tags 友链
// @Security Bearer
// @Param request body createFriendLinkRequest true "友链内容"
// @Success 201 {object} response.Response{data=model.FriendLink}
// @Failure 400 {object} response.Response
// @Router /api/v1/links [post]
func (h *Handler) CreateFriendLink(c *gin.Context) {
    var req createFriendLinkRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.BadRequest(c, err.Error())
        return
    }
    link, err := h.friendSvc.Create(c.Request.Context(), service.CreateFriendLinkInput{
        Title:    req.Title,
        Link:     req.Link,
        Avatar:   req.Avatar,
        Desc:     req.Desc,
        Date:     req.Date,
        Feed:     req.Feed,
        Comment:  req.Comment,
        Category: req.Category,
    })
    if err != nil {
        response.InternalError(c, err)
        return
    }
    response.Created(c, link)
}

// UpdateFriendLink 部分更新友链（管理员）
// @Summary 更新友链
// @Tags 友链
// @Security Bearer
// @Param id path int true "友链 ID"
// @Param request body updateFriendLinkRequest true "变更字段"
// @Success 200 {object} response.Response{data=model.FriendLink}
// @Failure 404 {object} response.Response
// @Router /api/v1/links/{id} [patch]
func (h *Handler) UpdateFriendLink(c *gin.Context) {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        response.BadRequest(c, "invalid link id")
        return
    }
    var req updateFriendLinkRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.BadRequest(c, err.Error())
        return
    }
    link, err := h.friendSvc.Update(c.Request.Context(), uint(id), service.UpdateFriendLinkInput{
        Title:    req.Title,
        Link:     req.Link,
        Avatar:   req.Avatar,
        Desc:     req.Desc,
        Date:     req.Date,
        Feed:     req.Feed,
        Comment:  req.Comment,
        Category: req.Category,
    })
    if err != nil {
        if errors.Is(err, service.ErrFriendLinkNotFound) {
            response.NotFound(c, "Link not found")
            return
        }
        response.InternalError(c, err)
        return
    }
    response.Success(c, link)
}

// DeleteFriendLink 删除友链（管理员）
// @Summary 删除友链
// @Tags 友链
// @Security Bearer
// @Param id path int true "友链 ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/links/{id} [delete]
func (h *Handler) DeleteFriendLink(c *gin.Context) {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        response.BadRequest(c, "invalid link id")
        return
    }
    if err := h.friendSvc.Delete(c.Request.Context(), uint(id)); err != nil {
        if errors.Is(err, service.ErrFriendLinkNotFound) {
            response.NotFound(c, "Link not found")
            return
        }
        response.InternalError(c, err)
        return
    }
    response.Success(c, gin.H{"id": id})
}
