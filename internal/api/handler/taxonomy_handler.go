package handler

import (
    "github.com/gin-gonic/gin"

    "github.com/shenlye/tricore-api/pkg/response"
)

// ListCategories 列出全部分类
// @Summary 分类列表
// @Tags 分类
// @Success 200 {object} response.Response{data=[]model.Category}
// @Router /api/v1/categories [get]
func (h *Handler) ListCategories(c *gin.Context) {
    categories, err := h.taxonomySvc.Categories(c.Request.Context())
    if err != nil {
        response.InternalError(c, err)
        return
    }
    response.Success(c, categories)
}

// ListTags 列出全部标签
// @Summary 标签列表
// @Tags 标签
// @Success 200 {object} response.Response{data=[]model.Tag}
// @Router /api/v1/tags [get]
func (h *Handler) ListTags(c *gin.Context) {
    tags, err := h.taxonomySvc.Tags(c.Request.Context())
    if err != nil {
        response.InternalError(c, err)
        return
    }
    response.Success(c, tags)
}
