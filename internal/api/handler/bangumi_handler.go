package handler

import (
    "encoding/json"
    "errors"
    "strconv"

    "github.com/gin-gonic/gin"

    "github.com/shenlye/tricore-api/internal/service"
    "github.com/shenlye/tricore-api/pkg/response"
)

// BangumiCollections 代理 Bangumi 收藏列表（带缓存）
// @Summary Bangumi 收藏
// @Tags Bangumi
// @Param subject_type query string false "anime/game" default(anime)
// @Param type query string false "wish/doing/done" default(done)
// @Param limit query int false "每页数量" default(10)
// @Param offset query int false "偏移量" default(0)
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/bangumi/collections [get]
func (h *Handler) BangumiCollections(c *gin.Context) {
    subjectType := c.DefaultQuery("subject_type", "anime")
    collectionType := c.DefaultQuery("type", "done")
    limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
    offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

    data, err := h.bangumiSvc.Collections(c.Request.Context(), subjectType, collectionType, limit, offset)
    if err != nil {
        if errors.Is(err, service.ErrBangumiUpstream) {
            response.BadRequest(c, err.Error())
            return
        }
        response.InternalError(c, err)
        return
    }
    response.Success(c, json.RawMessage(data))
}
