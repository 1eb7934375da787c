package handler

import (
    "strconv"

    "github.com/gin-gonic/gin"

    "github.com/shenlye/tricore-api/internal/service"
)

// Handler 聚合全部业务服务
type Handler struct {
    postSvc     service.PostService
    linkSvc     service.PostLinkService
    memoSvc     service.MemoService
    friendSvc   service.FriendLinkService
    authSvc     service.AuthService
    taxonomySvc service.TaxonomyService
    bangumiSvc  service.BangumiService
}

func New(
    postSvc service.PostService,
    linkSvc service.PostLinkService,
    memoSvc service.MemoService,
    friendSvc service.FriendLinkService,
    authSvc service.AuthService,
    taxonomySvc service.TaxonomyService,
    bangumiSvc service.BangumiService,
) *Handler {
    return &Handler{
        postSvc:     postSvc,
        linkSvc:     linkSvc,
        memoSvc:     memoSvc,
        friendSvc:   friendSvc,
        authSvc:     authSvc,
        taxonomySvc: taxonomySvc,
        bangumiSvc:  bangumiSvc,
    }
}

// pageParams 解析并收敛分页参数，返回值与服务层应用的一致，直接进响应 meta
func pageParams(c *gin.Context, defaultLimit int) (page, limit int) {
    page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
    limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
    if page < 1 {
        page = 1
    }
    if limit < 1 {
        limit = defaultLimit
    }
    if limit > 100 {
        limit = 100
    }
    return page, limit
}
