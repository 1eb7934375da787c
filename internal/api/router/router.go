package router

import (
    "regexp"
    "time"

    sentrygin "github.com/getsentry/sentry-go/gin"
    "github.com/gin-contrib/gzip"
    "github.com/gin-gonic/gin"
    "github.com/gin-gonic/gin/binding"
    "github.com/go-playground/validator/v10"
    "github.com/redis/go-redis/v9"
    swaggerfiles "github.com/swaggo/files"
    ginswagger "github.com/swaggo/gin-swagger"
    "go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

    "github.com/shenlye/tricore-api/config"
    _ "github.com/shenlye/tricore-api/docs"
    "github.com/shenlye/tricore-api/internal/api/handler"
    "github.com/shenlye/tricore-api/internal/api/middleware"
)

var slugRe = regexp.MustCompile(`^[a-z0-9-]+$`)

func registerValidations() {
    if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
        _ = v.RegisterValidation("slugfmt", func(fl validator.FieldLevel) bool {
            return slugRe.MatchString(fl.Field().String())
        })
    }
}

// New 组装路由与中间件
// cache 可为 nil（未配置 Redis 时登录限流退化为本地令牌桶）
func New(cfg *config.Config, h *handler.Handler, cache *redis.Client) *gin.Engine {
    registerValidations()

    gin.SetMode(cfg.Server.Mode)
    r := gin.New()
    r.Use(gin.Recovery())
    r.Use(middleware.RequestLog())
    r.Use(middleware.CORS())
    r.Use(gzip.Gzip(gzip.DefaultCompression))
    r.Use(otelgin.Middleware("tricore-api"))
    if cfg.Sentry.DSN != "" {
        r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
    }

    r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })
    r.GET("/swagger/*any", ginswagger.WrapHandler(swaggerfiles.Handler))

    loginLimiter := middleware.NewRateLimiter(cache, 5, time.Minute)

    api := r.Group("/api/v1")
    api.Use(middleware.ClaimsFromToken(cfg.JWT.Secret))
    {
        posts := api.Group("/posts")
        {
            posts.GET("", h.ListPosts)
            posts.GET("/search", h.SearchPosts)
            posts.GET("/:id", h.GetPost)
            posts.GET("/:id/links", h.GetPostLinks)

            admin := posts.Group("", middleware.RequireAuth(), middleware.RequireAdmin())
            {
                admin.POST("", h.CreatePost)
                admin.PATCH("/:id", h.UpdatePost)
                admin.DELETE("/:id", h.DeletePost)
                admin.POST("/:id/links", h.AddPostLink)
                admin.DELETE("/:id/links/:targetId", h.RemovePostLink)
            }
        }

        memos := api.Group("/memos")
        {
            memos.GET("", h.ListMemos)
            memos.GET("/:id", h.GetMemo)

            admin := memos.Group("", middleware.RequireAuth(), middleware.RequireAdmin())
            {
                admin.POST("", h.CreateMemo)
                admin.PATCH("/:id", h.UpdateMemo)
                admin.DELETE("/:id", h.DeleteMemo)
            }
        }

        links := api.Group("/links")
        {
            links.GET("", h.ListFriendLinks)
            links.GET("/:id", h.GetFriendLink)

            admin := links.Group("", middleware.RequireAuth(), middleware.RequireAdmin())
            {
                admin.POST("", h.CreateFriendLink)
                admin.PATCH("/:id", h.UpdateFriendLink)
                admin.DELETE("/:id", h.DeleteFriendLink)
            }
        }

        api.GET("/categories", h.ListCategories)
        api.GET("/tags", h.ListTags)
        api.GET("/bangumi/collections", h.BangumiCollections)

        auth := api.Group("/auth")
        {
            auth.POST("/register", h.Register)
            auth.POST("/login", loginLimiter.Handler(), h.Login)
            auth.GET("/me", middleware.RequireAuth(), h.Me)
            auth.POST("/change-password", middleware.RequireAuth(), h.ChangePassword)
        }
    }

    return r
}
