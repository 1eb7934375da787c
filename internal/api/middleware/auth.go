package middleware

import (
    "strings"

    "github.com/gin-gonic/gin"

    "github.com/shenlye/tricore-api/internal/model"
    "github.com/shenlye/tricore-api/pkg/jwt"
    "github.com/shenlye/tricore-api/pkg/response"
)

const claimsKey = "auth.claims"

// ClaimsFromToken 每个请求只做一次 bearer 解析，结果挂到请求上下文
// 解析失败静默降级为匿名，读接口绝不因此返回 401
func ClaimsFromToken(secret string) gin.HandlerFunc {
    return func(c *gin.Context) {
        header := c.GetHeader("Authorization")
        if strings.HasPrefix(header, "Bearer ") {
            if claims, err := jwt.Parse(secret, strings.TrimPrefix(header, "Bearer ")); err == nil {
                c.Set(claimsKey, claims)
            }
        }
        c.Next()
    }
}

// CurrentClaims 取出请求上的登录态，匿名返回 nil
func CurrentClaims(c *gin.Context) *jwt.Claims {
    if v, ok := c.Get(claimsKey); ok {
        if claims, ok := v.(*jwt.Claims); ok {
            return claims
        }
    }
    return nil
}

// IsAdmin 决定 onlyPublished 可见性
func IsAdmin(c *gin.Context) bool {
    claims := CurrentClaims(c)
    return claims != nil && claims.Role == model.RoleAdmin
}

// RequireAuth 受保护接口：无有效登录态直接 401
func RequireAuth() gin.HandlerFunc {
    return func(c *gin.Context) {
        if CurrentClaims(c) == nil {
            response.Unauthorized(c, "Unauthorized")
            return
        }
        c.Next()
    }
}

// RequireAdmin 管理接口：要求 admin 角色
func RequireAdmin() gin.HandlerFunc {
    return func(c *gin.Context) {
        if !IsAdmin(c) {
            response.Unauthorized(c, "Unauthorized")
            return
        }
        c.Next()
    }
}
