package handler

import (
    "errors"

    "github.com/gin-gonic/gin"

    "github.com/shenlye/tricore-api/internal/api/middleware"
    "github.com/shenlye/tricore-api/internal/service"
    "github.com/shenlye/tricore-api/pkg/response"
)

type registerRequest struct {
    Username string `json:"username" binding:"required,min=3,max=100"`
    Email    string `json:"email" binding:"required,email"`
    Password string `json:"password" binding:"required,min=8"`
}

type loginRequest struct {
    Identifier string `json:"identifier" binding:"required"`
    Password   string `json:"password" binding:"required"`
}

type changePasswordRequest struct {
    OldPassword string `json:"oldPassword" binding:"required"`
    NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// Register 注册新用户（角色固定为 user）
// @Summary 注册
// @Tags 认证
// @Param request body registerRequest true "注册信息"
// @Success 201 {object} response.Response{data=service.UserView}
// @Failure 409 {object} response.Response
// @Router /api/v1/auth/register [post]
func (h *Handler) Register(c *gin.Context) {
    var req registerRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.BadRequest(c, err.Error())
        return
    }
    user, err := h.authSvc.Register(c.Request.Context(), req.Username, req.Email, req.Password)
    if err != nil {
        if errors.Is(err, service.ErrUserExists) {
            response.Conflict(c, "Username or email already taken")
            return
        }
        response.InternalError(c, err)
        return
    }
    response.Created(c, user)
}

// Login 用户名或邮箱登录，签发 JWT
// @Summary 登录
// @Tags 认证
// @Param request body loginRequest true "登录凭证"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/v1/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
    var req loginRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.BadRequest(c, err.Error())
        return
    }
    token, user, err := h.authSvc.Login(c.Request.Context(), req.Identifier, req.Password)
    if err != nil {
        if errors.Is(err, service.ErrInvalidCredentials) {
            response.Unauthorized(c, "Invalid credentials")
            return
        }
        response.InternalError(c, err)
        return
    }
    response.Success(c, gin.H{"token": token, "user": user})
}

// Me 当前登录用户信息
// @Summary 当前用户
// @Tags 认证
// @Security Bearer
// @Success 200 {object} response.Response{data=service.UserView}
// @Failure 404 {object} response.Response
// @Router /api/v1/auth/me [get]
func (h *Handler) Me(c *gin.Context) {
    claims := middleware.CurrentClaims(c)
    user, err := h.authSvc.Me(c.Request.Context(), claims.UserID)
    if err != nil {
        if errors.Is(err, service.ErrUserNotFound) {
            response.NotFound(c, "User not found")
            return
        }
        response.InternalError(c, err)
        return
    }
    response.Success(c, user)
}

// ChangePassword 修改口令，需先验证旧口令
// @Summary 修改密码
// @Tags 认证
// @Security Bearer
// @Param request body changePasswordRequest true "新旧密码"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/v1/auth/change-password [post]
func (h *Handler) ChangePassword(c *gin.Context) {
    var req changePasswordRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.BadRequest(c, err.Error())
        return
    }
    claims := middleware.CurrentClaims(c)
    err := h.authSvc.ChangePassword(c.Request.Context(), claims.UserID, req.OldPassword, req.NewPassword)
    if err != nil {
        switch {
        case errors.Is(err, service.ErrInvalidCredentials):
            response.Unauthorized(c, "Old password is incorrect")
        case errors.Is(err, service.ErrUserNotFound):
            response.NotFound(c, "User not found")
        default:
            response.InternalError(c, err)
        }
        return
    }
    response.Success(c, gin.H{"success": true})
}
