package service

import (
    "context"
    "time"

    "golang.org/x/crypto/bcrypt"

    "github.com/shenlye/tricore-api/internal/model"
    "github.com/shenlye/tricore-api/internal/repository"
    "github.com/shenlye/tricore-api/pkg/jwt"
)

// UserView 用户对外表示，不含口令散列
type UserView struct {
    ID       uint   `json:"id"`
    Username string `json:"username"`
    Email    string `json:"email"`
    Role     string `json:"role"`
}

type AuthService interface {
    Register(ctx context.Context, username, email, password string) (*UserView, error)
    Login(ctx context.Context, identifier, password string) (string, *UserView, error)
    Me(ctx context.Context, userID uint) (*UserView, error)
    ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error
    EnsureAdmin(ctx context.Context, username, email, password string) error
}

type authService struct {
    userRepo  repository.UserRepository
    jwtSecret string
    jwtExpire time.Duration
}

func NewAuthService(userRepo repository.UserRepository, secret string, expire time.Duration) AuthService {
    return &authService{userRepo: userRepo, jwtSecret: secret, jwtExpire: expire}
}

func (s *authService) Register(ctx context.Context, username, email, password string) (*UserView, error) {
    hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
    if err != nil {
        return nil, err
    }
    user := &model.User{
        Role:         model.RoleUser,
        Username:     username,
        Email:        email,
        PasswordHash: string(hash),
    }
    if err := s.userRepo.Create(ctx, user); err != nil {
        if isDuplicateErr(err) {
            return nil, ErrUserExists
        }
        return nil, err
    }
    return formatUser(user), nil
}

func (s *authService) Login(ctx context.Context, identifier, password string) (string, *UserView, error) {
    user, err := s.userRepo.GetByIdentifier(ctx, identifier)
    if err != nil {
        if isNotFoundErr(err) {
            return "", nil, ErrInvalidCredentials
        }
        return "", nil, err
    }
    if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
        return "", nil, ErrInvalidCredentials
    }
    token, err := jwt.Sign(s.jwtSecret, user.ID, user.Username, user.Role, s.jwtExpire)
    if err != nil {
        return "", nil, err
    }
    return token, formatUser(user), nil
}

func (s *authService) Me(ctx context.Context, userID uint) (*UserView, error) {
    user, err := s.userRepo.GetByID(ctx, userID)
    if err != nil {
        if isNotFoundErr(err) {
            return nil, ErrUserNotFound
        }
        return nil, err
    }
    return formatUser(user), nil
}

func (s *authService) ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error {
    user, err := s.userRepo.GetByID(ctx, userID)
    if err != nil {
        if isNotFoundErr(err) {
            return ErrUserNotFound
        }
        return err
    }
    if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)) != nil {
        return ErrInvalidCredentials
    }
    hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
    if err != nil {
        return err
    }
    return s.userRepo.UpdatePassword(ctx, userID, string(hash))
}

// EnsureAdmin 首次启动引导管理员账号，已存在管理员时不做任何事
func (s *authService) EnsureAdmin(ctx context.Context, username, email, password string) error {
    if password == "" {
        return nil
    }
    has, err := s.userRepo.HasAdmin(ctx)
    if err != nil {
        return err
    }
    if has {
        return nil
    }
    hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
    if err != nil {
        return err
    }
    user := &model.User{
        Role:         model.RoleAdmin,
        Username:     username,
        Email:        email,
        PasswordHash: string(hash),
    }
    if err := s.userRepo.Create(ctx, user); err != nil && !isDuplicateErr(err) {
        return err
    }
    return nil
}

func formatUser(user *model.User) *UserView {
    return &UserView{
        ID:       user.ID,
        Username: user.Username,
        Email:    user.Email,
        Role:     user.Role,
    }
}
