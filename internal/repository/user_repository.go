package repository

import (
    "context"

    "gorm.io/gorm"

    "github.com/shenlye/tricore-api/internal/model"
)

type UserRepository interface {
    GetByID(ctx context.Context, id uint) (*model.User, error)
    GetByIdentifier(ctx context.Context, identifier string) (*model.User, error)
    Create(ctx context.Context, user *model.User) error
    UpdatePassword(ctx context.Context, id uint, passwordHash string) error
    HasAdmin(ctx context.Context) (bool, error)
}

type userRepository struct {
    db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository { return &userRepository{db: db} }

func (r *userRepository) GetByID(ctx context.Context, id uint) (*model.User, error) {
    var u model.User
    if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
        return nil, err
    }
    return &u, nil
}

// GetByIdentifier 按用户名或邮箱查找
func (r *userRepository) GetByIdentifier(ctx context.Context, identifier string) (*model.User, error) {
    var u model.User
    err := r.db.WithContext(ctx).
        Where("username = ? OR email = ?", identifier, identifier).
        First(&u).Error
    if err != nil {
        return nil, err
    }
    return &u, nil
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
    return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
    return r.db.WithContext(ctx).
        Model(&model.User{}).
        Where("id = ?", id).
        Update("password_hash", passwordHash).Error
}

func (r *userRepository) HasAdmin(ctx context.Context) (bool, error) {
    var cnt int64
    err := r.db.WithContext(ctx).
        Model(&model.User{}).
        Where("role = ?", model.RoleAdmin).
        Count(&cnt).Error
    return cnt > 0, err
}
