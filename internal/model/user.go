package model

import "time"

// 用户角色
const (
    RoleUser  = "user"
    RoleAdmin = "admin"
)

// User 账号，文章与笔记的作者
type User struct {
    ID           uint   `gorm:"primaryKey"`
    Role         string `gorm:"type:varchar(16);not null;default:user"`
    Username     string `gorm:"type:varchar(100);uniqueIndex;not null"`
    Email        string `gorm:"type:varchar(255);uniqueIndex;not null"`
    PasswordHash string `gorm:"type:varchar(255);not null"`

    Posts []Post `gorm:"foreignKey:AuthorID"`
    Memos []Memo `gorm:"foreignKey:AuthorID"`

    CreatedAt time.Time
    UpdatedAt time.Time
}

func (User) TableName() string { return "users" }
