package model

import (
    "time"

    "gorm.io/gorm"
)

// Memo 短笔记，Post 的简化版（无 slug/标签/分类）
type Memo struct {
    ID          uint   `gorm:"primaryKey"`
    Content     string `gorm:"type:text;not null"`
    IsPublished bool   `gorm:"not null;default:false;index:idx_memos_published"`

    AuthorID *uint `gorm:"index"`
    Author   *User `gorm:"constraint:OnDelete:SET NULL"`

    CreatedAt time.Time `gorm:"index:idx_memos_created"`
    UpdatedAt time.Time
    DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Memo) TableName() string { return "memos" }
