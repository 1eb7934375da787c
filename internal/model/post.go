package model

import (
    "time"

    "gorm.io/gorm"
)

// 数字花园生长阶段
const (
    GrowthStageSeed      = "seed"
    GrowthStageBudding   = "budding"
    GrowthStageGrowing   = "growing"
    GrowthStageEvergreen = "evergreen"
)

// Post 文章主体
// slug 在未删除行中唯一；软删除时 slug 被改写腾出原值
type Post struct {
    ID          uint    `gorm:"primaryKey"`
    Title       *string `gorm:"type:varchar(255)"`
    Description *string `gorm:"type:text"`
    Slug        *string `gorm:"type:varchar(255);uniqueIndex"`
    Content     string  `gorm:"type:text;not null"`
    Cover       *string `gorm:"type:varchar(512)"`

    IsPublished bool `gorm:"not null;default:false;index:idx_posts_published"`
    PublishedAt *time.Time

    CategoryID *uint     `gorm:"index:idx_posts_category"`
    Category   *Category `gorm:"constraint:OnDelete:SET NULL"`

    AuthorID *uint `gorm:"index"`
    Author   *User `gorm:"constraint:OnDelete:SET NULL"`

    // 数字花园字段
    GrowthStage    string `gorm:"type:varchar(16);default:seed"`
    IsPinned       bool   `gorm:"default:false"`
    BacklinksCount int64  `gorm:"not null;default:0"`

    Tags []Tag `gorm:"many2many:posts_to_tags;constraint:OnDelete:CASCADE"`

    CreatedAt time.Time `gorm:"index:idx_posts_created"`
    UpdatedAt time.Time
    DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Post) TableName() string { return "posts" }
