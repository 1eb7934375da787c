package model

// Category 文章分类，按名称 get-or-create
type Category struct {
    ID   uint   `gorm:"primaryKey" json:"id"`
    Name string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
    Slug string `gorm:"type:varchar(100);uniqueIndex;not null" json:"slug"`
}

func (Category) TableName() string { return "categories" }
