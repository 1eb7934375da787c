package model

// Tag 文章标签，与文章多对多
type Tag struct {
    ID    uint   `gorm:"primaryKey" json:"id"`
    Name  string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
    Posts []Post `gorm:"many2many:posts_to_tags" json:"-"`
}

func (Tag) TableName() string { return "tags" }
