package model

// PostLink 数字花园有向边（source → target）
// 复合主键，避免重复边
type PostLink struct {
    SourcePostID uint    `gorm:"primaryKey;autoIncrement:false" json:"sourcePostId"`
    TargetPostID uint    `gorm:"primaryKey;autoIncrement:false" json:"targetPostId"`
    Context      *string `gorm:"type:text" json:"context"`

    SourcePost *Post `gorm:"foreignKey:SourcePostID;constraint:OnDelete:CASCADE" json:"-"`
    TargetPost *Post `gorm:"foreignKey:TargetPostID;constraint:OnDelete:CASCADE" json:"-"`
}

func (PostLink) TableName() string { return "post_links" }
