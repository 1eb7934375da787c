package model

import "time"

// FriendLink 友链目录条目，category 为自由文本不是外键
type FriendLink struct {
    ID       uint       `gorm:"primaryKey" json:"id"`
    Title    string     `gorm:"type:varchar(200);not null" json:"title"`
    Link     string     `gorm:"type:varchar(512);not null" json:"link"`
    Avatar   *string    `gorm:"type:varchar(512)" json:"avatar"`
    Desc     *string    `gorm:"type:varchar(500)" json:"desc"`
    Date     *time.Time `json:"date"`
    Feed     *string    `gorm:"type:varchar(512)" json:"feed"`
    Comment  *string    `gorm:"type:varchar(500)" json:"comment"`
    Category *string    `gorm:"type:varchar(100)" json:"category"`

    CreatedAt time.Time `gorm:"index:idx_links_created" json:"createdAt"`
    UpdatedAt time.Time `json:"updatedAt"`
}

func (FriendLink) TableName() string { return "links" }
