package database

import (
    "fmt"

    "gorm.io/driver/postgres"
    "gorm.io/driver/sqlite"
    "gorm.io/gorm"

    "github.com/shenlye/tricore-api/config"
    "github.com/shenlye/tricore-api/internal/model"
)

// InitDB 按配置打开数据库并迁移表结构
// TranslateError 开启后唯一约束冲突会翻译为 gorm.ErrDuplicatedKey
func InitDB(cfg *config.Config) (*gorm.DB, error) {
    var dialector gorm.Dialector
    switch cfg.Database.Driver {
    case "sqlite":
        dialector = sqlite.Open(cfg.Database.DSN)
    case "postgres":
        dialector = postgres.Open(cfg.Database.DSN)
    default:
        return nil, fmt.Errorf("unsupported database driver: %q", cfg.Database.Driver)
    }

    db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
    if err != nil {
        return nil, err
    }
    if err := AutoMigrate(db); err != nil {
        return nil, err
    }
    return db, nil
}

// AutoMigrate 迁移全部业务表
func AutoMigrate(db *gorm.DB) error {
    return db.AutoMigrate(
        &model.User{},
        &model.Category{},
        &model.Tag{},
        &model.Post{},
        &model.PostLink{},
        &model.Memo{},
        &model.FriendLink{},
    )
}
