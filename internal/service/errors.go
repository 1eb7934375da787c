package service

import (
    "errors"
    "strings"

    "gorm.io/gorm"
)

var (
    ErrPostNotFound       = errors.New("post not found")
    ErrSlugTaken          = errors.New("slug already exists")
    ErrSelfLink           = errors.New("cannot link a post to itself")
    ErrTargetPostNotFound = errors.New("target post not found")
    ErrLinkExists         = errors.New("link already exists")
    ErrLinkNotFound       = errors.New("link not found")
    ErrMemoNotFound       = errors.New("memo not found")
    ErrFriendLinkNotFound = errors.New("friend link not found")
    ErrUserNotFound       = errors.New("user not found")
    ErrUserExists         = errors.New("username or email already taken")
    ErrInvalidCredentials = errors.New("invalid credentials")
)

// isDuplicateErr 判断唯一约束冲突
// 首选 TranslateError 翻译出的类型化错误，子串匹配仅作为未翻译驱动的兜底
// 兜底只认 unique/duplicate，外键等其他约束失败不能当成重复处理
func isDuplicateErr(err error) bool {
    if errors.Is(err, gorm.ErrDuplicatedKey) {
        return true
    }
    msg := strings.ToLower(err.Error())
    return strings.Contains(msg, "unique") ||
        strings.Contains(msg, "duplicate")
}

func isNotFoundErr(err error) bool {
    return errors.Is(err, gorm.ErrRecordNotFound)
}
