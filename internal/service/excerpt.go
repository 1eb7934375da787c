package service

import (
    "regexp"
    "strings"
)

// 摘要长度上限（字符数）
const excerptLimit = 100

var (
    headingRe  = regexp.MustCompile(`(?m)#{1,6}\s+`)
    imageRe    = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
    linkRe     = regexp.MustCompile(`\[([^\]]+)\]\([^)]*\)`)
    emphasisRe = regexp.MustCompile("[*_~`]+")
    spaceRe    = regexp.MustCompile(`\s+`)
)

// DeriveExcerpt 从 markdown 正文剥离标记并截取摘要
func DeriveExcerpt(content string) string {
    s := headingRe.ReplaceAllString(content, "")
    s = imageRe.ReplaceAllString(s, "")
    s = linkRe.ReplaceAllString(s, "$1")
    s = emphasisRe.ReplaceAllString(s, "")
    s = spaceRe.ReplaceAllString(s, " ")
    s = strings.TrimSpace(s)

    runes := []rune(s)
    if len(runes) > excerptLimit {
        return string(runes[:excerptLimit]) + "..."
    }
    return s
}
