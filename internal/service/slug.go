package service

import (
    "regexp"
    "strings"
    "time"
    "unicode"

    "github.com/google/uuid"
    "github.com/mozillazg/go-pinyin"
)

var (
    pinyinArgs   = pinyin.NewArgs() // 默认 Normal 风格，不带声调
    slugStripRe  = regexp.MustCompile(`[^a-z0-9-]+`)
    slugHyphenRe = regexp.MustCompile(`-{2,}`)
)

// Slugify 把标题转成 URL slug：汉字逐字转拼音，其余按字母数字分词，
// 连字符连接并做小写、去非法字符、折叠、去首尾处理
func Slugify(title string) string {
    var tokens []string
    var cur strings.Builder
    flush := func() {
        if cur.Len() > 0 {
            tokens = append(tokens, cur.String())
            cur.Reset()
        }
    }
    for _, r := range title {
        switch {
        case unicode.Is(unicode.Han, r):
            flush()
            if syllables := pinyin.SinglePinyin(r, pinyinArgs); len(syllables) > 0 {
                tokens = append(tokens, syllables[0])
            }
        case unicode.IsLetter(r) || unicode.IsDigit(r):
            cur.WriteRune(r)
        default:
            flush()
        }
    }
    flush()

    s := strings.ToLower(strings.Join(tokens, "-"))
    s = slugStripRe.ReplaceAllString(s, "")
    s = slugHyphenRe.ReplaceAllString(s, "-")
    return strings.Trim(s, "-")
}

// GenerateSlug 无标题时退化为 <日期>-<6位随机后缀>
func GenerateSlug(title *string) string {
    if title != nil {
        if s := Slugify(*title); s != "" {
            return s
        }
    }
    return time.Now().UTC().Format("2006-01-02") + "-" + uuid.New().String()[:6]
}
