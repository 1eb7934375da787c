package service

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "io"
    "net/http"
    "net/url"
    "time"

    "github.com/redis/go-redis/v9"
    "go.uber.org/zap"

    "github.com/shenlye/tricore-api/pkg/logger"
)

const bangumiAPI = "https://api.bgm.tv"

var ErrBangumiUpstream = errors.New("bangumi upstream error")

// 条目类型：2=动画 4=游戏
var bangumiSubjectTypes = map[string]int{
    "anime": 2,
    "game":  4,
}

// 收藏类型：1=想看 2=看过 3=在看
var bangumiCollectionTypes = map[string]int{
    "wish":  1,
    "done":  2,
    "doing": 3,
}

type BangumiService interface {
    Collections(ctx context.Context, subjectType, collectionType string, limit, offset int) (json.RawMessage, error)
}

type bangumiService struct {
    client   *http.Client
    cache    *redis.Client
    username string
    ttl      time.Duration
}

// NewBangumiService cache 可为 nil，此时每次请求都打上游
func NewBangumiService(cache *redis.Client, username string, ttl time.Duration) BangumiService {
    return &bangumiService{
        client:   &http.Client{Timeout: 10 * time.Second},
        cache:    cache,
        username: username,
        ttl:      ttl,
    }
}

func (s *bangumiService) Collections(ctx context.Context, subjectType, collectionType string, limit, offset int) (json.RawMessage, error) {
    st, ok := bangumiSubjectTypes[subjectType]
    if !ok {
        return nil, fmt.Errorf("%w: unknown subject type %q", ErrBangumiUpstream, subjectType)
    }
    ct, ok := bangumiCollectionTypes[collectionType]
    if !ok {
        return nil, fmt.Errorf("%w: unknown collection type %q", ErrBangumiUpstream, collectionType)
    }
    if limit < 1 || limit > 50 {
        limit = 10
    }
    if offset < 0 {
        offset = 0
    }

    key := fmt.Sprintf("bangumi:%s:%d:%d:%d:%d", s.username, st, ct, limit, offset)
    if s.cache != nil {
        if data, err := s.cache.Get(ctx, key).Bytes(); err == nil {
            return data, nil
        }
    }

    endpoint := fmt.Sprintf("%s/v0/users/%s/collections?subject_type=%d&type=%d&limit=%d&offset=%d",
        bangumiAPI, url.PathEscape(s.username), st, ct, limit, offset)
    req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
    if err != nil {
        return nil, err
    }
    req.Header.Set("User-Agent", "shenlye/tricore-api (https://github.com/shenlye/tricore-api)")

    resp, err := s.client.Do(req)
    if err != nil {
        return nil, err
    }
    defer resp.Body.Close()
    if resp.StatusCode != http.StatusOK {
        return nil, fmt.Errorf("%w: status %d", ErrBangumiUpstream, resp.StatusCode)
    }
    body, err := io.ReadAll(resp.Body)
    if err != nil {
        return nil, err
    }

    if s.cache != nil {
        if err := s.cache.Set(ctx, key, body, s.ttl).Err(); err != nil {
            logger.Warn("bangumi cache set failed", zap.Error(err))
        }
    }
    return body, nil
}
