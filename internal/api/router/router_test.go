package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/shenlye/tricore-api/config"
	"github.com/shenlye/tricore-api/internal/api/handler"
	"github.com/shenlye/tricore-api/internal/model"
	"github.com/shenlye/tricore-api/internal/repository"
	"github.com/shenlye/tricore-api/internal/service"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Meta    *struct {
		Total int64 `json:"total"`
		Page  int   `json:"page"`
		Limit int   `json:"limit"`
	} `json:"meta"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type testApp struct {
	engine  *gin.Engine
	postSvc service.PostService
	authSvc service.AuthService
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{}, &model.Category{}, &model.Tag{},
		&model.Post{}, &model.PostLink{}, &model.Memo{}, &model.FriendLink{},
	))

	cfg := &config.Config{}
	cfg.Server.Mode = gin.TestMode
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.Expire = time.Hour

	postRepo := repository.NewPostRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	tagRepo := repository.NewTagRepository(db)

	postSvc := service.NewPostService(postRepo, categoryRepo, tagRepo)
	linkSvc := service.NewPostLinkService(postRepo, repository.NewPostLinkRepository(db))
	memoSvc := service.NewMemoService(repository.NewMemoRepository(db))
	friendSvc := service.NewFriendLinkService(repository.NewFriendLinkRepository(db))
	authSvc := service.NewAuthService(repository.NewUserRepository(db), cfg.JWT.Secret, cfg.JWT.Expire)
	taxonomySvc := service.NewTaxonomyService(categoryRepo, tagRepo)
	bangumiSvc := service.NewBangumiService(nil, "nobody", 0)

	require.NoError(t, authSvc.EnsureAdmin(context.Background(), "admin", "admin@example.com", "adminpass"))

	h := handler.New(postSvc, linkSvc, memoSvc, friendSvc, authSvc, taxonomySvc, bangumiSvc)
	return &testApp{engine: New(cfg, h, nil), postSvc: postSvc, authSvc: authSvc}
}

func (a *testApp) request(t *testing.T, method, path, token string, body any) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "body: %s", w.Body.String())
	}
	return w.Code, env
}

func (a *testApp) adminToken(t *testing.T) string {
	t.Helper()
	code, env := a.request(t, http.MethodPost, "/api/v1/auth/login", "",
		gin.H{"identifier": "admin", "password": "adminpass"})
	require.Equal(t, http.StatusOK, code)
	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	return data.Token
}

func (a *testApp) seedPost(t *testing.T, title string, published bool) uint {
	t.Helper()
	view, err := a.postSvc.Create(context.Background(), service.CreatePostInput{
		Title: &title, Content: "content of " + title, IsPublished: published, AuthorID: 1,
	})
	require.NoError(t, err)
	return view.ID
}

func TestPostVisibility(t *testing.T) {
	app := newTestApp(t)
	app.seedPost(t, "Published Post", true)
	draftID := app.seedPost(t, "Secret Draft", false)

	code, env := app.request(t, http.MethodGet, "/api/v1/posts", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)
	require.NotNil(t, env.Meta)
	assert.Equal(t, int64(1), env.Meta.Total)

	// 草稿对匿名访客一律 404
	code, env = app.request(t, http.MethodGet, fmt.Sprintf("/api/v1/posts/%d", draftID), "", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)

	token := app.adminToken(t)
	code, _ = app.request(t, http.MethodGet, fmt.Sprintf("/api/v1/posts/%d", draftID), token, nil)
	assert.Equal(t, http.StatusOK, code)

	code, env = app.request(t, http.MethodGet, "/api/v1/posts", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, int64(2), env.Meta.Total)
}

func TestInvalidTokenDegradesToAnonymous(t *testing.T) {
	app := newTestApp(t)
	app.seedPost(t, "Only Public", true)
	app.seedPost(t, "Hidden", false)

	// 伪造的 token 不报 401，按匿名处理
	code, env := app.request(t, http.MethodGet, "/api/v1/posts", "not-a-jwt", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, int64(1), env.Meta.Total)
}

func TestPaginationMeta(t *testing.T) {
	app := newTestApp(t)
	for i := 0; i < 25; i++ {
		app.seedPost(t, fmt.Sprintf("Post %02d", i), true)
	}

	code, env := app.request(t, http.MethodGet, "/api/v1/posts?page=3&limit=10", "", nil)
	require.Equal(t, http.StatusOK, code)
	require.NotNil(t, env.Meta)
	assert.Equal(t, int64(25), env.Meta.Total)
	assert.Equal(t, 3, env.Meta.Page)
	assert.Equal(t, 10, env.Meta.Limit)

	var data []json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Len(t, data, 5)
}

func TestPaginationMetaReflectsClampedParams(t *testing.T) {
	app := newTestApp(t)
	app.seedPost(t, "Only One", true)

	// meta 回显的是实际生效的分页参数，不是请求里的原始值
	code, env := app.request(t, http.MethodGet, "/api/v1/posts?page=0&limit=500", "", nil)
	require.Equal(t, http.StatusOK, code)
	require.NotNil(t, env.Meta)
	assert.Equal(t, 1, env.Meta.Page)
	assert.Equal(t, 100, env.Meta.Limit)

	code, env = app.request(t, http.MethodGet, "/api/v1/posts?page=-2&limit=-1", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, env.Meta.Page)
	assert.Equal(t, 10, env.Meta.Limit)
}

func TestCreatePostAuthorization(t *testing.T) {
	app := newTestApp(t)
	body := gin.H{"title": "New Post", "content": "body"}

	code, env := app.request(t, http.MethodPost, "/api/v1/posts", "", body)
	assert.Equal(t, http.StatusUnauthorized, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "UNAUTHORIZED", env.Error.Code)

	// 普通用户也进不了管理接口
	_, err := app.authSvc.Register(context.Background(), "reader", "reader@example.com", "password123")
	require.NoError(t, err)
	code, loginEnv := app.request(t, http.MethodPost, "/api/v1/auth/login", "",
		gin.H{"identifier": "reader", "password": "password123"})
	require.Equal(t, http.StatusOK, code)
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(loginEnv.Data, &login))

	code, _ = app.request(t, http.MethodPost, "/api/v1/posts", login.Token, body)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = app.request(t, http.MethodPost, "/api/v1/posts", app.adminToken(t), body)
	assert.Equal(t, http.StatusCreated, code)
}

func TestCreatePostValidation(t *testing.T) {
	app := newTestApp(t)
	token := app.adminToken(t)

	cases := []gin.H{
		{"title": "x", "content": "c", "slug": "Bad Slug!"},
		{"title": "x", "content": "c", "cover": "not-a-url"},
		{"title": "x", "content": "c", "growthStage": "wilted"},
		{"title": "x"}, // content 必填
	}
	for i, body := range cases {
		code, env := app.request(t, http.MethodPost, "/api/v1/posts", token, body)
		assert.Equal(t, http.StatusBadRequest, code, "case %d", i)
		require.NotNil(t, env.Error, "case %d", i)
		assert.Equal(t, "BAD_REQUEST", env.Error.Code, "case %d", i)
	}
}

func TestDuplicateSlugConflict(t *testing.T) {
	app := newTestApp(t)
	token := app.adminToken(t)

	body := gin.H{"title": "Same", "content": "c"}
	code, _ := app.request(t, http.MethodPost, "/api/v1/posts", token, body)
	require.Equal(t, http.StatusCreated, code)

	code, env := app.request(t, http.MethodPost, "/api/v1/posts", token, body)
	assert.Equal(t, http.StatusConflict, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "CONFLICT", env.Error.Code)
}

func TestPostLinkEndpoints(t *testing.T) {
	app := newTestApp(t)
	token := app.adminToken(t)

	source := app.seedPost(t, "Source", true)
	target := app.seedPost(t, "Target", true)

	code, _ := app.request(t, http.MethodPost,
		fmt.Sprintf("/api/v1/posts/%d/links", source), token,
		gin.H{"targetPostId": target})
	require.Equal(t, http.StatusCreated, code)

	// 重复边
	code, env := app.request(t, http.MethodPost,
		fmt.Sprintf("/api/v1/posts/%d/links", source), token,
		gin.H{"targetPostId": target})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "CONFLICT", env.Error.Code)

	// 源不存在是 404，目标不存在是 400
	code, _ = app.request(t, http.MethodPost, "/api/v1/posts/9999/links", token,
		gin.H{"targetPostId": target})
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = app.request(t, http.MethodPost,
		fmt.Sprintf("/api/v1/posts/%d/links", source), token,
		gin.H{"targetPostId": 9999})
	assert.Equal(t, http.StatusBadRequest, code)

	// 图查询是公开接口
	code, env = app.request(t, http.MethodGet,
		fmt.Sprintf("/api/v1/posts/%d/links", source), "", nil)
	require.Equal(t, http.StatusOK, code)
	var graph struct {
		Outgoing []json.RawMessage `json:"outgoing"`
		Incoming []json.RawMessage `json:"incoming"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &graph))
	assert.Len(t, graph.Outgoing, 1)
	assert.Empty(t, graph.Incoming)

	code, _ = app.request(t, http.MethodDelete,
		fmt.Sprintf("/api/v1/posts/%d/links/%d", source, target), token, nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = app.request(t, http.MethodDelete,
		fmt.Sprintf("/api/v1/posts/%d/links/%d", source, target), token, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestSearchRequiresQuery(t *testing.T) {
	app := newTestApp(t)

	code, env := app.request(t, http.MethodGet, "/api/v1/posts/search", "", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "BAD_REQUEST", env.Error.Code)

	app.seedPost(t, "Searchable", true)
	code, env = app.request(t, http.MethodGet, "/api/v1/posts/search?q=Search", "", nil)
	require.Equal(t, http.StatusOK, code)
	var results []json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &results))
	assert.Len(t, results, 1)
}

func TestFriendLinkValidation(t *testing.T) {
	app := newTestApp(t)
	token := app.adminToken(t)

	code, env := app.request(t, http.MethodPost, "/api/v1/links", token,
		gin.H{"title": "Friend", "link": "not-a-url"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "BAD_REQUEST", env.Error.Code)

	code, _ = app.request(t, http.MethodPost, "/api/v1/links", token,
		gin.H{"title": "Friend", "link": "https://example.com"})
	assert.Equal(t, http.StatusCreated, code)
}

func TestHealthEndpoint(t *testing.T) {
	app := newTestApp(t)

	w := httptest.NewRecorder()
	app.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
