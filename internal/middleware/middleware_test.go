package middleware

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/abim/abim-backend/internal/config"
	"github.com/abim/abim-backend/internal/model"
	"github.com/abim/abim-backend/internal/service"
	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// memoryRedis implements Counter and service.SessionStore.
type memoryRedis struct {
	mu      sync.Mutex
	values  map[string]string
	counts  map[string]int64
	expires map[string]time.Duration
	failAll bool
	failGet bool
}

func newMemoryRedis() *memoryRedis {
	return &memoryRedis{values: map[string]string{}, counts: map[string]int64{}, expires: map[string]time.Duration{}}
}

func (m *memoryRedis) Incr(_ context.Context, key string) *redis.IntCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll {
		return redis.NewIntResult(0, errors.New("connection refused"))
	}
	m.counts[key]++
	return redis.NewIntResult(m.counts[key], nil)
}

func (m *memoryRedis) Expire(_ context.Context, key string, d time.Duration) *redis.BoolCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expires[key] = d
	return redis.NewBoolResult(true, nil)
}

func (m *memoryRedis) Set(_ context.Context, key string, value interface{}, d time.Duration) *redis.StatusCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value.(string)
	m.expires[key] = d
	return redis.NewStatusResult("OK", nil)
}

func (m *memoryRedis) Get(_ context.Context, key string) *redis.StringCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failGet {
		return redis.NewStringResult("", errors.New("i/o timeout"))
	}
	v, ok := m.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *memoryRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.values, k)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

func TestRateLimiter_FixedWindow(t *testing.T) {
	rdb := newMemoryRedis()
	rl := NewRateLimiter(rdb, "login", 2, time.Minute, zerolog.Nop())
	rl.now = func() time.Time { return time.Unix(600, 0) }

	r := gin.New()
	r.POST("/login", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)

	key := config.CacheKey.RateLimitKey("login", "10.0.0.1", 10)
	assert.Equal(t, int64(3), rdb.counts[key])
	assert.Equal(t, time.Minute, rdb.expires[key])

	// Next window starts a fresh count.
	rl.now = func() time.Time { return time.Unix(660, 0) }
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRateLimiter_FailsOpen(t *testing.T) {
	rdb := newMemoryRedis()
	rdb.failAll = true
	rl := NewRateLimiter(rdb, "applications", 1, time.Minute, zerolog.Nop())

	r := gin.New()
	r.POST("/x", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/x", nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
	}
}

func TestRateLimiter_IgnoresForwardedHeaderFromUntrustedPeer(t *testing.T) {
	rdb := newMemoryRedis()
	rl := NewRateLimiter(rdb, "login", 2, time.Minute, zerolog.Nop())
	rl.now = func() time.Time { return time.Unix(600, 0) }

	r := gin.Default()
	require.NoError(t, r.SetTrustedProxies(nil))
	r.POST("/login", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	blocked := 0
	for i := 0; i < 20; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "203.0.113.7:5555"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("10.0.0.%d", i))
		r.ServeHTTP(w, req)
		if w.Code == http.StatusTooManyRequests {
			blocked++
		}
	}
	assert.Equal(t, 18, blocked)
}

func TestRateLimiter_TrustedProxyForwardsClientIP(t *testing.T) {
	rdb := newMemoryRedis()
	rl := NewRateLimiter(rdb, "login", 1, time.Minute, zerolog.Nop())
	rl.now = func() time.Time { return time.Unix(600, 0) }

	r := gin.Default()
	require.NoError(t, r.SetTrustedProxies([]string{"192.168.1.0/24"}))
	r.POST("/login", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for _, client := range []string{"198.51.100.1", "198.51.100.2"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "192.168.1.10:443"
		req.Header.Set("X-Forwarded-For", client)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
	}
	assert.Equal(t, int64(1), rdb.counts[config.CacheKey.RateLimitKey("login", "198.51.100.2", 10)])
}

func TestRequireAdminJWT_SessionStoreFailure(t *testing.T) {
	rdb := newMemoryRedis()
	cfg := &config.Config{JWTSecret: "secret", JWTExpiry: time.Hour}
	auth := service.NewAuthService(cfg, rdb, nil, zerolog.Nop())

	token, err := auth.GenerateToken(context.Background(), &model.User{ID: 4, Role: "admin"})
	require.NoError(t, err)
	rdb.failGet = true

	r := gin.New()
	r.GET("/me", RequireAdminJWT(auth, zerolog.Nop()), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
}

func TestRequireAdminJWT(t *testing.T) {
	rdb := newMemoryRedis()
	cfg := &config.Config{JWTSecret: "secret", JWTExpiry: time.Hour}
	auth := service.NewAuthService(cfg, rdb, nil, zerolog.Nop())

	token, err := auth.GenerateToken(context.Background(), &model.User{ID: 4, Role: "admin"})
	require.NoError(t, err)

	r := gin.New()
	r.GET("/me", RequireAdminJWT(auth, zerolog.Nop()), func(c *gin.Context) {
		c.String(http.StatusOK, "%d", GetClaims(c).UserID)
	})

	call := func(header string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		r.ServeHTTP(w, req)
		return w
	}

	w := call("Bearer " + token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "4", w.Body.String())

	w = call("")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "TOKEN_REQUIRED")

	w = call("Bearer garbage")
	assert.Contains(t, w.Body.String(), "TOKEN_INVALID")

	require.NoError(t, auth.Logout(context.Background(), 4))
	w = call("Bearer " + token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "SESSION_INVALIDATED")
}

func TestBrotli(t *testing.T) {
	large := strings.Repeat("ABİM kurs listesi ", 200)

	r := gin.New()
	r.Use(Brotli())
	r.GET("/large", func(c *gin.Context) { c.String(http.StatusOK, large) })
	r.GET("/small", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/uploads/a.png", func(c *gin.Context) { c.String(http.StatusOK, large) })

	get := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Accept-Encoding", "gzip, br")
		r.ServeHTTP(w, req)
		return w
	}

	w := get("/large")
	require.Equal(t, "br", w.Header().Get("Content-Encoding"))
	decoded, err := io.ReadAll(brotli.NewReader(bytes.NewReader(w.Body.Bytes())))
	require.NoError(t, err)
	assert.Equal(t, large, string(decoded))

	w = get("/small")
	assert.Empty(t, w.Header().Get("Content-Encoding"))
	assert.Equal(t, "ok", w.Body.String())

	w = get("/uploads/a.png")
	assert.Empty(t, w.Header().Get("Content-Encoding"))
}

func TestCacheControl(t *testing.T) {
	r := gin.New()
	r.Use(CacheControl(60))
	r.GET("/f", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/f", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/f", nil))
	assert.Equal(t, "public, max-age=60, immutable", w.Header().Get("Cache-Control"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/f", nil))
	assert.Empty(t, w.Header().Get("Cache-Control"))
}
