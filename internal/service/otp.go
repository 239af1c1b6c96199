package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strings"
	"sync"
	"time"

	"ecocoin/internal/cache"

	"github.com/redis/go-redis/v9"
)

// ErrOTPNotFound 表示此 email 沒有尚未使用或尚未過期的驗證碼
var ErrOTPNotFound = errors.New("otp not found")

// OTPStore 以 email 為鍵保存最後一次發出的驗證碼，Put 會覆寫舊值
type OTPStore interface {
	Put(ctx context.Context, email, code string, ttl time.Duration) error
	Get(ctx context.Context, email string) (string, error)
	Delete(ctx context.Context, email string) error
}

var randReader io.Reader = rand.Reader

// GenerateCode 產生 100000–999999 之間的六位數字
func GenerateCode() (string, error) {
	n, err := rand.Int(randReader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("GenerateCode: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// NormalizeEmail 去除空白並轉小寫
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

/* ---------- Redis ---------- */

type RedisOTPStore struct {
	c cache.Cache
}

func NewRedisOTPStore(c cache.Cache) *RedisOTPStore {
	return &RedisOTPStore{c: c}
}

func otpKey(email string) string {
	return "otp:" + email
}

func (s *RedisOTPStore) Put(ctx context.Context, email, code string, ttl time.Duration) error {
	if err := s.c.Set(ctx, otpKey(email), code, ttl).Err(); err != nil {
		return fmt.Errorf("otp put: %w", err)
	}
	return nil
}

func (s *RedisOTPStore) Get(ctx context.Context, email string) (string, error) {
	code, err := s.c.Get(ctx, otpKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrOTPNotFound
	}
	if err != nil {
		return "", fmt.Errorf("otp get: %w", err)
	}
	return code, nil
}

func (s *RedisOTPStore) Delete(ctx context.Context, email string) error {
	if err := s.c.Del(ctx, otpKey(email)).Err(); err != nil {
		return fmt.Errorf("otp delete: %w", err)
	}
	return nil
}

/* ---------- 行程記憶體 ---------- */

type otpEntry struct {
	code      string
	expiresAt time.Time
}

// MemoryOTPStore 未設定 Redis 時使用，重啟後資料會遺失
type MemoryOTPStore struct {
	mu      sync.Mutex
	entries map[string]otpEntry
	now     func() time.Time
}

func NewMemoryOTPStore() *MemoryOTPStore {
	return &MemoryOTPStore{entries: make(map[string]otpEntry), now: time.Now}
}

func (s *MemoryOTPStore) Put(_ context.Context, email, code string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	// 寫入時順便清掉過期紀錄
	for k, old := range s.entries {
		if !old.expiresAt.IsZero() && !now.Before(old.expiresAt) {
			delete(s.entries, k)
		}
	}
	e := otpEntry{code: code}
	if ttl > 0 {
		e.expiresAt = now.Add(ttl)
	}
	s.entries[email] = e
	return nil
}

func (s *MemoryOTPStore) Get(_ context.Context, email string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[email]
	if !ok {
		return "", ErrOTPNotFound
	}
	if !e.expiresAt.IsZero() && !s.now().Before(e.expiresAt) {
		delete(s.entries, email)
		return "", ErrOTPNotFound
	}
	return e.code, nil
}

func (s *MemoryOTPStore) Delete(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, email)
	return nil
}
