package utils

import (
	"context"
	"sync"
	"time"

	"github.com/mojocn/base64Captcha"
	"github.com/redis/go-redis/v9"
)

const (
	captchaPrefix = "captcha:"
	captchaTTL    = 10 * time.Minute
)

var (
	captchaOnce  sync.Once
	captchaStore base64Captcha.Store
)

// captchaRedisStore keeps answers in Redis so captchas survive load balancing. Writes that fail
// land in the in-memory store, and reads consult it on a Redis miss.
type captchaRedisStore struct {
	client *redis.Client
	mem    base64Captcha.Store
}

func (s *captchaRedisStore) Set(id, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.client.Set(ctx, captchaPrefix+id, value, captchaTTL).Err(); err != nil {
		Sugar.Warnf("captcha write failed, keeping it in memory: %v", err)
		return s.mem.Set(id, value)
	}
	return nil
}

func (s *captchaRedisStore) Get(id string, clear bool) string {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	cmd := s.client.Get
	if clear {
		cmd = s.client.GetDel
	}
	if v, err := cmd(ctx, captchaPrefix+id).Result(); err == nil && v != "" {
		return v
	}
	return s.mem.Get(id, clear)
}

func (s *captchaRedisStore) Verify(id, answer string, clear bool) bool {
	v := s.Get(id, clear)
	return v != "" && v == answer
}

func getCaptchaStore() base64Captcha.Store {
	captchaOnce.Do(func() {
		mem := base64Captcha.NewMemoryStore(base64Captcha.GCLimitNumber, captchaTTL)
		if rc := GetRedis(); rc != nil {
			captchaStore = &captchaRedisStore{client: rc, mem: mem}
			return
		}
		captchaStore = mem
	})
	return captchaStore
}

// GenerateCaptcha creates a captcha and returns (id, dataURI) for frontend to display.
func GenerateCaptcha() (string, string, error) {
	// Use a simple digit captcha: width 120, height 40, length 5
	driver := base64Captcha.NewDriverDigit(40, 120, 5, 0.7, 80)
	c := base64Captcha.NewCaptcha(driver, getCaptchaStore())
	id, b64, _, err := c.Generate()
	return id, b64, err
}

// VerifyCaptcha verifies the provided answer; it consumes the captcha on success.
func VerifyCaptcha(id, answer string) bool {
	if id == "" || answer == "" {
		return false
	}
	return getCaptchaStore().Verify(id, answer, true)
}

// VerifyCaptchaNoConsume verifies without consuming the stored answer.
func VerifyCaptchaNoConsume(id, answer string) bool {
	if id == "" || answer == "" {
		return false
	}
	return getCaptchaStore().Verify(id, answer, false)
}
