package utils

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cppla/prepmeter/config"
)

// memCounter is the in-process stand-in for the Redis keys below.
type memCounter struct {
	n         int
	expiresAt time.Time
}

var (
	regCounters   = map[string]memCounter{}
	regCountersMu sync.Mutex
)

func regKey(parts ...string) string {
	return "reg:" + strings.Join(parts, ":")
}

func regContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 500*time.Millisecond)
}

// memIncr bumps key and returns the new count. ttl is set when the key is created.
func memIncr(key string, ttl time.Duration) int {
	regCountersMu.Lock()
	defer regCountersMu.Unlock()
	c, ok := regCounters[key]
	if !ok || time.Now().After(c.expiresAt) {
		c = memCounter{expiresAt: time.Now().Add(ttl)}
	}
	c.n++
	regCounters[key] = c
	return c.n
}

func memGet(key string) int {
	regCountersMu.Lock()
	defer regCountersMu.Unlock()
	c, ok := regCounters[key]
	if !ok || time.Now().After(c.expiresAt) {
		return 0
	}
	return c.n
}

// untilMidnight is the time left in the current day of loc.
func untilMidnight(loc *time.Location) time.Duration {
	now := time.Now().In(loc)
	y, m, d := now.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, loc).Sub(now)
}

// RegistrationCooldownTry enforces a short cooldown between attempts per IP.
func RegistrationCooldownTry(ip string) bool {
	sec := config.Get().RegisterAttemptCooldownSec
	if sec <= 0 {
		return true
	}
	ttl := time.Duration(sec) * time.Second
	key := regKey("cooldown", ip)
	if cli := GetRedis(); cli != nil {
		ctx, cancel := regContext()
		defer cancel()
		ok, err := cli.SetNX(ctx, key, "1", ttl).Result()
		if err == nil {
			return ok
		}
	}
	return memIncr(key, ttl) == 1
}

// RegistrationDailyLimitCheck allows up to N successful registrations per day per IP.
func RegistrationDailyLimitCheck(ip string) bool {
	cfg := config.Get()
	if cfg.RegisterMaxPerIPPerDay <= 0 {
		return true
	}
	key := regKey("succday", ip, time.Now().In(cfg.Location()).Format("20060102"))
	if cli := GetRedis(); cli != nil {
		ctx, cancel := regContext()
		defer cancel()
		n, err := cli.Get(ctx, key).Int()
		if err == nil || errors.Is(err, redis.Nil) {
			return n < cfg.RegisterMaxPerIPPerDay
		}
	}
	return memGet(key) < cfg.RegisterMaxPerIPPerDay
}

// RegistrationDailyIncrement counts one successful registration for today.
func RegistrationDailyIncrement(ip string) {
	loc := config.Get().Location()
	key := regKey("succday", ip, time.Now().In(loc).Format("20060102"))
	ttl := untilMidnight(loc)
	if cli := GetRedis(); cli != nil {
		ctx, cancel := regContext()
		defer cancel()
		if err := cli.Incr(ctx, key).Err(); err == nil {
			_ = cli.Expire(ctx, key, ttl).Err()
			return
		}
	}
	memIncr(key, ttl)
}

// RegistrationFailRecord counts a failed registration in the current hour and bans the IP once
// the hourly limit is reached.
func RegistrationFailRecord(ip string) int {
	cfg := config.Get()
	key := regKey("failhour", ip, time.Now().Format("2006010215"))
	n := 0
	if cli := GetRedis(); cli != nil {
		ctx, cancel := regContext()
		if v, err := cli.Incr(ctx, key).Result(); err == nil {
			_ = cli.Expire(ctx, key, time.Hour).Err()
			n = int(v)
		}
		cancel()
	}
	if n == 0 {
		n = memIncr(key, time.Hour)
	}
	if cfg.RegisterFailMaxPerHour > 0 && n >= cfg.RegisterFailMaxPerHour {
		RegistrationBan(ip)
	}
	return n
}

// RegistrationIsBanned checks temporary ban status for IP.
func RegistrationIsBanned(ip string) bool {
	key := regKey("ban", ip)
	if cli := GetRedis(); cli != nil {
		ctx, cancel := regContext()
		defer cancel()
		if exists, err := cli.Exists(ctx, key).Result(); err == nil && exists > 0 {
			return true
		}
	}
	return memGet(key) > 0
}

// RegistrationBan sets a temporary ban for IP.
func RegistrationBan(ip string) {
	minutes := config.Get().RegisterTempBanMinutes
	if minutes <= 0 {
		minutes = 60
	}
	ttl := time.Duration(minutes) * time.Minute
	key := regKey("ban", ip)
	Sugar.Warnw("registration temporarily banned", "ip", ip, "minutes", minutes)
	if cli := GetRedis(); cli != nil {
		ctx, cancel := regContext()
		defer cancel()
		if err := cli.Set(ctx, key, "ban-"+ip, ttl).Err(); err == nil {
			return
		}
	}
	memIncr(key, ttl)
}

// sweepRegistrationCounters drops expired in-memory counters.
func sweepRegistrationCounters(now time.Time) int {
	regCountersMu.Lock()
	defer regCountersMu.Unlock()
	n := 0
	for k, c := range regCounters {
		if now.After(c.expiresAt) {
			delete(regCounters, k)
			n++
		}
	}
	return n
}
