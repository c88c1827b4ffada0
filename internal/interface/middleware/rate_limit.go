package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/rupaykg-biomass/pkg/response"
)

// KeyFunc builds a rate-limit key from the request.
type KeyFunc func(c *gin.Context) string

// AllowFunc returns true to bypass the limiter.
type AllowFunc func(*gin.Context) bool

// Rule is one fixed-window budget. A request must fit every rule of a limiter.
type Rule struct {
	Max    int
	Window time.Duration
	Key    KeyFunc
}

// PerIP, PerRoute and PerSubject are shorthands for the usual budgets.
func PerIP(max int, window time.Duration) Rule {
	return Rule{Max: max, Window: window, Key: KeyByIP()}
}

func PerRoute(max int, window time.Duration) Rule {
	return Rule{Max: max, Window: window, Key: KeyByIPAndPath()}
}

func PerSubject(max int, window time.Duration) Rule {
	return Rule{Max: max, Window: window, Key: KeyBySubject()}
}

func (r Rule) valid() bool { return r.Max > 0 && r.Window > 0 && r.Key != nil }

func ipFromCtx(c *gin.Context) string {
	if ip := c.GetString("real_ip"); ip != "" {
		return ip
	}
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return "unknown"
}

func normalizePath(c *gin.Context) string {
	if fp := c.FullPath(); fp != "" {
		return fp
	}
	return c.Request.URL.Path
}

func KeyByIP() KeyFunc {
	return func(c *gin.Context) string { return "rl:ip:" + ipFromCtx(c) }
}

// KeyByIPAndPath gives each route its own budget per client.
func KeyByIPAndPath() KeyFunc {
	return func(c *gin.Context) string {
		return "rl:path:" + normalizePath(c) + ":ip:" + ipFromCtx(c)
	}
}

// KeyBySubject keys on the token subject, or the client IP before Auth has run.
func KeyBySubject() KeyFunc {
	return func(c *gin.Context) string {
		if sub := c.GetString(CtxSubjectKey); sub != "" {
			return "rl:sub:" + sub
		}
		return "rl:sub:anon:ip:" + ipFromCtx(c)
	}
}

var incrExpireScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return {current, redis.call("PTTL", KEYS[1])}
`)

// usage is the state of one rule after counting the current request.
type usage struct {
	rule  Rule
	count int
	reset time.Duration
}

func (u usage) remaining() int { return max(u.rule.Max-u.count, 0) }
func (u usage) exceeded() bool { return u.count > u.rule.Max }

// tightest picks the usage to report in headers: an exceeded rule with the
// longest wait, otherwise the one with the fewest requests left.
func tightest(us []usage) usage {
	best := us[0]
	for _, u := range us[1:] {
		switch {
		case u.exceeded() && !best.exceeded():
			best = u
		case u.exceeded() == best.exceeded() && u.exceeded() && u.reset > best.reset:
			best = u
		case !u.exceeded() && !best.exceeded() && u.remaining() < best.remaining():
			best = u
		}
	}
	return best
}

// RateLimit enforces every rule with one Redis round trip per rule. OPTIONS
// requests and allow matches bypass it. With no client or no valid rules it is
// a no-op, and a Redis error lets the request through.
func RateLimit(rdb *redis.Client, allow AllowFunc, rules ...Rule) gin.HandlerFunc {
	active := make([]Rule, 0, len(rules))
	for _, r := range rules {
		if r.valid() {
			active = append(active, r)
		}
	}
	if rdb == nil || len(active) == 0 {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions || (allow != nil && allow(c)) {
			c.Next()
			return
		}
		us := make([]usage, 0, len(active))
		for _, r := range active {
			u, err := count(c.Request.Context(), rdb, r, r.Key(c))
			if err != nil {
				c.Next()
				return
			}
			us = append(us, u)
		}

		u := tightest(us)
		resetSec := int(u.reset.Round(time.Second) / time.Second)
		c.Header("X-RateLimit-Limit", strconv.Itoa(u.rule.Max))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(u.remaining()))
		c.Header("X-RateLimit-Reset", strconv.Itoa(resetSec))
		if u.exceeded() {
			if resetSec > 0 {
				c.Header("Retry-After", strconv.Itoa(resetSec))
			}
			response.Abort(c, http.StatusTooManyRequests, "rate limit exceeded", nil)
			return
		}
		c.Next()
	}
}

func count(ctx context.Context, rdb *redis.Client, r Rule, key string) (usage, error) {
	res, err := incrExpireScript.Run(ctx, rdb, []string{key}, r.Window.Milliseconds()).Int64Slice()
	if err != nil {
		return usage{}, err
	}
	u := usage{rule: r}
	if len(res) > 0 {
		u.count = int(res[0])
	}
	if len(res) > 1 && res[1] > 0 {
		u.reset = time.Duration(res[1]) * time.Millisecond
	}
	return u, nil
}
