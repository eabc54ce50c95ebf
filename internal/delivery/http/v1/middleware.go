package v1

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const (
	requestIDHeader = "X-Request-Id"
	requestIDCtxKey = "request_id"
)

func (h *handlerImpl) HandleRequestIDMiddleware(c *gin.Context) {
	requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
	if requestID == "" {
		requestID = uuid.NewString()
	}

	c.Set(requestIDCtxKey, requestID)
	c.Header(requestIDHeader, requestID)
	c.Next()
}

func (h *handlerImpl) HandleLoggerMiddleware(c *gin.Context) {
	start := time.Now()
	c.Next()

	event := h.logger.Info()
	status := c.Writer.Status()
	switch {
	case status >= http.StatusInternalServerError:
		event = h.logger.Error()
	case status >= http.StatusBadRequest:
		event = h.logger.Warn()
	}

	event.
		Str("request_id", c.GetString(requestIDCtxKey)).
		Str("method", c.Request.Method).
		Str("path", c.FullPath()).
		Int("status", status).
		Dur("latency", time.Since(start)).
		Str("client_ip", c.ClientIP()).
		Msg("handled request")
}

func (h *handlerImpl) HandleRateLimitMiddleware(c *gin.Context) {
	ip := c.ClientIP()
	if !h.limiter.get(ip).Allow() {
		h.logger.Warn().
			Str("client_ip", ip).
			Msg("rate limit exceeded")
		abort(c, newAPIError(http.StatusTooManyRequests, "rate limit exceeded"))
		return
	}
	c.Next()
}

type visitorLimiter struct {
	limit rate.Limit
	burst int

	mu       sync.Mutex
	visitors map[string]*rate.Limiter
}

func newVisitorLimiter(limit rate.Limit, burst int) *visitorLimiter {
	return &visitorLimiter{
		limit:    limit,
		burst:    burst,
		visitors: make(map[string]*rate.Limiter),
	}
}

func (l *visitorLimiter) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, ok := l.visitors[ip]
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.visitors[ip] = limiter
	}
	return limiter
}
