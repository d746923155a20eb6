package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// HistorySize views remembered per session
const HistorySize = 5

const historyKey = "history"

// skippedPrefixes are not views and never enter the history
var skippedPrefixes = []string{"/static/", "/images/", "/health", "/favicon"}

// History records every viewed page so a view can navigate back to
// the one before it. Needs the sessions middleware.
func History() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet && isView(c.Request.URL.Path) {
			session := sessions.Default(c)
			stack := push(historyOf(session), c.Request.URL.RequestURI())
			session.Set(historyKey, stack)
			_ = session.Save()
			c.Set(historyKey, stack)
		}
		c.Next()
	}
}

// PreviousView the view visited before the current one, or "" when the
// history does not know one
func PreviousView(c *gin.Context) string {
	var stack []string
	if v, ok := c.Get(historyKey); ok {
		stack, _ = v.([]string)
	} else {
		stack = historyOf(sessions.Default(c))
	}

	current := c.Request.URL.RequestURI()
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] != current {
			return stack[i]
		}
	}
	return ""
}

// BackTarget PreviousView, then a same-host Referer, then fallback
func BackTarget(c *gin.Context, fallback string) string {
	if prev := PreviousView(c); prev != "" {
		return prev
	}
	if ref, err := url.Parse(c.Request.Referer()); err == nil && ref.Path != "" {
		if ref.Host == "" || ref.Host == c.Request.Host {
			if target := ref.RequestURI(); target != c.Request.URL.RequestURI() {
				return target
			}
		}
	}
	return fallback
}

func historyOf(session sessions.Session) []string {
	stack, _ := session.Get(historyKey).([]string)
	return stack
}

// push appends uri, collapsing reloads of the same view, and keeps the
// newest HistorySize entries
func push(stack []string, uri string) []string {
	if n := len(stack); n > 0 && stack[n-1] == uri {
		return stack
	}
	stack = append(append([]string(nil), stack...), uri)
	if len(stack) > HistorySize {
		stack = stack[len(stack)-HistorySize:]
	}
	return stack
}

func isView(path string) bool {
	for _, p := range skippedPrefixes {
		if strings.HasPrefix(path, p) {
			return false
		}
	}
	return true
}
