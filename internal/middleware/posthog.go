package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/finance_tracker/internal/utils"
	"github.com/gin-gonic/gin"
)

// UsageTracking reports successful mutating API calls to PostHog as usage events named
// after the route, e.g. "POST /api/v1/transactions" becomes "post_api_v1_transactions".
func UsageTracking(client *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if client == nil || !client.IsInitialized() {
			return
		}
		if c.Request.Method == http.MethodGet || c.Writer.Status() >= http.StatusBadRequest || c.FullPath() == "" {
			return
		}
		userID, ok := GetUserIDFromContext(c)
		if !ok {
			return
		}

		client.Enqueue(userID, usageEventName(c.Request.Method, c.FullPath()), map[string]any{
			"status_code": c.Writer.Status(),
			"path":        c.Request.URL.Path,
		})
	}
}

func usageEventName(method, route string) string {
	r := strings.NewReplacer("/", "_", ":", "", "-", "_")
	return strings.ToLower(method) + "_" + strings.Trim(r.Replace(route), "_")
}
