package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDKey ключ контекста gin с идентификатором запроса.
// RequestIDHeader заголовок, в котором идентификатор отдается клиенту.
const (
	RequestIDKey    = "requestID"
	RequestIDHeader = "X-Request-Id"
)

// RequestIDMiddleware присваивает каждому запросу идентификатор.
// Пришедший от клиента заголовок не переиспользуется: идентификатор
// наш, по нему склеиваются записи в логах.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		c.Set(RequestIDKey, id)
		c.Writer.Header().Set(RequestIDHeader, id)
		c.Next()
	}
}

// GetRequestID достает идентификатор запроса из контекста gin.
func GetRequestID(c *gin.Context) string {
	v, ok := c.Get(RequestIDKey)
	if !ok {
		return ""
	}
	id, _ := v.(string) //nolint:errcheck
	return id
}
