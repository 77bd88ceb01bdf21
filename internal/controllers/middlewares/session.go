package middlewares

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/fsdevblog/gatelink/internal/tokens"
	"github.com/gin-gonic/gin"
)

// CurrentUserKey ключ контекста gin с данными текущего пользователя.
// SessionCookieName имя сессионной куки внешнего провайдера идентичности.
const (
	CurrentUserKey    = "currentUser"
	SessionCookieName = "session"
)

// CurrentUser данные пользователя из проверенной сессии.
type CurrentUser struct {
	ID    string
	Email string
}

// SessionMiddleware проверяет сессионную куку и кладет пользователя в
// контекст. Сессии выдает внешний провайдер, мы их только читаем;
// запрос без валидной сессии получает 401.
func SessionMiddleware(sessionSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionCookie, err := c.Request.Cookie(SessionCookieName)
		if err != nil {
			if !errors.Is(err, http.ErrNoCookie) {
				_ = c.Error(fmt.Errorf("session middleware: %w", err))
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		claims, validateErr := tokens.ValidateSessionJWT(sessionCookie.Value, sessionSecret)
		if validateErr != nil {
			_ = c.Error(fmt.Errorf("session middleware: %w", validateErr))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		c.Set(CurrentUserKey, CurrentUser{ID: claims.UserID, Email: claims.Email})
		c.Next()
	}
}

// GetCurrentUser достает пользователя из контекста gin.
func GetCurrentUser(c *gin.Context) (CurrentUser, bool) {
	v, ok := c.Get(CurrentUserKey)
	if !ok {
		return CurrentUser{}, false
	}
	user, ok := v.(CurrentUser)
	return user, ok
}
