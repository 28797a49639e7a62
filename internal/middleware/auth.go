package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"katador_backend/internal/appErrors"
	"katador_backend/internal/auth"
	"katador_backend/internal/logger"
	"katador_backend/internal/models"
)

const (
	ctxAccountIDKey = "accountID"
	ctxRoleKey      = "role"
)

// AuthMiddleware - middleware проверки JWT. Отсутствующий, невалидный и
// истекший токен дают разные коды ошибок.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			abortWithError(c, appErrors.ErrNoToken)
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := auth.ParseToken(tokenStr)
		if err != nil {
			if err == auth.ErrTokenExpired {
				abortWithError(c, appErrors.ErrTokenExpired)
				return
			}
			abortWithError(c, appErrors.ErrInvalidToken)
			return
		}

		// Сохраняем claims в контекст запроса
		c.Set(ctxAccountIDKey, claims.AccountID)
		c.Set(ctxRoleKey, claims.Role)
		c.Request = c.Request.WithContext(
			logger.WithAccountID(c.Request.Context(), claims.AccountID),
		)
		c.Next()
	}
}

// RequireRoles - middleware ограничения по ролям
func RequireRoles(roles ...models.AccountRole) gin.HandlerFunc {
	roleSet := make(map[models.AccountRole]bool)
	for _, r := range roles {
		roleSet[r] = true
	}

	return func(c *gin.Context) {
		roleVal, exists := c.Get(ctxRoleKey)
		if !exists {
			abortWithError(c, appErrors.ErrForbidden)
			return
		}

		role, ok := roleVal.(models.AccountRole)
		if !ok {
			roleStr, isString := roleVal.(string)
			if !isString {
				abortWithError(c, appErrors.ErrForbidden)
				return
			}
			role = models.AccountRole(roleStr)
		}

		if !roleSet[role] {
			abortWithError(c, appErrors.ErrForbidden)
			return
		}

		c.Next()
	}
}

// GetAccountID извлекает ID аккаунта из контекста
func GetAccountID(c *gin.Context) string {
	accountID, exists := c.Get(ctxAccountIDKey)
	if !exists {
		return ""
	}

	id, ok := accountID.(string)
	if !ok {
		return ""
	}
	return id
}

func abortWithError(c *gin.Context, err *appErrors.AppError) {
	appErrors.HandleError(c, err)
	c.Abort()
}
