package auth

import (
	"fmt"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Middleware verifies access tokens issued by the external identity
// provider and puts the principal into the request context. It never
// issues or refreshes tokens.
type Middleware struct {
	JWTSecret []byte
}

const (
	userIDKey = "userID"
	roleKey   = "role"
	RoleAdmin = "admin"
)

func (m *Middleware) RequireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := m.parseToken(c)
		if err != nil {
			return err
		}
		setPrincipal(c, claims)
		return next(c)
	}
}

func (m *Middleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := m.parseToken(c)
		if err != nil {
			return err
		}
		setPrincipal(c, claims)
		if Role(c) != RoleAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "not enough rights")
		}
		return next(c)
	}
}

func (m *Middleware) parseToken(c echo.Context) (jwt.MapClaims, error) {
	cookie, err := c.Cookie("accessToken")
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing auth cookie")
	}
	tokenString := cookie.Value
	if tokenString == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "empty token")
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.JWTSecret, nil
	})
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token: "+err.Error())
	}
	if !token.Valid {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
	}
	if _, ok := claims["sub"].(float64); !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid subject claim")
	}
	return claims, nil
}

func setPrincipal(c echo.Context, claims jwt.MapClaims) {
	c.Set(userIDKey, uint(claims["sub"].(float64)))
	if role, ok := claims["role"].(string); ok {
		c.Set(roleKey, role)
	} else {
		c.Set(roleKey, "user")
	}
}

// UserID returns the authenticated principal's id. Handlers behind
// RequireUser/RequireAdmin can rely on it being present.
func UserID(c echo.Context) (uint, bool) {
	id, ok := c.Get(userIDKey).(uint)
	return id, ok
}

func Role(c echo.Context) string {
	role, _ := c.Get(roleKey).(string)
	return role
}

func IsAdmin(c echo.Context) bool {
	return Role(c) == RoleAdmin
}
