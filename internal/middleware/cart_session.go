package middleware

import (
	"errors"
	"net/http"
	"time"

	"app/internal/config"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	CtxSessionIDKey   = "cart_session_id" // string（uuid）
	SessionCookieName = "cart_session"
)

const sessionTTL = 30 * 24 * time.Hour

// CartSession はカートのセッションCookieを検証するミドルウェア。
// Cookieが無い/壊れている場合は新しいセッションを発行する（エラーにはしない）。
// セッションIDがそのままスナップショットの保存先キーになる。
func CartSession(cfg config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if sessionID, ok := sessionIDFromCookie(c, cfg.JWTSecret); ok {
				c.Set(CtxSessionIDKey, sessionID)
				return next(c)
			}

			//無ければ新規発行
			sessionID := uuid.NewString()
			token, err := signSessionToken(sessionID, cfg.JWTSecret)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, errorJSON("internal error"))
			}

			c.SetCookie(&http.Cookie{
				Name:     SessionCookieName,
				Value:    token,
				Path:     "/",
				MaxAge:   int(sessionTTL.Seconds()),
				HttpOnly: true,
				Secure:   cfg.GoEnv == "prod",
				SameSite: http.SameSiteLaxMode,
			})

			c.Set(CtxSessionIDKey, sessionID)
			return next(c)
		}
	}
}

// SessionIDFromContext はミドルウェアが入れたセッションIDを取り出す。
func SessionIDFromContext(c echo.Context) (string, bool) {
	v := c.Get(CtxSessionIDKey)
	sessionID, ok := v.(string)
	if !ok || sessionID == "" {
		return "", false
	}
	return sessionID, true
}

func sessionIDFromCookie(c echo.Context, secret string) (string, bool) {
	cookie, err := c.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}

	token, err := jwt.Parse(cookie.Value, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || token == nil || !token.Valid {
		return "", false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", false
	}

	sessionID, ok := claims["sub"].(string)
	if !ok || sessionID == "" {
		return "", false
	}

	return sessionID, true
}

func signSessionToken(sessionID string, secret string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": sessionID,
		"iat": now.Unix(),
		"exp": now.Add(sessionTTL).Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString([]byte(secret))
}

func errorJSON(msg string) map[string]string {
	return map[string]string{"error": msg}
}
