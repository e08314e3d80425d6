package api

import (
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const (
	issuer        = "studytrack"
	contextUserID = "userID"
)

// GenerateToken signs an HS256 token whose subject is userID
func GenerateToken(secret []byte, userID int64, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return token, nil
}

// ParseToken verifies token and returns the user id it was issued for
func ParseToken(secret []byte, token string) (int64, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(issuer))
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.Errorf("invalid subject %q", claims.Subject)
	}
	return id, nil
}

func jwtMiddleware(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(auth, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				return errMissingToken
			}
			userID, err := ParseToken(secret, strings.TrimSpace(token))
			if err != nil {
				return errInvalidToken.WithInternal(err)
			}
			c.Set(contextUserID, userID)
			return next(c)
		}
	}
}

// currentUserID returns the id of the authenticated user
func currentUserID(c echo.Context) int64 {
	id, _ := c.Get(contextUserID).(int64)
	return id
}
