package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"lavacar_booking/pkg"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

const (
	RoleAdmin       = "admin"
	ContextAdminSub = "admin_sub"
	tokenIssuer     = "lavacar-booking"
)

var (
	ErrAdminSecretMissing = errors.New("ADMIN_JWT_SECRET is not set")

	errUnauthorized = pkg.NewDomainErrorSimple("UNAUTHORIZED", "Missing or invalid bearer token", http.StatusUnauthorized)
	errForbidden    = pkg.NewDomainErrorSimple("FORBIDDEN", "Operator role required", http.StatusForbidden)
	errAuthDisabled = pkg.NewDomainErrorSimple("ADMIN_DISABLED", "Operator panel is not configured", http.StatusServiceUnavailable)
)

type AdminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// IssueAdminToken signs an HS256 operator token valid for ttl.
func IssueAdminToken(secret, subject string, ttl time.Duration, now time.Time) (string, error) {
	if strings.TrimSpace(secret) == "" {
		return "", ErrAdminSecretMissing
	}
	claims := AdminClaims{
		Role: RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func parseAdminToken(secret, raw string) (*AdminClaims, error) {
	claims := &AdminClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(tokenIssuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// AdminAuth guards the operator panel. With no secret configured every
// request is refused.
func AdminAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.TrimSpace(secret) == "" {
			logrus.Error("[admin][middleware] ADMIN_JWT_SECRET not configured; operator panel disabled")
			c.AbortWithStatusJSON(errAuthDisabled.HTTPStatus, errAuthDisabled.ToHTTPError())
			return
		}

		raw, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			c.AbortWithStatusJSON(errUnauthorized.HTTPStatus, errUnauthorized.ToHTTPError())
			return
		}

		claims, err := parseAdminToken(secret, strings.TrimSpace(raw))
		if err != nil {
			logrus.WithError(err).Warn("[admin][middleware] token rejected")
			c.AbortWithStatusJSON(errUnauthorized.HTTPStatus, errUnauthorized.ToHTTPError())
			return
		}
		if claims.Role != RoleAdmin {
			c.AbortWithStatusJSON(errForbidden.HTTPStatus, errForbidden.ToHTTPError())
			return
		}

		c.Set(ContextAdminSub, claims.Subject)
		c.Next()
	}
}
