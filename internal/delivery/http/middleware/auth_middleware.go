package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"docscript/internal/domain/entity"
	"docscript/internal/infrastructure/cache"
	"docscript/pkg/jwt"
	"docscript/pkg/response"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type contextKey string

const (
	UserIDKey      contextKey = "user_id"
	RoleKey        contextKey = "role"
	ClinicIDKey    contextKey = "clinic_id"
	TokenIDKey     contextKey = "token_id"
	TokenExpiryKey contextKey = "token_expiry"
)

type AuthMiddleware struct {
	jwtService *jwt.JWTService
	denylist   cache.TokenDenylist
}

func NewAuthMiddleware(jwtService *jwt.JWTService, denylist cache.TokenDenylist) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		denylist:   denylist,
	}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			response.Unauthorized(w, "Missing token")
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if tokenString == "" {
			response.Unauthorized(w, "Missing token")
			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			response.Unauthorized(w, "Invalid token")
			return
		}

		revoked, err := m.denylist.IsRevoked(r.Context(), claims.ID)
		if err != nil {
			logrus.Warnf("Failed to check token denylist: %+v", err)
			response.InternalServerError(w, "Failed to validate token")
			return
		}
		if revoked {
			response.Unauthorized(w, "Invalid token")
			return
		}

		// Add claims to context
		ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, RoleKey, entity.Role(claims.Role))
		ctx = context.WithValue(ctx, ClinicIDKey, claims.ClinicID)
		ctx = context.WithValue(ctx, TokenIDKey, claims.ID)
		if claims.ExpiresAt != nil {
			ctx = context.WithValue(ctx, TokenExpiryKey, claims.ExpiresAt.Time)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserIDFromContext extracts user ID from context
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}

// GetRoleFromContext extracts the role claim from context
func GetRoleFromContext(ctx context.Context) (entity.Role, bool) {
	role, ok := ctx.Value(RoleKey).(entity.Role)
	if !ok || role == "" {
		return "", false
	}
	return role, true
}

// GetClinicIDFromContext extracts the clinic the token was issued for
func GetClinicIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	clinicID, ok := ctx.Value(ClinicIDKey).(uuid.UUID)
	return clinicID, ok
}

// GetTokenIDFromContext extracts token ID from context
func GetTokenIDFromContext(ctx context.Context) (string, bool) {
	tokenID, ok := ctx.Value(TokenIDKey).(string)
	return tokenID, ok
}

func GetTokenExpiryFromContext(ctx context.Context) (time.Time, bool) {
	expiry, ok := ctx.Value(TokenExpiryKey).(time.Time)
	return expiry, ok
}
