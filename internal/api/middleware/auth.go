package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Oso5408/ofcoz-booking/internal/api/handlers"
)

const roleAdmin = "admin"

var (
	ErrMissingToken = errors.New("auth: missing bearer token")
	ErrInvalidToken = errors.New("auth: invalid token")
)

// Claims is the Supabase access token payload.
type Claims struct {
	Role        string `json:"role"`
	Email       string `json:"email"`
	AppMetadata struct {
		Provider  string   `json:"provider"`
		Providers []string `json:"providers"`
		Role      string   `json:"role"`
		Roles     []string `json:"roles"`
	} `json:"app_metadata"`
	jwt.RegisteredClaims
}

// Admin reports an admin role in app_metadata.
func (c *Claims) Admin() bool {
	if c.AppMetadata.Role == roleAdmin {
		return true
	}
	for _, r := range c.AppMetadata.Roles {
		if r == roleAdmin {
			return true
		}
	}
	return false
}

type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Authenticator verifies bearer tokens either against the project's JWKS or a shared HS256 secret.
type Authenticator struct {
	keyfunc jwt.Keyfunc
	parser  *jwt.Parser
	close   func()
	log     Logger
}

// NewJWKSAuthenticator fetches the key set and refreshes it in the background until Close.
func NewJWKSAuthenticator(ctx context.Context, jwksURL string, log Logger) (*Authenticator, error) {
	jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{
		Ctx:               ctx,
		RefreshUnknownKID: true,
		RefreshErrorHandler: func(err error) {
			log.Warn("auth: JWKS refresh failed: %v", err)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("auth: load JWKS %s: %w", jwksURL, err)
	}
	return &Authenticator{
		keyfunc: jwks.Keyfunc,
		parser:  jwt.NewParser(jwt.WithValidMethods([]string{"RS256", "ES256"}), jwt.WithExpirationRequired()),
		close:   jwks.EndBackground,
		log:     log,
	}, nil
}

// NewHMACAuthenticator verifies HS256 tokens signed with secret.
func NewHMACAuthenticator(secret []byte, log Logger) *Authenticator {
	return &Authenticator{
		keyfunc: func(*jwt.Token) (interface{}, error) { return secret, nil },
		parser:  jwt.NewParser(jwt.WithValidMethods([]string{"HS256"}), jwt.WithExpirationRequired()),
		close:   func() {},
		log:     log,
	}
}

func (a *Authenticator) Close() {
	a.close()
}

// ParseToken verifies tokenStr and returns its claims. The subject must be a UUID.
func (a *Authenticator) ParseToken(tokenStr string) (*Claims, uuid.UUID, error) {
	claims := &Claims{}
	token, err := a.parser.ParseWithClaims(tokenStr, claims, a.keyfunc)
	if err != nil || !token.Valid {
		return nil, uuid.Nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("%w: subject is not a uuid", ErrInvalidToken)
	}
	return claims, userID, nil
}

// Auth requires a valid bearer token and stores the user in the request context.
func (a *Authenticator) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		tokenStr, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenStr == "" {
			handlers.RespondUnauthorized(w, ErrMissingToken.Error())
			return
		}

		claims, userID, err := a.ParseToken(tokenStr)
		if err != nil {
			a.log.Warn("%s %s - rejected token: %v", r.Method, r.URL.Path, err)
			handlers.RespondUnauthorized(w, ErrInvalidToken.Error())
			return
		}

		ctx := WithUser(r.Context(), userID, claims.Admin())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminChecker looks up the admin flag stored with the user's balance row.
type AdminChecker interface {
	IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error)
}

// RequireAdmin lets through token admins and users flagged as admin in the store.
func RequireAdmin(checker AdminChecker, log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if IsAdmin(r.Context()) {
				next.ServeHTTP(w, r)
				return
			}

			userID, ok := GetUserID(r.Context())
			if !ok {
				handlers.RespondUnauthorized(w, ErrMissingToken.Error())
				return
			}

			admin, err := checker.IsAdmin(r.Context(), userID)
			if err != nil {
				log.Error("%s %s - admin lookup failed: user_id=%s, error=%v", r.Method, r.URL.Path, userID, err)
				handlers.RespondServiceUnavailable(w)
				return
			}
			if !admin {
				handlers.RespondForbidden(w, "admin access required")
				return
			}

			ctx := WithUser(r.Context(), userID, true)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
