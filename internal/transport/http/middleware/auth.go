package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	zlog "github.com/rs/zerolog/log"

	"github.com/baechuer/real-time-ressys/services/volunteer-service/internal/transport/http/response"
)

type ctxKey string

const ctxPrincipal ctxKey = "principal"

var errNoToken = errors.New("missing bearer token")

type Claims struct {
	UserID string `json:"uid"`
	Role   string `json:"role"`
	Ver    int64  `json:"ver"`
	jwt.RegisteredClaims
}

// Principal is the caller resolved from the bearer token. The zero value is
// an anonymous caller.
type Principal struct {
	ID   string
	Role string
	Ver  int64
}

func (p Principal) IsSignedIn() bool { return p.ID != "" }
func (p Principal) UserID() string   { return p.ID }

type TokenVersionChecker interface {
	GetTokenVersion(ctx context.Context, userID string) (int64, error)
}

type AuthMiddleware struct {
	secret       []byte
	issuer       string
	versionCheck TokenVersionChecker
}

func NewAuth(secret, issuer string, versionCheck TokenVersionChecker) *AuthMiddleware {
	return &AuthMiddleware{
		secret:       []byte(secret),
		issuer:       issuer,
		versionCheck: versionCheck,
	}
}

// Optional lets anonymous requests through and attaches a Principal when a
// valid bearer token is present. A token that is present but invalid or
// revoked is rejected.
func (a *AuthMiddleware) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, err := a.parse(r)
		if errors.Is(err, errNoToken) {
			next.ServeHTTP(w, r)
			return
		}
		if err != nil {
			zlog.Debug().Err(err).Msg("auth parse error")
			response.Fail(
				w,
				http.StatusUnauthorized,
				"unauthorized",
				"unauthorized",
				map[string]string{"reason": err.Error()},
				response.RequestIDFromRequest(r),
			)
			return
		}

		if a.revoked(r.Context(), p) {
			response.Fail(
				w,
				http.StatusUnauthorized,
				"token_revoked",
				"token version obsolete",
				nil,
				response.RequestIDFromRequest(r),
			)
			return
		}

		ctx := context.WithValue(r.Context(), ctxPrincipal, p)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// revoked fails open when the version store is unavailable.
func (a *AuthMiddleware) revoked(ctx context.Context, p Principal) bool {
	if a.versionCheck == nil {
		return false
	}
	currentVer, err := a.versionCheck.GetTokenVersion(ctx, p.ID)
	if err != nil {
		zlog.Warn().Err(err).Str("user_id", p.ID).Msg("token version check failed")
		return false
	}
	return currentVer > p.Ver
}

func (a *AuthMiddleware) parse(r *http.Request) (Principal, error) {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	if h == "" {
		return Principal{}, errNoToken
	}
	if !strings.HasPrefix(h, "Bearer ") {
		return Principal{}, errors.New("malformed authorization header")
	}
	raw := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))

	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return a.secret, nil
	}, jwt.WithLeeway(30*time.Second))
	if err != nil {
		return Principal{}, err
	}
	if !tok.Valid {
		return Principal{}, errors.New("invalid token")
	}

	if a.issuer != "" && claims.Issuer != a.issuer {
		return Principal{}, errors.New("invalid issuer")
	}
	if strings.TrimSpace(claims.UserID) == "" {
		return Principal{}, errors.New("missing uid")
	}
	role := strings.TrimSpace(claims.Role)
	if role == "" {
		role = "user"
	}
	return Principal{ID: claims.UserID, Role: role, Ver: claims.Ver}, nil
}

// PrincipalFrom returns the caller attached by Optional, or an anonymous
// Principal.
func PrincipalFrom(r *http.Request) Principal {
	if p, ok := r.Context().Value(ctxPrincipal).(Principal); ok {
		return p
	}
	return Principal{}
}
