// internal/httpserver/auth.go
//
// Game tokens and admin authentication.
//
// A game token is an HS256 JWT whose "gid" claim names the one session it
// unlocks. It is returned in the /game/new body and set as the mots_game
// cookie; requests may present it either way. Admin routes use HTTP basic
// auth with the password checked against a bcrypt hash.

package httpserver

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const gameCookieName = "mots_game"

type gameClaims struct {
	GameID string `json:"gid"`
	jwt.RegisteredClaims
}

// ctxGameKey is the context key for the verified game id.
type ctxGameKey struct{}

// signGameToken creates a token for gameID valid for the configured TTL.
func (s *Server) signGameToken(gameID string) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.cfg.TokenTTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, gameClaims{
		GameID: gameID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})
	ss, err := t.SignedString([]byte(s.cfg.JWTSecret))
	return ss, exp, err
}

// parseGameToken verifies tok and returns its game id.
func (s *Server) parseGameToken(tok string) (string, error) {
	var claims gameClaims
	_, err := jwt.ParseWithClaims(tok, &claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", err
	}
	if claims.GameID == "" {
		return "", jwt.ErrTokenInvalidClaims
	}
	return claims.GameID, nil
}

// setGameCookie writes the game token cookie with appropriate security attributes.
func (s *Server) setGameCookie(w http.ResponseWriter, token string, exp time.Time) {
	sameSite := http.SameSiteLaxMode
	if s.cfg.Production {
		sameSite = http.SameSiteNoneMode // required for third-party contexts when Secure
	}
	http.SetCookie(w, &http.Cookie{
		Name:     gameCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.Production,
		SameSite: sameSite,
		Expires:  exp,
	})
}

// bearerOrCookie extracts a bearer token from Authorization header or game cookie.
func bearerOrCookie(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(gameCookieName); err == nil {
		return c.Value
	}
	return ""
}

// requireGameToken enforces a valid game token and injects its game id
// into the request context. Handlers compare it with the game they touch.
func (s *Server) requireGameToken() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := bearerOrCookie(r)
			if tok == "" {
				writeError(w, http.StatusUnauthorized, "missing_token")
				return
			}
			gid, err := s.parseGameToken(tok)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid_token")
				return
			}
			ctx := context.WithValue(r.Context(), ctxGameKey{}, gid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// tokenAllows reports whether the verified token in r unlocks gameID.
func tokenAllows(r *http.Request, gameID string) bool {
	gid, _ := r.Context().Value(ctxGameKey{}).(string)
	return gid != "" && gid == gameID
}

// requireAdmin guards catalog writes with basic auth.
// With no ADMIN_PASSWORD_HASH configured the route is disabled.
func (s *Server) requireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if s.cfg.AdminPasswordHash == "" {
				writeError(w, http.StatusForbidden, "import_disabled")
				return
			}
			_, pw, ok := r.BasicAuth()
			if !ok || !checkPassword(s.cfg.AdminPasswordHash, pw) {
				w.Header().Set("WWW-Authenticate", `Basic realm="puzzles"`)
				writeError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// checkPassword is a bcrypt verifier.
func checkPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}
