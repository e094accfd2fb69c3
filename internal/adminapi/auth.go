package adminapi

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// tokenAuth checks "Authorization: Bearer <token>" against a bcrypt hash.
// A nil hash lets every request through.
type tokenAuth struct {
	hash []byte
}

func newTokenAuth(hash string) (*tokenAuth, error) {
	if hash == "" {
		return &tokenAuth{}, nil
	}
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return nil, fmt.Errorf("admin api token hash: %w", err)
	}
	return &tokenAuth{hash: []byte(hash)}, nil
}

func (a *tokenAuth) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.hash == nil {
			next.ServeHTTP(w, r)
			return
		}

		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || bcrypt.CompareHashAndPassword(a.hash, []byte(token)) != nil {
			slog.Warn("admin api unauthorized", "remote", r.RemoteAddr, "path", r.URL.Path)
			writeJSON(w, http.StatusUnauthorized, errorJSON{Error: "unauthorized"})
			return
		}

		next.ServeHTTP(w, r)
	})
}
