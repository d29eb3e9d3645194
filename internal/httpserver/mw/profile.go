package mw

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/domain"
)

const (
	// ProfileHeader carries the profile ID for non-browser clients.
	ProfileHeader = "X-Profile-ID"
	// ProfileCookie carries the profile ID for browsers.
	ProfileCookie = "portal_profile"

	profileCookieMaxAge = 365 * 24 * time.Hour
)

type profileKey struct{}

// ProfileID returns the profile resolved by Profile, or "".
func ProfileID(ctx context.Context) string {
	id, _ := ctx.Value(profileKey{}).(string)
	return id
}

// WithProfileID stores id in ctx the way Profile does.
func WithProfileID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, profileKey{}, id)
}

// Profile resolves the caller's profile from the X-Profile-ID header,
// then the portal_profile cookie. Values that are not UUIDs are ignored
// so they can never reach a storage key.
//
// With issue set, a caller without a profile gets a new one, returned in
// both the cookie and the response header. Otherwise the request goes on
// without a profile.
func Profile(issue bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := resolveProfile(r)

			if id == "" && issue {
				id = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     ProfileCookie,
					Value:    id,
					Path:     "/",
					MaxAge:   int(profileCookieMaxAge.Seconds()),
					HttpOnly: true,
					Secure:   r.TLS != nil,
					SameSite: http.SameSiteLaxMode,
				})
				w.Header().Set(ProfileHeader, id)
			}

			if id != "" {
				r = r.WithContext(WithProfileID(r.Context(), id))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func resolveProfile(r *http.Request) string {
	if id, ok := canonicalProfile(r.Header.Get(ProfileHeader)); ok {
		return id
	}
	if c, err := r.Cookie(ProfileCookie); err == nil {
		if id, ok := canonicalProfile(c.Value); ok {
			return id
		}
	}
	return ""
}

func canonicalProfile(raw string) (string, bool) {
	id, err := domain.ParseProfileID(raw)
	return id, err == nil
}
