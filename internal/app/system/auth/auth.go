package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/dalemusser/dossierhub/internal/app/system/jsonutil"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Session constants & globals                                                |
*─────────────────────────────────────────────────────────────────────────────*/

const (
	SessionName = "dossierhub-session"

	isAuthKey = "is_authenticated"
	userIDKey = "user_id"
	userName  = "user_name"
	userEmail = "user_email"
	userRole  = "user_role"
)

// Store is initialised once via InitSessionStore.
var Store *sessions.CookieStore

/*─────────────────────────────────────────────────────────────────────────────*
| Current-User helper                                                        |
*─────────────────────────────────────────────────────────────────────────────*/

// SessionUser is what we cache in the session & inject into r.Context().
type SessionUser struct {
	ID    string
	Name  string
	Email string
	Role  string
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the user & “found?” flag.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

// LoadSessionUser injects the user into context if they are logged in.
// If the session store has not been initialized yet, it is a no-op.
func LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// If the session store isn't configured yet, just continue.
		if Store == nil {
			next.ServeHTTP(w, r)
			return
		}

		sess, _ := Store.Get(r, SessionName)

		if isAuth, _ := sess.Values[isAuthKey].(bool); isAuth {
			u := &SessionUser{
				ID:    getString(sess, userIDKey),
				Name:  getString(sess, userName),
				Email: getString(sess, userEmail),
				Role:  getString(sess, userRole),
			}
			r = withUser(r, u)
		}
		next.ServeHTTP(w, r)
	})
}

// SignIn stores the user in the session cookie.
func SignIn(w http.ResponseWriter, r *http.Request, u SessionUser) error {
	sess, _ := Store.Get(r, SessionName)
	sess.Values[isAuthKey] = true
	sess.Values[userIDKey] = u.ID
	sess.Values[userName] = u.Name
	sess.Values[userEmail] = u.Email
	sess.Values[userRole] = u.Role
	return sess.Save(r, w)
}

// SignOut clears the session cookie.
func SignOut(w http.ResponseWriter, r *http.Request) error {
	sess, _ := Store.Get(r, SessionName)
	sess.Values = map[any]any{}
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

// RequireSignedIn ensures there is a user in context (set by LoadSessionUser).
// The API is JSON-only, so an anonymous caller gets a 401 envelope.
func RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); ok {
			next.ServeHTTP(w, r)
			return
		}
		jsonutil.Fail(w, http.StatusUnauthorized, "Authentification requise.")
	})
}

// RequireRole ensures there is a user with one of the allowed roles in
// context. Anonymous → 401, wrong role → 403, both as JSON envelopes.
func RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r)
			if !ok {
				jsonutil.Fail(w, http.StatusUnauthorized, "Authentification requise.")
				return
			}
			if _, has := set[strings.ToLower(u.Role)]; !has {
				jsonutil.Fail(w, http.StatusForbidden, "Accès refusé.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// InitSessionStore initializes the global session Store using the provided
// session key and domain. The `secure` flag controls whether cookies are
// marked Secure and which SameSite mode is used.
//
// In production (secure=true), cookies should be Secure + SameSite=None
// (for cross-site use with HTTPS).
// In local dev over http://localhost, use secure=false so cookies are accepted.
func InitSessionStore(sessionKey, domain string, secure bool, logger *zap.Logger) error {
	if sessionKey == "" {
		return fmt.Errorf("session key is empty; provide ≥32 random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		Secure:   secure,
		HttpOnly: true,
	}

	// SameSite handling: in prod with Secure cookies, we use None
	// so cookies can be sent in cross-site contexts. In dev, Lax is fine.
	if secure {
		opts.SameSite = http.SameSiteNoneMode
	} else {
		opts.SameSite = http.SameSiteLaxMode
	}

	store.Options = opts
	Store = store

	logger.Info("session store initialized",
		zap.Bool("secure", secure),
		zap.String("domain", domain))

	return nil
}

// WithTestUser returns a copy of the request carrying u in context, the way
// LoadSessionUser would. Handler tests use it to skip the cookie round trip.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

// helpers

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// getString safely extracts a string from a session value.
func getString(s *sessions.Session, key string) string {
	if v, ok := s.Values[key].(string); ok {
		return v
	}
	return ""
}
