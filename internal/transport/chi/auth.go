package chi

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// publicPaths are served without a token.
var publicPaths = map[string]struct{}{
	"/health":  {},
	"/metrics": {},
}

// APIKeys are the bearer tokens the API accepts.
// Admin keys may call every route. Search keys may only read (GET, HEAD),
// so they can be handed to clients that search but must not edit indexes.
type APIKeys struct {
	Admin  []string
	Search []string
}

type scope int

const (
	scopeNone scope = iota
	scopeSearch
	scopeAdmin
)

type keyring struct {
	admin  [][]byte
	search [][]byte
}

func newKeyring(keys APIKeys) keyring {
	nonEmpty := func(in []string) [][]byte {
		var out [][]byte
		for _, k := range in {
			if k != "" {
				out = append(out, []byte(k))
			}
		}
		return out
	}
	return keyring{admin: nonEmpty(keys.Admin), search: nonEmpty(keys.Search)}
}

func (k keyring) empty() bool { return len(k.admin) == 0 && len(k.search) == 0 }

// scopeOf compares token against every key in constant time.
func (k keyring) scopeOf(token string) scope {
	t := []byte(token)
	match := func(keys [][]byte) bool {
		found := 0
		for _, key := range keys {
			found |= subtle.ConstantTimeCompare(t, key)
		}
		return found == 1
	}
	switch {
	case match(k.admin):
		return scopeAdmin
	case match(k.search):
		return scopeSearch
	default:
		return scopeNone
	}
}

func readOnly(method string) bool {
	return method == http.MethodGet || method == http.MethodHead
}

// BearerAuthMiddleware checks the Authorization header against keys.
// With no keys configured every request passes.
func BearerAuthMiddleware(keys APIKeys) func(http.Handler) http.Handler {
	ring := newKeyring(keys)

	return func(next http.Handler) http.Handler {
		if ring.empty() {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := publicPaths[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				w.Header().Set("WWW-Authenticate", `Bearer realm="localsearch"`)
				writeError(w, http.StatusUnauthorized, ErrorCodeUnauthorized, "missing bearer token")
				return
			}

			switch ring.scopeOf(token) {
			case scopeAdmin:
			case scopeSearch:
				if !readOnly(r.Method) {
					writeError(w, http.StatusForbidden, ErrorCodeForbidden, "search key cannot modify indexes")
					return
				}
			default:
				w.Header().Set("WWW-Authenticate", `Bearer realm="localsearch", error="invalid_token"`)
				writeError(w, http.StatusUnauthorized, ErrorCodeUnauthorized, "invalid api key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// bearerToken extracts the token of an "Authorization: Bearer <token>" header.
// The scheme is matched case-insensitively.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
