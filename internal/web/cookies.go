package web

import (
	"net/http"
	"strings"
)

const (
	cookieTheme    = "theme"
	cookieUsername = "username"
	cookieFollowed = "followed_matches"
	cookieReferred = "referred_by"

	yearSeconds = 31536000
	hourSeconds = 3600

	defaultTheme = "dark"
)

func cookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}

func themeOf(r *http.Request) string {
	if v := cookieValue(r, cookieTheme); v != "" {
		return v
	}
	return defaultTheme
}

func setCookie(w http.ResponseWriter, name, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:   name,
		Value:  value,
		Path:   "/",
		MaxAge: maxAge,
	})
}

// followedIDs parses the followed_matches cookie, a comma-joined list of
// match ids.
func followedIDs(r *http.Request) []string {
	raw := cookieValue(r, cookieFollowed)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func followedSet(r *http.Request) map[string]bool {
	ids := followedIDs(r)
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
