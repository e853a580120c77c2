// Package session persists the authenticated caller as a pair of cookies:
// the bearer token and a JSON copy of the user record.
package session

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/FACorreiaa/go-petportal/internal/app/models"
)

const (
	TokenCookie = "auth_token"
	UserCookie  = "user"
)

type Options struct {
	MaxAge time.Duration
	Secure bool
}

// Store reads and writes the session cookie pair. It holds no per-request
// state and is safe for concurrent use.
type Store struct {
	opts Options
}

func NewStore(opts Options) *Store {
	return &Store{opts: opts}
}

// Load reconstructs the session from the request cookies. It returns
// models.ErrNoSession when either cookie is missing and
// models.ErrCorruptSession when the user cookie cannot be decoded.
func (s *Store) Load(r *http.Request) (*models.Session, error) {
	token := cookieValue(r, TokenCookie)
	if token == "" {
		return nil, models.ErrNoSession
	}

	rawUser := cookieValue(r, UserCookie)
	if rawUser == "" {
		// net/http skips values with bytes outside the cookie-octet set,
		// so raw JSON never reaches DecodeUser.
		if hasRawCookie(r, UserCookie) {
			return nil, fmt.Errorf("%w: user cookie holds invalid cookie octets", models.ErrCorruptSession)
		}
		return nil, models.ErrNoSession
	}

	user, err := DecodeUser(rawUser)
	if err != nil {
		return nil, err
	}

	return &models.Session{Token: token, User: user}, nil
}

// Save writes both cookies for a freshly authenticated session.
func (s *Store) Save(w http.ResponseWriter, sess models.Session) error {
	rawUser, err := EncodeUser(sess.User)
	if err != nil {
		return err
	}

	maxAge := int(s.opts.MaxAge.Seconds())
	http.SetCookie(w, s.cookie(TokenCookie, sess.Token, maxAge, true))
	http.SetCookie(w, s.cookie(UserCookie, rawUser, maxAge, false))
	return nil
}

// Clear expires both cookies.
func (s *Store) Clear(w http.ResponseWriter) {
	http.SetCookie(w, s.cookie(TokenCookie, "", -1, true))
	http.SetCookie(w, s.cookie(UserCookie, "", -1, false))
}

func (s *Store) cookie(name, value string, maxAge int, httpOnly bool) *http.Cookie {
	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: httpOnly,
		Secure:   s.opts.Secure,
		SameSite: http.SameSiteStrictMode,
	}
	if maxAge < 0 {
		c.Expires = time.Unix(0, 0)
	}
	return c
}

// EncodeUser serializes the user for the user cookie. The JSON is
// query-escaped because raw quotes are not valid cookie octets.
func EncodeUser(u models.User) (string, error) {
	b, err := json.Marshal(u)
	if err != nil {
		return "", fmt.Errorf("failed to encode user cookie: %w", err)
	}
	return url.QueryEscape(string(b)), nil
}

// DecodeUser parses a user cookie value. Anything that is not a JSON object
// describing a user is reported as models.ErrCorruptSession.
func DecodeUser(raw string) (models.User, error) {
	unescaped, err := url.QueryUnescape(raw)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", models.ErrCorruptSession, err)
	}

	var user *models.User
	if err := json.Unmarshal([]byte(unescaped), &user); err != nil {
		return models.User{}, fmt.Errorf("%w: %v", models.ErrCorruptSession, err)
	}
	if user == nil {
		return models.User{}, fmt.Errorf("%w: empty user record", models.ErrCorruptSession)
	}

	return *user, nil
}

// hasRawCookie reports whether the Cookie header names a non-empty cookie,
// whether or not net/http accepted its value.
func hasRawCookie(r *http.Request, name string) bool {
	for _, line := range r.Header.Values("Cookie") {
		for _, part := range strings.Split(line, ";") {
			key, value, ok := strings.Cut(strings.TrimSpace(part), "=")
			if ok && key == name && value != "" {
				return true
			}
		}
	}
	return false
}

func cookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}
