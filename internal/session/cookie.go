package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"time"
)

const CookieName = "bus_session"

var ErrBadCookie = errors.New("session: malformed or tampered cookie")

// Codec signs session IDs before they leave the server and verifies
// them on the way back in, so a forged cookie never reaches the store.
// The cookie value is "<id>.<base64url(hmac-sha256(id))>".
type Codec struct {
	secret []byte
}

func NewCodec(secret string) Codec {
	return Codec{secret: []byte(secret)}
}

func (c Codec) Encode(id string) string {
	return id + "." + base64.RawURLEncoding.EncodeToString(c.sign(id))
}

func (c Codec) Decode(value string) (string, error) {
	id, sig, found := strings.Cut(value, ".")
	if !found || id == "" {
		return "", ErrBadCookie
	}

	want, err := base64.RawURLEncoding.DecodeString(sig)
	if err != nil {
		return "", ErrBadCookie
	}

	if !hmac.Equal(c.sign(id), want) {
		return "", ErrBadCookie
	}

	return id, nil
}

func (c Codec) sign(id string) []byte {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(id))
	return mac.Sum(nil)
}

// CookieOptions controls how the session cookie is issued. HttpOnly is
// always forced on; Secure stays off unless the deployment serves TLS.
type CookieOptions struct {
	Path     string
	Secure   bool
	SameSite http.SameSite
}

func (o CookieOptions) normalize() CookieOptions {
	if o.Path == "" {
		o.Path = "/"
	}
	if o.SameSite == 0 {
		o.SameSite = http.SameSiteLaxMode
	}
	return o
}

func SetCookie(w http.ResponseWriter, value string, expiresAt time.Time, opts CookieOptions) {
	opts = opts.normalize()

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     opts.Path,
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: opts.SameSite,
	})
}

func ClearCookie(w http.ResponseWriter, opts CookieOptions) {
	opts = opts.normalize()

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     opts.Path,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: opts.SameSite,
	})
}
