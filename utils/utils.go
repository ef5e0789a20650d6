package utils

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/unicode/norm"
)

const RefreshCookieName = "refreshToken"

func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if mongo.IsDuplicateKeyError(err) {
		return true
	}

	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 || e.Code == 11001 {
				return true
			}
		}
	}

	return strings.Contains(err.Error(), "E11000 duplicate key error")
}

// NormalizeUsername trims and NFC-normalises a username so that visually
// identical names map to the same stored key.
func NormalizeUsername(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

func ParseIntDefault(v string, def int) int {
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

var dateLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"}

// ParseDate accepts a calendar date (2006-01-02) or a full RFC 3339 timestamp.
func ParseDate(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, v)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func HashPassword(password string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(bytes), err
}

func CheckPassword(hash string, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

type CookieOptions struct {
	Secure bool
	Domain string
	MaxAge time.Duration
}

func SetRefreshCookie(c *gin.Context, token string, opts CookieOptions) {
	sameSite := http.SameSiteLaxMode
	if opts.Secure {
		sameSite = http.SameSiteNoneMode // for cross-site
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     RefreshCookieName,
		Value:    token,
		Path:     "/auth",
		Domain:   opts.Domain,
		MaxAge:   int(opts.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: sameSite,
	})
}

func ClearRefreshCookie(c *gin.Context, opts CookieOptions) {
	c.SetCookie(RefreshCookieName, "", -1, "/auth", opts.Domain, opts.Secure, true)
}
