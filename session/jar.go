// Package session keeps the OAuth backend's session cookies across restarts.
package session

import (
	"context"
	"lightningbowl-sync/database"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// CookieRepository persists cookies between process restarts.
type CookieRepository interface {
	GetCookies(ctx context.Context) ([]database.StoredCookie, error)
	SaveCookie(ctx context.Context, c database.StoredCookie) error
	DeleteCookie(ctx context.Context, domain, path, name string) error
	DeleteExpiredCookies(ctx context.Context, now time.Time) (int64, error)
}

type entry struct {
	cookie  database.StoredCookie
	hostKey bool // set when the cookie had no Domain attribute
}

// Jar is an http.CookieJar backed by SQLite. It implements the subset of
// RFC 6265 matching the backend needs: domain suffix, path prefix, expiry and Secure.
type Jar struct {
	mu      sync.RWMutex
	cookies map[string]entry
	repo    CookieRepository
	logger  *slog.Logger
	now     func() time.Time
}

var _ http.CookieJar = (*Jar)(nil)

func NewJar(repo CookieRepository, logger *slog.Logger) *Jar {
	return &Jar{
		cookies: make(map[string]entry),
		repo:    repo,
		logger:  logger.With("component", "cookie_jar"),
		now:     time.Now,
	}
}

func key(domain, path, name string) string {
	return domain + ";" + path + ";" + name
}

// Load fills the jar from the repository.
func (j *Jar) Load(ctx context.Context) error {
	stored, err := j.repo.GetCookies(ctx)
	if err != nil {
		return err
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	for _, c := range stored {
		if c.ExpiresAt != nil && c.ExpiresAt.Before(j.now()) {
			continue
		}
		j.cookies[key(c.Domain, c.Path, c.Name)] = entry{cookie: c}
	}
	j.logger.Debug("cookies loaded", "count", len(j.cookies))
	return nil
}

// SetCookies stores cookies received from u. Deletions (MaxAge < 0 or past Expires) remove the stored cookie.
func (j *Jar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	host := canonicalHost(u.Host)
	now := j.now()

	j.mu.Lock()
	defer j.mu.Unlock()

	for _, c := range cookies {
		domain := strings.TrimPrefix(strings.ToLower(c.Domain), ".")
		hostOnly := domain == ""
		if hostOnly {
			domain = host
		} else if host != domain && !strings.HasSuffix(host, "."+domain) {
			j.logger.Warn("rejecting cookie for foreign domain", "host", host, "domain", domain)
			continue
		}

		path := c.Path
		if path == "" || !strings.HasPrefix(path, "/") {
			path = "/"
		}

		k := key(domain, path, c.Name)
		if c.MaxAge < 0 || (!c.Expires.IsZero() && c.Expires.Before(now)) {
			delete(j.cookies, k)
			j.persistDelete(domain, path, c.Name)
			continue
		}

		stored := database.StoredCookie{
			Domain:   domain,
			Path:     path,
			Name:     c.Name,
			Value:    c.Value,
			Secure:   c.Secure,
			HTTPOnly: c.HttpOnly,
		}
		switch {
		case c.MaxAge > 0:
			exp := now.Add(time.Duration(c.MaxAge) * time.Second)
			stored.ExpiresAt = &exp
		case !c.Expires.IsZero():
			exp := c.Expires
			stored.ExpiresAt = &exp
		}

		j.cookies[k] = entry{cookie: stored, hostKey: hostOnly}
		j.persistSave(stored)
	}
}

// Cookies returns the cookies to send in a request to u.
func (j *Jar) Cookies(u *url.URL) []*http.Cookie {
	host := canonicalHost(u.Host)
	path := u.Path
	if path == "" {
		path = "/"
	}
	secure := u.Scheme == "https"
	now := j.now()

	j.mu.RLock()
	defer j.mu.RUnlock()

	var out []*http.Cookie
	for _, e := range j.cookies {
		c := e.cookie
		if c.ExpiresAt != nil && c.ExpiresAt.Before(now) {
			continue
		}
		if c.Secure && !secure {
			continue
		}
		if e.hostKey {
			if host != c.Domain {
				continue
			}
		} else if host != c.Domain && !strings.HasSuffix(host, "."+c.Domain) {
			continue
		}
		if !pathMatch(path, c.Path) {
			continue
		}
		out = append(out, &http.Cookie{Name: c.Name, Value: c.Value})
	}
	return out
}

// Cleanup drops expired cookies from memory and storage.
func (j *Jar) Cleanup(ctx context.Context) {
	now := j.now()

	j.mu.Lock()
	for k, e := range j.cookies {
		if e.cookie.ExpiresAt != nil && e.cookie.ExpiresAt.Before(now) {
			delete(j.cookies, k)
		}
	}
	j.mu.Unlock()

	removed, err := j.repo.DeleteExpiredCookies(ctx, now)
	if err != nil {
		j.logger.Error("failed to delete expired cookies", "error", err)
		return
	}
	if removed > 0 {
		j.logger.Info("expired cookies removed", "count", removed)
	}
}

// StartCleanupRoutine runs Cleanup hourly until ctx is done.
func (j *Jar) StartCleanupRoutine(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				j.Cleanup(ctx)
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (j *Jar) persistSave(c database.StoredCookie) {
	if err := j.repo.SaveCookie(context.Background(), c); err != nil {
		j.logger.Error("failed to persist cookie", "name", c.Name, "error", err)
	}
}

func (j *Jar) persistDelete(domain, path, name string) {
	if err := j.repo.DeleteCookie(context.Background(), domain, path, name); err != nil {
		j.logger.Error("failed to delete cookie", "name", name, "error", err)
	}
}

func canonicalHost(host string) string {
	if h, _, ok := strings.Cut(host, ":"); ok {
		host = h
	}
	return strings.ToLower(host)
}

func pathMatch(requestPath, cookiePath string) bool {
	if requestPath == cookiePath {
		return true
	}
	if !strings.HasPrefix(requestPath, cookiePath) {
		return false
	}
	return strings.HasSuffix(cookiePath, "/") || requestPath[len(cookiePath)] == '/'
}
