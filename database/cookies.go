package database

import (
	"context"
	"database/sql"
	"time"
)

// ==================== BACKEND COOKIES ====================

type StoredCookie struct {
	Domain    string
	Path      string
	Name      string
	Value     string
	ExpiresAt *time.Time
	Secure    bool
	HTTPOnly  bool
}

func (r *Repository) GetCookies(ctx context.Context) ([]StoredCookie, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT domain, path, name, value, expires_at, secure, http_only
		FROM backend_cookies
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cookies := make([]StoredCookie, 0)
	for rows.Next() {
		var c StoredCookie
		var expires sql.NullInt64
		if err := rows.Scan(&c.Domain, &c.Path, &c.Name, &c.Value, &expires, &c.Secure, &c.HTTPOnly); err != nil {
			return nil, err
		}
		if expires.Valid {
			t := time.Unix(expires.Int64, 0)
			c.ExpiresAt = &t
		}
		cookies = append(cookies, c)
	}
	return cookies, rows.Err()
}

func (r *Repository) SaveCookie(ctx context.Context, c StoredCookie) error {
	var expires sql.NullInt64
	if c.ExpiresAt != nil {
		expires = sql.NullInt64{Int64: c.ExpiresAt.Unix(), Valid: true}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO backend_cookies (domain, path, name, value, expires_at, secure, http_only)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(domain, path, name) DO UPDATE SET
			value = excluded.value,
			expires_at = excluded.expires_at,
			secure = excluded.secure,
			http_only = excluded.http_only
	`, c.Domain, c.Path, c.Name, c.Value, expires, c.Secure, c.HTTPOnly)
	return err
}

func (r *Repository) DeleteCookie(ctx context.Context, domain, path, name string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM backend_cookies WHERE domain = ? AND path = ? AND name = ?`, domain, path, name)
	return err
}

// DeleteExpiredCookies removes cookies whose expiry lies before now.
func (r *Repository) DeleteExpiredCookies(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM backend_cookies WHERE expires_at IS NOT NULL AND expires_at < ?`, now.Unix())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
