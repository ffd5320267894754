package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrProfileNotFound = errors.New("profile not found")

	// ErrPINNotSet indicates the profile has no admin PIN configured
	ErrPINNotSet = errors.New("admin PIN not set")

	// ErrPINMismatch indicates a wrong admin PIN
	ErrPINMismatch = errors.New("admin PIN does not match")
)

// Profile is one installation's settings.
type Profile struct {
	ID           int64
	Name         string
	Timezone     string
	IsActive     bool
	AdminPINHash string // bcrypt; empty disables secret reveal
	MQTTBroker   string // e.g. tcp://172.16.3.171:1883; empty disables push
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CheckPIN compares pin against the stored admin PIN hash.
func (p *Profile) CheckPIN(pin string) error {
	if p.AdminPINHash == "" {
		return ErrPINNotSet
	}
	if err := bcrypt.CompareHashAndPassword([]byte(p.AdminPINHash), []byte(pin)); err != nil {
		return ErrPINMismatch
	}
	return nil
}

// ProfileStore provides profile CRUD operations.
type ProfileStore interface {
	GetActive(ctx context.Context) (*Profile, error)
	List(ctx context.Context) ([]*Profile, error)
	Create(ctx context.Context, p *Profile) error
	Update(ctx context.Context, p *Profile) error
	SetActive(ctx context.Context, id int64) error
	SetAdminPIN(ctx context.Context, id int64, pin string) error
}

// Profiles returns a ProfileStore for this database.
func (db *DB) Profiles() ProfileStore {
	return &profileStore{db: db}
}

type profileStore struct {
	db *DB
}

const profileColumns = `id, name, timezone, is_active, admin_pin_hash, mqtt_broker, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (*Profile, error) {
	p := &Profile{}
	var createdAt, updatedAt string
	err := row.Scan(&p.ID, &p.Name, &p.Timezone, &p.IsActive, &p.AdminPINHash, &p.MQTTBroker, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	p.CreatedAt, _ = time.Parse(time.DateTime, createdAt)
	p.UpdatedAt, _ = time.Parse(time.DateTime, updatedAt)
	return p, nil
}

func (s *profileStore) GetActive(ctx context.Context) (*Profile, error) {
	return scanProfile(s.db.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE is_active = 1 LIMIT 1`))
}

func (s *profileStore) List(ctx context.Context) ([]*Profile, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+profileColumns+` FROM profiles ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var profiles []*Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func (s *profileStore) Create(ctx context.Context, p *Profile) error {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO profiles (name, timezone, is_active, admin_pin_hash, mqtt_broker)
		VALUES (?, ?, ?, ?, ?)
	`, p.Name, p.Timezone, p.IsActive, p.AdminPINHash, p.MQTTBroker)
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = id
	return nil
}

// Update saves name, timezone, broker and active flag. The admin PIN is
// only changed through SetAdminPIN.
func (s *profileStore) Update(ctx context.Context, p *Profile) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE profiles
		SET name = ?, timezone = ?, is_active = ?, mqtt_broker = ?, updated_at = datetime('now')
		WHERE id = ?
	`, p.Name, p.Timezone, p.IsActive, p.MQTTBroker, p.ID)
	if err != nil {
		return err
	}
	return requireRow(result, ErrProfileNotFound)
}

func (s *profileStore) SetActive(ctx context.Context, id int64) error {
	return s.db.Tx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `UPDATE profiles SET is_active = 0`); err != nil {
			return err
		}
		result, err := tx.ExecContext(ctx, `UPDATE profiles SET is_active = 1 WHERE id = ?`, id)
		if err != nil {
			return err
		}
		return requireRow(result, ErrProfileNotFound)
	})
}

// SetAdminPIN stores a bcrypt hash of pin. An empty pin clears it.
func (s *profileStore) SetAdminPIN(ctx context.Context, id int64, pin string) error {
	hash := ""
	if pin != "" {
		raw, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash admin PIN: %w", err)
		}
		hash = string(raw)
	}
	result, err := s.db.ExecContext(ctx, `
		UPDATE profiles SET admin_pin_hash = ?, updated_at = datetime('now') WHERE id = ?
	`, hash, id)
	if err != nil {
		return err
	}
	return requireRow(result, ErrProfileNotFound)
}

// requireRow returns notFound when result touched no rows.
func requireRow(result sql.Result, notFound error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return notFound
	}
	return nil
}
