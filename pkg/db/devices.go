package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/urmzd/autovolt/pkg/device"
)

var (
	// ErrDuplicateMAC indicates another device already has the MAC address
	ErrDuplicateMAC = errors.New("a device with this MAC address already exists")

	// ErrDuplicateSecret indicates a generated secret collided
	ErrDuplicateSecret = errors.New("device secret already in use")
)

// DeviceStore persists device records. Get, Update and Delete return
// device.ErrNotFound for unknown ids.
type DeviceStore interface {
	List(ctx context.Context) ([]*device.Record, error)
	Get(ctx context.Context, id string) (*device.Record, error)
	GetByMAC(ctx context.Context, mac string) (*device.Record, error)
	Create(ctx context.Context, profileID int64, d device.Draft, secret string) (*device.Record, error)
	Update(ctx context.Context, id string, d device.Draft) (*device.Record, error)
	Delete(ctx context.Context, id string) error
	UsedPins(ctx context.Context, id string) (map[int]bool, error)
}

// Devices returns a DeviceStore for this database.
func (db *DB) Devices() DeviceStore {
	return &deviceStore{db: db}
}

type deviceStore struct {
	db *DB
}

const deviceColumns = `id, draft, secret, status, last_seen, created_at, updated_at`

func scanDevice(row rowScanner) (*device.Record, error) {
	rec := &device.Record{}
	var draft, createdAt, updatedAt string
	var lastSeen sql.NullString
	err := row.Scan(&rec.ID, &draft, &rec.Secret, &rec.Status, &lastSeen, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, device.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(draft), &rec.Draft); err != nil {
		return nil, fmt.Errorf("failed to decode device %s: %w", rec.ID, err)
	}
	if lastSeen.Valid {
		if t, err := time.Parse(time.DateTime, lastSeen.String); err == nil {
			rec.LastSeen = &t
		}
	}
	rec.CreatedAt, _ = time.Parse(time.DateTime, createdAt)
	rec.UpdatedAt, _ = time.Parse(time.DateTime, updatedAt)
	return rec, nil
}

func (s *deviceStore) List(ctx context.Context) ([]*device.Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+deviceColumns+` FROM devices ORDER BY name, id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var records []*device.Record
	for rows.Next() {
		rec, err := scanDevice(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *deviceStore) Get(ctx context.Context, id string) (*device.Record, error) {
	return scanDevice(s.db.QueryRowContext(ctx,
		`SELECT `+deviceColumns+` FROM devices WHERE id = ?`, id))
}

// GetByMAC looks a device up by its canonical MAC.
func (s *deviceStore) GetByMAC(ctx context.Context, mac string) (*device.Record, error) {
	canonical, err := device.CanonicalMAC(mac)
	if err != nil {
		return nil, err
	}
	return scanDevice(s.db.QueryRowContext(ctx,
		`SELECT `+deviceColumns+` FROM devices WHERE mac_address = ?`, canonical))
}

// Create stores d under a new id. The caller validates and normalizes d.
func (s *deviceStore) Create(ctx context.Context, profileID int64, d device.Draft, secret string) (*device.Record, error) {
	draft, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to encode device: %w", err)
	}

	id := uuid.NewString()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO devices (id, profile_id, name, mac_address, device_type, draft, secret, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, id, profileID, d.Name, d.MACAddress, string(d.DeviceType), string(draft), secret, device.StatusOffline)
	if err != nil {
		return nil, constraintError(err)
	}
	return s.Get(ctx, id)
}

func (s *deviceStore) Update(ctx context.Context, id string, d device.Draft) (*device.Record, error) {
	draft, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to encode device: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE devices
		SET name = ?, mac_address = ?, device_type = ?, draft = ?, updated_at = datetime('now')
		WHERE id = ?
	`, d.Name, d.MACAddress, string(d.DeviceType), string(draft), id)
	if err != nil {
		return nil, constraintError(err)
	}
	if err := requireRow(result, device.ErrNotFound); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *deviceStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM devices WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(result, device.ErrNotFound)
}

// UsedPins returns the pins held by the stored configuration of device id.
// Pins belong to one board, so other devices never contribute. An empty id
// is a device not yet saved and holds nothing.
func (s *deviceStore) UsedPins(ctx context.Context, id string) (map[int]bool, error) {
	used := map[int]bool{}
	if id == "" {
		return used, nil
	}
	rec, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, pin := range rec.UsedPins() {
		used[pin] = true
	}
	return used, nil
}

// constraintError maps sqlite UNIQUE violations onto sentinel errors.
func constraintError(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "devices.mac_address"):
		return ErrDuplicateMAC
	case strings.Contains(msg, "devices.secret"):
		return ErrDuplicateSecret
	}
	return fmt.Errorf("failed to store device: %w", err)
}
