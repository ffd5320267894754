// Package configurator drives one device create/edit session: it holds the
// draft, loads the pin catalog for the chosen board and gates submission on
// schema checks and remote GPIO validation.
package configurator

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/urmzd/autovolt/pkg/device"
	"github.com/urmzd/autovolt/pkg/device/schema"
	"github.com/urmzd/autovolt/pkg/gpio"
)

// State is the submission state of a session.
type State string

// Session states. A submit moves idle -> validating -> valid|invalid; a
// valid draft is persisted and the session closes.
const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateValid      State = "valid"
	StateInvalid    State = "invalid"
	StateClosed     State = "closed"
)

var (
	// ErrClosed indicates the session was closed or already submitted
	ErrClosed = errors.New("session is closed")

	// ErrSubmitInFlight indicates a submit is already running
	ErrSubmitInFlight = errors.New("a submission is already in progress")

	// ErrInvalid indicates the draft failed schema or GPIO validation
	ErrInvalid = errors.New("device configuration is invalid")

	// ErrValidationUnavailable indicates the validator gave no answer
	ErrValidationUnavailable = errors.New("GPIO validation could not be obtained")

	// ErrCatalogUnavailable indicates the pin catalog failed to load
	ErrCatalogUnavailable = errors.New("GPIO pin information is unavailable")

	// ErrPersist indicates the validated draft could not be saved
	ErrPersist = errors.New("device could not be saved")

	// ErrBoardChange indicates Edit tried to change the device type
	ErrBoardChange = errors.New("device type must be changed with SetDeviceType")
)

const retrySuggestion = "Check the connection to the AutoVolt server and try again"

// Session is a single device configuration dialog.
type Session struct {
	provider  device.PinProvider
	persister device.Persister
	validator *schema.Validator

	mu         sync.Mutex
	existing   *device.Record
	draft      device.Draft
	catalog    []gpio.PinInfo
	catalogErr error
	state      State
	fields     map[string][]gpio.Issue
	general    []gpio.Issue
	warnings   []gpio.Issue
	generation uint64
}

// New creates a session. existing is the stored device when editing, or
// nil to start an empty esp32 draft.
func New(provider device.PinProvider, persister device.Persister, validator *schema.Validator, existing *device.Record) *Session {
	s := &Session{
		provider:  provider,
		persister: persister,
		validator: validator,
		existing:  existing,
		state:     StateIdle,
		fields:    map[string][]gpio.Issue{},
	}
	if existing != nil {
		s.draft = existing.Draft.Clone()
	} else {
		s.draft = device.NewDraft(gpio.BoardESP32)
	}
	return s
}

// Open loads the pin catalog for the current board.
func (s *Session) Open(ctx context.Context) error {
	s.mu.Lock()
	board := s.draft.DeviceType
	gen := s.generation
	s.mu.Unlock()

	return s.loadCatalog(ctx, gen, board)
}

// SetDeviceType switches the board and reloads its catalog.
func (s *Session) SetDeviceType(ctx context.Context, board gpio.BoardType) error {
	s.mu.Lock()
	if s.state == StateClosed {
		s.mu.Unlock()
		return ErrClosed
	}
	if err := s.draft.SetDeviceType(board); err != nil {
		s.mu.Unlock()
		return err
	}
	gen := s.generation
	s.mu.Unlock()

	return s.loadCatalog(ctx, gen, board)
}

func (s *Session) loadCatalog(ctx context.Context, gen uint64, board gpio.BoardType) error {
	pins, err := s.provider.PinInfo(ctx, board, s.deviceID())

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation || s.draft.DeviceType != board {
		return nil // superseded by Close or a later board change
	}

	if err != nil {
		log.Warn().Err(err).Str("device_type", string(board)).Msg("Failed to load GPIO pin info")
		s.catalog = nil
		s.catalogErr = err
		s.general = []gpio.Issue{{
			Message:    fmt.Sprintf("Could not load GPIO pin information: %v", err),
			Suggestion: retrySuggestion,
		}}
		return fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}

	s.catalog = pins
	s.catalogErr = nil
	s.general = nil
	return nil
}

// Edit applies fn to the draft. The draft is left unchanged if fn fails or
// changes the device type, which needs a catalog reload.
func (s *Session) Edit(fn func(d *device.Draft) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateClosed {
		return ErrClosed
	}

	working := s.draft.Clone()
	if err := fn(&working); err != nil {
		return err
	}
	if working.DeviceType != s.draft.DeviceType {
		return fmt.Errorf("%w: %s to %s", ErrBoardChange, s.draft.DeviceType, working.DeviceType)
	}
	s.draft = working
	return nil
}

// ReplaceDraft swaps in d as a whole, such as a draft read from a file. When
// d is for another board the catalog of that board is loaded.
func (s *Session) ReplaceDraft(ctx context.Context, d device.Draft) error {
	s.mu.Lock()
	if s.state == StateClosed {
		s.mu.Unlock()
		return ErrClosed
	}
	current := s.draft.DeviceType
	working := d.Clone()
	working.DeviceType = current
	s.draft = working
	s.mu.Unlock()

	if d.DeviceType == current {
		return nil
	}
	return s.SetDeviceType(ctx, d.DeviceType)
}

// AddSwitch appends a default switch.
func (s *Session) AddSwitch(name string) error {
	return s.Edit(func(d *device.Draft) error {
		_, err := d.AddSwitch(device.NewSwitch(name))
		return err
	})
}

// RemoveSwitch deletes the switch at i.
func (s *Session) RemoveSwitch(i int) error {
	return s.Edit(func(d *device.Draft) error { return d.RemoveSwitch(i) })
}

// MoveSwitch moves the switch at i by delta positions.
func (s *Session) MoveSwitch(i, delta int) error {
	return s.Edit(func(d *device.Draft) error { return d.MoveSwitch(i, delta) })
}

// SetMAC stores the MAC as typed, formatted for display.
func (s *Session) SetMAC(input string) error {
	return s.Edit(func(d *device.Draft) error {
		d.MACAddress = device.FormatMAC(input)
		return nil
	})
}

// Draft returns a copy of the current draft.
func (s *Session) Draft() device.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.Clone()
}

// AvailablePins lists picker options for role on the switch at index.
// It returns nil while no catalog is loaded.
func (s *Session) AvailablePins(index int, role gpio.Role) []device.PinOption {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.catalog == nil {
		return nil
	}
	return device.AvailablePins(s.catalog, s.draft, index, role)
}

// State returns the submission state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// FieldErrors returns errors keyed by field, for per-input banners.
func (s *Session) FieldErrors() map[string][]gpio.Issue {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string][]gpio.Issue, len(s.fields))
	for k, v := range s.fields {
		out[k] = append([]gpio.Issue(nil), v...)
	}
	return out
}

// GeneralErrors returns errors not tied to a field, for the form banner.
func (s *Session) GeneralErrors() []gpio.Issue {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]gpio.Issue(nil), s.general...)
}

// Warnings returns the warnings of the last validation. They outlive the
// close that follows a successful save.
func (s *Session) Warnings() []gpio.Issue {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]gpio.Issue(nil), s.warnings...)
}

// Close discards the draft. Results of calls still in flight are dropped.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.close()
	s.warnings = nil
}

// close resets the session. Caller holds mu.
func (s *Session) close() {
	s.generation++
	s.state = StateClosed
	s.draft = device.NewDraft(s.draft.DeviceType)
	s.fields = map[string][]gpio.Issue{}
	s.general = nil
}

func (s *Session) deviceID() string {
	if s.existing == nil {
		return ""
	}
	return s.existing.ID
}
