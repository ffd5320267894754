package configurator

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urmzd/autovolt/pkg/device"
	"github.com/urmzd/autovolt/pkg/device/schema"
	"github.com/urmzd/autovolt/pkg/gpio"
)

// fakeProvider wraps the local catalog and validator so tests can inject
// failures and count calls.
type fakeProvider struct {
	mu          sync.Mutex
	local       *device.LocalProvider
	pinErr      error
	validateErr error
	block       chan struct{}
	pinCalls    int
	validations []gpio.ValidateRequest
}

const (
	waitFor   = 2 * time.Second
	pollEvery = 10 * time.Millisecond
)

func newFakeProvider() *fakeProvider {
	return &fakeProvider{local: device.NewLocalProvider()}
}

func (f *fakeProvider) PinInfo(ctx context.Context, board gpio.BoardType, deviceID string) ([]gpio.PinInfo, error) {
	f.mu.Lock()
	f.pinCalls++
	err := f.pinErr
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return f.local.PinInfo(ctx, board, deviceID)
}

func (f *fakeProvider) ValidateConfig(ctx context.Context, req gpio.ValidateRequest) (gpio.ValidationResult, error) {
	f.mu.Lock()
	f.validations = append(f.validations, req)
	err, block := f.validateErr, f.block
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	if err != nil {
		return gpio.ValidationResult{}, err
	}
	return f.local.ValidateConfig(ctx, req)
}

func (f *fakeProvider) validationCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.validations)
}

type fakePersister struct {
	mu      sync.Mutex
	err     error
	created []device.Draft
	updated map[string]device.Draft
}

func (p *fakePersister) CreateDevice(_ context.Context, d device.Draft) (*device.Record, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return nil, p.err
	}
	p.created = append(p.created, d)
	return &device.Record{ID: "dev-new", Draft: d, Status: device.StatusOffline}, nil
}

func (p *fakePersister) UpdateDevice(_ context.Context, id string, d device.Draft) (*device.Record, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return nil, p.err
	}
	if p.updated == nil {
		p.updated = map[string]device.Draft{}
	}
	p.updated[id] = d
	return &device.Record{ID: id, Draft: d}, nil
}

func newSession(t *testing.T, existing *device.Record) (*Session, *fakeProvider, *fakePersister) {
	t.Helper()
	provider := newFakeProvider()
	persister := &fakePersister{}
	s := New(provider, persister, schema.NewValidator(), existing)
	require.NoError(t, s.Open(context.Background()))
	return s, provider, persister
}

// fillIdentity sets the fields every draft needs to pass the schema.
func fillIdentity(d *device.Draft) error {
	d.Name = "Lab 3 Controller"
	d.MACAddress = device.FormatMAC("aabbccddeeff")
	d.IPAddress = "192.168.1.50"
	d.Location = "Block A"
	return nil
}

func TestSubmit_TwoRelaysSaved(t *testing.T) {
	s, provider, persister := newSession(t, nil)
	require.NoError(t, s.Edit(fillIdentity))
	require.NoError(t, s.AddSwitch("Fan"))
	require.NoError(t, s.Edit(func(d *device.Draft) error {
		d.Switches[0].GPIO = gpio.PinPtr(16)
		d.Switches[1].GPIO = gpio.PinPtr(17)
		return nil
	}))

	rec, err := s.Submit(context.Background())
	require.NoError(t, err)
	require.NotNil(t, rec)

	assert.Equal(t, 1, provider.validationCount())
	require.Len(t, persister.created, 1)
	saved := persister.created[0]
	assert.Equal(t, "aa:bb:cc:dd:ee:ff", saved.MACAddress)
	for _, sw := range saved.Switches {
		assert.NotEmpty(t, sw.ID)
		assert.Equal(t, *sw.GPIO, *sw.RelayGPIO)
	}

	assert.Equal(t, StateClosed, s.State())
	assert.Empty(t, s.Draft().MACAddress, "expected draft reset after save")
}

func TestSubmit_WarningsKeptAfterSave(t *testing.T) {
	s, _, persister := newSession(t, nil)
	require.NoError(t, s.Edit(fillIdentity))
	require.NoError(t, s.AddSwitch("Fan"))
	require.NoError(t, s.Edit(func(d *device.Draft) error {
		d.Switches[0].GPIO = gpio.PinPtr(16)
		d.Switches[1].GPIO = gpio.PinPtr(2)
		return nil
	}))

	_, err := s.Submit(context.Background())
	require.NoError(t, err)
	require.Len(t, persister.created, 1)
	assert.Equal(t, StateClosed, s.State())

	warnings := s.Warnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, "switches.1.gpio", warnings[0].Field)
	assert.Equal(t, 2, *warnings[0].Pin)

	s.Close()
	assert.Empty(t, s.Warnings())
}

func TestSubmit_ManualConflictBlocksSave(t *testing.T) {
	s, provider, persister := newSession(t, nil)
	require.NoError(t, s.Edit(fillIdentity))
	require.NoError(t, s.AddSwitch("Fan"))
	require.NoError(t, s.Edit(func(d *device.Draft) error {
		d.Switches[0].GPIO = gpio.PinPtr(16)
		d.Switches[1].GPIO = gpio.PinPtr(17)
		d.Switches[1].ManualSwitchEnabled = true
		d.Switches[1].ManualSwitchGPIO = gpio.PinPtr(16)
		return nil
	}))

	_, err := s.Submit(context.Background())
	require.ErrorIs(t, err, ErrInvalid)

	assert.Equal(t, 1, provider.validationCount())
	assert.Empty(t, persister.created)
	assert.Equal(t, StateInvalid, s.State())

	fields := s.FieldErrors()
	require.Contains(t, fields, "switches.1.manualSwitchGpio")
	assert.Contains(t, fields["switches.1.manualSwitchGpio"][0].Message, "already assigned")
}

func TestSubmit_SchemaFailureSkipsNetwork(t *testing.T) {
	s, provider, _ := newSession(t, nil)
	require.NoError(t, s.Edit(func(d *device.Draft) error {
		d.Switches[0].GPIO = gpio.PinPtr(16)
		d.Notifications = device.Notifications{Enabled: true, AfterTime: "25:00", DaysOfWeek: []int{1}}
		return nil
	}))

	_, err := s.Submit(context.Background())
	require.ErrorIs(t, err, ErrInvalid)
	assert.Zero(t, provider.validationCount())

	fields := s.FieldErrors()
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "deviceNotifications.afterTime")
}

func TestSubmit_ValidatorUnavailable(t *testing.T) {
	s, provider, persister := newSession(t, nil)
	require.NoError(t, s.Edit(fillIdentity))
	require.NoError(t, s.Edit(func(d *device.Draft) error {
		d.Switches[0].GPIO = gpio.PinPtr(16)
		return nil
	}))
	provider.validateErr = errors.New("connection refused")

	_, err := s.Submit(context.Background())
	require.ErrorIs(t, err, ErrValidationUnavailable)
	assert.Empty(t, persister.created)

	general := s.GeneralErrors()
	require.Len(t, general, 1)
	assert.Contains(t, general[0].Message, "could not be obtained")
	assert.NotEmpty(t, general[0].Suggestion)

	// retry succeeds once the server is back
	provider.validateErr = nil
	_, err = s.Submit(context.Background())
	require.NoError(t, err)
	assert.Len(t, persister.created, 1)
}

func TestSubmit_IDsStableAcrossRetries(t *testing.T) {
	s, provider, _ := newSession(t, nil)
	require.NoError(t, s.Edit(fillIdentity))
	require.NoError(t, s.Edit(func(d *device.Draft) error {
		d.Switches[0].ID = ""
		d.Switches[0].GPIO = gpio.PinPtr(16)
		return nil
	}))
	provider.validateErr = errors.New("timeout")

	_, _ = s.Submit(context.Background())
	_, _ = s.Submit(context.Background())

	require.Len(t, provider.validations, 2)
	first := provider.validations[0].Switches[0].ID
	assert.NotEmpty(t, first)
	assert.Equal(t, first, provider.validations[1].Switches[0].ID)
}

func TestSubmit_PersistFailureKeepsDraft(t *testing.T) {
	s, _, persister := newSession(t, nil)
	require.NoError(t, s.Edit(fillIdentity))
	require.NoError(t, s.Edit(func(d *device.Draft) error {
		d.Switches[0].GPIO = gpio.PinPtr(16)
		return nil
	}))
	persister.err = errors.New("duplicate MAC")

	_, err := s.Submit(context.Background())
	require.ErrorIs(t, err, ErrPersist)
	assert.Equal(t, StateIdle, s.State())
	assert.Equal(t, "Lab 3 Controller", s.Draft().Name)
	require.Len(t, s.GeneralErrors(), 1)
}

func TestSubmit_InFlightRejected(t *testing.T) {
	s, provider, persister := newSession(t, nil)
	require.NoError(t, s.Edit(fillIdentity))
	require.NoError(t, s.Edit(func(d *device.Draft) error {
		d.Switches[0].GPIO = gpio.PinPtr(16)
		return nil
	}))
	provider.block = make(chan struct{})

	done := make(chan error, 1)
	go func() {
		_, err := s.Submit(context.Background())
		done <- err
	}()

	require.Eventually(t, func() bool { return s.State() == StateValidating && provider.validationCount() == 1 }, waitFor, pollEvery)
	_, err := s.Submit(context.Background())
	assert.ErrorIs(t, err, ErrSubmitInFlight)

	close(provider.block)
	require.NoError(t, <-done)
	assert.Len(t, persister.created, 1)
}

func TestClose_DropsLateResult(t *testing.T) {
	s, provider, persister := newSession(t, nil)
	require.NoError(t, s.Edit(fillIdentity))
	require.NoError(t, s.Edit(func(d *device.Draft) error {
		d.Switches[0].GPIO = gpio.PinPtr(16)
		return nil
	}))
	provider.block = make(chan struct{})

	done := make(chan error, 1)
	go func() {
		_, err := s.Submit(context.Background())
		done <- err
	}()
	require.Eventually(t, func() bool { return provider.validationCount() == 1 }, waitFor, pollEvery)

	s.Close()
	close(provider.block)

	assert.ErrorIs(t, <-done, ErrClosed)
	assert.Empty(t, persister.created)
	assert.Equal(t, StateClosed, s.State())
	assert.Empty(t, s.FieldErrors())
}

func TestCatalogFailureBlocksSubmit(t *testing.T) {
	provider := newFakeProvider()
	provider.pinErr = errors.New("503 service unavailable")
	s := New(provider, &fakePersister{}, schema.NewValidator(), nil)

	err := s.Open(context.Background())
	require.ErrorIs(t, err, ErrCatalogUnavailable)
	assert.Nil(t, s.AvailablePins(0, gpio.RoleRelay))
	require.Len(t, s.GeneralErrors(), 1)

	_, err = s.Submit(context.Background())
	assert.ErrorIs(t, err, ErrCatalogUnavailable)
	assert.Zero(t, provider.validationCount())

	provider.pinErr = nil
	require.NoError(t, s.Open(context.Background()))
	assert.NotEmpty(t, s.AvailablePins(0, gpio.RoleRelay))
	assert.Empty(t, s.GeneralErrors())
}

func TestSetDeviceType_ReloadsCatalog(t *testing.T) {
	s, provider, _ := newSession(t, nil)
	require.NoError(t, s.SetDeviceType(context.Background(), gpio.BoardESP8266))
	assert.Equal(t, 2, provider.pinCalls)

	for _, o := range s.AvailablePins(0, gpio.RoleRelay) {
		assert.LessOrEqual(t, o.Pin, 16, "expected esp8266 pins only")
	}

	for i := 0; i < 3; i++ {
		require.NoError(t, s.AddSwitch("extra"))
	}
	assert.ErrorIs(t, s.AddSwitch("fifth"), device.ErrSwitchLimit)
}

func TestEdit_RefusesBoardChange(t *testing.T) {
	s, _, _ := newSession(t, nil)
	err := s.Edit(func(d *device.Draft) error {
		d.DeviceType = gpio.BoardESP8266
		return nil
	})
	assert.ErrorIs(t, err, ErrBoardChange)
	assert.Equal(t, gpio.BoardESP32, s.Draft().DeviceType)
}

func TestReplaceDraft_LoadsCatalogOfNewBoard(t *testing.T) {
	existing := &device.Record{ID: "dev-3", Draft: device.NewDraft(gpio.BoardESP32)}
	require.NoError(t, fillIdentity(&existing.Draft))
	for _, pin := range []int{17, 18, 19, 21, 22} {
		sw := device.NewSwitch("extra")
		sw.GPIO = gpio.PinPtr(pin)
		_, err := existing.AddSwitch(sw)
		require.NoError(t, err)
	}
	existing.Switches[0].GPIO = gpio.PinPtr(16)

	s, provider, persister := newSession(t, existing)

	d := device.NewDraft(gpio.BoardESP8266)
	require.NoError(t, fillIdentity(&d))
	d.Switches[0].GPIO = gpio.PinPtr(4)
	require.NoError(t, s.ReplaceDraft(context.Background(), d))

	assert.Equal(t, 2, provider.pinCalls)
	assert.Equal(t, gpio.BoardESP8266, s.Draft().DeviceType)
	for _, o := range s.AvailablePins(0, gpio.RoleRelay) {
		assert.LessOrEqual(t, o.Pin, 16, "expected esp8266 pins only")
	}

	_, err := s.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, gpio.BoardESP8266, persister.updated["dev-3"].DeviceType)

	assert.ErrorIs(t, s.ReplaceDraft(context.Background(), d), ErrClosed)
}

func TestEdit_UpdateSendsExistingConfig(t *testing.T) {
	existing := &device.Record{ID: "dev-7", Draft: device.NewDraft(gpio.BoardESP32)}
	require.NoError(t, fillIdentity(&existing.Draft))
	existing.Switches[0].GPIO = gpio.PinPtr(18)

	s, provider, persister := newSession(t, existing)
	require.NoError(t, s.Edit(func(d *device.Draft) error {
		d.Switches[0].GPIO = gpio.PinPtr(19)
		return nil
	}))

	_, err := s.Submit(context.Background())
	require.NoError(t, err)

	require.Len(t, provider.validations, 1)
	req := provider.validations[0]
	assert.True(t, req.IsUpdate)
	assert.Equal(t, 18, *req.ExistingConfig[0].GPIO)
	assert.Contains(t, persister.updated, "dev-7")
	assert.Equal(t, 18, *existing.Switches[0].GPIO, "expected stored record untouched")
}

func TestSetMAC_FormatsAsTyped(t *testing.T) {
	s, _, _ := newSession(t, nil)
	require.NoError(t, s.SetMAC("aabbc"))
	assert.Equal(t, "AA:BB:C", s.Draft().MACAddress)
}

func TestRemoveSwitch_ProtectsFirst(t *testing.T) {
	s, _, _ := newSession(t, nil)
	assert.ErrorIs(t, s.RemoveSwitch(0), device.ErrProtectedSwitch)
	assert.Len(t, s.Draft().Switches, 1)
}
