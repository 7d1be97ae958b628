package app

import (
	"context"
	"sync"
	"time"

	"healthhub/internal/domain"
	"healthhub/internal/task"
)

// Task kinds started by the services.
const (
	KindSync   = "sync"
	KindExport = "export"
	KindScan   = "scan"
)

var availableDevices = []domain.Device{
	{ID: "apple-watch", Name: "Apple Watch", Kind: "watch", Status: "Available"},
	{ID: "fitbit", Name: "Fitbit", Kind: "tracker", Status: "Available"},
	{ID: "galaxy-watch", Name: "Samsung Galaxy Watch", Kind: "watch", Status: "Available"},
	{ID: "garmin", Name: "Garmin", Kind: "tracker", Status: "Available"},
}

// SyncService pairs a device per user and runs simulated syncs.
type SyncService struct {
	runner *task.Runner
	delay  time.Duration
	now    func() time.Time

	mu    sync.Mutex
	conns map[int64]*domain.Connection
}

// NewSyncService creates a SyncService whose syncs take delay.
func NewSyncService(runner *task.Runner, delay time.Duration) *SyncService {
	return &SyncService{
		runner: runner,
		delay:  delay,
		now:    time.Now,
		conns:  make(map[int64]*domain.Connection),
	}
}

// Devices lists the devices that can be paired.
func (s *SyncService) Devices() []domain.Device {
	return append([]domain.Device(nil), availableDevices...)
}

func findDevice(id string) (*domain.Device, bool) {
	for i := range availableDevices {
		if availableDevices[i].ID == id {
			d := availableDevices[i]
			return &d, true
		}
	}
	return nil, false
}

func (s *SyncService) connLocked(uid int64) *domain.Connection {
	c, ok := s.conns[uid]
	if !ok {
		c = &domain.Connection{Preferences: domain.DefaultSyncPreferences()}
		s.conns[uid] = c
	}
	return c
}

func copyConn(c *domain.Connection) domain.Connection {
	out := *c
	if c.Device != nil {
		d := *c.Device
		out.Device = &d
	}
	if c.LastSyncAt != nil {
		t := *c.LastSyncAt
		out.LastSyncAt = &t
	}
	return out
}

// Connection returns the user's current pairing.
func (s *SyncService) Connection(ctx context.Context) (domain.Connection, error) {
	user, err := requireUser(ctx)
	if err != nil {
		return domain.Connection{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyConn(s.connLocked(user.ID)), nil
}

// Connect pairs deviceID, replacing any previous device. Preferences reset to
// their defaults.
func (s *SyncService) Connect(ctx context.Context, deviceID string) (domain.Connection, error) {
	user, err := requireUser(ctx)
	if err != nil {
		return domain.Connection{}, err
	}
	dev, ok := findDevice(deviceID)
	if !ok {
		return domain.Connection{}, domain.ErrDeviceNotFound
	}
	dev.Status = "Connected"
	s.mu.Lock()
	defer s.mu.Unlock()
	c := &domain.Connection{Device: dev, Preferences: domain.DefaultSyncPreferences()}
	s.conns[user.ID] = c
	return copyConn(c), nil
}

// Disconnect removes the user's pairing. Disconnecting when nothing is paired
// is a no-op.
func (s *SyncService) Disconnect(ctx context.Context) error {
	user, err := requireUser(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.connLocked(user.ID)
	c.Device = nil
	c.LastSyncAt = nil
	return nil
}

// SetPreferences replaces the sync preferences of the paired device.
func (s *SyncService) SetPreferences(ctx context.Context, prefs domain.SyncPreferences) (domain.Connection, error) {
	user, err := requireUser(ctx)
	if err != nil {
		return domain.Connection{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.connLocked(user.ID)
	if !c.Connected() {
		return domain.Connection{}, domain.ErrNoDeviceConnected
	}
	c.Preferences = prefs
	return copyConn(c), nil
}

// StartSync starts a sync task for the paired device. The task waits for the
// configured delay, then records the sync time.
func (s *SyncService) StartSync(ctx context.Context) (*task.Handle, error) {
	user, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	c := s.connLocked(user.ID)
	if !c.Connected() {
		s.mu.Unlock()
		return nil, domain.ErrNoDeviceConnected
	}
	device := c.Device.Name
	metrics := c.Preferences.Metrics()
	s.mu.Unlock()

	return s.runner.Start(KindSync, user.ID, func(ctx context.Context) (any, error) {
		if err := task.Sleep(ctx, s.delay); err != nil {
			return nil, err
		}
		at := s.now()
		s.mu.Lock()
		if cur := s.conns[user.ID]; cur != nil && cur.Connected() {
			cur.LastSyncAt = &at
		}
		s.mu.Unlock()
		return domain.SyncResult{Device: device, Metrics: metrics, SyncedAt: at}, nil
	})
}
