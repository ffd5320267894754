package db

import (
	"context"
	"errors"
	"fmt"
)

// Settings are operator changes to the active profile. Nil fields are left
// unchanged; an empty AdminPIN clears the PIN and disables secret reveal.
type Settings struct {
	AdminPIN   *string
	MQTTBroker *string
	Listen     *string // host:port
}

// Empty reports whether s changes nothing.
func (s Settings) Empty() bool {
	return s.AdminPIN == nil && s.MQTTBroker == nil && s.Listen == nil
}

// ApplySettings writes s to the active profile.
func (db *DB) ApplySettings(ctx context.Context, s Settings) error {
	profile, err := db.Profiles().GetActive(ctx)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			return ErrNoActiveProfile
		}
		return err
	}

	if s.AdminPIN != nil {
		if err := db.Profiles().SetAdminPIN(ctx, profile.ID, *s.AdminPIN); err != nil {
			return err
		}
	}

	if s.MQTTBroker != nil {
		profile.MQTTBroker = *s.MQTTBroker
		if err := db.Profiles().Update(ctx, profile); err != nil {
			return fmt.Errorf("failed to save MQTT broker: %w", err)
		}
	}

	if s.Listen != nil {
		host, port, err := ParseAddress(*s.Listen)
		if err != nil {
			return err
		}
		a := &APIServer{ProfileID: profile.ID, Host: host, Port: port}
		err = db.APIServers().Update(ctx, a)
		if errors.Is(err, ErrAPIServerNotFound) {
			err = db.APIServers().Create(ctx, a)
		}
		if err != nil {
			return fmt.Errorf("failed to save listen address: %w", err)
		}
	}

	return nil
}
