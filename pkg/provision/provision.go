// Package provision writes a device configuration to a controller over a
// local serial link, for first setup before the device joins the network.
package provision

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urmzd/autovolt/pkg/device"
	"github.com/urmzd/autovolt/pkg/push"
)

var (
	// ErrNoAck indicates the controller never acknowledged the frame
	ErrNoAck = errors.New("no acknowledgement from controller")

	// ErrRejected indicates the controller answered ERR
	ErrRejected = errors.New("controller rejected configuration")
)

// DefaultTimeout is how long to wait for the acknowledgement line.
const DefaultTimeout = 5 * time.Second

// maxLine caps a single received line; firmware log lines are short.
const maxLine = 1024

// Provisioner sends configuration frames over a line-oriented link.
type Provisioner struct {
	link    io.ReadWriter
	timeout time.Duration
}

// New creates a provisioner on link, typically a *Port.
func New(link io.ReadWriter, timeout time.Duration) *Provisioner {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Provisioner{link: link, timeout: timeout}
}

// Send writes the record's frame, secret included, as one JSON line and
// waits for "OK" or "ERR <reason>". Other lines the firmware prints while
// booting are skipped.
func (p *Provisioner) Send(ctx context.Context, rec device.Record) error {
	payload, err := push.BuildFrame(rec, true).Encode()
	if err != nil {
		return fmt.Errorf("failed to encode config frame: %w", err)
	}
	if _, err := p.link.Write(append(payload, '\n')); err != nil {
		return fmt.Errorf("failed to write config frame: %w", err)
	}
	log.Debug().Str("mac", rec.MACAddress).Int("bytes", len(payload)).Msg("Config frame written")

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	return p.awaitAck(ctx)
}

func (p *Provisioner) awaitAck(ctx context.Context) error {
	var pending []byte
	buf := make([]byte, 128)

	for {
		if err := ctx.Err(); err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return ErrNoAck
			}
			return err
		}

		n, err := p.link.Read(buf)
		pending = append(pending, buf[:n]...)

		for {
			idx := bytes.IndexByte(pending, '\n')
			if idx < 0 {
				break
			}
			line := strings.TrimSpace(string(pending[:idx]))
			pending = pending[idx+1:]

			switch {
			case line == "OK":
				return nil
			case line == "ERR" || strings.HasPrefix(line, "ERR "):
				return fmt.Errorf("%w: %s", ErrRejected, strings.TrimSpace(strings.TrimPrefix(line, "ERR")))
			case line != "":
				log.Debug().Str("line", line).Msg("Controller output")
			}
		}
		if len(pending) > maxLine {
			pending = pending[:0]
		}

		if errors.Is(err, io.EOF) {
			return ErrNoAck
		}
		if err != nil {
			return fmt.Errorf("failed to read acknowledgement: %w", err)
		}
	}
}
