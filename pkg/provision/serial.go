package provision

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"go.bug.st/serial"
)

// pollInterval bounds each blocking read so cancellation is noticed.
const pollInterval = 200 * time.Millisecond

// Port wraps a USB serial connection to a controller.
type Port struct {
	port serial.Port
	mu   sync.Mutex
}

// OpenPort opens portPath at 115200 baud, 8N1.
func OpenPort(portPath string) (*Port, error) {
	mode := &serial.Mode{
		BaudRate: 115200,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(portPath, mode)
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", portPath, err)
	}

	// RTS and DTR drive EN and IO0 on ESP dev boards; holding them low keeps
	// the chip running instead of resetting it into the bootloader.
	if err := port.SetDTR(false); err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("clear DTR: %w", err)
	}
	if err := port.SetRTS(false); err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("clear RTS: %w", err)
	}
	if err := port.SetReadTimeout(pollInterval); err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("set read timeout: %w", err)
	}

	log.Info().Str("port", portPath).Msg("Serial port opened")

	return &Port{port: port}, nil
}

// Write sends raw bytes to the serial port.
func (p *Port) Write(data []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.port.Write(data)
}

// Read reads raw bytes. It returns 0, nil when the poll interval elapses
// with nothing received.
func (p *Port) Read(buf []byte) (int, error) {
	return p.port.Read(buf)
}

// Close closes the serial port.
func (p *Port) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.port.Close()
}

// ListPorts returns the serial ports present on this machine.
func ListPorts() ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("list serial ports: %w", err)
	}
	return ports, nil
}
