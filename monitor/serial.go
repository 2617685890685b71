package monitor

import (
	"errors"
	"fmt"
	"strings"

	"go.bug.st/serial"
)

var ErrNoUSBSerial = errors.New("no USB serial ports found")

// SerialPorts lists the ports a board is likely attached to
func SerialPorts() ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("error listing serial ports: %w", err)
	}

	usb := usbPorts(ports)
	if len(usb) == 0 {
		return nil, ErrNoUSBSerial
	}

	return usb, nil
}

func usbPorts(ports []string) []string {
	var result []string
	for _, p := range ports {
		lower := strings.ToLower(p)
		if strings.Contains(lower, "usb") || strings.Contains(lower, "acm") {
			result = append(result, p)
		}
	}
	return result
}

// OpenPort opens name in 8N1 mode
func OpenPort(name string, baudRate int) (serial.Port, error) {
	mode := &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(name, mode)
	if err != nil {
		return nil, fmt.Errorf("error opening serial port %q: %w", name, err)
	}

	return port, nil
}
