package network

import (
	"errors"
	"net"
	"net/netip"
	"time"

	"github.com/labfab/lasercam"
)

// DefaultPollInterval is how often association is checked while waiting
const DefaultPollInterval = 500 * time.Millisecond

// Credentials are the network identifier and shared secret. They are compiled in and used once
type Credentials struct {
	SSID       string
	Passphrase string
}

// Link is a network interface that can be associated with an access point
type Link interface {
	// Connect begins association. It does not wait for it to finish
	Connect(Credentials) error
	// Connected reports whether the link is associated and has an address
	Connected() bool
	// LocalAddr is the address the link was given
	LocalAddr() netip.Addr
}

// BringUp associates the link and blocks until it is reachable. It never gives up: an unattended device
// has nothing better to do than keep trying. Each poll prints a progress dot
func BringUp(link Link, creds Credentials, interval time.Duration, logger lasercam.Logger) netip.Addr {
	return bringUp(link, creds, interval, logger, time.Sleep)
}

func bringUp(link Link, creds Credentials, interval time.Duration, logger lasercam.Logger, sleep func(time.Duration)) netip.Addr {
	if logger == nil {
		logger = lasercam.Discard
	}
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	logger.Println(lasercam.WiFiConnectingLine())

	connectErr := link.Connect(creds)
	if connectErr != nil {
		logger.Println("error connecting: " + connectErr.Error())
	}

	for !link.Connected() {
		sleep(interval)
		logger.Println(".")

		if connectErr != nil {
			connectErr = link.Connect(creds)
			if connectErr != nil {
				logger.Println("error connecting: " + connectErr.Error())
			}
		}
	}

	logger.Println(lasercam.WiFiConnectedLine())
	return link.LocalAddr()
}

var ErrNoAddress = errors.New("no usable network address")

// HostLink is the network of the machine the program runs on. Association is managed by the operating
// system, so Connect does nothing and Connected reports whether a usable IPv4 address exists
type HostLink struct {
	// Interface limits the lookup to one interface. Empty means any
	Interface string
}

func (h *HostLink) Connect(Credentials) error {
	return nil
}

func (h *HostLink) Connected() bool {
	_, err := h.addr()
	return err == nil
}

func (h *HostLink) LocalAddr() netip.Addr {
	addr, _ := h.addr()
	return addr
}

func (h *HostLink) addr() (netip.Addr, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return netip.Addr{}, err
	}

	for _, iface := range ifaces {
		if h.Interface != "" && iface.Name != h.Interface {
			continue
		}
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, a := range addrs {
			prefix, err := netip.ParsePrefix(a.String())
			if err != nil {
				continue
			}
			if ip := prefix.Addr(); ip.Is4() && !ip.IsLinkLocalUnicast() {
				return ip, nil
			}
		}
	}

	return netip.Addr{}, ErrNoAddress
}
