package sim

import (
	"net/netip"

	"github.com/labfab/lasercam/network"
)

// Link is a simulated wireless link that associates after a number of polls
type Link struct {
	ReadyAfter int
	Addr       netip.Addr

	polls int
	ssid  string
}

func (l *Link) Connect(c network.Credentials) error {
	l.ssid = c.SSID
	return nil
}

func (l *Link) Connected() bool {
	l.polls++
	return l.ssid != "" && l.polls > l.ReadyAfter
}

func (l *Link) LocalAddr() netip.Addr {
	if !l.Addr.IsValid() {
		return netip.AddrFrom4([4]byte{127, 0, 0, 1})
	}
	return l.Addr
}
