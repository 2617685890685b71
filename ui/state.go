package ui

type state int

const (
	stateNone state = iota
	stateConnecting
	stateStreaming
	stateDisconnected
)

func (s state) String() string {
	switch s {
	case stateConnecting:
		return "Connecting"
	case stateStreaming:
		return "Streaming"
	case stateDisconnected:
		return "Disconnected"
	default:
		return "Idle"
	}
}

// next is the state after a stream attempt. A failed attempt from any state ends Disconnected
func (s state) next(ok bool) state {
	if !ok {
		return stateDisconnected
	}
	switch s {
	case stateConnecting:
		return stateStreaming
	case stateStreaming:
		return stateStreaming
	default:
		return stateConnecting
	}
}
