package camera

// Prober detects whether high-capacity memory is present. Absence is a normal outcome, not an error
type Prober interface {
	FastMemory() bool
}

// StaticProbe answers from a known board capability
type StaticProbe bool

func (p StaticProbe) FastMemory() bool {
	return bool(p)
}

// ProbeFunc adapts a function to a Prober
type ProbeFunc func() bool

func (f ProbeFunc) FastMemory() bool {
	return f()
}
