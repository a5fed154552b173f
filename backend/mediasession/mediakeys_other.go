//go:build !windows

package mediasession

// SystemKeys is a stub for platforms without synthesized media keys.
type SystemKeys struct{}

func NewSystemKeys() (*SystemKeys, error) {
	return nil, errUnsupported
}

func (*SystemKeys) Send(MediaKey) {}
