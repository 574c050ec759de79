package utils

import (
	"fmt"

	"github.com/notargets/gocca"
)

// CreateTestDevice creates a device for testing, preferring parallel
// backends over Serial. Returns an error when no OCCA backend can be
// created, so callers can skip device-dependent tests on machines
// without OCCA installed.
func CreateTestDevice() (*gocca.OCCADevice, error) {
	backends := []string{
		`{"mode": "OpenMP"}`,
		`{"mode": "CUDA", "device_id": 0}`,
		`{"mode": "Serial"}`,
	}

	for _, props := range backends {
		device, err := gocca.NewDevice(props)
		if err == nil {
			fmt.Printf("Created %s Device\n", device.Mode())
			return device, nil
		}
	}

	return nil, fmt.Errorf("no OCCA backend available")
}
