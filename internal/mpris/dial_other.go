//go:build !linux

package mpris

import "fmt"

// dialSessionBus fails on platforms without an MPRIS session bus
func dialSessionBus() (DBusClient, error) {
	return nil, fmt.Errorf("MPRIS players are only reachable on Linux systems")
}
