//go:build linux

package mpris

// dialSessionBus connects to the user's session bus
func dialSessionBus() (DBusClient, error) {
	return NewStdDBusClient()
}
