package mpris

import (
	"github.com/godbus/dbus/v5"
)

const busInterface = "org.freedesktop.DBus"

// DBusClient is the slice of a session bus connection the router and elements use:
// signal subscription, bus name resolution, and property and method access on players.
//
//go:generate mockgen -destination=mocks/dbus_client_mock.go -package=mocks github.com/genricoloni/tracksync/internal/mpris DBusClient
type DBusClient interface {
	Close() error

	// AddMatchSignal asks the bus daemon to route matching signals to this connection
	AddMatchSignal(options ...dbus.MatchOption) error

	// Signal delivers routed signals to ch
	Signal(ch chan<- *dbus.Signal)

	// ListNames lists every name currently on the bus
	ListNames() ([]string, error)

	// GetNameOwner resolves a well-known name (org.mpris.MediaPlayer2.vlc) to its unique name (:1.45)
	GetNameOwner(name string) (string, error)

	// GetProperty reads a fully qualified property such as
	// "org.mpris.MediaPlayer2.Player.Position" from the object at path on dest
	GetProperty(dest, path, prop string) (dbus.Variant, error)

	// SetProperty writes a fully qualified property, wrapping value in a variant
	SetProperty(dest, path, prop string, value any) error

	// CallMethod invokes a fully qualified method and waits for the reply
	CallMethod(dest, path, method string, args ...any) error
}

// StdDBusClient talks to a real bus through godbus
type StdDBusClient struct {
	conn *dbus.Conn
}

// NewStdDBusClient connects to the session bus, where MPRIS players register
func NewStdDBusClient() (*StdDBusClient, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, err
	}
	return &StdDBusClient{conn: conn}, nil
}

func (c *StdDBusClient) Close() error {
	return c.conn.Close()
}

func (c *StdDBusClient) AddMatchSignal(options ...dbus.MatchOption) error {
	return c.conn.AddMatchSignal(options...)
}

func (c *StdDBusClient) Signal(ch chan<- *dbus.Signal) {
	c.conn.Signal(ch)
}

func (c *StdDBusClient) ListNames() ([]string, error) {
	var names []string
	err := c.callBus("ListNames").Store(&names)
	return names, err
}

func (c *StdDBusClient) GetNameOwner(name string) (string, error) {
	var owner string
	err := c.callBus("GetNameOwner", name).Store(&owner)
	return owner, err
}

func (c *StdDBusClient) GetProperty(dest, path, prop string) (dbus.Variant, error) {
	return c.object(dest, path).GetProperty(prop)
}

func (c *StdDBusClient) SetProperty(dest, path, prop string, value any) error {
	return c.object(dest, path).SetProperty(prop, dbus.MakeVariant(value))
}

func (c *StdDBusClient) CallMethod(dest, path, method string, args ...any) error {
	return c.object(dest, path).Call(method, 0, args...).Err
}

// callBus calls a method on the bus daemon itself
func (c *StdDBusClient) callBus(method string, args ...any) *dbus.Call {
	return c.conn.BusObject().Call(busInterface+"."+method, 0, args...)
}

func (c *StdDBusClient) object(dest, path string) dbus.BusObject {
	return c.conn.Object(dest, dbus.ObjectPath(path))
}

var _ DBusClient = (*StdDBusClient)(nil)
