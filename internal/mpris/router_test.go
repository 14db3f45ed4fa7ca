package mpris

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/genricoloni/tracksync/internal/domain"
	"github.com/genricoloni/tracksync/internal/mpris/mocks"
	"github.com/godbus/dbus/v5"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func newTestRouter(names map[string]string) *Router {
	r := NewRouter(zap.NewNop())
	r.conn = &noopDBusClient{} // Prevent panic if code tries to call DBus
	r.running = true
	for unique, wellKnown := range names {
		r.playerNames[unique] = wellKnown
	}
	return r
}

func expectSignal(t *testing.T, r *Router, want domain.PlayerSignal) {
	t.Helper()
	select {
	case got := <-r.Signals():
		if got != want {
			t.Errorf("expected %+v, got %+v", want, got)
		}
	case <-time.After(time.Second):
		t.Fatal("Timeout: signal was not forwarded")
	}
}

func expectNoSignal(t *testing.T, r *Router) {
	t.Helper()
	select {
	case got := <-r.Signals():
		t.Errorf("Unexpected signal forwarded: %+v", got)
	default:
	}
}

// TestHandlePropertiesChanged_HappyPath verifies a player property change is forwarded under its well-known name
func TestHandlePropertiesChanged_HappyPath(t *testing.T) {
	r := newTestRouter(map[string]string{":1.100": "org.mpris.MediaPlayer2.spotify"})

	r.handlePropertiesChanged(&dbus.Signal{
		Name:   signalPropertiesChanged,
		Sender: ":1.100",
		Body: []any{
			playerInterface,
			map[string]dbus.Variant{
				"PlaybackStatus": dbus.MakeVariant("Playing"),
			},
			[]string{},
		},
	})

	expectSignal(t, r, domain.PlayerSignal{
		Player: "org.mpris.MediaPlayer2.spotify",
		Kind:   domain.SignalPropertiesChanged,
	})
}

func TestHandlePropertiesChanged_EdgeCases(t *testing.T) {
	tests := []struct {
		name string
		body []any
	}{
		{
			name: "Empty Body",
			body: []any{},
		},
		{
			name: "Single Argument",
			body: []any{playerInterface},
		},
		{
			name: "Wrong Interface",
			body: []any{"org.mpris.MediaPlayer2", map[string]dbus.Variant{}, []string{}},
		},
		{
			name: "Interface Not A String",
			body: []any{42, map[string]dbus.Variant{}, []string{}},
		},
		{
			name: "Properties Not A Map",
			body: []any{playerInterface, "invalid", []string{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(nil)
			r.handlePropertiesChanged(&dbus.Signal{Name: signalPropertiesChanged, Sender: ":1.7", Body: tt.body})
			expectNoSignal(t, r)
		})
	}
}

func TestHandleNameOwnerChanged(t *testing.T) {
	tests := []struct {
		name             string
		initialMappings  map[string]string
		body             []any
		expectedMappings map[string]string
		expectedSignal   *domain.PlayerSignal
	}{
		{
			name:            "New Player Appears",
			initialMappings: map[string]string{},
			body:            []any{"org.mpris.MediaPlayer2.vlc", "", ":1.200"},
			expectedMappings: map[string]string{
				":1.200": "org.mpris.MediaPlayer2.vlc",
			},
			expectedSignal: &domain.PlayerSignal{Player: "org.mpris.MediaPlayer2.vlc", Kind: domain.SignalPropertiesChanged},
		},
		{
			name: "Player Disappears",
			initialMappings: map[string]string{
				":1.200": "org.mpris.MediaPlayer2.vlc",
			},
			body:             []any{"org.mpris.MediaPlayer2.vlc", ":1.200", ""},
			expectedMappings: map[string]string{},
			expectedSignal:   &domain.PlayerSignal{Player: "org.mpris.MediaPlayer2.vlc", Kind: domain.SignalPlayerLost},
		},
		{
			name: "Ownership Transfer",
			initialMappings: map[string]string{
				":1.200": "org.mpris.MediaPlayer2.vlc",
			},
			body: []any{"org.mpris.MediaPlayer2.vlc", ":1.200", ":1.300"},
			expectedMappings: map[string]string{
				":1.300": "org.mpris.MediaPlayer2.vlc",
			},
		},
		{
			name:             "Not An MPRIS Player",
			initialMappings:  map[string]string{},
			body:             []any{"org.freedesktop.Notifications", "", ":1.5"},
			expectedMappings: map[string]string{},
		},
		{
			name:             "Truncated Body",
			initialMappings:  map[string]string{},
			body:             []any{"org.mpris.MediaPlayer2.vlc", ""},
			expectedMappings: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(tt.initialMappings)

			r.handleNameOwnerChanged(&dbus.Signal{Name: signalNameOwnerChanged, Body: tt.body})

			if len(r.playerNames) != len(tt.expectedMappings) {
				t.Errorf("Mapping count mismatch: want %d, got %d", len(tt.expectedMappings), len(r.playerNames))
			}
			for k, v := range tt.expectedMappings {
				if r.playerNames[k] != v {
					t.Errorf("Mapping mismatch for %s: want %s, got %s", k, v, r.playerNames[k])
				}
			}

			if tt.expectedSignal != nil {
				expectSignal(t, r, *tt.expectedSignal)
			} else {
				expectNoSignal(t, r)
			}
		})
	}
}

func TestGetPlayerName(t *testing.T) {
	r := newTestRouter(map[string]string{":1.100": "org.mpris.MediaPlayer2.spotify"})

	if got := r.getPlayerName(":1.100"); got != "org.mpris.MediaPlayer2.spotify" {
		t.Errorf("expected well-known name, got %s", got)
	}
	if got := r.getPlayerName(":1.999"); got != ":1.999" {
		t.Errorf("expected unique name fallback, got %s", got)
	}
}

func TestDetectExistingPlayers(t *testing.T) {
	tests := []struct {
		name             string
		setupMock        func(*mocks.MockDBusClient)
		expectError      bool
		expectedMappings map[string]string
	}{
		{
			name: "Success - Detects Spotify and VLC",
			setupMock: func(m *mocks.MockDBusClient) {
				m.EXPECT().ListNames().Return([]string{
					"org.freedesktop.DBus",
					"org.mpris.MediaPlayer2.spotify",
					"org.mpris.MediaPlayer2.vlc",
					"com.example.OtherApp",
				}, nil)
				m.EXPECT().GetNameOwner("org.mpris.MediaPlayer2.spotify").Return(":1.100", nil)
				m.EXPECT().GetNameOwner("org.mpris.MediaPlayer2.vlc").Return(":1.200", nil)
			},
			expectedMappings: map[string]string{
				":1.100": "org.mpris.MediaPlayer2.spotify",
				":1.200": "org.mpris.MediaPlayer2.vlc",
			},
		},
		{
			name: "Owner Lookup Fails For One Player",
			setupMock: func(m *mocks.MockDBusClient) {
				m.EXPECT().ListNames().Return([]string{
					"org.mpris.MediaPlayer2.spotify",
					"org.mpris.MediaPlayer2.vlc",
				}, nil)
				m.EXPECT().GetNameOwner("org.mpris.MediaPlayer2.spotify").Return("", fmt.Errorf("name has no owner"))
				m.EXPECT().GetNameOwner("org.mpris.MediaPlayer2.vlc").Return(":1.200", nil)
			},
			expectedMappings: map[string]string{
				":1.200": "org.mpris.MediaPlayer2.vlc",
			},
		},
		{
			name: "Failure - ListNames fails",
			setupMock: func(m *mocks.MockDBusClient) {
				m.EXPECT().ListNames().Return(nil, fmt.Errorf("bus error"))
			},
			expectError:      true,
			expectedMappings: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockClient := mocks.NewMockDBusClient(ctrl)
			tt.setupMock(mockClient)

			r := NewRouter(zap.NewNop())
			r.conn = mockClient
			r.running = true

			err := r.detectExistingPlayers()
			if tt.expectError && err == nil {
				t.Error("Expected error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}

			if len(r.playerNames) != len(tt.expectedMappings) {
				t.Errorf("Mapping count mismatch: want %d, got %d", len(tt.expectedMappings), len(r.playerNames))
			}
			for k, v := range tt.expectedMappings {
				if r.playerNames[k] != v {
					t.Errorf("Mapping mismatch for %s: want %s, got %s", k, v, r.playerNames[k])
				}
			}
		})
	}
}

func TestPlayer(t *testing.T) {
	t.Run("Not Started", func(t *testing.T) {
		r := NewRouter(zap.NewNop())
		_, err := r.Player("org.mpris.MediaPlayer2.vlc")
		if !errors.Is(err, domain.ErrBusNotStarted) {
			t.Errorf("expected ErrBusNotStarted before Start, got %v", err)
		}
	})

	t.Run("Unknown Player", func(t *testing.T) {
		r := newTestRouter(map[string]string{":1.200": "org.mpris.MediaPlayer2.vlc"})
		_, err := r.Player("org.mpris.MediaPlayer2.spotify")
		if !errors.Is(err, domain.ErrPlayerNotFound) {
			t.Errorf("expected ErrPlayerNotFound, got %v", err)
		}
	})

	t.Run("Known Player Is Cached", func(t *testing.T) {
		r := newTestRouter(map[string]string{":1.200": "org.mpris.MediaPlayer2.vlc"})
		first, err := r.Player("org.mpris.MediaPlayer2.vlc")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		second, err := r.Player("org.mpris.MediaPlayer2.vlc")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if first != second {
			t.Error("expected the same element on repeated lookups")
		}
		if name := first.(*Element).Name(); name != "org.mpris.MediaPlayer2.vlc" {
			t.Errorf("expected element for vlc, got %s", name)
		}
	})
}

func TestStartStop(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockClient := mocks.NewMockDBusClient(ctrl)

	var busSignals chan<- *dbus.Signal
	mockClient.EXPECT().AddMatchSignal(gomock.Any()).Return(nil).Times(3)
	mockClient.EXPECT().ListNames().Return([]string{"org.mpris.MediaPlayer2.vlc"}, nil)
	mockClient.EXPECT().GetNameOwner("org.mpris.MediaPlayer2.vlc").Return(":1.200", nil)
	mockClient.EXPECT().Signal(gomock.Any()).Do(func(ch chan<- *dbus.Signal) { busSignals = ch })
	mockClient.EXPECT().Close().Return(nil)

	r := NewRouter(zap.NewNop())
	r.dial = func() (DBusClient, error) { return mockClient, nil }

	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	// Second Start is a no-op
	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("second Start failed: %v", err)
	}

	busSignals <- &dbus.Signal{Name: signalSeeked, Sender: ":1.200", Body: []any{int64(5_000_000)}}
	expectSignal(t, r, domain.PlayerSignal{Player: "org.mpris.MediaPlayer2.vlc", Kind: domain.SignalSeeked})

	if err := r.Stop(context.Background()); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if _, ok := <-r.Signals(); ok {
		t.Error("expected signals channel to be closed after Stop")
	}
	// Second Stop is a no-op
	if err := r.Stop(context.Background()); err != nil {
		t.Errorf("second Stop failed: %v", err)
	}
}

func TestStart_DialFailure(t *testing.T) {
	r := NewRouter(zap.NewNop())
	dialErr := errors.New("no session bus")
	r.dial = func() (DBusClient, error) { return nil, dialErr }

	err := r.Start(context.Background())
	if !errors.Is(err, dialErr) {
		t.Errorf("expected wrapped dial error, got %v", err)
	}
}

func TestStart_CancelledContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockClient := mocks.NewMockDBusClient(ctrl)
	mockClient.EXPECT().Close().Return(nil)

	r := NewRouter(zap.NewNop())
	r.dial = func() (DBusClient, error) { return mockClient, nil }

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := r.Start(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

type noopDBusClient struct{}

func (n *noopDBusClient) Close() error                             { return nil }
func (n *noopDBusClient) AddMatchSignal(...dbus.MatchOption) error { return nil }
func (n *noopDBusClient) Signal(chan<- *dbus.Signal)               {}
func (n *noopDBusClient) ListNames() ([]string, error)             { return []string{}, nil }
func (n *noopDBusClient) GetNameOwner(string) (string, error)      { return "", fmt.Errorf("noop") }
func (n *noopDBusClient) GetProperty(string, string, string) (dbus.Variant, error) {
	return dbus.Variant{}, fmt.Errorf("noop")
}
func (n *noopDBusClient) SetProperty(string, string, string, any) error { return nil }
func (n *noopDBusClient) CallMethod(string, string, string, ...any) error {
	return nil
}
