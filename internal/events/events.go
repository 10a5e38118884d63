package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/muurk/wallet-setup/internal/logging"
)

const (
	// Time allowed to complete the WebSocket handshake
	handshakeTimeout = 10 * time.Second

	// Time allowed to read the next pong message from the backend
	pongWait = 60 * time.Second

	// Send pings to the backend with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Time allowed to write a control message
	writeWait = 10 * time.Second

	// Maximum event size accepted from the backend
	maxMessageSize = 64 * 1024

	// Buffered events before the reader blocks
	eventBuffer = 16
)

// Event types and data values sent by the backend
const (
	TypeDevice = "device"

	DataConfirmPending = "confirmPending"
	DataConfirmDone    = "confirmDone"
)

// Event is one frame of the backend event stream
type Event struct {
	Type     string       `json:"type"`
	DeviceID string       `json:"deviceID,omitempty"`
	Data     string       `json:"data"`
	Meta     *ConfirmMeta `json:"meta,omitempty"`
}

// ConfirmMeta describes the confirmation the device is waiting for
type ConfirmMeta struct {
	Title        string `json:"title,omitempty"`
	Prequel      string `json:"prequel,omitempty"`
	Paired       bool   `json:"paired,omitempty"`
	Lock         bool   `json:"lock,omitempty"`
	TouchConfirm *bool  `json:"touchConfirm,omitempty"`
}

// IsConfirmPending reports whether the device started waiting for the user
func (e Event) IsConfirmPending() bool {
	return e.Type == TypeDevice && e.Data == DataConfirmPending
}

// IsConfirmDone reports whether the device stopped waiting for the user
func (e Event) IsConfirmDone() bool {
	return e.Type == TypeDevice && e.Data == DataConfirmDone
}

// EventsURL derives the WebSocket URL from a REST base URL:
// http://host/api/ becomes ws://host/api/events.
func EventsURL(baseURL string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid backend URL %q: %w", baseURL, err)
	}

	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("unsupported backend URL scheme %q", u.Scheme)
	}

	u.Path = strings.TrimSuffix(u.Path, "/") + "/events"
	return u.String(), nil
}

// Subscription is a live connection to the backend event stream
type Subscription struct {
	conn   *websocket.Conn
	events chan Event
	done   chan struct{}
	once   sync.Once
	err    error
	errMu  sync.Mutex
}

// Subscribe connects to the event stream at rawURL. Events are delivered on
// Events() until the context is canceled, Close is called or the backend
// drops the connection.
func Subscribe(ctx context.Context, rawURL string) (*Subscription, error) {
	dialer := websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: handshakeTimeout,
	}

	conn, resp, err := dialer.DialContext(ctx, rawURL, nil)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("event stream handshake failed with status %d: %w", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("failed to connect to event stream: %w", err)
	}

	s := &Subscription{
		conn:   conn,
		events: make(chan Event, eventBuffer),
		done:   make(chan struct{}),
	}

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	go s.readLoop()
	go s.pingLoop(ctx)

	logging.Info("Subscribed to device events", zap.String("url", rawURL))
	return s, nil
}

// Events returns the channel of decoded events. It is closed when the
// subscription ends.
func (s *Subscription) Events() <-chan Event {
	return s.events
}

// Err returns the error that ended the subscription, if any
func (s *Subscription) Err() error {
	s.errMu.Lock()
	defer s.errMu.Unlock()
	return s.err
}

// Close ends the subscription. Safe to call more than once.
func (s *Subscription) Close() error {
	var err error
	s.once.Do(func() {
		close(s.done)
		_ = s.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(writeWait))
		err = s.conn.Close()
	})
	return err
}

func (s *Subscription) setErr(err error) {
	s.errMu.Lock()
	defer s.errMu.Unlock()
	if s.err == nil {
		s.err = err
	}
}

func (s *Subscription) readLoop() {
	defer close(s.events)

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			select {
			case <-s.done:
			default:
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					s.setErr(err)
					logging.Warn("Device event stream closed", zap.Error(err))
				}
			}
			return
		}

		var ev Event
		if err := json.Unmarshal(data, &ev); err != nil {
			logging.Warn("Ignoring malformed device event", zap.Error(err), zap.Int("length", len(data)))
			continue
		}
		logging.LogEvent(ev.Type, ev.DeviceID, ev.Data)

		select {
		case s.events <- ev:
		case <-s.done:
			return
		}
	}
}

func (s *Subscription) pingLoop(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = s.Close()
			return
		case <-s.done:
			return
		case <-ticker.C:
			if err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				if !errors.Is(err, websocket.ErrCloseSent) {
					logging.Debug("Ping failed", zap.Error(err))
				}
				return
			}
		}
	}
}
