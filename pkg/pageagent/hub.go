package pageagent

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

const textMessage = 1

// Conn is the subset of a websocket connection the hub needs. Both the fiber
// and gorilla connection types satisfy it.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

type agentConn struct {
	id      string
	conn    Conn
	writeMu sync.Mutex
	pending map[string]*Future
}

// Hub routes requests to the most recently connected browser agent and
// matches responses back to their Futures by request id.
type Hub struct {
	log     *logrus.Logger
	timeout time.Duration

	mu     sync.Mutex
	active *agentConn
}

func NewHub(log *logrus.Logger, timeout time.Duration) *Hub {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Hub{log: log, timeout: timeout}
}

func (h *Hub) Connected() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.active != nil
}

// Serve owns conn until it fails. It blocks for the life of the connection.
func (h *Hub) Serve(agentID string, conn Conn) {
	ac := &agentConn{id: agentID, conn: conn, pending: map[string]*Future{}}

	h.mu.Lock()
	previous := h.active
	h.active = ac
	h.mu.Unlock()

	if previous != nil {
		h.log.WithFields(logrus.Fields{
			"agent_id":    agentID,
			"replaced_id": previous.id,
		}).Info("Page agent replaced")
	} else {
		h.log.WithField("agent_id", agentID).Info("Page agent connected")
	}

	defer h.disconnect(ac)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			h.log.WithFields(logrus.Fields{
				"agent_id": agentID,
				"error":    err.Error(),
			}).Info("Page agent disconnected")
			return
		}

		var resp Response
		if err := jsoniter.Unmarshal(data, &resp); err != nil {
			h.log.WithFields(logrus.Fields{
				"agent_id": agentID,
				"error":    err.Error(),
			}).Warn("Discarding malformed page agent message")
			continue
		}

		h.mu.Lock()
		future, ok := ac.pending[resp.ID]
		delete(ac.pending, resp.ID)
		h.mu.Unlock()

		if !ok {
			h.log.WithField("response_id", resp.ID).Debug("Response for unknown or expired request")
			continue
		}
		future.Resolve(&resp, nil)
	}
}

func (h *Hub) disconnect(ac *agentConn) {
	h.mu.Lock()
	if h.active == ac {
		h.active = nil
	}
	pending := ac.pending
	ac.pending = map[string]*Future{}
	h.mu.Unlock()

	for _, f := range pending {
		f.Resolve(nil, fmt.Errorf("%w: page agent disconnected", ErrNoActiveTab))
	}
	_ = ac.conn.Close()
}

// dispatch writes req to the active agent and returns the connection it went
// to, or nil when none was connected, with the Future its response resolves.
func (h *Hub) dispatch(req Request) (*agentConn, string, *Future) {
	future := NewFuture()
	id := uuid.NewString()

	h.mu.Lock()
	ac := h.active
	if ac == nil {
		h.mu.Unlock()
		future.Resolve(nil, fmt.Errorf("%w: no page agent connected", ErrNoActiveTab))
		return nil, id, future
	}
	ac.pending[id] = future
	h.mu.Unlock()

	data, err := Encode(id, req)
	if err == nil {
		ac.writeMu.Lock()
		err = ac.conn.WriteMessage(textMessage, data)
		ac.writeMu.Unlock()
	}
	if err != nil {
		h.forget(ac, id)
		future.Resolve(nil, fmt.Errorf("%w: %v", ErrNoActiveTab, err))
	}

	return ac, id, future
}

func (h *Hub) Send(ctx context.Context, req Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	ac, id, future := h.dispatch(req)
	resp, err := future.Await(ctx)
	if err != nil {
		if ac != nil {
			h.forget(ac, id)
		}

		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, fmt.Errorf("%w: page agent did not answer %s", ErrNoActiveTab, req.Kind())
		}
		return nil, err
	}

	return resp, resp.Err()
}

func (h *Hub) forget(ac *agentConn, id string) {
	h.mu.Lock()
	delete(ac.pending, id)
	h.mu.Unlock()
}
