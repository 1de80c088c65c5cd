package websocketPkg

import (
	"VaniAssistant/pkg/pageagent"
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

type IAgentClient interface {
	Run(ctx context.Context) error
	IsConnected() bool
	CloseConnection()
}

type Options struct {
	Token        string
	PingInterval time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	RetryDelay   time.Duration
	// RequestTimeout bounds one request against the local agent.
	RequestTimeout time.Duration
}

// agentClient dials the assistant hub and answers its requests with a local
// page agent.
type agentClient struct {
	url   string
	agent pageagent.Agent
	log   *logrus.Logger
	opts  Options

	mu      sync.Mutex
	writeMu sync.Mutex
	conn    *websocket.Conn
}

func NewAgentClient(url string, agent pageagent.Agent, log *logrus.Logger, opts Options) IAgentClient {
	if opts.PingInterval <= 0 {
		opts.PingInterval = 30 * time.Second
	}
	if opts.ReadTimeout <= 0 {
		opts.ReadTimeout = 2 * opts.PingInterval
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = 5 * time.Second
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = 3 * time.Second
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 10 * time.Second
	}

	return &agentClient{
		url:   url,
		agent: agent,
		log:   log,
		opts:  opts,
	}
}

// Run keeps a connection to the hub open until ctx is cancelled, reconnecting
// after every failure.
func (c *agentClient) Run(ctx context.Context) error {
	for {
		err := c.connect(ctx)
		if err == nil {
			err = c.serve(ctx)
		}

		if ctx.Err() != nil {
			c.CloseConnection()
			return nil
		}

		c.log.WithFields(logrus.Fields{
			"url":   c.url,
			"error": err.Error(),
		}).Warn("Hub connection lost, retrying")

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(c.opts.RetryDelay):
		}
	}
}

func (c *agentClient) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

func (c *agentClient) CloseConnection() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
}

func (c *agentClient) connect(ctx context.Context) error {
	c.CloseConnection()

	header := http.Header{}
	if c.opts.Token != "" {
		header.Set("Authorization", "Bearer "+c.opts.Token)
	}

	dialer := *websocket.DefaultDialer
	dialer.HandshakeTimeout = 10 * time.Second

	conn, _, err := dialer.DialContext(ctx, c.url, header)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", c.url, err)
	}

	conn.SetReadDeadline(time.Now().Add(c.opts.ReadTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(c.opts.ReadTimeout))
	})
	conn.SetPingHandler(func(appData string) error {
		conn.SetReadDeadline(time.Now().Add(c.opts.ReadTimeout))
		c.writeMu.Lock()
		defer c.writeMu.Unlock()
		err := conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(c.opts.WriteTimeout))
		if err != nil {
			c.log.WithField("error", err.Error()).Debug("Error sending pong")
		}
		return nil
	})

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	c.log.WithField("url", c.url).Info("Connected to assistant hub")
	return nil
}

func (c *agentClient) serve(ctx context.Context) error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return errors.New("not connected")
	}

	stop := make(chan struct{})
	defer close(stop)
	go c.keepAlive(conn, stop)

	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-stop:
		}
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			c.mu.Lock()
			if c.conn == conn {
				c.conn = nil
			}
			c.mu.Unlock()
			conn.Close()
			return fmt.Errorf("error reading hub message: %w", err)
		}
		conn.SetReadDeadline(time.Now().Add(c.opts.ReadTimeout))

		go c.answer(ctx, conn, message)
	}
}

func (c *agentClient) answer(ctx context.Context, conn *websocket.Conn, message []byte) {
	id, req, err := pageagent.Decode(message)
	if err != nil {
		c.log.WithField("error", err.Error()).Warn("Undecodable hub request")
		if id == "" {
			return
		}
		c.reply(conn, &pageagent.Response{ID: id, Error: err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(ctx, c.opts.RequestTimeout)
	defer cancel()

	resp, err := c.agent.Send(ctx, req)
	if resp == nil {
		resp = &pageagent.Response{}
	}
	resp.ID = id
	if err != nil {
		resp.Success = false
		resp.Error = pageagent.ErrorCode(err)
	}

	c.log.WithFields(logrus.Fields{
		"request_id": id,
		"kind":       req.Kind(),
		"success":    resp.Success,
	}).Debug("Answered hub request")

	c.reply(conn, resp)
}

func (c *agentClient) reply(conn *websocket.Conn, resp *pageagent.Response) {
	data, err := jsoniter.Marshal(resp)
	if err != nil {
		return
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	conn.SetWriteDeadline(time.Now().Add(c.opts.WriteTimeout))
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		c.log.WithField("error", err.Error()).Warn("Error sending response to hub")
	}
	conn.SetWriteDeadline(time.Time{})
}

func (c *agentClient) keepAlive(conn *websocket.Conn, stop <-chan struct{}) {
	ticker := time.NewTicker(c.opts.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}

		c.writeMu.Lock()
		err := conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(c.opts.WriteTimeout))
		c.writeMu.Unlock()

		if err != nil {
			c.log.WithField("error", err.Error()).Warn("Ping failed, marking connection as dead")
			conn.Close()
			return
		}
	}
}
