package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/hommiefi/hommiefi-api/internal/observability"
)

const relaySendBufferSize = 32

// RelayConnectionOptions wraps metadata extracted during the HTTP upgrade.
type RelayConnectionOptions struct {
	UserID        string
	CorrelationID string
	Context       context.Context
}

// RelayService fans websocket frames out to every connected client. A frame
// received from one socket is parsed as JSON and forwarded to all other open
// sockets; frames that are not valid JSON are dropped without closing the
// connection. Server-side events enter the same fan-out through Push.
type RelayService interface {
	ServeConnection(conn *websocket.Conn, opts RelayConnectionOptions)
	Push(ctx context.Context, event interface{})
	Start(ctx context.Context)
}

type relayService struct {
	redis        *redis.Client
	redisChannel string
	nats         *nats.Conn
	natsSubject  string
	logger       zerolog.Logger
	hub          *relayHub
	nodeID       string
}

// relayHub keeps track of active websocket clients and handles broadcasting.
type relayHub struct {
	mu      sync.RWMutex
	clients map[*relayClient]struct{}
	log     zerolog.Logger
}

type relayClient struct {
	conn    *websocket.Conn
	send    chan json.RawMessage
	options RelayConnectionOptions
	service *relayService
	closed  chan struct{}
	once    sync.Once
}

// relayEvent crosses node boundaries. Source lets each node skip frames it
// already delivered locally.
type relayEvent struct {
	Source  string          `json:"source"`
	Payload json.RawMessage `json:"payload"`
	SentAt  time.Time       `json:"sentAt"`
}

// NewRelayService creates the websocket relay. Redis and NATS are optional;
// when either is configured, frames are republished so clients attached to
// other nodes receive them too.
func NewRelayService(redisClient *redis.Client, channelBase string, natsConn *nats.Conn, logger zerolog.Logger) RelayService {
	hub := &relayHub{
		clients: make(map[*relayClient]struct{}),
		log:     logger.With().Str("component", "relay_hub").Logger(),
	}

	redisChannel := ""
	natsSubject := ""
	if channelBase != "" {
		redisChannel = channelBase + ":relay"
		natsSubject = strings.ReplaceAll(channelBase, ":", ".") + ".relay"
	}

	return &relayService{
		redis:        redisClient,
		redisChannel: redisChannel,
		nats:         natsConn,
		natsSubject:  natsSubject,
		logger:       logger.With().Str("component", "relay_service").Logger(),
		hub:          hub,
		nodeID:       uuid.NewString(),
	}
}

func (s *relayService) Start(ctx context.Context) {
	if s.redis != nil && s.redisChannel != "" {
		go s.consumeRedis(ctx)
	}
	if s.nats != nil && s.natsSubject != "" {
		go s.consumeNATS(ctx)
	}
}

func (s *relayService) ServeConnection(conn *websocket.Conn, opts RelayConnectionOptions) {
	client := &relayClient{
		conn:    conn,
		send:    make(chan json.RawMessage, relaySendBufferSize),
		options: opts,
		service: s,
		closed:  make(chan struct{}),
	}

	s.hub.register(client)
	observability.RelayConnections().Inc()
	defer observability.RelayConnections().Dec()

	go client.writer()
	client.reader()
}

// Push delivers a server-side event to every connected client on every node.
func (s *relayService) Push(ctx context.Context, event interface{}) {
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to marshal relay event")
		return
	}

	s.hub.broadcast(payload, nil)
	observability.RelayMessages().WithLabelValues("broadcast").Inc()
	if err := s.publish(ctx, payload); err != nil {
		s.logger.Warn().Err(err).Msg("failed to publish relay event")
	}
}

// forward handles one frame read from a client socket. Invalid JSON is
// dropped silently; the sender never receives its own frame back.
func (s *relayService) forward(ctx context.Context, sender *relayClient, data []byte) {
	if !json.Valid(data) {
		observability.RelayMessages().WithLabelValues("dropped_invalid").Inc()
		s.logger.Debug().Str("user_id", sender.options.UserID).Msg("dropping non-json relay frame")
		return
	}

	payload := json.RawMessage(data)
	s.hub.broadcast(payload, sender)
	observability.RelayMessages().WithLabelValues("broadcast").Inc()
	if err := s.publish(ctx, payload); err != nil {
		s.logger.Warn().Err(err).Msg("failed to publish relay frame")
	}
}

func (s *relayService) publish(ctx context.Context, payload json.RawMessage) error {
	if (s.redis == nil || s.redisChannel == "") && (s.nats == nil || s.natsSubject == "") {
		return nil
	}

	event := relayEvent{
		Source:  s.nodeID,
		Payload: payload,
		SentAt:  time.Now().UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if s.redis != nil && s.redisChannel != "" {
		if err := s.redis.Publish(ctx, s.redisChannel, data).Err(); err != nil {
			return err
		}
	}

	if s.nats != nil && s.natsSubject != "" {
		if err := s.nats.Publish(s.natsSubject, data); err != nil {
			return err
		}
	}

	return nil
}

func (s *relayService) consumeRedis(ctx context.Context) {
	pubsub := s.redis.Subscribe(ctx, s.redisChannel)
	defer func() {
		_ = pubsub.Close()
	}()
	for {
		msg, err := pubsub.ReceiveMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			s.logger.Error().Err(err).Msg("relay redis subscription closed")
			return
		}
		s.handleEvent([]byte(msg.Payload))
	}
}

func (s *relayService) consumeNATS(ctx context.Context) {
	sub, err := s.nats.QueueSubscribe(s.natsSubject, "hommiefi-relay", func(msg *nats.Msg) {
		s.handleEvent(msg.Data)
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to subscribe to nats relay subject")
		return
	}
	go func() {
		<-ctx.Done()
		if err := sub.Drain(); err != nil {
			s.logger.Warn().Err(err).Msg("failed to drain relay nats subscription")
		}
	}()
}

func (s *relayService) handleEvent(data []byte) {
	var event relayEvent
	if err := json.Unmarshal(data, &event); err != nil {
		s.logger.Warn().Err(err).Msg("invalid relay event")
		return
	}

	if event.Source == s.nodeID {
		return
	}

	s.hub.broadcast(event.Payload, nil)
	observability.RelayMessages().WithLabelValues("broadcast").Inc()
}

func (h *relayHub) register(client *relayClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client] = struct{}{}
	h.log.Debug().Str("user_id", client.options.UserID).Msg("relay client connected")
}

func (h *relayHub) unregister(client *relayClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, client)
	h.log.Debug().Str("user_id", client.options.UserID).Msg("relay client disconnected")
}

// broadcast queues the payload on every client except the sender. Slow
// consumers lose the frame instead of stalling the hub.
func (h *relayHub) broadcast(payload json.RawMessage, sender *relayClient) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		if client == sender {
			continue
		}
		select {
		case client.send <- payload:
		default:
			observability.RelayMessages().WithLabelValues("dropped_slow").Inc()
			h.log.Warn().Str("user_id", client.options.UserID).Msg("dropping relay frame for slow client")
		}
	}
}

func (c *relayClient) reader() {
	defer c.close()

	connCtx := c.options.Context
	if connCtx == nil {
		connCtx = context.Background()
	}

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			c.service.logger.Debug().Err(err).Msg("relay read loop ended")
			return
		}
		c.service.forward(connCtx, c, data)
	}
}

func (c *relayClient) writer() {
	defer c.close()

	for {
		select {
		case payload, ok := <-c.send:
			if !ok {
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				c.service.logger.Debug().Err(err).Msg("relay write loop terminated")
				return
			}
		case <-time.After(30 * time.Second):
			if err := c.conn.WriteMessage(websocket.PingMessage, []byte("keepalive")); err != nil {
				c.service.logger.Debug().Err(err).Msg("relay ping failed")
				return
			}
		case <-c.closed:
			return
		}
	}
}

func (c *relayClient) close() {
	c.once.Do(func() {
		close(c.closed)
		c.service.hub.unregister(c)
		_ = c.conn.Close()
	})
}
