package platform

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// event frame as sent by the gateway
type frame struct {
	T string          `json:"t"`
	D json.RawMessage `json:"d"`
}

type identify struct {
	Op        string `json:"op"`
	Token     string `json:"token"`
	SessionID string `json:"session_id"`
}

// Gateway consumes the platform's websocket event stream and dispatches typed
// events to the registered handlers, one event at a time. It reconnects with
// exponential backoff and calls the Ready handler after every (re)connect so
// state can be reconciled again.
type Gateway struct {
	url       string
	token     string
	sessionID string
	handlers  Handlers
	logger    *zap.SugaredLogger
}

func NewGateway(url, token string, handlers Handlers, logger *zap.SugaredLogger) *Gateway {
	return &Gateway{
		url:       url,
		token:     token,
		sessionID: uuid.NewString(),
		handlers:  handlers,
		logger:    logger,
	}
}

// Run blocks until ctx is cancelled.
func (g *Gateway) Run(ctx context.Context) error {
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 0 // keep reconnecting forever
	operation := func() error {
		err := g.runOnce(ctx, bo)
		if ctx.Err() != nil {
			return backoff.Permanent(ctx.Err())
		}
		g.logger.Warnf("gateway connection lost: %v", err)
		return err
	}
	return backoff.Retry(operation, backoff.WithContext(bo, ctx))
}

func (g *Gateway) runOnce(ctx context.Context, bo *backoff.ExponentialBackOff) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, g.url, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := conn.WriteJSON(identify{Op: "identify", Token: g.token, SessionID: g.sessionID}); err != nil {
		return err
	}
	g.logger.Infof("gateway connected, session %s", g.sessionID)
	// State must be reconciled before any live event is dispatched. A ready
	// failure tears the connection down so the backoff loop retries it.
	if g.handlers.Ready != nil {
		if err := g.handlers.Ready(ctx); err != nil {
			return fmt.Errorf("ready handler: %w", err)
		}
	}
	bo.Reset()

	// Close the socket when ctx goes away so ReadMessage unblocks
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	// Main read cycle
	for {
		mt, message, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		if string(message) == "ping" {
			conn.WriteMessage(mt, []byte("pong"))
			continue
		}
		if string(message) == "pong" {
			continue
		}
		g.dispatch(ctx, message)
	}
}

func (g *Gateway) dispatch(ctx context.Context, message []byte) {
	f := frame{}
	if err := json.Unmarshal(message, &f); err != nil {
		g.logger.Warnf("undecodable gateway frame: %v", err)
		return
	}
	var err error
	switch f.T {
	case "guild_join":
		guild := Guild{}
		if err = json.Unmarshal(f.D, &guild); err == nil && g.handlers.GuildJoined != nil {
			err = g.handlers.GuildJoined(ctx, guild)
		}
	case "guild_leave":
		payload := struct {
			GuildID uint64 `json:"guild_id"`
		}{}
		if err = json.Unmarshal(f.D, &payload); err == nil && g.handlers.GuildLeft != nil {
			err = g.handlers.GuildLeft(ctx, payload.GuildID)
		}
	case "invite_create":
		invite := Invite{}
		if err = json.Unmarshal(f.D, &invite); err == nil && g.handlers.InviteCreated != nil {
			err = g.handlers.InviteCreated(ctx, invite)
		}
	case "invite_delete":
		invite := Invite{}
		if err = json.Unmarshal(f.D, &invite); err == nil && g.handlers.InviteDeleted != nil {
			err = g.handlers.InviteDeleted(ctx, invite)
		}
	case "member_join":
		member := Member{}
		if err = json.Unmarshal(f.D, &member); err == nil && g.handlers.MemberJoined != nil {
			err = g.handlers.MemberJoined(ctx, member)
		}
	case "member_remove":
		member := Member{}
		if err = json.Unmarshal(f.D, &member); err == nil && g.handlers.MemberRemoved != nil {
			err = g.handlers.MemberRemoved(ctx, member)
		}
	default:
		g.logger.Debugf("ignoring gateway event %q", f.T)
		return
	}
	if err != nil {
		g.logger.Errorf("handling %s event: %v", f.T, err)
	}
}
