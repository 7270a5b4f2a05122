package platform

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGatewayDispatch(t *testing.T) {
	var (
		joined  []Guild
		left    []uint64
		created []Invite
		members []Member
	)
	handlers := Handlers{
		GuildJoined: func(ctx context.Context, g Guild) error {
			joined = append(joined, g)
			return nil
		},
		GuildLeft: func(ctx context.Context, guildID uint64) error {
			left = append(left, guildID)
			return nil
		},
		InviteCreated: func(ctx context.Context, i Invite) error {
			created = append(created, i)
			return nil
		},
		MemberJoined: func(ctx context.Context, m Member) error {
			members = append(members, m)
			return nil
		},
	}
	g := NewGateway("", "", handlers, zap.NewNop().Sugar())
	ctx := context.Background()

	g.dispatch(ctx, []byte(`{"t":"guild_join","d":{"id":7,"name":"lounge"}}`))
	g.dispatch(ctx, []byte(`{"t":"guild_leave","d":{"guild_id":8}}`))
	g.dispatch(ctx, []byte(`{"t":"invite_create","d":{"code":"abc","guild_id":7,"uses":0,"max_uses":5,"inviter":{"id":9}}}`))
	g.dispatch(ctx, []byte(`{"t":"member_join","d":{"user_id":100,"guild_id":7}}`))

	require.Equal(t, []Guild{{ID: 7, Name: "lounge"}}, joined)
	require.Equal(t, []uint64{8}, left)
	require.Len(t, created, 1)
	require.Equal(t, "abc", created[0].Code)
	require.Equal(t, &User{ID: 9}, created[0].Inviter)
	require.Equal(t, []Member{{UserID: 100, GuildID: 7}}, members)
}

func TestGatewayReadyFailureStopsDispatch(t *testing.T) {
	// When reconciliation fails the connection must be torn down and retried;
	// no live event may be dispatched against unhydrated state.
	var readyCalls, dispatched int32
	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		if _, _, err := conn.ReadMessage(); err != nil { // identify
			return
		}
		conn.WriteMessage(websocket.TextMessage, []byte(`{"t":"member_join","d":{"user_id":100,"guild_id":7}}`))
		conn.ReadMessage() // hold the connection until the client goes away
	}))
	defer server.Close()

	handlers := Handlers{
		Ready: func(ctx context.Context) error {
			atomic.AddInt32(&readyCalls, 1)
			return errors.New("store unavailable")
		},
		MemberJoined: func(ctx context.Context, m Member) error {
			atomic.AddInt32(&dispatched, 1)
			return nil
		},
	}
	url := "ws" + strings.TrimPrefix(server.URL, "http")
	g := NewGateway(url, "token", handlers, zap.NewNop().Sugar())

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	require.Error(t, g.Run(ctx))

	require.GreaterOrEqual(t, atomic.LoadInt32(&readyCalls), int32(1))
	require.Equal(t, int32(0), atomic.LoadInt32(&dispatched))
}

func TestGatewayDispatchIgnoresNoise(t *testing.T) {
	g := NewGateway("", "", Handlers{}, zap.NewNop().Sugar())
	ctx := context.Background()

	// Unknown event types, registered-but-nil handlers and broken frames
	// must not panic
	g.dispatch(ctx, []byte(`{"t":"typing_start","d":{}}`))
	g.dispatch(ctx, []byte(`{"t":"guild_join","d":{"id":7}}`))
	g.dispatch(ctx, []byte(`not json`))
}
