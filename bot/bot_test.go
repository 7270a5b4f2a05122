package bot

import (
	"testing"

	"botbase/config"
	"botbase/db"
	"botbase/models"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestBot(t *testing.T) *Bot {
	t.Helper()
	instance, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	db.Instance = instance
	models.Init()
	return New(zap.NewNop().Sugar())
}

func TestGuildPrefix(t *testing.T) {
	b := newTestBot(t)

	// No custom prefix yet
	require.Equal(t, config.DEFAULT_PREFIX, b.GuildPrefix(7))

	// Setting one invalidates the memoized default
	require.NoError(t, b.SetGuildPrefix(7, "?"))
	require.Equal(t, "?", b.GuildPrefix(7))

	// Other guilds are unaffected
	require.Equal(t, config.DEFAULT_PREFIX, b.GuildPrefix(8))
}

func TestInviterUnknown(t *testing.T) {
	b := newTestBot(t)

	_, ok := b.Inviter(7, 100)
	require.False(t, ok)
}
