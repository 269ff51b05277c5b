package networks

import (
	"context"
	"runtime"
	"testing"
	"time"

	"presetbird/irc/servers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRandomServer(t *testing.T) {
	n := Network{}
	assert.Nil(t, n.GetRandomServer())

	n.Servers = []servers.Server{{Host: "a", Port: 6667}, {Host: "b", Port: 6697}}
	for i := 0; i < 10; i++ {
		s := n.GetRandomServer()
		require.NotNil(t, s)
		assert.Contains(t, []string{"a", "b"}, s.Host)
	}
}

func TestClientConfig(t *testing.T) {
	n := Network{Nick: "presetbird"}
	config := n.clientConfig(&servers.Server{Host: "irc.example.org", Port: 6697, SSL: true})

	assert.Equal(t, "presetbird", config.User)
	assert.Equal(t, "presetbird", config.Name)
	assert.Equal(t, 6697, config.Port)
	require.NotNil(t, config.TLSConfig)
	assert.Equal(t, "irc.example.org", config.TLSConfig.ServerName)

	plain := n.clientConfig(&servers.Server{Host: "irc.example.org", Port: 6667})
	assert.Nil(t, plain.TLSConfig)
}

func TestIgnoredNicksAndTrigger(t *testing.T) {
	n := Network{IgnoredNicks: []string{"spambot"}}
	assert.True(t, n.IsNickIgnored("spambot"))
	assert.False(t, n.IsNickIgnored("bird"))

	assert.Equal(t, "!", n.GetActionTrigger("!"))
	n.ActionTrigger = "."
	assert.Equal(t, ".", n.GetActionTrigger("!"))
}

func TestConnectReleasesWatcher(t *testing.T) {
	n := Network{
		NetworkName: "refused",
		Nick:        "presetbird",
		Servers:     []servers.Server{{Host: "127.0.0.1", Port: 1}},
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	before := runtime.NumGoroutine()
	for i := 0; i < 20; i++ {
		assert.Error(t, n.Connect(ctx, nil))
	}

	assert.Eventually(t, func() bool {
		return runtime.NumGoroutine() <= before+2
	}, 2*time.Second, 20*time.Millisecond)
}
