package networks

import (
	"context"
	"crypto/rand"
	"crypto/tls"
	"errors"
	"fmt"
	"math/big"

	"presetbird/irc/servers"
	"presetbird/logger"

	"github.com/lrstanley/girc"
)

func (n *Network) String() string {
	return fmt.Sprintf("{b}Enabled{b}: %t, {b}NetworkName{b}: %s, {b}Nick{b}: %s, {b}Channels{b}: %d, {b}Servers{b}: %d",
		n.Enabled,
		n.NetworkName,
		n.Nick,
		len(n.Channels),
		len(n.Servers))
}

func (n *Network) GetRandomServer() *servers.Server {
	if len(n.Servers) == 0 {
		return nil
	}
	// Use crypto/rand for secure random number generation
	randomIndex, err := rand.Int(rand.Reader, big.NewInt(int64(len(n.Servers))))
	if err != nil {
		return &n.Servers[0]
	}
	return &n.Servers[randomIndex.Int64()]
}

func (n *Network) IsNickIgnored(nick string) bool {
	for _, ignoredNick := range n.IgnoredNicks {
		if ignoredNick == nick {
			return true
		}
	}
	return false
}

// GetActionTrigger returns the network trigger, or fallback when unset.
func (n *Network) GetActionTrigger(fallback string) string {
	if n.ActionTrigger == "" {
		return fallback
	}
	return n.ActionTrigger
}

func (n *Network) clientConfig(server *servers.Server) girc.Config {
	user, name := n.User, n.Name
	if user == "" {
		user = n.Nick
	}
	if name == "" {
		name = n.Nick
	}

	config := girc.Config{
		Server:     server.Host,
		Port:       server.Port,
		ServerPass: server.Pass,
		Nick:       n.Nick,
		User:       user,
		Name:       name,
		Version:    n.Version,
		SSL:        server.SSL,
	}
	if server.SSL {
		config.TLSConfig = &tls.Config{
			ServerName:         server.Host,
			InsecureSkipVerify: server.SkipSslVerify,
		}
	}
	return config
}

// Connect dials a random server of the network, joins its channels and hands
// every PRIVMSG to handler. It blocks until the connection ends or ctx is done.
func (n *Network) Connect(ctx context.Context, handler func(*girc.Client, girc.Event)) error {
	server := n.GetRandomServer()
	if server == nil {
		return errors.New("network has no servers")
	}

	log := logger.Network(n.NetworkName)
	client := girc.New(n.clientConfig(server))

	client.Handlers.Add(girc.CONNECTED, func(c *girc.Client, e girc.Event) {
		log.Info("Connected", "server", server.String())
		if n.NickServPass != "" {
			c.Cmd.Message("NickServ", "IDENTIFY "+n.NickServPass)
		}
		c.Cmd.Join(n.Channels...)
	})

	client.Handlers.Add(girc.PRIVMSG, func(c *girc.Client, e girc.Event) {
		if e.Source == nil || n.IsNickIgnored(e.Source.Name) {
			return
		}
		handler(c, e)
	})

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			client.Close()
		case <-done:
		}
	}()

	log.Info("Connecting", "server", server.String(), "ssl", server.SSL)
	if err := client.Connect(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("connection to %s failed: %w", server.String(), err)
	}
	return nil
}
