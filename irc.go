package main

import (
	"context"
	"sync"
	"time"

	"presetbird/birdbase"
	"presetbird/http/uploaders/birdhole"
	"presetbird/image/comfyui"
	"presetbird/irc/commands"
	"presetbird/irc/networks"
	"presetbird/irc/state"
	"presetbird/logger"
	"presetbird/queue"
	"presetbird/settings"

	"github.com/lrstanley/girc"
)

const reconnectDelay = 30 * time.Second

func runIrc(ctx context.Context, config *settings.Config) error {
	selections, err := birdbase.NewSelectionStore(config.Database.CacheSize)
	if err != nil {
		return err
	}

	q := queue.New(config.PresetBird.MaxQueueSize)
	go q.ProcessQueue(ctx)

	handler := &commands.Handler{
		Selections: selections,
		Queue:      q,
		Render: func(ctx context.Context, job comfyui.Job) (*comfyui.Result, error) {
			return comfyui.Render(ctx, config.ComfyUi, job, nil)
		},
	}
	if config.Text.Enabled() {
		connector, err := newConnector(config.Text)
		if err != nil {
			return err
		}
		handler.Text = connector
	}
	if config.Birdhole.Enabled() {
		handler.Upload = func(ctx context.Context, file, description string) (string, error) {
			return birdhole.BirdHole(ctx, file, description, config.Birdhole)
		}
	}

	logger.Info("presetbird connecting to IRC, please wait")

	var waitGroup sync.WaitGroup
	for name, network := range config.Networks {
		if !network.Enabled {
			continue
		}
		if network.NetworkName == "" {
			network.NetworkName = name
		}

		waitGroup.Add(1)
		go func(network networks.Network) {
			defer waitGroup.Done()
			ircClient(ctx, &network, config, handler)
		}(network)
	}

	waitGroup.Wait()
	if n := q.Len(); n > 0 {
		logger.Warn("Dropping queued renders", "count", n)
		q.Clear()
	}
	return nil
}

// ircClient keeps one network connected until ctx is done.
func ircClient(ctx context.Context, network *networks.Network, config *settings.Config, handler *commands.Handler) {
	log := logger.Network(network.NetworkName)

	onMessage := func(c *girc.Client, e girc.Event) {
		s, ok := state.New(c, e, network, config)
		if !ok {
			return
		}
		log.Debug("Command received", "state", s.String(), "nick", s.Nick())
		handler.Dispatch(s)
	}

	for {
		if err := network.Connect(ctx, onMessage); err != nil {
			log.Error("IRC connection error", "error", err)
		}

		select {
		case <-ctx.Done():
			log.Info("Disconnected")
			return
		case <-time.After(reconnectDelay):
			log.Info("Reconnecting")
		}
	}
}
