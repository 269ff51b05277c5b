package networks

import (
	"presetbird/irc/servers"
)

type (
	Network struct {
		Enabled       bool             `toml:"enabled"`
		NetworkName   string           `toml:"networkName"`
		Nick          string           `toml:"nick" validate:"required"`
		User          string           `toml:"user"`
		Name          string           `toml:"name"`
		NickServPass  string           `toml:"nickServPass"`
		Version       string           `toml:"version"`
		ActionTrigger string           `toml:"actionTrigger"`
		IgnoredNicks  []string         `toml:"ignoredNicks"`
		Servers       []servers.Server `toml:"servers" validate:"required,min=1,dive"`
		Channels      []string         `toml:"channels"`
	}
)
