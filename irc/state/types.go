package state

import (
	"presetbird/irc/networks"
	"presetbird/settings"

	"github.com/lrstanley/girc"
)

type (
	Command struct {
		Action  string
		Message string
	}

	State struct {
		Client    *girc.Client
		Event     girc.Event
		Network   *networks.Network
		Command   Command
		Arguments []Argument
		Config    *settings.Config

		// output replaces the client when set, tests use it to capture replies
		output func(message string)
	}

	Argument struct {
		Key   string
		Value interface{}
	}
)

func (s *State) GetConfig() *settings.Config {
	return s.Config
}
