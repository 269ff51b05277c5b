package state

import (
	"fmt"
	"strconv"
	"strings"

	"presetbird/irc/networks"
	"presetbird/settings"

	"github.com/lrstanley/girc"
)

// New builds the state for a channel message. ok is false when the message
// is not addressed to the bot.
func New(client *girc.Client, event girc.Event, network *networks.Network, config *settings.Config) (*State, bool) {
	s := &State{
		Client:  client,
		Event:   event,
		Network: network,
		Config:  config,
	}

	trigger := network.GetActionTrigger(config.PresetBird.ActionTrigger)
	msg := strings.TrimSpace(event.Last())
	if !strings.HasPrefix(msg, trigger) || len(msg) == len(trigger) {
		return nil, false
	}

	action, message, _ := strings.Cut(strings.TrimPrefix(msg, trigger), " ")
	s.Command = Command{
		Action:  strings.ToLower(action),
		Message: strings.TrimSpace(message),
	}
	s.ParseArguments()
	return s, true
}

// WithOutput sends replies to fn instead of the IRC client.
func (s *State) WithOutput(fn func(message string)) *State {
	s.output = fn
	return s
}

func (s *State) String() string {
	return girc.Fmt(fmt.Sprintf("{b}Command{b}: %s, {b}Message{b}: %s, {b}Arguments{b}: %v",
		s.Command.Action,
		s.Command.Message,
		s.Arguments))
}

func (s *State) reply(message string) {
	if s.output != nil {
		s.output(message)
		return
	}
	s.Client.Cmd.Reply(s.Event, message)
}

func (s *State) Send(response string) {
	s.reply(girc.Fmt(response))
}

func (s *State) SendError(response string) {
	s.reply(girc.Fmt("{b}{red}[ERROR] {reset}" + response))
}

func (s *State) SendSuccess(response string) {
	s.reply(girc.Fmt("{b}{green}[SUCCESS] {reset}" + response))
}

func (s *State) SendInfo(response string) {
	s.reply(girc.Fmt("{b}{blue}[INFO] {reset}" + response))
}

func (s *State) Action() string {
	return s.Command.Action
}

func (s *State) Message() string {
	return s.Command.Message
}

func (s *State) IsEmptyMessage() bool {
	return s.Command.Message == ""
}

func (s *State) Nick() string {
	if s.Event.Source == nil {
		return ""
	}
	return s.Event.Source.Name
}

func (s *State) GetActionTrigger() string {
	if s.Network == nil {
		return s.Config.PresetBird.ActionTrigger
	}
	return s.Network.GetActionTrigger(s.Config.PresetBird.ActionTrigger)
}

// UserCacheKey identifies the sender across nick changes.
func (s *State) UserCacheKey(extra string) string {
	var ident, host, network string
	if s.Event.Source != nil {
		ident, host = s.Event.Source.Ident, s.Event.Source.Host
	}
	if s.Network != nil {
		network = s.Network.NetworkName
	}
	return ident + host + network + extra
}

func (s *State) FindArgument(name string, def interface{}) interface{} {
	for _, arg := range s.Arguments {
		if arg.Key == name {
			return arg.Value
		}
	}
	return def
}

func (s *State) GetStringArg(name, def string) (string, bool) {
	val := s.FindArgument(name, def)
	str, ok := val.(string)
	if !ok {
		return def, false
	}
	return str, true
}

func (s *State) GetIntArg(name string, def int) (int, bool) {
	val := s.FindArgument(name, def)
	if strVal, ok := val.(string); ok {
		intVal, err := strconv.Atoi(strVal)
		if err == nil {
			return intVal, true
		}
	}

	intVal, ok := val.(int)
	if !ok {
		return def, false
	}
	return intVal, true
}

func (s *State) GetBoolArg(name string) bool {
	val := s.FindArgument(name, false)
	boolVal, _ := val.(bool)
	return boolVal
}

// ParseArguments extracts key-value and boolean arguments from the message.
// Arguments are expected in the format: --key=value, --key="a value with spaces", or --verbose.
// Whatever is left becomes the new message.
func (s *State) ParseArguments() {
	if s.Arguments == nil {
		s.Arguments = make([]Argument, 0)
	}

	words := strings.Fields(s.Message())
	var newMessageWords []string
	i := 0

	for i < len(words) {
		word := words[i]

		if !strings.HasPrefix(word, "--") || len(word) == 2 {
			newMessageWords = append(newMessageWords, word)
			i++
			continue
		}

		parts := strings.SplitN(word[2:], "=", 2)
		key := parts[0]

		if len(parts) == 1 {
			// Boolean flag like --verbose
			s.Arguments = append(s.Arguments, Argument{Key: key, Value: true})
			i++
			continue
		}

		valueStr := parts[1]
		if len(valueStr) >= 2 &&
			((strings.HasPrefix(valueStr, "'") && strings.HasSuffix(valueStr, "'")) ||
				(strings.HasPrefix(valueStr, "\"") && strings.HasSuffix(valueStr, "\""))) {
			// Quoted value on the same word, like --key="value"
			s.Arguments = append(s.Arguments, Argument{Key: key, Value: valueStr[1 : len(valueStr)-1]})
			i++
			continue
		}

		if strings.HasPrefix(valueStr, "'") || strings.HasPrefix(valueStr, "\"") {
			// Quoted value that spans words, like --key="a b c"
			quoteChar := valueStr[:1]
			valueParts := []string{valueStr[1:]}
			i++
			for i < len(words) {
				part := words[i]
				if strings.HasSuffix(part, quoteChar) {
					valueParts = append(valueParts, strings.TrimSuffix(part, quoteChar))
					break
				}
				valueParts = append(valueParts, part)
				i++
			}
			s.Arguments = append(s.Arguments, Argument{Key: key, Value: strings.Join(valueParts, " ")})
			i++
			continue
		}

		s.Arguments = append(s.Arguments, Argument{Key: key, Value: valueStr})
		i++
	}

	s.Command.Message = strings.Join(newMessageWords, " ")
}
