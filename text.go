package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"presetbird/extension"
	"presetbird/settings"
	"presetbird/text"
	"presetbird/text/gemini"
	"presetbird/text/openrouter"
	"presetbird/text/prompt"
)

// newConnector builds the language model client the config selects.
func newConnector(config settings.TextConfig) (text.Connector, error) {
	switch config.Provider {
	case "gemini":
		return gemini.New(config.Gemini)
	case "openrouter":
		return openrouter.New(config.OpenRouter)
	case "":
		return nil, errors.New("no text provider configured, set text.provider")
	}
	return nil, fmt.Errorf("unknown text provider %q", config.Provider)
}

func runPrompt(ctx context.Context, args []string, connector text.Connector, out io.Writer) error {
	fs := flag.NewFlagSet("prompt", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	mode := fs.String("mode", string(prompt.ModeAdvanced), "simple or advanced")
	seed := fs.Int64("seed", 0, "seed for repeatable prompts")
	kontext := fs.String("kontext", "", "write an editing instruction with this preset instead")
	instruction := fs.String("instruction", "", "extra edit instruction for -kontext")
	translate := fs.String("translate", "", "translate the input into this language instead")
	if err := fs.Parse(args); err != nil {
		return err
	}
	input := strings.Join(fs.Args(), " ")

	display, err := newDisplay(extension.DefaultRegistry(), out)
	if err != nil {
		return err
	}

	var name, result string
	switch {
	case *translate != "":
		if input == "" {
			return fmt.Errorf("prompt: -translate needs text: %w", errUsage)
		}
		name = "translate " + *translate
		result, err = prompt.Translate(ctx, connector, input, *translate)
	case *kontext != "":
		name = "kontext " + *kontext
		result, err = prompt.Kontext(ctx, connector, input, *instruction, *kontext)
	default:
		m, parseErr := prompt.ParseMode(*mode)
		if parseErr != nil {
			return parseErr
		}
		name = "prompt " + string(m)
		result, err = prompt.Generate(ctx, connector, input, m, *seed)
	}
	if err != nil {
		return err
	}

	display(name, []string{result})
	return nil
}
