package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"presetbird/text"
)

type Mode string

const (
	ModeSimple   Mode = "simple"
	ModeAdvanced Mode = "advanced"
)

var ErrUnknownMode = errors.New("unknown prompt mode")

const (
	formula = "The formula for a high-quality prompt is:\n" +
		"Style/Art Form + Main Subject + Layered Description of Visual Elements (composition, color and tone, lighting, texture and material) + Environment + Atmosphere + Fine Details + Quality Requirements. "

	singlePrompt = "Your response must consist of exactly 1 complete, concise prompt, ready for direct use in Stable Diffusion or Midjourney, without conversational text, explanations, or extra formatting. "

	randomAdvanced = "You are a creative prompt engineer. Generate exactly 1 random, high-quality, natural English prompt for AI image generation. " +
		formula +
		"Ensure the prompt is unique and varied each time, incorporating diverse styles (e.g., watercolor, cyberpunk, surrealism, anime, photorealism), subjects, and environments. Avoid repeating the same style or subject across generations.\n" +
		singlePrompt +
		"Example outputs:\n" +
		"1. Watercolor, a serene lotus pond with koi fish, soft pastel tones, gentle morning light, delicate ripples on water, lush greenery, tranquil atmosphere, intricate detail, museum-quality artwork.\n" +
		"2. Cyberpunk digital art, a futuristic samurai in a neon-lit city, vibrant blue and pink color palette, reflective wet streets, dynamic composition, high-tech armor details, intense atmosphere, photorealistic quality.\n" +
		"3. Surrealism, a floating island with vibrant flowers, dreamlike swirling skies, soft glowing light, smooth organic textures, mystical atmosphere, ultra-detailed, award-winning artwork.\n"

	randomSimple = "You are an expert prompt creator for AI image generation. " +
		"Randomly generate a concise, natural English prompt suitable for direct use in Stable Diffusion or Midjourney. " +
		"Ensure the prompt is unique and varied each time, exploring diverse themes, styles (e.g., watercolor, cyberpunk, surrealism, anime, photorealism), and subjects. " +
		"Do not add any explanations or extra formatting. Only output the prompt."

	translateSimple = "You are an expert prompt translator for AI image generation. " +
		"If the input is not in English, translate it into concise, natural English suitable as a direct prompt for Stable Diffusion or Midjourney. " +
		"If the input is already in English, only output it as is, without any modification. " +
		"Do not add explanations, background information, or extra formatting. Only output the prompt."

	expandAdvanced = "You are a creative prompt engineer. Your mission is to analyze the provided description and generate exactly 1 high-quality, natural English prompt for AI image generation. " +
		formula +
		"Ensure the prompt incorporates diverse styles and creative interpretations where possible. " +
		singlePrompt +
		"Example input:\n" +
		"a misty mountain village in ink painting style\n" +
		"Example output:\n" +
		"Chinese ink painting, a quiet mountain village among karst peaks shrouded in mist, a river winding through terraced fields, soft diffused lighting, delicate brushwork, serene atmosphere, exquisite detail, masterpiece quality.\n"

	randomRequest = "Generate a random prompt."
)

// Sampling used for prompt generation. A fixed seed gives repeatable
// prompts on providers that support it.
const (
	temperature = 0.8
	topP        = 0.9
)

func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(s)) {
	case "", ModeAdvanced:
		return ModeAdvanced, nil
	case ModeSimple:
		return ModeSimple, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownMode, s)
}

// Messages builds the conversation for Generate. An empty input asks for a
// random prompt.
func Messages(input string, mode Mode) []text.Message {
	input = strings.TrimSpace(input)
	if input == "" {
		system := randomAdvanced
		if mode == ModeSimple {
			system = randomSimple
		}
		return []text.Message{text.System(system), text.User(randomRequest)}
	}

	system := expandAdvanced
	if mode == ModeSimple {
		system = translateSimple
	}
	return []text.Message{text.System(system), text.User(input)}
}

// Generate turns input into an image prompt. Simple mode only translates
// into English, advanced mode expands the description.
func Generate(ctx context.Context, c text.Connector, input string, mode Mode, seed int64) (string, error) {
	out, err := c.Invoke(ctx, Messages(input, mode), text.Options{
		Temperature: temperature,
		TopP:        topP,
		Seed:        seed,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
