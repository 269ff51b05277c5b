package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"presetbird/text"
)

var ErrUnknownPreset = errors.New("unknown kontext preset")

const (
	kontextIntro = "You are a creative prompt engineer. Your mission is to analyze the provided image and generate a distinct image transformation instruction. "
	kontextOutro = "Output only the transformation instruction, without any explanations, numbering, or extra text."

	DefaultKontextPreset = "Teleport"
)

// KontextPreset is an editing task for instruction based image models.
type KontextPreset struct {
	Name string
	Task string
}

var kontextPresets = []KontextPreset{
	{"Teleport", "Teleport the subject to a random location, scenario and/or style. Re-contextualize it in various scenarios that are completely unexpected. " +
		"Do not instruct to replace or transform the subject, only the context/scenario/style/clothes/accessories/background, etc. "},
	{"Move Camera", "Move the camera to reveal new aspects of the scene. Provide a highly different camera movement based on the scene (e.g., top view of the room, side portrait view of the person, etc). "},
	{"Relight", "Suggest a new lighting setting for the image. Propose a professional lighting stage and setting, possibly with dramatic color changes, alternate times of day, or the inclusion/removal of natural lights. "},
	{"Product", "Turn this image into the style of a professional product photo. Describe a scene that could show a different aspect of the item in a highly professional catalog, including possible light settings, camera angles, zoom levels, or a scenario where the item is being used. "},
	{"Zoom", "Zoom on the subject of the image. If a subject is provided, zoom on it; otherwise, zoom on the main subject. Provide a clear zoom effect and describe the visual result. "},
	{"Colorize", "Colorize the image. Provide a specific color style or restoration guidance. "},
	{"Movie Poster", "Create a movie poster with the subjects of this image as the main characters. Choose a random genre (action, comedy, horror, etc.) and make it look like a movie poster. " +
		"If a title is provided, fit the scene to the title; otherwise, make up a title based on the image. Stylize the title and add taglines, quotes, and other typical movie poster text. "},
	{"Cartoonify", "Turn this image into the style of a cartoon, manga, or drawing. Include a reference of style, culture, or time (e.g., 90s manga, thick-lined, 3D Pixar, etc.). "},
	{"Remove Text", "Remove all text from the image. "},
	{"Haircut", "Change the haircut of the subject. Suggest a specific haircut, style, or color that would suit the subject naturally. Describe visually how to edit the subject's hair to achieve this new haircut. "},
	{"Bodybuilder", "Change the subject's body shape in the provided image to a slimmer, toned, and athletic physique, as if they have exercised regularly, with a visibly flatter stomach, more defined arms, and a naturally contoured waistline, ensuring realistic proportions and clothing that fits the new shape. " +
		"Preserve the original pose, facial features, clothing style, lighting, background, and all other elements not explicitly modified. "},
	{"Remove Furniture", "Remove all furniture and appliances from the image. Explicitly mention removing lights, carpets, curtains, etc., if present. "},
	{"Interior Design", "Redo the interior design of this image. Imagine design elements and light settings that could match the room and offer a new artistic direction, ensuring that the room structure (windows, doors, walls, etc.) remains identical. "},
	{"Skin Spot Removal", "Remove all freckles and blemishes from the subject's face, smoothing the skin while preserving the subject's natural facial features, haircut, clothing, expression, lighting, and the original texture of their hair. "},
	{"Seasonal Change", "Transform the scene to reflect a different season (for example: turn summer scenery to winter with snow, or spring with blooming flowers). Adjust lighting, environment, and clothing for authenticity. "},
	{"Weather Effect", "Apply a specific weather effect to the image (for example: heavy rain, fog, bright sunshine, thunderstorm). Adjust lighting, reflections, and surroundings for realism. "},
	{"Fantasy Transformation", "Transform the subject into a fantasy character or creature (for example: elf with pointed ears, cyborg with visible mechanical parts, mermaid with a tail). Modify clothing, accessories, and background as needed for consistency. "},
}

// System is the full system prompt of the preset.
func (p KontextPreset) System() string {
	return kontextIntro + p.Task + kontextOutro
}

// Slug is the name with dashes for spaces, easier to type as an argument.
func (p KontextPreset) Slug() string {
	return strings.ToLower(strings.ReplaceAll(p.Name, " ", "-"))
}

func KontextPresets() []KontextPreset {
	out := make([]KontextPreset, len(kontextPresets))
	copy(out, kontextPresets)
	return out
}

// FindKontextPreset matches a preset by name or slug, ignoring case.
func FindKontextPreset(name string) (KontextPreset, error) {
	for _, p := range kontextPresets {
		if strings.EqualFold(p.Name, name) || strings.EqualFold(p.Slug(), name) {
			return p, nil
		}
	}
	return KontextPreset{}, fmt.Errorf("%w: %s", ErrUnknownPreset, name)
}

func kontextRequest(description, instruction string) string {
	var b strings.Builder
	if d := strings.TrimSpace(description); d != "" {
		b.WriteString("Image description: " + d + "\n")
	}
	if i := strings.TrimSpace(instruction); i != "" {
		b.WriteString("Edit instruction: " + i)
	}
	if strings.TrimSpace(b.String()) == "" {
		return "No additional image description or edit instruction provided."
	}
	return b.String()
}

// Kontext writes an image editing instruction for the named preset.
func Kontext(ctx context.Context, c text.Connector, description, instruction, preset string) (string, error) {
	p, err := FindKontextPreset(preset)
	if err != nil {
		return "", err
	}

	out, err := c.Invoke(ctx, []text.Message{
		text.System(p.System()),
		text.User(kontextRequest(description, instruction)),
	}, text.Options{})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
