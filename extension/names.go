package extension

const (
	LogoSuffix = "|Mie"
	LogoEmoji  = "🐑"

	// Category is the menu category our nodes are registered under.
	Category = LogoEmoji + " MieNodes/" + LogoEmoji + " Common"
)

// AddSuffix turns a class name into its registered node name.
func AddSuffix(name string) string {
	return name + LogoSuffix
}

// AddEmoji turns a label into its display name.
func AddEmoji(name string) string {
	return name + " " + LogoEmoji
}

// Def builds the node definition for one of our class names.
func Def(class, label string) NodeDef {
	return NodeDef{
		Name:        AddSuffix(class),
		Category:    Category,
		DisplayName: AddEmoji(label),
	}
}
