package prompt

// Modifier is a user-selected flag that alters the composed prompt text.
type Modifier string

const (
	Short       Modifier = "short"
	Interactive Modifier = "interactive"
	Jobs        Modifier = "jobs"
	CodeBlock   Modifier = "code_block"
	Infographic Modifier = "infographic"
)

// Set holds the selected modifiers. Unknown modifiers are no-ops.
type Set map[Modifier]bool

func NewSet(mods ...Modifier) Set {
	s := make(Set, len(mods))
	for _, m := range mods {
		s[m] = true
	}
	return s
}

func (s Set) Has(m Modifier) bool {
	return s[m]
}

// Toggle flips a modifier and reports its new state.
func (s Set) Toggle(m Modifier) bool {
	s[m] = !s[m]
	return s[m]
}

// InfographicPrefix exposes the fixed infographic instruction block.
func InfographicPrefix() string {
	return prefixInfographic
}

// Compose builds the final user-turn text. The infographic prefix always comes
// first; suffixes are appended in a fixed order so output stays deterministic.
func Compose(raw string, mods Set) string {
	text := raw
	if mods.Has(Infographic) {
		text = prefixInfographic + raw
	}

	if mods.Has(Short) {
		text += suffixShort
	}
	if mods.Has(Interactive) {
		text += suffixInteractive
	}
	if mods.Has(Jobs) {
		text += suffixJobs
	}
	if mods.Has(CodeBlock) {
		text += suffixCodeBlock
	}

	return text
}
