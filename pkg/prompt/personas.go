package prompt

// Persona is cosmetic style metadata attached to a display name. It only
// flavors prompt text; it never changes dispatch behavior.
type Persona struct {
	DisplayName string
	Model       string
	Style       string
	Tone        string
}

// personas maps UI display names to their underlying model and voice.
// Plain data with an explicit fallback, not conditional logic per name.
var personas = map[string]Persona{
	"The Professor": {
		DisplayName: "The Professor",
		Model:       "gpt-4o-mini",
		Style:       "scholarly and precise",
		Tone:        "measured",
	},
	"The Firebrand": {
		DisplayName: "The Firebrand",
		Model:       "meta-llama/Llama-3-8b-chat-hf",
		Style:       "punchy and provocative",
		Tone:        "passionate",
	},
	"The Diplomat": {
		DisplayName: "The Diplomat",
		Model:       "meta-llama/Meta-Llama-3-8B-Instruct",
		Style:       "conciliatory and even-handed",
		Tone:        "calm",
	},
}

// LookupPersona returns the persona registered under the given display name.
// A miss means the name is a raw model identifier: the caller should use it
// verbatim with a neutral style, so no persona preamble applies.
func LookupPersona(displayName string) (Persona, bool) {
	p, ok := personas[displayName]
	return p, ok
}
