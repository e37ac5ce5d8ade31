package domain

import "fmt"

type Kind int

const (
	KindGuided Kind = iota
	KindBreathing
)

// guidedType is the only row type that maps to KindGuided; every other value
// is treated as a breathing exercise.
const guidedType = "GUIDED"

type kindTraits struct {
	name  string
	label string
	play  string
	cue   string
}

var traits = map[Kind]kindTraits{
	KindGuided: {
		name:  guidedType,
		label: "GUIDED MEDITATION",
		play:  "Playing guided meditation",
		cue:   "Follow the instructor's voice...",
	},
	KindBreathing: {
		name:  "BREATHING",
		label: "BREATHING EXERCISE",
		play:  "Starting breathing exercise",
		cue:   "Inhale... Exhale... Repeat...",
	},
}

// KindFromType maps a stored type column to a Kind.
func KindFromType(t string) Kind {
	if t == guidedType {
		return KindGuided
	}
	return KindBreathing
}

func (k Kind) String() string {
	if t, ok := traits[k]; ok {
		return t.name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Label is the human readable kind shown next to a session.
func (k Kind) Label() string {
	return traits[k].label
}

// PlayMessage is the line announced when a session of this kind starts.
func (k Kind) PlayMessage(title string) string {
	return fmt.Sprintf("%s: %s", traits[k].play, title)
}

func (k Kind) Cue() string {
	return traits[k].cue
}

func (k Kind) MarshalText() ([]byte, error) {
	if _, ok := traits[k]; !ok {
		return nil, fmt.Errorf("unknown session kind %d", int(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	*k = KindFromType(string(b))
	return nil
}
