// Package moods holds the fixed mood catalog and reaction symbol set.
// Both are immutable, process-wide reference data loaded once.
package moods

// Mood is one catalog entry with its display metadata.
type Mood struct {
	ID    string `json:"id"`
	Emoji string `json:"emoji"`
	Label string `json:"label"`
	Color string `json:"color"`
}

// Reaction is one symbol users can send to a post.
type Reaction struct {
	ID    string `json:"id"`
	Emoji string `json:"emoji"`
}

// Catalog lists all moods in display order. Room population listings follow
// this order.
var Catalog = []Mood{
	{ID: "calm", Emoji: "\U0001F33F", Label: "Calm", Color: "bg-emerald-900/20"},
	{ID: "melancholy", Emoji: "\U0001F311", Label: "Melancholy", Color: "bg-slate-900/40"},
	{ID: "radiant", Emoji: "✨", Label: "Radiant", Color: "bg-amber-900/20"},
	{ID: "fluid", Emoji: "\U0001F30A", Label: "Fluid", Color: "bg-blue-900/20"},
	{ID: "heavy", Emoji: "☁️", Label: "Heavy", Color: "bg-zinc-800"},
	{ID: "burning", Emoji: "\U0001F525", Label: "Burning", Color: "bg-orange-900/20"},
	{ID: "stormy", Emoji: "\U0001F32A️", Label: "Stormy", Color: "bg-neutral-800"},
	{ID: "serene", Emoji: "\U0001F60C", Label: "Serene", Color: "bg-stone-800"},
}

// Reactions lists the known reaction symbols.
var Reactions = []Reaction{
	{ID: "heart", Emoji: "\U0001F90D"},
	{ID: "hug", Emoji: "\U0001FAC2"},
	{ID: "bolt", Emoji: "⚡"},
	{ID: "sprout", Emoji: "\U0001F331"},
	{ID: "dizzy", Emoji: "\U0001F4AB"},
}

var (
	byID        map[string]Mood
	reactionSet map[string]struct{}
)

func init() {
	byID = make(map[string]Mood, len(Catalog))
	for _, m := range Catalog {
		byID[m.ID] = m
	}
	reactionSet = make(map[string]struct{}, 2*len(Reactions))
	for _, r := range Reactions {
		reactionSet[r.ID] = struct{}{}
		reactionSet[r.Emoji] = struct{}{}
	}
}

// Lookup returns the catalog entry for id.
func Lookup(id string) (Mood, bool) {
	m, ok := byID[id]
	return m, ok
}

// IsValid reports whether id resolves to a catalog entry.
func IsValid(id string) bool {
	_, ok := byID[id]
	return ok
}

// IsKnownReaction reports whether symbol is one of the reaction set.
// Both the reaction id and its emoji form are accepted.
func IsKnownReaction(symbol string) bool {
	_, ok := reactionSet[symbol]
	return ok
}
