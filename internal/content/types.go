// Package content holds the read-only quiz catalog: zones, tiles, the ten
// journey nodes and the achievement definitions.
package content

// Zone identifies a thematic group of tiles.
type Zone string

// ZoneMixed marks a journey node that draws from every zone.
const ZoneMixed Zone = "mixed"

// Difficulty is the tier of a tile.
type Difficulty string

const (
	DifficultyBasic     Difficulty = "basic"
	DifficultyCore      Difficulty = "core"
	DifficultyChallenge Difficulty = "challenge"
)

// AllDifficulties returns the difficulties from easiest to hardest.
func AllDifficulties() []Difficulty {
	return []Difficulty{DifficultyBasic, DifficultyCore, DifficultyChallenge}
}

// ZoneInfo names a zone for display.
type ZoneInfo struct {
	ID   Zone   `json:"id"`
	Name string `json:"name"`
}

// Question is a single quiz tile.
type Question struct {
	ID           string     `json:"id"`
	Zone         Zone       `json:"zone,omitempty"`
	Difficulty   Difficulty `json:"difficulty"`
	Prompt       string     `json:"question"`
	Options      []string   `json:"options"`
	CorrectIndex int        `json:"correctIndex"`
	Explanation  string     `json:"explanation"`
	XP           int        `json:"xp"`
}

// IsCorrect reports whether selected is the right option.
func (q Question) IsCorrect(selected int) bool {
	return selected == q.CorrectIndex
}

// Node is one stop on the journey map.
type Node struct {
	Index int    `json:"-"`
	Name  string `json:"name"`
	Zone  Zone   `json:"zone"`
}

// IsMixed reports whether the node draws tiles from every zone.
func (n Node) IsMixed() bool {
	return n.Zone == ZoneMixed
}

// RuleKind selects the predicate an achievement is evaluated with.
type RuleKind string

const (
	RuleTotalTiles     RuleKind = "total_tiles"
	RuleZoneTiles      RuleKind = "zone_tiles"
	RuleStreak         RuleKind = "streak"
	RuleLevel          RuleKind = "level"
	RuleTotalXP        RuleKind = "total_xp"
	RuleNodesCompleted RuleKind = "nodes_completed"
	RuleMapCleared     RuleKind = "map_cleared"
	RuleBossCleared    RuleKind = "boss_cleared"
)

// Rule is the threshold an achievement unlocks at.
type Rule struct {
	Kind  RuleKind `json:"kind"`
	Zone  Zone     `json:"zone,omitempty"`
	Count int      `json:"count,omitempty"`
}

// Achievement is a one-time unlockable badge.
type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Rule        Rule   `json:"rule"`
}
