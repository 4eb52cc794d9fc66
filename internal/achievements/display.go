package achievements

import "github.com/abhisek/healthquest/internal/content"

// Icon returns the badge icon for an achievement's rule kind.
func Icon(kind content.RuleKind) string {
	switch kind {
	case content.RuleTotalTiles:
		return "👣"
	case content.RuleZoneTiles:
		return "🎓"
	case content.RuleStreak:
		return "🔥"
	case content.RuleLevel:
		return "⭐"
	case content.RuleTotalXP:
		return "💎"
	case content.RuleNodesCompleted:
		return "🗺️"
	case content.RuleMapCleared:
		return "🏰"
	case content.RuleBossCleared:
		return "🐉"
	default:
		return "✦"
	}
}
