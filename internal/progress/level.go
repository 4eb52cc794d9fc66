package progress

// XPPerLevel is the XP span of every level.
const XPPerLevel = 100

// Level returns the level reached with totalXP: floor(totalXP/100) + 1.
func Level(totalXP int) int {
	if totalXP < 0 {
		totalXP = 0
	}
	return totalXP/XPPerLevel + 1
}

// ProgressInLevel returns the XP earned inside the current level, in [0, 100).
func ProgressInLevel(totalXP int) int {
	if totalXP < 0 {
		return 0
	}
	return totalXP % XPPerLevel
}

// PercentInLevel returns ProgressInLevel as a fraction in [0, 1).
func PercentInLevel(totalXP int) float64 {
	return float64(ProgressInLevel(totalXP)) / XPPerLevel
}
