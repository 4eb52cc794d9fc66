package progress

import "testing"

func TestLevel(t *testing.T) {
	tests := []struct {
		xp        int
		wantLevel int
		wantIn    int
	}{
		{0, 1, 0},
		{10, 1, 10},
		{99, 1, 99},
		{100, 2, 0},
		{150, 2, 50},
		{399, 4, 99},
		{400, 5, 0},
		{1234, 13, 34},
	}
	for _, tt := range tests {
		if got := Level(tt.xp); got != tt.wantLevel {
			t.Errorf("Level(%d) = %d, want %d", tt.xp, got, tt.wantLevel)
		}
		if got := ProgressInLevel(tt.xp); got != tt.wantIn {
			t.Errorf("ProgressInLevel(%d) = %d, want %d", tt.xp, got, tt.wantIn)
		}
	}
}

func TestLevelProperties(t *testing.T) {
	for xp := 0; xp <= 2000; xp++ {
		if Level(xp) != xp/100+1 {
			t.Fatalf("Level(%d) = %d", xp, Level(xp))
		}
		p := ProgressInLevel(xp)
		if p < 0 || p >= 100 {
			t.Fatalf("ProgressInLevel(%d) = %d out of [0,100)", xp, p)
		}
		if pct := PercentInLevel(xp); pct < 0 || pct >= 1 {
			t.Fatalf("PercentInLevel(%d) = %f out of [0,1)", xp, pct)
		}
	}
}

func TestLevelNegativeXPClamped(t *testing.T) {
	if Level(-50) != 1 || ProgressInLevel(-50) != 0 {
		t.Error("negative XP should behave like zero")
	}
}
