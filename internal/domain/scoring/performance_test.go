package scoring

import (
	"testing"

	"github.com/riskibarqy/squad-builder/internal/domain/player"
)

func repeat(value float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = value
	}
	return out
}

func TestEvaluatePerformance(t *testing.T) {
	dc := player.PositionCentreForward
	tests := []struct {
		name      string
		histories map[player.Position][]float64
		want      PerformanceFlags
	}{
		{
			name:      "hot streak",
			histories: map[player.Position][]float64{dc: {6, 6, 6, 8, 8, 8}},
			want:      PerformanceFlags{HotStreak: true},
		},
		{
			name:      "consistent needs five matches",
			histories: map[player.Position][]float64{dc: {7, 7.2, 7.1, 6.9}},
			want:      PerformanceFlags{},
		},
		{
			name:      "consistent",
			histories: map[player.Position][]float64{dc: {7, 7.2, 7.1, 6.9, 7}},
			want:      PerformanceFlags{Consistent: true},
		},
		{
			name:      "promising",
			histories: map[player.Position][]float64{dc: {7.5, 8}},
			want:      PerformanceFlags{Promising: true},
		},
		{
			name:      "game changer",
			histories: map[player.Position][]float64{dc: {9, 9.5, 9, 6, 6, 6, 6, 6, 6, 6}},
			want:      PerformanceFlags{GameChanger: true},
		},
		{
			name:      "stalwart",
			histories: map[player.Position][]float64{dc: repeat(7, 50)},
			want:      PerformanceFlags{Stalwart: true, Consistent: true},
		},
		{
			name: "specialist",
			histories: map[player.Position][]float64{
				dc:                                 {9, 9},
				player.PositionAttackingMidfielder: {7},
			},
			want: PerformanceFlags{Promising: true, Specialist: true},
		},
		{
			name: "specialist margin not met",
			histories: map[player.Position][]float64{
				dc:                                 {9, 9},
				player.PositionAttackingMidfielder: {8},
			},
			want: PerformanceFlags{Promising: true},
		},
		{
			name:      "specialist needs another position",
			histories: map[player.Position][]float64{dc: {9, 9}},
			want:      PerformanceFlags{Promising: true},
		},
		{
			name: "versatile",
			histories: map[player.Position][]float64{
				dc:                                 {7, 7},
				player.PositionSecondStriker:       {7, 7},
				player.PositionAttackingMidfielder: {7.4},
			},
			want: PerformanceFlags{Versatile: true},
		},
		{
			name: "versatile needs every position strong",
			histories: map[player.Position][]float64{
				dc:                                 {7, 7},
				player.PositionSecondStriker:       {7, 7},
				player.PositionAttackingMidfielder: {6.5},
			},
			want: PerformanceFlags{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EvaluatePerformance(dc, tt.histories); got != tt.want {
				t.Fatalf("unexpected flags: got=%+v want=%+v", got, tt.want)
			}
		})
	}
}
