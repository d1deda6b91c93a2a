package models

import (
	"testing"
)

func TestTierForPoints(t *testing.T) {
	tests := []struct {
		lifetime int64
		want     string
	}{
		{0, TierBronze},
		{1999, TierBronze},
		{2000, TierSilver},
		{4999, TierSilver},
		{5000, TierGold},
		{9999, TierGold},
		{10000, TierPlatinum},
		{1000000, TierPlatinum},
	}

	for _, tt := range tests {
		if got := TierForPoints(tt.lifetime); got != tt.want {
			t.Errorf("TierForPoints(%d) = %q, want %q", tt.lifetime, got, tt.want)
		}
	}
}
