package api

import "testing"

func TestUsageSnapshot_Predicates(t *testing.T) {
	tests := []struct {
		name      string
		used      int
		limit     int
		nearLimit bool
		overLimit bool
	}{
		{"fresh account", 0, 10, false, false},
		{"under threshold", 7, 10, false, false},
		{"exactly 80 percent", 8, 10, true, false},
		{"at limit", 10, 10, true, true},
		{"past limit", 12, 10, true, true},
		{"zero limit", 5, 0, false, false},
		{"pro tier low usage", 100, 500, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := UsageSnapshot{Used: tt.used, Limit: tt.limit}
			if got := u.NearLimit(); got != tt.nearLimit {
				t.Errorf("NearLimit() = %v, want %v", got, tt.nearLimit)
			}
			if got := u.OverLimit(); got != tt.overLimit {
				t.Errorf("OverLimit() = %v, want %v", got, tt.overLimit)
			}
		})
	}
}
