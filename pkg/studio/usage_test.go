package studio

import (
	"context"
	"errors"
	"testing"

	"github.com/Sumitkumar005/voiceclone-studio/pkg/api"
)

func TestUsageTrackerRefresh(t *testing.T) {
	backend := &fakeBackend{usage: api.UsageSnapshot{Tier: "free", Used: 3, Limit: 10, Remaining: 7}}
	u := NewUsageTracker(backend)

	if _, ok := u.Snapshot(); ok {
		t.Fatal("snapshot loaded before first refresh")
	}
	if err := u.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	snap, ok := u.Snapshot()
	if !ok || snap.Used != 3 || snap.Tier != "free" {
		t.Errorf("snapshot = %+v loaded=%v", snap, ok)
	}
}

func TestUsageTrackerRefreshErrorKeepsSnapshot(t *testing.T) {
	backend := &fakeBackend{usage: api.UsageSnapshot{Tier: "free", Used: 3, Limit: 10, Remaining: 7}}
	u := NewUsageTracker(backend)
	if err := u.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	backend.usageErr = errors.New("boom")
	if err := u.Refresh(context.Background()); err == nil {
		t.Fatal("expected refresh error")
	}
	snap, ok := u.Snapshot()
	if !ok || snap.Used != 3 {
		t.Errorf("snapshot disturbed by failed refresh: %+v loaded=%v", snap, ok)
	}
}

func TestUsageTrackerApply(t *testing.T) {
	backend := &fakeBackend{usage: api.UsageSnapshot{Tier: "free", Used: 3, Limit: 10, Remaining: 7}}
	u := NewUsageTracker(backend)
	if err := u.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	u.Apply(api.GenerationResult{Remaining: 6})
	snap, _ := u.Snapshot()
	if snap.Remaining != 6 || snap.Used != 4 {
		t.Errorf("after apply: %+v", snap)
	}
}

func TestUsageTrackerApplyBeforeLoadIsNoop(t *testing.T) {
	u := NewUsageTracker(&fakeBackend{})
	u.Apply(api.GenerationResult{Remaining: 6})
	if _, ok := u.Snapshot(); ok {
		t.Error("apply marked an unloaded snapshot as loaded")
	}
}

func TestUsageTrackerNearLimit(t *testing.T) {
	tests := []struct {
		name string
		snap api.UsageSnapshot
		want bool
	}{
		{"well under", api.UsageSnapshot{Used: 1, Limit: 10}, false},
		{"exactly 80 percent", api.UsageSnapshot{Used: 8, Limit: 10}, true},
		{"over limit", api.UsageSnapshot{Used: 12, Limit: 10}, true},
		{"zero limit", api.UsageSnapshot{Used: 0, Limit: 0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &fakeBackend{usage: tt.snap}
			u := NewUsageTracker(backend)
			if err := u.Refresh(context.Background()); err != nil {
				t.Fatalf("Refresh: %v", err)
			}
			if got := u.NearLimit(); got != tt.want {
				t.Errorf("NearLimit() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUsageTrackerNearLimitUnloaded(t *testing.T) {
	u := NewUsageTracker(&fakeBackend{})
	if u.NearLimit() {
		t.Error("unloaded tracker reported near limit")
	}
}
