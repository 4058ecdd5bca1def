package domain

import (
	"testing"
	"time"
)

func TestSessionKind_Bounded(t *testing.T) {
	tests := []struct {
		kind SessionKind
		want bool
	}{
		{KindNone, false},
		{KindFreeTimer, false},
		{KindFocus, true},
		{KindBreak, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			if got := tt.kind.Bounded(); got != tt.want {
				t.Errorf("Bounded() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTimerSession_Valid(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		session TimerSession
		want    bool
	}{
		{
			name:    "zero session",
			session: ZeroSession(),
			want:    true,
		},
		{
			name: "running with start time",
			session: TimerSession{
				Running:   true,
				Kind:      KindFreeTimer,
				StartedAt: &now,
			},
			want: true,
		},
		{
			name: "paused implies running",
			session: TimerSession{
				Paused: true,
				Kind:   KindFocus,
			},
			want: false,
		},
		{
			name: "running without start time",
			session: TimerSession{
				Running: true,
				Kind:    KindFreeTimer,
			},
			want: false,
		},
		{
			name: "start time without running",
			session: TimerSession{
				Kind:      KindFreeTimer,
				StartedAt: &now,
			},
			want: false,
		},
		{
			name: "kind none with elapsed time",
			session: TimerSession{
				Kind:           KindNone,
				ElapsedSeconds: 5,
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.session.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTimerSession_Complete(t *testing.T) {
	tests := []struct {
		name    string
		session TimerSession
		want    bool
	}{
		{
			name:    "unbounded never completes",
			session: TimerSession{Kind: KindFreeTimer, ElapsedSeconds: 100000},
			want:    false,
		},
		{
			name:    "below bound",
			session: TimerSession{Kind: KindFocus, BoundSeconds: 1500, ElapsedSeconds: 1499},
			want:    false,
		},
		{
			name:    "at bound",
			session: TimerSession{Kind: KindFocus, BoundSeconds: 1500, ElapsedSeconds: 1500},
			want:    true,
		},
		{
			name:    "over bound",
			session: TimerSession{Kind: KindBreak, BoundSeconds: 300, ElapsedSeconds: 301},
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.session.Complete(); got != tt.want {
				t.Errorf("Complete() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTimerSession_RemainingSeconds(t *testing.T) {
	s := TimerSession{Kind: KindFocus, BoundSeconds: 1500, ElapsedSeconds: 10}
	if got := s.RemainingSeconds(); got != 1490 {
		t.Errorf("RemainingSeconds() = %d, want 1490", got)
	}

	s.ElapsedSeconds = 1501
	if got := s.RemainingSeconds(); got != 0 {
		t.Errorf("RemainingSeconds() past bound = %d, want 0", got)
	}
}

func TestCycleCounts_SameDay(t *testing.T) {
	day := time.Date(2025, 3, 14, 9, 30, 0, 0, time.Local)
	counts := CycleCounts{Date: day, Focus: 3}

	if !counts.SameDay(day.Add(8 * time.Hour)) {
		t.Error("SameDay() = false for same calendar day")
	}
	if counts.SameDay(day.Add(24 * time.Hour)) {
		t.Error("SameDay() = true across midnight")
	}
}
