package model

import (
	"encoding/json"
	"testing"
)

func TestParsePlan(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Plan
		ok   bool
	}{
		{"month", PlanMonth, true},
		{"year", PlanYear, true},
		{"MONTH", PlanMonth, true},
		{"Year", PlanYear, true},
		{" month ", PlanMonth, true},
		{"week", "", false},
		{"", "", false},
		{"monthly", "", false},
	}
	for _, tt := range tests {
		got, ok := ParsePlan(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Fatalf("ParsePlan(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestActivationRecord_WireShape(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(&ActivationRecord{Code: "ABC123DEF4", Plan: PlanYear})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"code":"ABC123DEF4","plan":"year"}`
	if string(data) != want {
		t.Fatalf("wire shape %s, want %s", data, want)
	}
}
