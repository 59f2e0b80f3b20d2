package models

import "testing"

func TestActivityLevelsOrder(t *testing.T) {
	want := []string{Sedentary, LightlyActive, ModeratelyActive, VeryActive, SuperActive}
	got := ActivityLabels()
	if len(got) != len(want) {
		t.Fatalf("expected %d labels, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("label %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestActivityLevelsIsCopy(t *testing.T) {
	levels := ActivityLevels()
	levels[0].Factor = 99

	f, ok := ActivityFactor(Sedentary)
	if !ok || f != 1.2 {
		t.Errorf("table mutated through copy: got %v, %v", f, ok)
	}
}

func TestActivityFactor(t *testing.T) {
	cases := map[string]float64{
		Sedentary:        1.2,
		LightlyActive:    1.375,
		ModeratelyActive: 1.55,
		VeryActive:       1.725,
		SuperActive:      1.9,
	}
	for label, want := range cases {
		got, ok := ActivityFactor(label)
		if !ok {
			t.Errorf("%q not found", label)
			continue
		}
		if got != want {
			t.Errorf("%q: expected %v, got %v", label, want, got)
		}
	}

	if _, ok := ActivityFactor("sedentary"); ok {
		t.Error("lookup should be case-sensitive")
	}
}

func TestGenders(t *testing.T) {
	g := Genders()
	if len(g) != 2 || g[0] != "Male" || g[1] != "Female" {
		t.Errorf("unexpected genders: %v", g)
	}
	g[0] = "x"
	if Genders()[0] != "Male" {
		t.Error("Genders should return a copy")
	}
}

func TestHeightDisplay(t *testing.T) {
	if got := ExampleMeasurement().HeightDisplay(); got != `5'10"` {
		t.Errorf("expected 5'10\", got %s", got)
	}
}

func TestStateManager(t *testing.T) {
	sm := &StateManager{}
	if st := sm.Status(); st.Enabled || st.Files != 0 || st.LastRun != nil {
		t.Fatalf("unexpected zero status: %+v", st)
	}

	sm.SetEnabled(true)
	sm.RecordRun(BatchRun{File: "a.csv", Rows: 3, Failed: 1})
	sm.RecordRun(BatchRun{File: "b.csv", Rows: 2})

	st := sm.Status()
	if !st.Enabled {
		t.Error("expected enabled")
	}
	if st.Files != 2 {
		t.Errorf("expected 2 files, got %d", st.Files)
	}
	if st.LastRun == nil || st.LastRun.File != "b.csv" {
		t.Errorf("unexpected last run: %+v", st.LastRun)
	}
}
