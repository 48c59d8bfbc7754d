package gate

import "testing"

type fakeControl struct {
	enabled     bool
	transitions int
}

func (f *fakeControl) SetEnabled(enabled bool) {
	if f.enabled != enabled {
		f.transitions++
	}
	f.enabled = enabled
}

func TestAllSatisfiedEmptyChecklistIsVacuouslyTrue(t *testing.T) {
	// A checklist with no registered fields opens the gate. This mirrors a
	// product with no customization fields and is intentional behavior, not
	// a bug to fix here.
	c := New()
	if !c.AllSatisfied() {
		t.Fatal("empty checklist must satisfy the gate vacuously")
	}
}

func TestAllSatisfiedTable(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]bool
		want   bool
	}{
		{name: "empty", fields: map[string]bool{}, want: true},
		{name: "single incomplete", fields: map[string]bool{"Img1": false}, want: false},
		{name: "mixed", fields: map[string]bool{"Img1": true, "Text": false}, want: false},
		{name: "all complete", fields: map[string]bool{"Img1": true, "Text": true}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			for key, done := range tt.fields {
				c.SetField(key, done)
			}
			if got := c.AllSatisfied(); got != tt.want {
				t.Fatalf("AllSatisfied() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSetFieldIsIdempotent(t *testing.T) {
	c := New()
	c.SetField("Img1", true)
	c.SetField("Text", false)
	before := c.AllSatisfied()

	c.SetField("Text", false)
	c.SetField("Text", false)

	if got := c.AllSatisfied(); got != before {
		t.Fatalf("repeated identical SetField changed the predicate: %v -> %v", before, got)
	}
}

func TestSingleFieldFlip(t *testing.T) {
	c := New()
	c.SetField("Img1", true)
	c.SetField("Img2", true)
	c.SetField("TextPhrase", true)
	if !c.AllSatisfied() {
		t.Fatal("precondition: all fields complete")
	}

	c.SetField("Img2", false)
	if c.AllSatisfied() {
		t.Fatal("flipping one field to false must close the gate")
	}

	c.SetField("Img2", true)
	if !c.AllSatisfied() {
		t.Fatal("restoring the field must reopen the gate")
	}
}

func TestAllSatisfiedIsOrderIndependent(t *testing.T) {
	// Only the final value per key matters.
	a := New()
	a.SetField("Img1", false)
	a.SetField("Text", true)
	a.SetField("Img1", true)

	b := New()
	b.SetField("Text", true)
	b.SetField("Img1", true)

	if a.AllSatisfied() != b.AllSatisfied() {
		t.Fatalf("insertion order changed the predicate: %v vs %v", a.AllSatisfied(), b.AllSatisfied())
	}
	if !a.AllSatisfied() {
		t.Fatal("expected both checklists satisfied")
	}
}

func TestBindControlFlipsConsumerExactlyOnce(t *testing.T) {
	c := New()
	c.SetField("Img1", true)
	c.SetField("Text", false)

	ctrl := &fakeControl{}
	c.BindControl(ctrl)
	if ctrl.enabled {
		t.Fatal("control must start disabled while a field is incomplete")
	}
	ctrl.transitions = 0

	c.SetField("Text", true)

	if !ctrl.enabled {
		t.Fatal("completing the last field must enable the control")
	}
	if ctrl.transitions != 1 {
		t.Fatalf("expected exactly one disabled->enabled transition, got %d", ctrl.transitions)
	}
}

func TestApplyGateReflectsCurrentState(t *testing.T) {
	c := New()
	ctrl := &fakeControl{}

	c.ApplyGate(ctrl)
	if !ctrl.enabled {
		t.Fatal("empty checklist must enable the control (vacuous truth)")
	}

	c.SetField("Img1", false)
	c.ApplyGate(ctrl)
	if ctrl.enabled {
		t.Fatal("incomplete field must disable the control")
	}
}

func TestForgetRemovesFieldFromPredicate(t *testing.T) {
	c := New()
	c.SetField("Img1", true)
	c.SetField("Monogram", false)
	if c.AllSatisfied() {
		t.Fatal("precondition: gate closed")
	}

	c.Forget("Monogram")
	if !c.AllSatisfied() {
		t.Fatal("forgetting the only incomplete field must reopen the gate")
	}
	if c.Len() != 1 {
		t.Fatalf("expected one remaining field, got %d", c.Len())
	}
}

func TestMissingListsIncompleteKeys(t *testing.T) {
	c := New()
	c.SetField("Img1", true)
	c.SetField("Img2", false)
	c.SetField("TextPhrase", false)

	missing := c.Missing()
	if len(missing) != 2 {
		t.Fatalf("expected 2 missing keys, got %d: %v", len(missing), missing)
	}
	seen := map[string]bool{}
	for _, k := range missing {
		seen[k] = true
	}
	if !seen["Img2"] || !seen["TextPhrase"] {
		t.Fatalf("unexpected missing set: %v", missing)
	}
}

func TestSubscribeRunsAfterEveryUpdate(t *testing.T) {
	c := New()
	var calls []bool
	c.Subscribe(func(satisfied bool) { calls = append(calls, satisfied) })

	c.SetField("Img1", false)
	c.SetField("Img1", true)

	if len(calls) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(calls))
	}
	if calls[0] || !calls[1] {
		t.Fatalf("unexpected notification values: %v", calls)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	c := New()
	c.SetField("Img1", false)

	snap := c.Snapshot()
	snap["Img1"] = true

	if c.AllSatisfied() {
		t.Fatal("mutating a snapshot must not affect the checklist")
	}
}
