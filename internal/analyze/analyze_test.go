package analyze

import (
	"testing"

	"github.com/RecursivePineapple/recex-analyzer/internal/dump"
	"github.com/RecursivePineapple/recex-analyzer/internal/index"
)

func strptr(s string) *string { return &s }

func item(amount, metadata int, un, ln string) dump.ItemStack {
	s := dump.ItemStack{Amount: amount, Metadata: metadata}
	if un != "" {
		s.UnlocalizedName = strptr(un)
	}
	if ln != "" {
		s.LocalizedName = strptr(ln)
	}
	return s
}

func items(stacks ...dump.ItemStack) []dump.ItemStack { return stacks }

type recipeOpt func(*dump.Recipe)

func withStats(duration, eut int, enabled bool) recipeOpt {
	return func(r *dump.Recipe) {
		r.Duration = duration
		r.EUt = eut
		r.Enabled = enabled
	}
}

func recipe(inputs, outputs []dump.ItemStack, opts ...recipeOpt) dump.Recipe {
	r := dump.Recipe{
		Enabled:     true,
		Duration:    200,
		EUt:         16,
		ItemInputs:  inputs,
		ItemOutputs: outputs,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func buildIdx(t *testing.T, machines ...dump.Machine) map[string]*index.MachineIndex {
	t.Helper()
	snap := &dump.Snapshot{Sources: []dump.Source{{
		Kind:     dump.SourceGregtech,
		Machines: machines,
	}}}
	dump.Normalize(snap)
	ms, ok := snap.Machines()
	if !ok {
		t.Fatal("fixture snapshot has no machine source")
	}
	return index.Build(ms)
}

func machine(name string, recipes ...dump.Recipe) dump.Machine {
	return dump.Machine{Name: name, Recipes: recipes}
}

var (
	oreIn   = item(1, 0, "ore.iron", "Iron Ore")
	gemIn   = item(1, 0, "gem.diamond", "Diamond")
	dustOut = item(2, 0, "dust.iron", "Iron Dust")
	slagOut = item(1, 0, "dust.slag", "Slag Dust")
)

func singleStatus(t *testing.T, result Result, machineName string) (Status, []Record) {
	t.Helper()
	statuses, ok := result[machineName]
	if !ok {
		t.Fatalf("no statuses for machine %q: %v", machineName, result)
	}
	if len(statuses) != 1 {
		t.Fatalf("expected exactly one status kind, got %v", statuses)
	}
	for status, records := range statuses {
		return status, records
	}
	panic("unreachable")
}

func TestUnchangedKeyEmitsNothing(t *testing.T) {
	// "Macerator" scenario from the spec: R1 unchanged, R2 added on a new key
	r1 := recipe(items(oreIn), items(dustOut))
	r2 := recipe(items(gemIn), items(item(1, 0, "dust.diamond", "Diamond Dust")))

	before := buildIdx(t, machine("Macerator", r1))
	after := buildIdx(t, machine("Macerator", r1, r2))

	result := Run(before, after)

	status, records := singleStatus(t, result, "Macerator")
	if status != Added {
		t.Fatalf("status = %v, want Added", status)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1 (no record for the unchanged key)", len(records))
	}
	// An Added record always renders as Diff with an empty before list
	rec := records[0]
	if rec.Same {
		t.Error("Added record should be a Diff")
	}
	if len(rec.Before) != 0 || len(rec.After) != 1 {
		t.Errorf("record lists = (%d, %d), want (0, 1)", len(rec.Before), len(rec.After))
	}
}

func TestRemoved(t *testing.T) {
	r1 := recipe(items(oreIn), items(dustOut))

	before := buildIdx(t, machine("Macerator", r1))
	after := buildIdx(t, machine("Macerator"))

	result := Run(before, after)

	status, records := singleStatus(t, result, "Macerator")
	if status != Removed {
		t.Fatalf("status = %v, want Removed", status)
	}
	rec := records[0]
	if rec.Same || len(rec.Before) != 1 || len(rec.After) != 0 {
		t.Errorf("Removed record should be Diff{before=[R1], after=[]}: %+v", rec)
	}
}

func TestConflictCreated(t *testing.T) {
	r1 := recipe(items(oreIn), items(dustOut))
	r2 := recipe(items(oreIn), items(slagOut), withStats(100, 8, true))

	before := buildIdx(t, machine("Macerator", r1))
	after := buildIdx(t, machine("Macerator", r1, r2))

	result := Run(before, after)

	status, records := singleStatus(t, result, "Macerator")
	if status != ConflictCreated {
		t.Fatalf("status = %v, want ConflictCreated", status)
	}
	rec := records[0]
	if rec.Same {
		t.Fatal("record should be a Diff")
	}
	if len(rec.Before) != 1 || len(rec.After) != 2 {
		t.Errorf("record lists = (%d, %d), want (1, 2)", len(rec.Before), len(rec.After))
	}
	// After list is sorted: r2 has shorter duration, so it sorts first
	if rec.After[0].Duration != 100 || rec.After[1].Duration != 200 {
		t.Errorf("after list not sorted: %d, %d", rec.After[0].Duration, rec.After[1].Duration)
	}
}

func TestConflictCreatedByNewKey(t *testing.T) {
	// Key absent before, multiple recipes after: the addition itself is
	// ambiguous.
	r1 := recipe(items(oreIn), items(dustOut))
	r2 := recipe(items(oreIn), items(slagOut))

	before := buildIdx(t, machine("Macerator"))
	after := buildIdx(t, machine("Macerator", r1, r2))

	result := Run(before, after)

	status, _ := singleStatus(t, result, "Macerator")
	if status != ConflictCreated {
		t.Fatalf("status = %v, want ConflictCreated", status)
	}
}

func TestConflictRemoved(t *testing.T) {
	r1 := recipe(items(oreIn), items(dustOut))
	r2 := recipe(items(oreIn), items(slagOut))

	before := buildIdx(t, machine("Macerator", r1, r2))
	after := buildIdx(t, machine("Macerator", r1))

	result := Run(before, after)

	status, _ := singleStatus(t, result, "Macerator")
	if status != ConflictRemoved {
		t.Fatalf("status = %v, want ConflictRemoved", status)
	}
}

func TestConflictingBeatsOutputAndStatsComparison(t *testing.T) {
	// Both sides hold conflicts; one pair matches exactly but not all
	// recipes are equal, so the key must be Conflicting.
	r1 := recipe(items(oreIn), items(dustOut))
	r2 := recipe(items(oreIn), items(slagOut))

	before := buildIdx(t, machine("Macerator", r1, r2))
	after := buildIdx(t, machine("Macerator", r1, r2))

	result := Run(before, after)

	status, records := singleStatus(t, result, "Macerator")
	if status != Conflicting {
		t.Fatalf("status = %v, want Conflicting", status)
	}
	// Identical sorted lists on both sides render as Same
	if !records[0].Same {
		t.Error("identical conflict lists should render as Same")
	}
}

func TestDuplicateRegistration(t *testing.T) {
	r1 := recipe(items(oreIn), items(dustOut))

	before := buildIdx(t, machine("Macerator", r1, r1))
	after := buildIdx(t, machine("Macerator", r1, r1))

	result := Run(before, after)

	status, records := singleStatus(t, result, "Macerator")
	if status != DuplicateRegistration {
		t.Fatalf("status = %v, want DuplicateRegistration", status)
	}
	if !records[0].Same {
		t.Error("duplicate registration should render as Same")
	}
}

func TestOutputsChanged(t *testing.T) {
	before := buildIdx(t, machine("Macerator", recipe(items(oreIn), items(dustOut))))
	after := buildIdx(t, machine("Macerator", recipe(items(oreIn), items(slagOut))))

	result := Run(before, after)

	status, _ := singleStatus(t, result, "Macerator")
	if status != OutputsChanged {
		t.Fatalf("status = %v, want OutputsChanged", status)
	}
}

func TestStatsChanged(t *testing.T) {
	tests := []struct {
		name  string
		after recipeOpt
	}{
		{"duration", withStats(400, 16, true)},
		{"eut", withStats(200, 32, true)},
		{"enabled", withStats(200, 16, false)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := buildIdx(t, machine("Macerator", recipe(items(oreIn), items(dustOut))))
			after := buildIdx(t, machine("Macerator", recipe(items(oreIn), items(dustOut), tt.after)))

			result := Run(before, after)

			status, _ := singleStatus(t, result, "Macerator")
			if status != StatsChanged {
				t.Fatalf("status = %v, want StatsChanged", status)
			}
		})
	}
}

func TestMissingInputBeatsEverything(t *testing.T) {
	// The key itself contains an unresolved descriptor; even a conflict
	// with missing outputs reports MissingInput.
	badIn := item(1, 0, "", "Iron Ore")
	r1 := recipe(items(badIn), items(dustOut))
	r2 := recipe(items(badIn), items(item(1, 0, "", "")))

	before := buildIdx(t, machine("Macerator", r1))
	after := buildIdx(t, machine("Macerator", r1, r2))

	result := Run(before, after)

	status, _ := singleStatus(t, result, "Macerator")
	if status != MissingInput {
		t.Fatalf("status = %v, want MissingInput", status)
	}
}

func TestMissingOutputVsCreated(t *testing.T) {
	badOut := item(2, 0, "tile.fire", "Iron Dust")

	t.Run("created when before side was clean", func(t *testing.T) {
		before := buildIdx(t, machine("Macerator", recipe(items(oreIn), items(dustOut))))
		after := buildIdx(t, machine("Macerator", recipe(items(oreIn), items(badOut))))

		result := Run(before, after)

		status, _ := singleStatus(t, result, "Macerator")
		if status != MissingOutputCreated {
			t.Fatalf("status = %v, want MissingOutputCreated", status)
		}
	})

	t.Run("pre-existing when before side also had one", func(t *testing.T) {
		before := buildIdx(t, machine("Macerator", recipe(items(oreIn), items(badOut))))
		after := buildIdx(t, machine("Macerator", recipe(items(oreIn), items(badOut))))

		result := Run(before, after)

		status, _ := singleStatus(t, result, "Macerator")
		if status != MissingOutput {
			t.Fatalf("status = %v, want MissingOutput", status)
		}
	})

	t.Run("hides conflict detection", func(t *testing.T) {
		r1 := recipe(items(oreIn), items(dustOut))
		r2 := recipe(items(oreIn), items(badOut))

		before := buildIdx(t, machine("Macerator", r1))
		after := buildIdx(t, machine("Macerator", r1, r2))

		result := Run(before, after)

		status, _ := singleStatus(t, result, "Macerator")
		if status != MissingOutputCreated {
			t.Fatalf("status = %v, want MissingOutputCreated (data quality outranks conflicts)", status)
		}
	})
}

func TestMachineAbsentFromEitherSideIsSkipped(t *testing.T) {
	r1 := recipe(items(oreIn), items(dustOut))
	r2 := recipe(items(gemIn), items(dustOut))

	before := buildIdx(t, machine("OnlyBefore", r1))
	after := buildIdx(t, machine("OnlyAfter", r2))

	result := Run(before, after)

	if len(result) != 0 {
		t.Errorf("machines present on only one side should produce no output: %v", result)
	}
}

func TestSelfDiffInvariant(t *testing.T) {
	badOut := item(2, 0, "", "")
	badIn := item(1, 0, "tile.fire", "Fire")

	recipes := []dump.Recipe{
		recipe(items(oreIn), items(dustOut)),
		recipe(items(oreIn), items(slagOut)), // conflict with the previous
		recipe(items(gemIn), items(badOut)),  // missing output
		recipe(items(badIn), items(dustOut)), // missing input
		recipe(items(item(5, 0, "x", "X")), items(dustOut)),
		recipe(items(item(5, 0, "x", "X")), items(dustOut)), // duplicate
	}

	before := buildIdx(t, machine("Assembler", recipes...))
	after := buildIdx(t, machine("Assembler", recipes...))

	result := Run(before, after)

	allowed := map[Status]bool{
		MissingInput:          true,
		MissingOutput:         true,
		Conflicting:           true,
		DuplicateRegistration: true,
	}
	for _, statuses := range result {
		for status := range statuses {
			if !allowed[status] {
				t.Errorf("self-diff produced forbidden status %v", status)
			}
		}
	}

	statuses := result["Assembler"]
	if len(statuses[Conflicting]) != 1 {
		t.Errorf("want one Conflicting record, got %v", statuses)
	}
	if len(statuses[MissingOutput]) != 1 {
		t.Errorf("want one MissingOutput record, got %v", statuses)
	}
	if len(statuses[MissingInput]) != 1 {
		t.Errorf("want one MissingInput record, got %v", statuses)
	}
	if len(statuses[DuplicateRegistration]) != 1 {
		t.Errorf("want one DuplicateRegistration record, got %v", statuses)
	}
}

func TestKeyCanonicalizationIsOrderIndependent(t *testing.T) {
	a := item(1, 0, "ore.iron", "Iron Ore")
	b := item(3, 1, "ore.zinc", "Zinc Ore")

	before := buildIdx(t, machine("Mixer", recipe(items(a, b), items(dustOut))))
	after := buildIdx(t, machine("Mixer", recipe(items(b, a), items(dustOut))))

	result := Run(before, after)

	if len(result) != 0 {
		t.Errorf("permuted inputs must map to the same key and emit nothing: %v", result)
	}
}

func TestDeterministicRecordOrder(t *testing.T) {
	// Two Added keys must come out in the same order every run
	r1 := recipe(items(gemIn), items(dustOut))
	r2 := recipe(items(oreIn), items(slagOut))

	var first []Record
	for i := 0; i < 20; i++ {
		before := buildIdx(t, machine("Macerator"))
		after := buildIdx(t, machine("Macerator", r1, r2))

		result := Run(before, after)
		records := result["Macerator"][Added]
		if len(records) != 2 {
			t.Fatalf("len(records) = %d, want 2", len(records))
		}

		if first == nil {
			first = records
			continue
		}
		for j := range records {
			if records[j].Compare(&first[j]) != 0 {
				t.Fatalf("record order changed between runs")
			}
		}
	}
}

func TestTotalRecords(t *testing.T) {
	before := buildIdx(t, machine("Macerator", recipe(items(oreIn), items(dustOut))))
	after := buildIdx(t, machine("Macerator",
		recipe(items(oreIn), items(dustOut)),
		recipe(items(gemIn), items(dustOut)),
	))

	result := Run(before, after)
	if got := result.TotalRecords(); got != 1 {
		t.Errorf("TotalRecords() = %d, want 1", got)
	}
}
