// Package analyze implements the classification engine: given before and
// after per-machine signature indexes, it assigns exactly one status to every
// input signature via a strict priority-ordered decision procedure.
//
// The comparison is after-driven: a machine absent from either snapshot
// produces no output for that machine. Data-quality statuses (MissingInput,
// MissingOutput*) outrank every structural status, so a conflicting
// signature with unresolved outputs reports only the data problem.
package analyze

import (
	"sort"

	"github.com/RecursivePineapple/recex-analyzer/internal/dump"
	"github.com/RecursivePineapple/recex-analyzer/internal/index"
)

// Result maps machine name to its classified signatures, grouped by status.
type Result map[string]MachineStatuses

// MachineStatuses maps status kind to that machine's records, sorted by the
// records' natural order.
type MachineStatuses map[Status][]Record

// TotalRecords returns the number of records across all machines and kinds.
func (r Result) TotalRecords() int {
	n := 0
	for _, machine := range r {
		for _, records := range machine {
			n += len(records)
		}
	}
	return n
}

// Run classifies every input signature of every machine present in both
// indexes. Output ordering is fully deterministic: per machine, statuses
// group records in enumeration order and each record list is sorted.
func Run(before, after map[string]*index.MachineIndex) Result {
	result := make(Result)

	for machineName, afterIdx := range after {
		beforeIdx, ok := before[machineName]
		if !ok {
			continue
		}

		statuses := classifyMachine(beforeIdx, afterIdx)
		if len(statuses) > 0 {
			result[machineName] = statuses
		}
	}

	return result
}

func classifyMachine(beforeIdx, afterIdx *index.MachineIndex) MachineStatuses {
	keys := unionKeys(beforeIdx, afterIdx)

	statuses := make(MachineStatuses)
	for _, canonical := range keys {
		beforeEntry := beforeIdx.Lookup(canonical)
		afterEntry := afterIdx.Lookup(canonical)

		status, ok := classifyKey(beforeEntry, afterEntry)
		if !ok {
			continue
		}

		record := NewRecord(entryRecipes(beforeEntry), entryRecipes(afterEntry))
		statuses[status] = append(statuses[status], record)
	}

	for status := range statuses {
		records := statuses[status]
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].Compare(&records[j]) < 0
		})
	}

	return statuses
}

// classifyKey applies the decision procedure in strict priority order and
// stops at the first match. Returns ok=false for a true no-op (single equal
// recipe on both sides), which is excluded from the report.
func classifyKey(beforeEntry, afterEntry *index.Entry) (Status, bool) {
	// 1. Unresolved ingredient identity in the signature itself makes any
	// further comparison meaningless.
	key := entryKey(beforeEntry, afterEntry)
	if key.HasMissing() {
		return MissingInput, true
	}

	// 2. Unresolved descriptors on the after side hide everything below:
	// missing names collapse distinct recipes, so conflict and output
	// comparisons would be unreliable.
	if anyHasMissing(afterEntry) {
		if anyHasMissing(beforeEntry) {
			return MissingOutput, true
		}
		return MissingOutputCreated, true
	}

	beforeConflict := beforeEntry != nil && len(beforeEntry.Recipes) > 1
	afterConflict := afterEntry != nil && len(afterEntry.Recipes) > 1

	// 3. Signature only on one side.
	if beforeEntry == nil {
		if afterConflict {
			return ConflictCreated, true
		}
		return Added, true
	}
	if afterEntry == nil {
		return Removed, true
	}

	// 4. Multi-registration transitions.
	if beforeConflict || afterConflict {
		if beforeConflict && !afterConflict {
			return ConflictRemoved, true
		}
		if !beforeConflict && afterConflict {
			return ConflictCreated, true
		}

		// Conflicts on both sides: identical registrations everywhere is
		// mere duplication, anything else is a live conflict.
		first := beforeEntry.Recipes[0]
		for _, r := range beforeEntry.Recipes {
			if !dump.RecipesEqual(r, first) {
				return Conflicting, true
			}
		}
		for _, r := range afterEntry.Recipes {
			if !dump.RecipesEqual(r, first) {
				return Conflicting, true
			}
		}
		return DuplicateRegistration, true
	}

	// 5. Exactly one recipe on each side.
	beforeRecipe := beforeEntry.Recipes[0]
	afterRecipe := afterEntry.Recipes[0]

	if dump.CompareItemLists(beforeRecipe.ItemOutputs, afterRecipe.ItemOutputs) != 0 ||
		dump.CompareFluidLists(beforeRecipe.FluidOutputs, afterRecipe.FluidOutputs) != 0 {
		return OutputsChanged, true
	}

	if beforeRecipe.Duration != afterRecipe.Duration ||
		beforeRecipe.EUt != afterRecipe.EUt ||
		beforeRecipe.Enabled != afterRecipe.Enabled {
		return StatsChanged, true
	}

	return 0, false
}

func unionKeys(beforeIdx, afterIdx *index.MachineIndex) []string {
	seen := make(map[string]bool, beforeIdx.Len()+afterIdx.Len())
	keys := make([]string, 0, beforeIdx.Len()+afterIdx.Len())

	for _, k := range beforeIdx.Keys() {
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	for _, k := range afterIdx.Keys() {
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}

	sort.Strings(keys)
	return keys
}

func entryKey(beforeEntry, afterEntry *index.Entry) *index.Key {
	if beforeEntry != nil {
		return &beforeEntry.Key
	}
	return &afterEntry.Key
}

func entryRecipes(entry *index.Entry) []*dump.Recipe {
	if entry == nil {
		return nil
	}
	return entry.Recipes
}

func anyHasMissing(entry *index.Entry) bool {
	if entry == nil {
		return false
	}
	for _, r := range entry.Recipes {
		if r.HasMissing() {
			return true
		}
	}
	return false
}
