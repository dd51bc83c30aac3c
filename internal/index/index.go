// Package index groups each machine's recipes by canonical input signature.
// Two recipes sharing a signature compete for the same trigger, so every
// list with more than one entry is either a duplicate registration or a real
// conflict; deciding which is the classifier's job.
package index

import (
	"encoding/json"
	"sort"

	"github.com/RecursivePineapple/recex-analyzer/internal/dump"
)

// Key is a canonical input signature: the recipe's item and fluid inputs,
// each sorted with the descriptor total order.
type Key struct {
	Items  []dump.ItemStack  `json:"itemInputs,omitempty"`
	Fluids []dump.FluidStack `json:"fluidInputs,omitempty"`
}

// HasMissing reports whether any descriptor inside the signature itself
// failed to resolve. Such a key cannot be compared meaningfully.
func (k *Key) HasMissing() bool {
	for i := range k.Items {
		if k.Items[i].IsMissing() {
			return true
		}
	}
	for i := range k.Fluids {
		if k.Fluids[i].IsMissing() {
			return true
		}
	}
	return false
}

// Compare orders keys by item inputs, then fluid inputs.
func (k *Key) Compare(other *Key) int {
	if c := dump.CompareItemLists(k.Items, other.Items); c != 0 {
		return c
	}
	return dump.CompareFluidLists(k.Fluids, other.Fluids)
}

// Canonical renders the key as a deterministic string so it can address a
// map. The struct's fixed field order and the pre-sorted lists make the
// encoding stable across runs and across snapshots.
func (k *Key) Canonical() string {
	data, err := json.Marshal(k)
	if err != nil {
		// Key contains only ints and strings; Marshal cannot fail.
		panic(err)
	}
	return string(data)
}

// Entry is one signature's registration list, in first-seen order.
type Entry struct {
	Key     Key
	Recipes []*dump.Recipe
}

// MachineIndex maps canonical input signatures to the recipes registered
// under them for one machine. Read-only once built.
type MachineIndex struct {
	entries map[string]*Entry
}

// Lookup returns the entry for a canonical key string, or nil.
func (m *MachineIndex) Lookup(canonical string) *Entry {
	return m.entries[canonical]
}

// Len returns the number of distinct input signatures.
func (m *MachineIndex) Len() int {
	return len(m.entries)
}

// Keys returns the canonical key strings in sorted order.
func (m *MachineIndex) Keys() []string {
	keys := make([]string, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Build indexes every machine of a snapshot by canonical input signature.
// Recipes must already be normalized (descriptor lists sorted); the loader
// guarantees this. The returned map and the snapshot it points into must not
// be mutated afterwards.
func Build(machines []dump.Machine) map[string]*MachineIndex {
	out := make(map[string]*MachineIndex, len(machines))

	for m := range machines {
		machine := &machines[m]
		idx := &MachineIndex{entries: make(map[string]*Entry, len(machine.Recipes))}

		for r := range machine.Recipes {
			recipe := &machine.Recipes[r]
			key := Key{Items: recipe.ItemInputs, Fluids: recipe.FluidInputs}
			canonical := key.Canonical()

			entry, ok := idx.entries[canonical]
			if !ok {
				entry = &Entry{Key: key}
				idx.entries[canonical] = entry
			}
			entry.Recipes = append(entry.Recipes, recipe)
		}

		out[machine.Name] = idx
	}

	return out
}
