package dump

import (
	"testing"
)

func item(amount, metadata int, un, ln string) ItemStack {
	s := ItemStack{Amount: amount, Metadata: metadata}
	if un != "" {
		s.UnlocalizedName = strptr(un)
	}
	if ln != "" {
		s.LocalizedName = strptr(ln)
	}
	return s
}

func fluid(amount int, un, ln string) FluidStack {
	s := FluidStack{Amount: amount}
	if un != "" {
		s.UnlocalizedName = strptr(un)
	}
	if ln != "" {
		s.LocalizedName = strptr(ln)
	}
	return s
}

func TestItemStackIsMissing(t *testing.T) {
	tests := []struct {
		name  string
		stack ItemStack
		want  bool
	}{
		{"fully named", item(1, 0, "ore.iron", "Iron Ore"), false},
		{"absent unlocalized name", item(1, 0, "", "Iron Ore"), true},
		{"absent localized name", item(1, 0, "ore.iron", ""), true},
		{"both names absent", item(1, 0, "", ""), true},
		{"burning-block sentinel", item(1, 0, "tile.fire", "Iron Ore"), true},
		{"display-name sentinel", item(1, 0, "ore.iron", "Fire"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.stack.IsMissing(); got != tt.want {
				t.Errorf("IsMissing() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFluidStackIsMissing(t *testing.T) {
	tests := []struct {
		name  string
		stack FluidStack
		want  bool
	}{
		{"fully named", fluid(1000, "fluid.water", "Water"), false},
		{"absent unlocalized name", fluid(1000, "", "Water"), true},
		{"absent localized name", fluid(1000, "fluid.water", ""), true},
		// The sentinel is item-specific: a fluid named like it is still resolved
		{"sentinel names do not apply", fluid(1000, "tile.fire", "Fire"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.stack.IsMissing(); got != tt.want {
				t.Errorf("IsMissing() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCompareItemStacks(t *testing.T) {
	tests := []struct {
		name string
		a, b ItemStack
		want int
	}{
		{"equal", item(1, 0, "a", "A"), item(1, 0, "a", "A"), 0},
		{"amount decides first", item(1, 9, "z", "Z"), item(2, 0, "a", "A"), -1},
		{"metadata decides second", item(1, 1, "a", "A"), item(1, 2, "a", "A"), -1},
		{"unlocalized name decides third", item(1, 0, "a", "Z"), item(1, 0, "b", "A"), -1},
		{"localized name decides last", item(1, 0, "a", "A"), item(1, 0, "a", "B"), -1},
		{"absent name sorts before present", item(1, 0, "", "A"), item(1, 0, "a", "A"), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CompareItemStacks(&tt.a, &tt.b)
			if sign(got) != tt.want {
				t.Errorf("CompareItemStacks() = %d, want sign %d", got, tt.want)
			}
			if back := CompareItemStacks(&tt.b, &tt.a); sign(back) != -tt.want {
				t.Errorf("CompareItemStacks() reversed = %d, want sign %d", back, -tt.want)
			}
		})
	}
}

func TestCompareFluidStacks(t *testing.T) {
	a := fluid(100, "a", "A")
	b := fluid(100, "a", "B")
	if CompareFluidStacks(&a, &b) >= 0 {
		t.Error("localized name should order fluids")
	}
	if CompareFluidStacks(&a, &a) != 0 {
		t.Error("a fluid should compare equal to itself")
	}
}

func TestCompareRecipes(t *testing.T) {
	base := Recipe{
		Enabled:     true,
		Duration:    200,
		EUt:         16,
		ItemInputs:  []ItemStack{item(1, 0, "ore.iron", "Iron Ore")},
		ItemOutputs: []ItemStack{item(2, 0, "dust.iron", "Iron Dust")},
	}

	t.Run("equal to a copy", func(t *testing.T) {
		other := base
		if !RecipesEqual(&base, &other) {
			t.Error("copies should compare equal")
		}
	})

	t.Run("enabled decides before stats", func(t *testing.T) {
		disabled := base
		disabled.Enabled = false
		disabled.Duration = 9999
		if CompareRecipes(&disabled, &base) >= 0 {
			t.Error("disabled recipe should sort before enabled regardless of duration")
		}
	})

	t.Run("duration decides before eut", func(t *testing.T) {
		slower := base
		slower.Duration = 400
		slower.EUt = 1
		if CompareRecipes(&base, &slower) >= 0 {
			t.Error("shorter duration should sort first")
		}
	})

	t.Run("inputs decide before outputs", func(t *testing.T) {
		other := base
		other.ItemInputs = []ItemStack{item(1, 0, "ore.gold", "Gold Ore")}
		other.ItemOutputs = []ItemStack{item(1, 0, "dust.aaa", "AAA Dust")}
		// gold < iron on unlocalized name
		if CompareRecipes(&other, &base) >= 0 {
			t.Error("input list should decide before output list")
		}
	})

	t.Run("shorter list is a prefix", func(t *testing.T) {
		longer := base
		longer.ItemInputs = append([]ItemStack{}, base.ItemInputs...)
		longer.ItemInputs = append(longer.ItemInputs, item(9, 0, "x", "X"))
		if CompareRecipes(&base, &longer) >= 0 {
			t.Error("prefix list should sort first")
		}
	})
}

func TestRecipeHasMissing(t *testing.T) {
	named := Recipe{
		Enabled:     true,
		Duration:    100,
		EUt:         8,
		ItemInputs:  []ItemStack{item(1, 0, "ore.iron", "Iron Ore")},
		ItemOutputs: []ItemStack{item(1, 0, "dust.iron", "Iron Dust")},
	}
	if named.HasMissing() {
		t.Error("fully named recipe should not have missing descriptors")
	}

	badInput := named
	badInput.ItemInputs = []ItemStack{item(1, 0, "", "Iron Ore")}
	if !badInput.HasMissing() {
		t.Error("unresolved input should be detected")
	}

	badOutput := named
	badOutput.FluidOutputs = []FluidStack{fluid(100, "fluid.x", "")}
	if !badOutput.HasMissing() {
		t.Error("unresolved fluid output should be detected")
	}
	if !badOutput.HasMissingOutput() {
		t.Error("HasMissingOutput should detect unresolved outputs")
	}
	if badInput.HasMissingOutput() {
		t.Error("HasMissingOutput should ignore inputs")
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}
