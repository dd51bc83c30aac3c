package dump

// Sentinel values the game substitutes when an item name fails to resolve
// against its registry. A stack carrying either is not a real ingredient.
const (
	placeholderUnlocalizedName = "tile.fire"
	placeholderLocalizedName   = "Fire"
)

// IsMissing reports whether the stack's identity failed to resolve: either
// name absent, or either name equal to its placeholder sentinel.
func (s *ItemStack) IsMissing() bool {
	return s.UnlocalizedName == nil ||
		s.LocalizedName == nil ||
		*s.UnlocalizedName == placeholderUnlocalizedName ||
		*s.LocalizedName == placeholderLocalizedName
}

// IsMissing reports whether the fluid's identity failed to resolve. Fluids
// have no placeholder sentinel; only absent names count.
func (s *FluidStack) IsMissing() bool {
	return s.UnlocalizedName == nil || s.LocalizedName == nil
}

// HasMissing reports whether any input or output descriptor is missing.
func (r *Recipe) HasMissing() bool {
	for i := range r.ItemInputs {
		if r.ItemInputs[i].IsMissing() {
			return true
		}
	}
	for i := range r.FluidInputs {
		if r.FluidInputs[i].IsMissing() {
			return true
		}
	}
	for i := range r.ItemOutputs {
		if r.ItemOutputs[i].IsMissing() {
			return true
		}
	}
	for i := range r.FluidOutputs {
		if r.FluidOutputs[i].IsMissing() {
			return true
		}
	}
	return false
}

// HasMissingOutput reports whether any output descriptor is missing.
func (r *Recipe) HasMissingOutput() bool {
	for i := range r.ItemOutputs {
		if r.ItemOutputs[i].IsMissing() {
			return true
		}
	}
	for i := range r.FluidOutputs {
		if r.FluidOutputs[i].IsMissing() {
			return true
		}
	}
	return false
}

// CompareItemStacks defines the total order over item stacks: amount, then
// metadata, then unlocalized name, then localized name. An absent name sorts
// before any present name.
func CompareItemStacks(a, b *ItemStack) int {
	if c := compareInt(a.Amount, b.Amount); c != 0 {
		return c
	}
	if c := compareInt(a.Metadata, b.Metadata); c != 0 {
		return c
	}
	if c := compareOptString(a.UnlocalizedName, b.UnlocalizedName); c != 0 {
		return c
	}
	return compareOptString(a.LocalizedName, b.LocalizedName)
}

// CompareFluidStacks defines the total order over fluid stacks: amount, then
// unlocalized name, then localized name.
func CompareFluidStacks(a, b *FluidStack) int {
	if c := compareInt(a.Amount, b.Amount); c != 0 {
		return c
	}
	if c := compareOptString(a.UnlocalizedName, b.UnlocalizedName); c != 0 {
		return c
	}
	return compareOptString(a.LocalizedName, b.LocalizedName)
}

// CompareRecipes defines the total order over recipes: enabled, duration,
// eut, then the four descriptor lists lexicographically.
func CompareRecipes(a, b *Recipe) int {
	if c := compareBool(a.Enabled, b.Enabled); c != 0 {
		return c
	}
	if c := compareInt(a.Duration, b.Duration); c != 0 {
		return c
	}
	if c := compareInt(a.EUt, b.EUt); c != 0 {
		return c
	}
	if c := CompareItemLists(a.ItemInputs, b.ItemInputs); c != 0 {
		return c
	}
	if c := CompareFluidLists(a.FluidInputs, b.FluidInputs); c != 0 {
		return c
	}
	if c := CompareItemLists(a.ItemOutputs, b.ItemOutputs); c != 0 {
		return c
	}
	return CompareFluidLists(a.FluidOutputs, b.FluidOutputs)
}

// CompareItemLists orders item stack lists lexicographically, shorter prefix
// first.
func CompareItemLists(a, b []ItemStack) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if c := CompareItemStacks(&a[i], &b[i]); c != 0 {
			return c
		}
	}
	return compareInt(len(a), len(b))
}

// CompareFluidLists orders fluid stack lists lexicographically, shorter
// prefix first.
func CompareFluidLists(a, b []FluidStack) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if c := CompareFluidStacks(&a[i], &b[i]); c != 0 {
			return c
		}
	}
	return compareInt(len(a), len(b))
}

// RecipesEqual reports full field-wise equality of two recipes.
func RecipesEqual(a, b *Recipe) bool {
	return CompareRecipes(a, b) == 0
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareBool(a, b bool) int {
	switch {
	case !a && b:
		return -1
	case a && !b:
		return 1
	default:
		return 0
	}
}

// compareOptString orders absent before present, then lexically.
func compareOptString(a, b *string) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	case *a < *b:
		return -1
	case *a > *b:
		return 1
	default:
		return 0
	}
}
