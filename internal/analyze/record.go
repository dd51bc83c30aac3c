package analyze

import (
	"encoding/json"
	"sort"

	"github.com/RecursivePineapple/recex-analyzer/internal/dump"
)

// Record carries one classified signature's registration lists. When the
// sorted before and after lists are element-wise equal the record renders as
// Same{recipes}; otherwise as Diff{before, after}. The representation is
// orthogonal to the status kind: an Added record is always a Diff with an
// empty before list, a DuplicateRegistration is usually a Same.
type Record struct {
	// Same indicates both sides hold identical sorted lists.
	Same bool

	// Recipes is set when Same is true.
	Recipes []*dump.Recipe

	// Before and After are set when Same is false.
	Before []*dump.Recipe
	After  []*dump.Recipe
}

// NewRecord sorts copies of both registration lists and collapses them into
// the Same representation when they match.
func NewRecord(before, after []*dump.Recipe) Record {
	b := sortedCopy(before)
	a := sortedCopy(after)

	if recipeListsEqual(b, a) {
		return Record{Same: true, Recipes: b}
	}
	return Record{Before: b, After: a}
}

type sameRecord struct {
	Recipes []*dump.Recipe `json:"recipes"`
}

type diffRecord struct {
	Before []*dump.Recipe `json:"before"`
	After  []*dump.Recipe `json:"after"`
}

// MarshalJSON renders the Same/Diff shape.
func (r Record) MarshalJSON() ([]byte, error) {
	if r.Same {
		return json.Marshal(sameRecord{Recipes: emptyNotNull(r.Recipes)})
	}
	return json.Marshal(diffRecord{
		Before: emptyNotNull(r.Before),
		After:  emptyNotNull(r.After),
	})
}

// Compare defines the records' natural order: Diff records before Same
// records, then by their sorted recipe lists.
func (r *Record) Compare(other *Record) int {
	if r.Same != other.Same {
		if other.Same {
			return -1
		}
		return 1
	}
	if r.Same {
		return compareRecipeLists(r.Recipes, other.Recipes)
	}
	if c := compareRecipeLists(r.Before, other.Before); c != 0 {
		return c
	}
	return compareRecipeLists(r.After, other.After)
}

func sortedCopy(recipes []*dump.Recipe) []*dump.Recipe {
	out := make([]*dump.Recipe, len(recipes))
	copy(out, recipes)
	sort.SliceStable(out, func(i, j int) bool {
		return dump.CompareRecipes(out[i], out[j]) < 0
	})
	return out
}

func recipeListsEqual(a, b []*dump.Recipe) bool {
	return compareRecipeLists(a, b) == 0
}

func compareRecipeLists(a, b []*dump.Recipe) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if c := dump.CompareRecipes(a[i], b[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

func emptyNotNull(recipes []*dump.Recipe) []*dump.Recipe {
	if recipes == nil {
		return []*dump.Recipe{}
	}
	return recipes
}
