// Package dump defines the typed model of a recex dump file and the
// comparison primitives the rest of the analyzer is built on.
//
// Every structure accepts both the current long field names and the legacy
// short aliases (a/m/uN/lN/en/dur/iI/fI/iO/fO/n/recs) so dumps written by
// older exporter versions keep loading.
package dump

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ItemStack describes one item slot: how many of which item sub-type, plus
// the registry identifier and display name when they resolved.
type ItemStack struct {
	Amount          int     `json:"amount"`
	Metadata        int     `json:"metadata"`
	UnlocalizedName *string `json:"unlocalizedName"`
	LocalizedName   *string `json:"localizedName"`
}

// UnmarshalJSON accepts both long and short field names.
func (s *ItemStack) UnmarshalJSON(data []byte) error {
	var raw struct {
		Amount          *int    `json:"amount"`
		AmountShort     *int    `json:"a"`
		Metadata        *int    `json:"metadata"`
		MetadataShort   *int    `json:"m"`
		UnlocalizedName *string `json:"unlocalizedName"`
		UNShort         *string `json:"uN"`
		LocalizedName   *string `json:"localizedName"`
		LNShort         *string `json:"lN"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	amount := firstInt(raw.Amount, raw.AmountShort)
	if amount == nil {
		return fmt.Errorf("item stack: missing required field %q", "amount")
	}

	s.Amount = *amount
	s.Metadata = derefInt(firstInt(raw.Metadata, raw.MetadataShort))
	s.UnlocalizedName = firstString(raw.UnlocalizedName, raw.UNShort)
	s.LocalizedName = firstString(raw.LocalizedName, raw.LNShort)
	return nil
}

// FluidStack describes one fluid slot. Fluids carry no metadata sub-type.
type FluidStack struct {
	Amount          int     `json:"amount"`
	UnlocalizedName *string `json:"unlocalizedName"`
	LocalizedName   *string `json:"localizedName"`
}

// UnmarshalJSON accepts both long and short field names.
func (s *FluidStack) UnmarshalJSON(data []byte) error {
	var raw struct {
		Amount          *int    `json:"amount"`
		AmountShort     *int    `json:"a"`
		UnlocalizedName *string `json:"unlocalizedName"`
		UNShort         *string `json:"uN"`
		LocalizedName   *string `json:"localizedName"`
		LNShort         *string `json:"lN"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	amount := firstInt(raw.Amount, raw.AmountShort)
	if amount == nil {
		return fmt.Errorf("fluid stack: missing required field %q", "amount")
	}

	s.Amount = *amount
	s.UnlocalizedName = firstString(raw.UnlocalizedName, raw.UNShort)
	s.LocalizedName = firstString(raw.LocalizedName, raw.LNShort)
	return nil
}

// Recipe is one machine recipe: canonical inputs, outputs and run stats.
type Recipe struct {
	Enabled      bool         `json:"enabled"`
	Duration     int          `json:"duration"`
	EUt          int          `json:"eut"`
	ItemInputs   []ItemStack  `json:"itemInputs,omitempty"`
	FluidInputs  []FluidStack `json:"fluidInputs,omitempty"`
	ItemOutputs  []ItemStack  `json:"itemOutputs,omitempty"`
	FluidOutputs []FluidStack `json:"fluidOutputs,omitempty"`
}

// UnmarshalJSON accepts both long and short field names. Absent ingredient
// lists decode as empty rather than failing, since the exporter omits empty
// lists when writing.
func (r *Recipe) UnmarshalJSON(data []byte) error {
	var raw struct {
		Enabled       *bool        `json:"enabled"`
		EnabledShort  *bool        `json:"en"`
		Duration      *int         `json:"duration"`
		DurationShort *int         `json:"dur"`
		EUt           *int         `json:"eut"`
		ItemInputs    []ItemStack  `json:"itemInputs"`
		IIShort       []ItemStack  `json:"iI"`
		FluidInputs   []FluidStack `json:"fluidInputs"`
		FIShort       []FluidStack `json:"fI"`
		ItemOutputs   []ItemStack  `json:"itemOutputs"`
		IOShort       []ItemStack  `json:"iO"`
		FluidOutputs  []FluidStack `json:"fluidOutputs"`
		FOShort       []FluidStack `json:"fO"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	enabled := firstBool(raw.Enabled, raw.EnabledShort)
	duration := firstInt(raw.Duration, raw.DurationShort)
	if enabled == nil || duration == nil || raw.EUt == nil {
		return fmt.Errorf("recipe: missing required stats fields")
	}

	r.Enabled = *enabled
	r.Duration = *duration
	r.EUt = *raw.EUt
	r.ItemInputs = firstItemList(raw.ItemInputs, raw.IIShort)
	r.FluidInputs = firstFluidList(raw.FluidInputs, raw.FIShort)
	r.ItemOutputs = firstItemList(raw.ItemOutputs, raw.IOShort)
	r.FluidOutputs = firstFluidList(raw.FluidOutputs, raw.FOShort)
	return nil
}

// Machine is a named producer with its registered recipes.
type Machine struct {
	Name    string   `json:"name"`
	Recipes []Recipe `json:"recipes,omitempty"`
}

// UnmarshalJSON accepts both long and short field names.
func (m *Machine) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name      *string  `json:"name"`
		NameShort *string  `json:"n"`
		Recipes   []Recipe `json:"recipes"`
		RecsShort []Recipe `json:"recs"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	name := firstString(raw.Name, raw.NameShort)
	if name == nil {
		return fmt.Errorf("machine: missing required field %q", "name")
	}

	m.Name = *name
	if raw.Recipes != nil {
		m.Recipes = raw.Recipes
	} else {
		m.Recipes = raw.RecsShort
	}
	return nil
}

// ShapedRecipe is a crafting-grid recipe; nil slots are empty grid cells.
// Parsed for schema completeness, never analyzed.
type ShapedRecipe struct {
	ItemInputs []*ItemStack `json:"itemInputs"`
	ItemOutput ItemStack    `json:"itemOutput"`
}

func (r *ShapedRecipe) UnmarshalJSON(data []byte) error {
	var raw struct {
		ItemInputs []*ItemStack `json:"itemInputs"`
		IIShort    []*ItemStack `json:"iI"`
		ItemOutput *ItemStack   `json:"itemOutput"`
		OShort     *ItemStack   `json:"o"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if raw.ItemInputs != nil {
		r.ItemInputs = raw.ItemInputs
	} else {
		r.ItemInputs = raw.IIShort
	}
	out := raw.ItemOutput
	if out == nil {
		out = raw.OShort
	}
	if out == nil {
		return fmt.Errorf("shaped recipe: missing required field %q", "itemOutput")
	}
	r.ItemOutput = *out
	return nil
}

// ShapelessRecipe is an order-independent crafting recipe.
// Parsed for schema completeness, never analyzed.
type ShapelessRecipe struct {
	ItemInputs []ItemStack `json:"itemInputs"`
	ItemOutput ItemStack   `json:"itemOutput"`
}

func (r *ShapelessRecipe) UnmarshalJSON(data []byte) error {
	var raw struct {
		ItemInputs []ItemStack `json:"itemInputs"`
		IIShort    []ItemStack `json:"iI"`
		ItemOutput *ItemStack  `json:"itemOutput"`
		OShort     *ItemStack  `json:"o"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	r.ItemInputs = firstItemList(raw.ItemInputs, raw.IIShort)
	out := raw.ItemOutput
	if out == nil {
		out = raw.OShort
	}
	if out == nil {
		return fmt.Errorf("shapeless recipe: missing required field %q", "itemOutput")
	}
	r.ItemOutput = *out
	return nil
}

// OredictStack is an ore-dictionary slot: the dictionary names plus the
// concrete stacks that currently satisfy them.
type OredictStack struct {
	OredictNames []string    `json:"oredictNames"`
	Candidates   []ItemStack `json:"candidates"`
}

func (s *OredictStack) UnmarshalJSON(data []byte) error {
	var raw struct {
		OredictNames []string    `json:"oredictNames"`
		DNSShort     []string    `json:"dns"`
		Candidates   []ItemStack `json:"candidates"`
		IMSShort     []ItemStack `json:"ims"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if raw.OredictNames != nil {
		s.OredictNames = raw.OredictNames
	} else {
		s.OredictNames = raw.DNSShort
	}
	s.Candidates = firstItemList(raw.Candidates, raw.IMSShort)
	return nil
}

// OredictInput is a flattened union: either an ore-dictionary slot or a
// plain item stack, decided by which fields are present.
type OredictInput struct {
	Oredict *OredictStack `json:"-"`
	Stack   *ItemStack    `json:"-"`
}

func (o *OredictInput) UnmarshalJSON(data []byte) error {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}

	if hasAny(probe, "oredictNames", "dns") {
		o.Oredict = &OredictStack{}
		if err := json.Unmarshal(data, o.Oredict); err != nil {
			return err
		}
	}
	if hasAny(probe, "amount", "a") {
		o.Stack = &ItemStack{}
		if err := json.Unmarshal(data, o.Stack); err != nil {
			return err
		}
	}
	return nil
}

// ShapedOredictRecipe is a shaped recipe whose slots may be ore-dictionary
// references. Parsed for schema completeness, never analyzed.
type ShapedOredictRecipe struct {
	ItemInputs []*OredictInput `json:"itemInputs"`
	ItemOutput ItemStack       `json:"itemOutput"`
}

func (r *ShapedOredictRecipe) UnmarshalJSON(data []byte) error {
	var raw struct {
		ItemInputs []*OredictInput `json:"itemInputs"`
		IIShort    []*OredictInput `json:"iI"`
		ItemOutput *ItemStack      `json:"itemOutput"`
		OShort     *ItemStack      `json:"o"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if raw.ItemInputs != nil {
		r.ItemInputs = raw.ItemInputs
	} else {
		r.ItemInputs = raw.IIShort
	}
	out := raw.ItemOutput
	if out == nil {
		out = raw.OShort
	}
	if out == nil {
		return fmt.Errorf("shaped oredict recipe: missing required field %q", "itemOutput")
	}
	r.ItemOutput = *out
	return nil
}

// SourceKind discriminates the recipe source union.
type SourceKind string

const (
	SourceGregtech      SourceKind = "gregtech"
	SourceShaped        SourceKind = "shaped"
	SourceShapeless     SourceKind = "shapeless"
	SourceShapedOredict SourceKind = "shapedOreDict"
)

// Source is one tagged element of the dump's sources array. Exactly one
// payload field is set, matching Kind. Only the gregtech payload is analyzed;
// the crafting variants are carried opaquely.
type Source struct {
	Kind          SourceKind
	Machines      []Machine
	Shaped        []ShapedRecipe
	Shapeless     []ShapelessRecipe
	ShapedOredict []ShapedOredictRecipe
}

// UnmarshalJSON dispatches on the type tag, tolerating case variants.
func (s *Source) UnmarshalJSON(data []byte) error {
	var tag struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &tag); err != nil {
		return err
	}

	switch strings.ToLower(tag.Type) {
	case "gregtech":
		s.Kind = SourceGregtech
		var payload struct {
			Machines []Machine `json:"machines"`
		}
		if err := json.Unmarshal(data, &payload); err != nil {
			return err
		}
		s.Machines = payload.Machines
		return nil
	case "shaped":
		s.Kind = SourceShaped
		var payload struct {
			Recipes []ShapedRecipe `json:"recipes"`
		}
		if err := json.Unmarshal(data, &payload); err != nil {
			return err
		}
		s.Shaped = payload.Recipes
		return nil
	case "shapeless":
		s.Kind = SourceShapeless
		var payload struct {
			Recipes []ShapelessRecipe `json:"recipes"`
		}
		if err := json.Unmarshal(data, &payload); err != nil {
			return err
		}
		s.Shapeless = payload.Recipes
		return nil
	case "shapedoredict":
		s.Kind = SourceShapedOredict
		var payload struct {
			Recipes []ShapedOredictRecipe `json:"recipes"`
		}
		if err := json.Unmarshal(data, &payload); err != nil {
			return err
		}
		s.ShapedOredict = payload.Recipes
		return nil
	default:
		return fmt.Errorf("unknown recipe source type %q", tag.Type)
	}
}

// Snapshot is one full dump of recipe data at a point in time.
type Snapshot struct {
	Sources []Source `json:"sources"`
}

// Machines returns the machine list of the snapshot's gregtech source, or
// ok=false when the snapshot carries no such source.
func (s *Snapshot) Machines() ([]Machine, bool) {
	for i := range s.Sources {
		if s.Sources[i].Kind == SourceGregtech {
			return s.Sources[i].Machines, true
		}
	}
	return nil, false
}

func firstInt(vals ...*int) *int {
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return nil
}

func firstBool(vals ...*bool) *bool {
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return nil
}

func firstString(vals ...*string) *string {
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return nil
}

func firstItemList(long, short []ItemStack) []ItemStack {
	if long != nil {
		return long
	}
	return short
}

func firstFluidList(long, short []FluidStack) []FluidStack {
	if long != nil {
		return long
	}
	return short
}

func derefInt(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func hasAny(m map[string]json.RawMessage, keys ...string) bool {
	for _, k := range keys {
		if _, ok := m[k]; ok {
			return true
		}
	}
	return false
}
