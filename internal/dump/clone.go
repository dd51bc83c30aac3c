package dump

// Clone returns a deep copy of the snapshot. Self-diff mode analyzes a
// snapshot against a copy of itself; the copy keeps the classifier's before
// and after inputs fully independent.
func (s *Snapshot) Clone() *Snapshot {
	out := &Snapshot{Sources: make([]Source, len(s.Sources))}
	for i := range s.Sources {
		out.Sources[i] = s.Sources[i].clone()
	}
	return out
}

func (s Source) clone() Source {
	out := Source{Kind: s.Kind}

	if s.Machines != nil {
		out.Machines = make([]Machine, len(s.Machines))
		for i := range s.Machines {
			out.Machines[i] = Machine{
				Name:    s.Machines[i].Name,
				Recipes: cloneRecipes(s.Machines[i].Recipes),
			}
		}
	}

	if s.Shaped != nil {
		out.Shaped = make([]ShapedRecipe, len(s.Shaped))
		for i := range s.Shaped {
			out.Shaped[i] = ShapedRecipe{
				ItemInputs: cloneItemPtrs(s.Shaped[i].ItemInputs),
				ItemOutput: cloneItemStack(s.Shaped[i].ItemOutput),
			}
		}
	}

	if s.Shapeless != nil {
		out.Shapeless = make([]ShapelessRecipe, len(s.Shapeless))
		for i := range s.Shapeless {
			out.Shapeless[i] = ShapelessRecipe{
				ItemInputs: cloneItemStacks(s.Shapeless[i].ItemInputs),
				ItemOutput: cloneItemStack(s.Shapeless[i].ItemOutput),
			}
		}
	}

	if s.ShapedOredict != nil {
		out.ShapedOredict = make([]ShapedOredictRecipe, len(s.ShapedOredict))
		for i := range s.ShapedOredict {
			out.ShapedOredict[i] = ShapedOredictRecipe{
				ItemInputs: cloneOredictInputs(s.ShapedOredict[i].ItemInputs),
				ItemOutput: cloneItemStack(s.ShapedOredict[i].ItemOutput),
			}
		}
	}

	return out
}

func cloneRecipes(recipes []Recipe) []Recipe {
	if recipes == nil {
		return nil
	}
	out := make([]Recipe, len(recipes))
	for i := range recipes {
		out[i] = Recipe{
			Enabled:      recipes[i].Enabled,
			Duration:     recipes[i].Duration,
			EUt:          recipes[i].EUt,
			ItemInputs:   cloneItemStacks(recipes[i].ItemInputs),
			FluidInputs:  cloneFluidStacks(recipes[i].FluidInputs),
			ItemOutputs:  cloneItemStacks(recipes[i].ItemOutputs),
			FluidOutputs: cloneFluidStacks(recipes[i].FluidOutputs),
		}
	}
	return out
}

func cloneItemStack(s ItemStack) ItemStack {
	return ItemStack{
		Amount:          s.Amount,
		Metadata:        s.Metadata,
		UnlocalizedName: cloneString(s.UnlocalizedName),
		LocalizedName:   cloneString(s.LocalizedName),
	}
}

func cloneFluidStack(s FluidStack) FluidStack {
	return FluidStack{
		Amount:          s.Amount,
		UnlocalizedName: cloneString(s.UnlocalizedName),
		LocalizedName:   cloneString(s.LocalizedName),
	}
}

func cloneItemStacks(stacks []ItemStack) []ItemStack {
	if stacks == nil {
		return nil
	}
	out := make([]ItemStack, len(stacks))
	for i := range stacks {
		out[i] = cloneItemStack(stacks[i])
	}
	return out
}

func cloneFluidStacks(stacks []FluidStack) []FluidStack {
	if stacks == nil {
		return nil
	}
	out := make([]FluidStack, len(stacks))
	for i := range stacks {
		out[i] = cloneFluidStack(stacks[i])
	}
	return out
}

func cloneItemPtrs(stacks []*ItemStack) []*ItemStack {
	if stacks == nil {
		return nil
	}
	out := make([]*ItemStack, len(stacks))
	for i, s := range stacks {
		if s != nil {
			c := cloneItemStack(*s)
			out[i] = &c
		}
	}
	return out
}

func cloneOredictInputs(inputs []*OredictInput) []*OredictInput {
	if inputs == nil {
		return nil
	}
	out := make([]*OredictInput, len(inputs))
	for i, in := range inputs {
		if in == nil {
			continue
		}
		c := &OredictInput{}
		if in.Oredict != nil {
			c.Oredict = &OredictStack{
				OredictNames: append([]string(nil), in.Oredict.OredictNames...),
				Candidates:   cloneItemStacks(in.Oredict.Candidates),
			}
		}
		if in.Stack != nil {
			s := cloneItemStack(*in.Stack)
			c.Stack = &s
		}
		out[i] = c
	}
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
