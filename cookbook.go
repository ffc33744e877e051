/*
Copyright © 2024 the varchange authors.
This file is part of varchange.

varchange is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

varchange is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with varchange.  If not, see <http://www.gnu.org/licenses/>.
*/

package varchange

import "fmt"

// CookbookDefinition maps an output variable name to the ordered list of
// recipe names that are candidates for producing it. Order is caller
// preference: candidates earlier in the list are tried first by the
// planner.
type CookbookDefinition map[string][]string

// Cookbook is the catalog mapping each derivable variable name to an ordered
// list of candidate Recipe instances. It is built once, at construction, and
// is immutable and safely shareable thereafter; the planner and the plans it
// produces hold only non-owning references into it.
type Cookbook struct {
	recipes map[string][]Recipe
}

// findParameters returns the RecipeParameters in all whose Name matches
// recipeName, or a defaulted block (Name: recipeName, Options: nil) if none
// matches. This is the Go rendering of Vader::createCookbook's
// allRecpParamWraps matching loop: there might not be any recipe parameters
// at all, and there might not be parameters for this particular recipe - both
// are fine.
func findParameters(all []RecipeParameters, recipeName string) RecipeParameters {
	for _, p := range all {
		if p.Name == recipeName {
			return p
		}
	}
	return RecipeParameters{Name: recipeName}
}

// DefaultCookbookDefinition returns the built-in default cookbook: "pt" from
// either t_to_pt or, failing that, its unlinearized sibling t_to_pt_simple,
// plus surface_fine_pm and virtual_temperature under their own names. This
// mirrors VaderConstructConfig's default cookbookConfigType argument, which
// lets a caller construct a usable instance without writing out a
// CookbookDefinition by hand. It only resolves if the caller has registered
// recipes under these names - typically by blank-importing a recipes package
// for its init-time Register calls before calling NewCookbook or New.
func DefaultCookbookDefinition() CookbookDefinition {
	return CookbookDefinition{
		"pt":                  {"t_to_pt", "t_to_pt_simple"},
		"surface_fine_pm":     {"surface_fine_pm"},
		"virtual_temperature": {"virtual_temperature"},
	}
}

// NewCookbook builds a Cookbook from definition, falling back to
// DefaultCookbookDefinition if definition is nil or empty. For each
// (outputName, recipeName) pair, it looks up the factory registered under
// recipeName, supplies the matching entry in allParams if one was given
// (otherwise a defaulted block), and constructs the recipe. It fails with
// ErrUnknownRecipe if a named recipe was never registered, and fails if any
// constructed recipe's product name does not equal the cookbook key it was
// listed under (invariant 1) or if any recipe lists its own product among
// its ingredients (invariant 2).
func NewCookbook(definition CookbookDefinition, allParams []RecipeParameters, cfg *ConfigStore) (*Cookbook, error) {
	if len(definition) == 0 {
		definition = DefaultCookbookDefinition()
	}
	cb := &Cookbook{recipes: make(map[string][]Recipe, len(definition))}
	for output, recipeNames := range definition {
		candidates := make([]Recipe, 0, len(recipeNames))
		for _, recipeName := range recipeNames {
			factory, err := lookupFactory(recipeName)
			if err != nil {
				return nil, err
			}
			params := findParameters(allParams, recipeName)
			recipe, err := factory(params, cfg)
			if err != nil {
				return nil, fmt.Errorf("varchange: constructing recipe %q for %q: %w", recipeName, output, err)
			}
			if recipe.Product() != output {
				return nil, fmt.Errorf("varchange: recipe %q is listed under cookbook entry %q but produces %q",
					recipeName, output, recipe.Product())
			}
			for _, ingredient := range recipe.Ingredients() {
				if ingredient == recipe.Product() {
					return nil, fmt.Errorf("varchange: recipe %q: %w", recipeName, ErrSelfDependency)
				}
			}
			candidates = append(candidates, recipe)
		}
		cb.recipes[output] = candidates
	}
	return cb, nil
}

// Candidates returns the ordered list of recipes registered to produce
// name, or nil if the cookbook has no entry for it.
func (cb *Cookbook) Candidates(name string) []Recipe {
	return cb.recipes[name]
}

// Len returns the number of distinct output variables the cookbook has
// entries for. Planner uses this as its default recursion depth bound.
func (cb *Cookbook) Len() int {
	return len(cb.recipes)
}
