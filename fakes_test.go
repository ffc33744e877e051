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

// fakeRecipe is a hand-built Recipe used by planner/executor/cookbook tests,
// constructed directly rather than through the package registry. Fields
// left as their zero value give sensible no-op behavior (one level, NL
// always succeeds by copying nothing).
type fakeRecipe struct {
	name        string
	product     string
	ingredients []string
	hasTLAD     bool
	levels      int

	executeNL func(fs *FieldSet) (bool, error)
	executeTL func(fs, trajectory *FieldSet) (bool, error)
	executeAD func(fs, trajectory *FieldSet) (bool, error)
}

func (r *fakeRecipe) Name() string           { return r.name }
func (r *fakeRecipe) Product() string        { return r.product }
func (r *fakeRecipe) Ingredients() []string   { return r.ingredients }
func (r *fakeRecipe) HasTLAD() bool           { return r.hasTLAD }
func (r *fakeRecipe) RequiresSetup() bool     { return false }
func (r *fakeRecipe) Setup(fs *FieldSet) error { return nil }

func (r *fakeRecipe) ProductLevels(fs *FieldSet) (int, error) {
	if r.levels > 0 {
		return r.levels, nil
	}
	return 1, nil
}

func (r *fakeRecipe) ProductFunctionSpace(fs *FieldSet) (FunctionSpace, error) {
	return FunctionSpace{Name: "g", NumNodes: 1}, nil
}

func (r *fakeRecipe) ExecuteNL(fs *FieldSet) (bool, error) {
	if r.executeNL != nil {
		return r.executeNL(fs)
	}
	return true, nil
}

func (r *fakeRecipe) ExecuteTL(fs, trajectory *FieldSet) (bool, error) {
	if r.executeTL != nil {
		return r.executeTL(fs, trajectory)
	}
	return true, nil
}

func (r *fakeRecipe) ExecuteAD(fs, trajectory *FieldSet) (bool, error) {
	if r.executeAD != nil {
		return r.executeAD(fs, trajectory)
	}
	return true, nil
}

// cookbookOf builds a *Cookbook directly from already-constructed fake
// recipes, bypassing NewCookbook's registry lookup (which only knows about
// recipes registered with Register). The planner tests in this package build
// their fixtures around it; the executor tests build their Plans directly.
func cookbookOf(byProduct map[string][]Recipe) *Cookbook {
	return &Cookbook{recipes: byProduct}
}
