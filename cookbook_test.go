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

import (
	"errors"
	"testing"
)

func TestNewCookbookUnknownRecipe(t *testing.T) {
	def := CookbookDefinition{"pt": {"cookbook_test_does_not_exist"}}
	if _, err := NewCookbook(def, nil, NewConfigStore()); !errors.Is(err, ErrUnknownRecipe) {
		t.Errorf("NewCookbook with unregistered recipe: got %v, want ErrUnknownRecipe", err)
	}
}

func TestNewCookbookProductMismatch(t *testing.T) {
	Register("cookbook_test_wrong_product", func(params RecipeParameters, cfg *ConfigStore) (Recipe, error) {
		return &fakeRecipe{name: "cookbook_test_wrong_product", product: "not_pt"}, nil
	})
	def := CookbookDefinition{"pt": {"cookbook_test_wrong_product"}}
	if _, err := NewCookbook(def, nil, NewConfigStore()); err == nil {
		t.Errorf("NewCookbook with mismatched product should have failed")
	}
}

func TestNewCookbookSelfDependency(t *testing.T) {
	Register("cookbook_test_self_dep", func(params RecipeParameters, cfg *ConfigStore) (Recipe, error) {
		return &fakeRecipe{name: "cookbook_test_self_dep", product: "a", ingredients: []string{"a"}}, nil
	})
	def := CookbookDefinition{"a": {"cookbook_test_self_dep"}}
	if _, err := NewCookbook(def, nil, NewConfigStore()); !errors.Is(err, ErrSelfDependency) {
		t.Errorf("NewCookbook with self-dependent recipe: got %v, want ErrSelfDependency", err)
	}
}

func TestNewCookbookParameterFallback(t *testing.T) {
	var seenOptions map[string]interface{}
	Register("cookbook_test_param_fallback", func(params RecipeParameters, cfg *ConfigStore) (Recipe, error) {
		seenOptions = params.Options
		return &fakeRecipe{name: "cookbook_test_param_fallback", product: "pt"}, nil
	})
	def := CookbookDefinition{"pt": {"cookbook_test_param_fallback"}}
	if _, err := NewCookbook(def, nil, NewConfigStore()); err != nil {
		t.Fatalf("NewCookbook: %v", err)
	}
	if seenOptions != nil {
		t.Errorf("factory with no matching RecipeParameters block should see a nil Options map, got %v", seenOptions)
	}

	params := []RecipeParameters{{Name: "cookbook_test_param_fallback", Options: map[string]interface{}{"p0": 1013.25}}}
	if _, err := NewCookbook(def, params, NewConfigStore()); err != nil {
		t.Fatalf("NewCookbook: %v", err)
	}
	if seenOptions["p0"] != 1013.25 {
		t.Errorf("factory did not see the matching RecipeParameters block's options: %v", seenOptions)
	}
}

func TestCookbookCandidatesAndLen(t *testing.T) {
	recipeA := &fakeRecipe{name: "ra", product: "a"}
	recipeB := &fakeRecipe{name: "rb", product: "b"}
	cb := cookbookOf(map[string][]Recipe{
		"a": {recipeA},
		"b": {recipeB},
	})
	if cb.Len() != 2 {
		t.Errorf("Len() = %d, want 2", cb.Len())
	}
	if got := cb.Candidates("a"); len(got) != 1 || got[0] != recipeA {
		t.Errorf("Candidates(a) = %v, want [recipeA]", got)
	}
	if got := cb.Candidates("missing"); got != nil {
		t.Errorf("Candidates(missing) = %v, want nil", got)
	}
}
