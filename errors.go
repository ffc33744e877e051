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

import "errors"

// Sentinel errors for the failure kinds varchange signals. Callers should
// use errors.Is against these rather than matching on message text.
var (
	// ErrUnknownField is returned by FieldSet.Field when the requested name
	// is not present in the field set.
	ErrUnknownField = errors.New("varchange: unknown field")

	// ErrUnknownRecipe is returned at cookbook construction time when a
	// cookbook definition names a recipe that was never registered.
	ErrUnknownRecipe = errors.New("varchange: unknown recipe")

	// ErrMissingConfig is returned by ConfigStore's typed getters when the
	// requested name has not been set.
	ErrMissingConfig = errors.New("varchange: missing config value")

	// ErrTypeMismatch is returned by ConfigStore's typed getters when the
	// stored value's type does not match the requested type.
	ErrTypeMismatch = errors.New("varchange: config value type mismatch")

	// ErrPlanningCycle is returned by the planner when recursion depth
	// exceeds the configured bound, indicating a cyclic cookbook.
	ErrPlanningCycle = errors.New("varchange: planning recursion exceeded depth bound")

	// ErrMissingIngredient is returned by the executor when a planned
	// recipe's ingredient is absent from the field set. This indicates a
	// planner bug: the planner is supposed to guarantee ingredient presence.
	ErrMissingIngredient = errors.New("varchange: recipe ingredient missing from field set")

	// ErrMissingProduct is returned by the TL/AD executor when a planned
	// recipe's product field does not already exist in the field set.
	ErrMissingProduct = errors.New("varchange: recipe product missing from field set")

	// ErrInsufficientLevels is returned when a pre-existing product field
	// has fewer levels than the recipe requires.
	ErrInsufficientLevels = errors.New("varchange: existing product field has too few levels")

	// ErrUnitMismatch is returned by recipes that validate a field's
	// "units" metadata tag and find it does not match what they expect.
	ErrUnitMismatch = errors.New("varchange: field units do not match recipe expectation")

	// ErrRecipeExecutionFailure is returned when a recipe's ExecuteNL,
	// ExecuteTL, or ExecuteAD method reports failure.
	ErrRecipeExecutionFailure = errors.New("varchange: recipe execution failed")

	// ErrSelfDependency is returned by NewCookbook when a recipe lists its
	// own product as an ingredient. The planner logs it (without returning
	// it) when it meets such a recipe, treats it as a terminal failure for
	// that one candidate and moves on to the next.
	ErrSelfDependency = errors.New("varchange: recipe ingredient list contains its own product")

	// ErrDuplicateRecipe is returned by Register when a recipe name has
	// already been registered.
	ErrDuplicateRecipe = errors.New("varchange: recipe name already registered")
)
