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
	"fmt"

	"github.com/sirupsen/logrus"
)

// Executor runs a Plan against a field set in one of three modes: NL, TL, or
// AD. It allocates product fields (NL only), validates ingredient presence,
// invokes each recipe's optional setup pass, and dispatches to the
// recipe's variant method for the requested mode.
type Executor struct {
	// Log receives structured trace/debug entries for each plan entry.
	// Defaults to logrus.StandardLogger() if left nil.
	Log logrus.Ext1FieldLogger
}

// NewExecutor returns an Executor with a default logger.
func NewExecutor() *Executor {
	return &Executor{Log: logrus.StandardLogger()}
}

func (e *Executor) logger() logrus.Ext1FieldLogger {
	if e.Log != nil {
		return e.Log
	}
	return logrus.StandardLogger()
}

func checkIngredients(fs *FieldSet, recipe Recipe) error {
	for _, ingredient := range recipe.Ingredients() {
		if !fs.Has(ingredient) {
			return fmt.Errorf("varchange: recipe %q ingredient %q: %w", recipe.Name(), ingredient, ErrMissingIngredient)
		}
	}
	return nil
}

// prepareProductNL ensures the plan entry's product field exists in fs with
// sufficient levels, allocating a new field if necessary.
func prepareProductNL(fs *FieldSet, entry PlanEntry) error {
	if existing, ok := fs.fields[entry.Product]; ok {
		want, err := entry.Recipe.ProductLevels(fs)
		if err != nil {
			return err
		}
		if existing.Levels() < want {
			return fmt.Errorf("varchange: product %q has %d levels, recipe %q needs %d: %w",
				entry.Product, existing.Levels(), entry.Recipe.Name(), want, ErrInsufficientLevels)
		}
		return nil
	}
	levels, err := entry.Recipe.ProductLevels(fs)
	if err != nil {
		return err
	}
	grid, err := entry.Recipe.ProductFunctionSpace(fs)
	if err != nil {
		return err
	}
	fs.Add(NewField(entry.Product, grid, levels))
	return nil
}

func dispatchFailure(recipe Recipe, ok bool, err error) error {
	if err != nil {
		return fmt.Errorf("varchange: recipe %q: %w", recipe.Name(), err)
	}
	if !ok {
		return fmt.Errorf("varchange: recipe %q: %w", recipe.Name(), ErrRecipeExecutionFailure)
	}
	return nil
}

// ExecutePlanNL runs plan's entries in forward order against fs, calling
// each recipe's ExecuteNL. It allocates each entry's product field if it
// does not already exist in fs, or validates that a pre-existing one has
// enough levels.
func (e *Executor) ExecutePlanNL(fs *FieldSet, plan Plan) error {
	log := e.logger()
	log.Trace("entering ExecutePlanNL")
	for _, entry := range plan {
		log.WithFields(logrus.Fields{"product": entry.Product, "recipe": entry.Recipe.Name()}).
			Debug("executing NL recipe")
		if err := checkIngredients(fs, entry.Recipe); err != nil {
			return err
		}
		if err := prepareProductNL(fs, entry); err != nil {
			return err
		}
		if entry.Recipe.RequiresSetup() {
			if err := entry.Recipe.Setup(fs); err != nil {
				return fmt.Errorf("varchange: recipe %q setup: %w", entry.Recipe.Name(), err)
			}
		}
		ok, err := entry.Recipe.ExecuteNL(fs)
		if failure := dispatchFailure(entry.Recipe, ok, err); failure != nil {
			return failure
		}
	}
	log.Trace("leaving ExecutePlanNL")
	return nil
}

// ExecutePlanTL runs plan's entries in forward order against fs, calling
// each recipe's ExecuteTL with trajectory as the linearization point. Unlike
// NL mode, every plan entry's product field must already exist in fs.
func (e *Executor) ExecutePlanTL(fs, trajectory *FieldSet, plan Plan) error {
	log := e.logger()
	log.Trace("entering ExecutePlanTL")
	for _, entry := range plan {
		log.WithFields(logrus.Fields{"product": entry.Product, "recipe": entry.Recipe.Name()}).
			Debug("executing TL recipe")
		if !fs.Has(entry.Product) {
			return fmt.Errorf("varchange: product %q: %w", entry.Product, ErrMissingProduct)
		}
		if err := checkIngredients(fs, entry.Recipe); err != nil {
			return err
		}
		if entry.Recipe.RequiresSetup() {
			if err := entry.Recipe.Setup(fs); err != nil {
				return fmt.Errorf("varchange: recipe %q setup: %w", entry.Recipe.Name(), err)
			}
		}
		ok, err := entry.Recipe.ExecuteTL(fs, trajectory)
		if failure := dispatchFailure(entry.Recipe, ok, err); failure != nil {
			return failure
		}
	}
	log.Trace("leaving ExecutePlanTL")
	return nil
}

// ExecutePlanAD runs plan's entries in reverse order against fs, calling
// each recipe's ExecuteAD with trajectory as the linearization point. The
// reverse order is what makes this the adjoint: the adjoint must propagate
// sensitivities against the non-linear data flow the forward plan
// established.
func (e *Executor) ExecutePlanAD(fs, trajectory *FieldSet, plan Plan) error {
	log := e.logger()
	log.Trace("entering ExecutePlanAD")
	for i := len(plan) - 1; i >= 0; i-- {
		entry := plan[i]
		log.WithFields(logrus.Fields{"product": entry.Product, "recipe": entry.Recipe.Name()}).
			Debug("executing AD recipe")
		if !fs.Has(entry.Product) {
			return fmt.Errorf("varchange: product %q: %w", entry.Product, ErrMissingProduct)
		}
		if err := checkIngredients(fs, entry.Recipe); err != nil {
			return err
		}
		if entry.Recipe.RequiresSetup() {
			if err := entry.Recipe.Setup(fs); err != nil {
				return fmt.Errorf("varchange: recipe %q setup: %w", entry.Recipe.Name(), err)
			}
		}
		ok, err := entry.Recipe.ExecuteAD(fs, trajectory)
		if failure := dispatchFailure(entry.Recipe, ok, err); failure != nil {
			return failure
		}
	}
	log.Trace("leaving ExecutePlanAD")
	return nil
}
