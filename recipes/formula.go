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

package recipes

import (
	"fmt"

	"github.com/Knetic/govaluate"
	"github.com/spatialmodel/varchange"
)

// Formula is a generic recipe whose product and ingredients are read from
// its construction-time RecipeParameters.Options rather than hard-coded, and
// whose forward computation is an arithmetic expression evaluated once per
// grid node by github.com/Knetic/govaluate, with each ingredient's value at
// that node bound as an expression variable of the same name. NL only -
// govaluate expressions carry no derivative. Registered under the name
// "formula".
//
// Options:
//
//	product     string   name of the variable this instance produces
//	ingredients []string ingredient variable names, also the expression's variable names
//	expression  string   a govaluate expression, e.g. "t * (1000.0/ps)**0.286"
//	levelsFrom  string   (optional) ingredient whose level count sizes the product;
//	                      defaults to the first ingredient
type Formula struct {
	product     string
	ingredients []string
	levelsFrom  string
	expr        *govaluate.EvaluableExpression
}

func newFormula(params varchange.RecipeParameters, cfg *varchange.ConfigStore) (varchange.Recipe, error) {
	product, ok := params.Options["product"].(string)
	if !ok || product == "" {
		return nil, fmt.Errorf("varchange/recipes: formula %q: missing string option %q", params.Name, "product")
	}
	rawIngredients, ok := params.Options["ingredients"].([]string)
	if !ok || len(rawIngredients) == 0 {
		return nil, fmt.Errorf("varchange/recipes: formula %q: missing []string option %q", params.Name, "ingredients")
	}
	exprText, ok := params.Options["expression"].(string)
	if !ok || exprText == "" {
		return nil, fmt.Errorf("varchange/recipes: formula %q: missing string option %q", params.Name, "expression")
	}
	expr, err := govaluate.NewEvaluableExpression(exprText)
	if err != nil {
		return nil, fmt.Errorf("varchange/recipes: formula %q: parsing expression %q: %w", params.Name, exprText, err)
	}
	levelsFrom, _ := params.Options["levelsFrom"].(string)
	if levelsFrom == "" {
		levelsFrom = rawIngredients[0]
	}
	return &Formula{
		product:     product,
		ingredients: rawIngredients,
		levelsFrom:  levelsFrom,
		expr:        expr,
	}, nil
}

func init() {
	varchange.Register("formula", newFormula)
}

func (r *Formula) Name() string              { return "formula" }
func (r *Formula) Product() string           { return r.product }
func (r *Formula) Ingredients() []string     { return r.ingredients }
func (r *Formula) HasTLAD() bool             { return false }
func (r *Formula) RequiresSetup() bool       { return false }
func (r *Formula) Setup(fs *varchange.FieldSet) error { return nil }
func (r *Formula) ExecuteTL(fs, trajectory *varchange.FieldSet) (bool, error) { return false, nil }
func (r *Formula) ExecuteAD(fs, trajectory *varchange.FieldSet) (bool, error) { return false, nil }

func (r *Formula) ProductLevels(fs *varchange.FieldSet) (int, error) {
	f, err := fs.Field(r.levelsFrom)
	if err != nil {
		return 0, err
	}
	return f.Levels(), nil
}

func (r *Formula) ProductFunctionSpace(fs *varchange.FieldSet) (varchange.FunctionSpace, error) {
	f, err := fs.Field(r.levelsFrom)
	if err != nil {
		return varchange.FunctionSpace{}, err
	}
	return f.FunctionSpace(), nil
}

func (r *Formula) ExecuteNL(fs *varchange.FieldSet) (bool, error) {
	ingredientFields := make(map[string]*varchange.Field, len(r.ingredients))
	for _, name := range r.ingredients {
		f, err := fs.Field(name)
		if err != nil {
			return false, err
		}
		ingredientFields[name] = f
	}
	out, err := fs.Field(r.product)
	if err != nil {
		return false, err
	}

	vars := make(map[string]interface{}, len(r.ingredients))
	for level := 0; level < out.Levels(); level++ {
		for node := 0; node < out.Size(); node++ {
			for name, f := range ingredientFields {
				readLevel := level
				if readLevel >= f.Levels() {
					readLevel = f.Levels() - 1
				}
				vars[name] = f.At(node, readLevel)
			}
			result, err := r.expr.Evaluate(vars)
			if err != nil {
				return false, fmt.Errorf("varchange/recipes: formula %q: evaluating at node %d level %d: %w",
					r.product, node, level, err)
			}
			v, ok := result.(float64)
			if !ok {
				return false, fmt.Errorf("varchange/recipes: formula %q: expression produced non-numeric result %v", r.product, result)
			}
			out.Set(node, level, v)
		}
	}
	return true, nil
}
