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

// Planner resolves a dependency-ordered Plan for the variables a caller
// needs, recursively manufacturing intermediate variables from a Cookbook as
// necessary. A Planner is cheap to construct and safe to reuse across calls;
// it holds no mutable state of its own beyond its logger.
type Planner struct {
	Cookbook *Cookbook

	// Log receives structured trace/debug/error entries for each planning
	// decision. Defaults to logrus.StandardLogger() if left nil.
	Log logrus.Ext1FieldLogger

	// MaxDepth bounds planVariable's recursion depth; exceeding it fails
	// with ErrPlanningCycle. Defaults to Cookbook.Len() if zero or negative,
	// per the spec's guidance that a bound equal to the cookbook size is
	// sufficient to catch a cyclic cookbook without false-positiving on any
	// legitimate dependency chain (a chain cannot legitimately be longer
	// than the number of distinct producible variables).
	MaxDepth int
}

// NewPlanner returns a Planner over cb with a default logger and depth
// bound.
func NewPlanner(cb *Cookbook) *Planner {
	return &Planner{Cookbook: cb, Log: logrus.StandardLogger()}
}

func (p *Planner) logger() logrus.Ext1FieldLogger {
	if p.Log != nil {
		return p.Log
	}
	return logrus.StandardLogger()
}

func (p *Planner) maxDepth() int {
	if p.MaxDepth > 0 {
		return p.MaxDepth
	}
	if p.Cookbook != nil {
		if n := p.Cookbook.Len(); n > 0 {
			return n
		}
	}
	return 1
}

// PlanVariable attempts to extend plan with the recipe(s) necessary to
// produce target, recursively planning any missing ingredients first. It
// returns true if target is now available (either because it already was, or
// because a viable recipe chain was appended to plan), and removes target
// from needed on success. It returns an error only for a PlanningCycle
// (recursion depth bound exceeded); a target the cookbook simply cannot
// produce is reported by a false return, not an error, per spec.
func (p *Planner) PlanVariable(fs *FieldSet, needed *VariableList, target string, needTLAD bool, plan *Plan) (bool, error) {
	return p.planVariable(fs, needed, target, needTLAD, plan, 0)
}

func (p *Planner) planVariable(fs *FieldSet, needed *VariableList, target string, needTLAD bool, plan *Plan, depth int) (bool, error) {
	log := p.logger()
	log.WithField("variable", target).Trace("entering planVariable")

	if depth > p.maxDepth() {
		return false, fmt.Errorf("varchange: planning %q at depth %d: %w", target, depth, ErrPlanningCycle)
	}

	// Since this function is called recursively, target may already have
	// been satisfied by a sibling recursion.
	if !needed.Has(target) {
		log.WithField("variable", target).Debug("no longer in needed-variables list")
		return true, nil
	}

	candidates := p.Cookbook.Candidates(target)
	if len(candidates) == 0 {
		log.WithField("variable", target).Debug("cookbook has no recipe for this variable")
		return false, nil
	}

	fieldNames := fs.FieldNames()
	hasField := func(name string) bool {
		for _, n := range fieldNames {
			if n == name {
				return true
			}
		}
		return false
	}

	for _, recipe := range candidates {
		if needTLAD && !recipe.HasTLAD() {
			log.WithFields(logrus.Fields{"recipe": recipe.Name(), "variable": target}).
				Debug("skipping recipe with no TL/AD implementation")
			continue
		}
		log.WithFields(logrus.Fields{"recipe": recipe.Name(), "variable": target}).
			Debug("checking ingredients for candidate recipe")

		haveAllIngredients := true
		for _, ingredient := range recipe.Ingredients() {
			if ingredient == target {
				log.WithFields(logrus.Fields{"recipe": recipe.Name(), "variable": target}).
					Error(ErrSelfDependency)
				haveAllIngredients = false
				break
			}
			available := hasField(ingredient) && !needed.Has(ingredient)
			if !available {
				// planVariable's base case treats an absent name as already
				// satisfied, so a purely transitive ingredient - one the
				// caller never listed in needed directly - must be added
				// here before recursing, or the recursive call would
				// short-circuit true without planning anything for it. This
				// is what lets a single top-level target pull in recipes
				// several hops away, as opposed to requiring the caller to
				// pre-seed needed with every transitive dependency.
				addedHere := !needed.Has(ingredient)
				if addedHere {
					needed.Add(ingredient)
				}
				var err error
				available, err = p.planVariable(fs, needed, ingredient, needTLAD, plan, depth+1)
				if err != nil {
					return false, err
				}
				if !available && addedHere {
					needed.Remove(ingredient)
				}
			}
			if !available {
				haveAllIngredients = false
				break
			}
		}

		if haveAllIngredients {
			*plan = append(*plan, PlanEntry{Product: target, Recipe: recipe})
			needed.Remove(target)
			log.WithFields(logrus.Fields{"recipe": recipe.Name(), "variable": target}).
				Debug("all ingredients available; appended to plan")
			return true, nil
		}
	}

	log.WithField("variable", target).Debug("no candidate recipe has all its ingredients available")
	return false, nil
}
