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

// Package varchange performs derived-variable synthesis over gridded
// atmospheric fields. Given a FieldSet of named fields - some already
// populated, some merely allocated - and a VariableList naming what the
// caller still needs, a Kitchen consults its Cookbook of candidate Recipes,
// plans a dependency-resolved sequence of recipes able to fabricate the
// needed variables, and executes that sequence. It additionally supports the
// tangent-linear (TL) and adjoint (AD) variants of the same plan, which reuse
// the plan and linearization trajectory captured by a prior ChangeVarTraj
// call, for use in variational data assimilation.
package varchange

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Kitchen is varchange's public entry point. A single Kitchen instance is
// built once around a Cookbook and ConfigStore and is logically read-only on
// ChangeVar, ChangeVarTL, and ChangeVarAD - they only mutate the field set
// passed in. ChangeVarTraj mutates the Kitchen's own stored plan and
// trajectory, so a single Kitchen is not safe for concurrent use; distinct
// Kitchen instances may run in parallel without interference.
type Kitchen struct {
	cookbook *Cookbook
	config   *ConfigStore

	planner  *Planner
	executor *Executor

	plan       Plan
	trajectory *FieldSet

	// Log receives structured entries describing each call. Defaults to
	// logrus.StandardLogger() if left nil.
	Log logrus.Ext1FieldLogger
}

// New builds a Kitchen from a cookbook definition, optional per-recipe
// parameter blocks, and a config store. A nil or empty definition falls back
// to DefaultCookbookDefinition, per NewCookbook. It fails with
// ErrUnknownRecipe if the definition names a recipe that was never
// registered, per Cookbook.
func New(definition CookbookDefinition, params []RecipeParameters, cfg *ConfigStore) (*Kitchen, error) {
	if cfg == nil {
		cfg = NewConfigStore()
	}
	cb, err := NewCookbook(definition, params, cfg)
	if err != nil {
		return nil, err
	}
	log := logrus.StandardLogger()
	return &Kitchen{
		cookbook: cb,
		config:   cfg,
		planner:  &Planner{Cookbook: cb, Log: log},
		executor: &Executor{Log: log},
		Log:      log,
	}, nil
}

// Cookbook returns the Kitchen's immutable cookbook.
func (k *Kitchen) Cookbook() *Cookbook { return k.cookbook }

// ConfigStore returns the Kitchen's immutable config store.
func (k *Kitchen) ConfigStore() *ConfigStore { return k.config }

// Plan returns a copy of the plan most recently captured by ChangeVarTraj,
// or an empty plan if ChangeVarTraj has never been called.
func (k *Kitchen) Plan() Plan {
	out := make(Plan, len(k.plan))
	copy(out, k.plan)
	return out
}

func (k *Kitchen) logger() logrus.Ext1FieldLogger {
	if k.Log != nil {
		return k.Log
	}
	return logrus.StandardLogger()
}

func (k *Kitchen) syncLoggers() {
	log := k.logger()
	k.planner.Log = log
	k.executor.Log = log
}

// planAll builds a fresh plan for every name currently in needed, in the
// order given by targets (a snapshot of needed taken before planning starts,
// since planVariable mutates needed as it recurses).
func (k *Kitchen) planAll(fs *FieldSet, needed *VariableList, needTLAD bool) (Plan, error) {
	var plan Plan
	targets := needed.Names()
	for _, target := range targets {
		if _, err := k.planner.PlanVariable(fs, needed, target, needTLAD, &plan); err != nil {
			return nil, err
		}
	}
	return plan, nil
}

// ChangeVar populates as many of needed's variables as possible in fs by
// planning and non-linearly executing a fresh recipe plan, built without
// regard to TL/AD support. Names the system succeeds in populating are
// removed from needed. It returns the set of variable names it populated.
func (k *Kitchen) ChangeVar(fs *FieldSet, needed *VariableList) (*VariableList, error) {
	k.syncLoggers()
	log := k.logger()
	log.WithField("needed", needed.Names()).Debug("entering ChangeVar")

	before := NewVariableList(needed.Names()...)

	plan, err := k.planAll(fs, needed, false)
	if err != nil {
		return nil, err
	}
	if err := k.executor.ExecutePlanNL(fs, plan); err != nil {
		return nil, err
	}

	produced := before
	produced.Subtract(needed)
	log.WithField("produced", produced.Names()).Debug("leaving ChangeVar")
	return produced, nil
}

// ChangeVarTraj performs the same non-linear variable-change logic as
// ChangeVar, using only recipes with TL/AD implemented, but additionally
// captures the result as the Kitchen's trajectory and stores the plan it
// built for later reuse by ChangeVarTL and ChangeVarAD.
func (k *Kitchen) ChangeVarTraj(fs *FieldSet, needed *VariableList) (*VariableList, error) {
	k.syncLoggers()
	log := k.logger()
	log.WithField("needed", needed.Names()).Debug("entering ChangeVarTraj")

	before := NewVariableList(needed.Names()...)

	plan, err := k.planAll(fs, needed, true)
	if err != nil {
		return nil, err
	}
	if err := k.executor.ExecutePlanNL(fs, plan); err != nil {
		return nil, err
	}

	k.plan = plan
	k.trajectory = fs.Clone()

	produced := before
	produced.Subtract(needed)
	log.WithField("produced", produced.Names()).Debug("leaving ChangeVarTraj")
	return produced, nil
}

// ChangeVarTL performs the tangent-linear variable change. Unlike ChangeVar
// and ChangeVarTraj, it does not plan: it re-executes the exact recipe
// sequence captured by the most recent ChangeVarTraj call, calling each
// recipe's ExecuteTL. needed is not consulted as input - it exists for
// interface symmetry with the other three operations and is updated on
// return, like them, by removing the plan's product names.
func (k *Kitchen) ChangeVarTL(fs *FieldSet, needed *VariableList) (*VariableList, error) {
	k.syncLoggers()
	log := k.logger()
	log.Trace("entering ChangeVarTL")

	if k.trajectory == nil {
		return nil, fmt.Errorf("varchange: ChangeVarTL called before any ChangeVarTraj")
	}
	if err := k.executor.ExecutePlanTL(fs, k.trajectory, k.plan); err != nil {
		return nil, err
	}

	produced := NewVariableList(k.plan.Products()...)
	needed.Subtract(produced)
	log.WithField("produced", produced.Names()).Debug("leaving ChangeVarTL")
	return produced, nil
}

// ChangeVarAD performs the adjoint variable change. Like ChangeVarTL, it
// reuses the plan captured by the most recent ChangeVarTraj rather than
// re-planning, but executes it in reverse, calling each recipe's ExecuteAD.
// varsToAdjoint should name the same variables passed to ChangeVarTraj and
// ChangeVarTL; those variables' adjoint sensitivities must already be
// populated in fs. It is updated on return by removing the plan's product
// names, like the other three operations update their needed-variables
// argument.
func (k *Kitchen) ChangeVarAD(fs *FieldSet, varsToAdjoint *VariableList) (*VariableList, error) {
	k.syncLoggers()
	log := k.logger()
	log.Trace("entering ChangeVarAD")

	if k.trajectory == nil {
		return nil, fmt.Errorf("varchange: ChangeVarAD called before any ChangeVarTraj")
	}
	if err := k.executor.ExecutePlanAD(fs, k.trajectory, k.plan); err != nil {
		return nil, err
	}

	adjointed := NewVariableList(k.plan.Products()...)
	varsToAdjoint.Subtract(adjointed)
	log.WithField("adjointed", adjointed.Names()).Debug("leaving ChangeVarAD")
	return adjointed, nil
}
