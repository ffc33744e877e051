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
	"math"

	"github.com/spatialmodel/varchange"
)

const (
	defaultP0    = 1000.0
	defaultKappa = 0.286
)

// ttOptParameters holds the constants PotentialTemperatureFromTemperature and
// its unlinearized sibling read at construction: a reference pressure p0 and
// the Poisson exponent kappa. Both fall back to a package-level default when
// neither the recipe's own RecipeParameters.Options nor the shared
// ConfigStore supply a value, mirroring TempToPTempRecipe's constructor in
// the original source.
type ttOptParameters struct {
	p0    float64
	kappa float64
}

func newTTOptParameters(params varchange.RecipeParameters, cfg *varchange.ConfigStore) (ttOptParameters, error) {
	p := ttOptParameters{p0: defaultP0, kappa: defaultKappa}
	if v, ok := params.Options["p0"].(float64); ok {
		p.p0 = v
	} else if cfg.Has("p0") {
		v, err := cfg.GetDouble("p0")
		if err != nil {
			return p, err
		}
		p.p0 = v
	}
	if v, ok := params.Options["kappa"].(float64); ok {
		p.kappa = v
	} else if cfg.Has("kappa") {
		v, err := cfg.GetDouble("kappa")
		if err != nil {
			return p, err
		}
		p.kappa = v
	}
	return p, nil
}

// PotentialTemperatureFromTemperature computes potential temperature from
// absolute temperature and surface pressure, with tangent-linear and adjoint
// variants. Registered under the name "t_to_pt".
//
// pt = t * (p0/ps)^kappa
type PotentialTemperatureFromTemperature struct {
	ttOptParameters
}

func newPotentialTemperatureFromTemperature(params varchange.RecipeParameters, cfg *varchange.ConfigStore) (varchange.Recipe, error) {
	p, err := newTTOptParameters(params, cfg)
	if err != nil {
		return nil, err
	}
	return &PotentialTemperatureFromTemperature{p}, nil
}

func init() {
	varchange.Register("t_to_pt", newPotentialTemperatureFromTemperature)
}

func (r *PotentialTemperatureFromTemperature) Name() string    { return "t_to_pt" }
func (r *PotentialTemperatureFromTemperature) Product() string { return "pt" }
func (r *PotentialTemperatureFromTemperature) Ingredients() []string {
	return []string{"t", "ps"}
}
func (r *PotentialTemperatureFromTemperature) HasTLAD() bool      { return true }
func (r *PotentialTemperatureFromTemperature) RequiresSetup() bool { return false }
func (r *PotentialTemperatureFromTemperature) Setup(fs *varchange.FieldSet) error { return nil }

func (r *PotentialTemperatureFromTemperature) ProductLevels(fs *varchange.FieldSet) (int, error) {
	t, err := fs.Field("t")
	if err != nil {
		return 0, err
	}
	return t.Levels(), nil
}

func (r *PotentialTemperatureFromTemperature) ProductFunctionSpace(fs *varchange.FieldSet) (varchange.FunctionSpace, error) {
	t, err := fs.Field("t")
	if err != nil {
		return varchange.FunctionSpace{}, err
	}
	return t.FunctionSpace(), nil
}

func (r *PotentialTemperatureFromTemperature) ExecuteNL(fs *varchange.FieldSet) (bool, error) {
	t, err := fs.Field("t")
	if err != nil {
		return false, err
	}
	ps, err := fs.Field("ps")
	if err != nil {
		return false, err
	}
	pt, err := fs.Field("pt")
	if err != nil {
		return false, err
	}
	for level := 0; level < t.Levels(); level++ {
		for node := 0; node < t.Size(); node++ {
			ratio := math.Pow(r.p0/ps.At(node, 0), r.kappa)
			pt.Set(node, level, t.At(node, level)*ratio)
		}
	}
	return true, nil
}

// ExecuteTL perturbs pt around the trajectory: d(pt) = ratio*dt -
// kappa*ratio*(t/ps)*dps, the first-order expansion of pt = t*(p0/ps)^kappa
// in both t and ps.
func (r *PotentialTemperatureFromTemperature) ExecuteTL(fs, trajectory *varchange.FieldSet) (bool, error) {
	dt, err := fs.Field("t")
	if err != nil {
		return false, err
	}
	dps, err := fs.Field("ps")
	if err != nil {
		return false, err
	}
	dpt, err := fs.Field("pt")
	if err != nil {
		return false, err
	}
	t0, err := trajectory.Field("t")
	if err != nil {
		return false, err
	}
	ps0, err := trajectory.Field("ps")
	if err != nil {
		return false, err
	}
	for level := 0; level < dt.Levels(); level++ {
		for node := 0; node < dt.Size(); node++ {
			ratio := math.Pow(r.p0/ps0.At(node, 0), r.kappa)
			d := ratio*dt.At(node, level) -
				r.kappa*ratio*(t0.At(node, level)/ps0.At(node, 0))*dps.At(node, 0)
			dpt.Set(node, level, d)
		}
	}
	return true, nil
}

// ExecuteAD accumulates the adjoint of pt into t and ps, the transpose of the
// linear operator ExecuteTL applies.
func (r *PotentialTemperatureFromTemperature) ExecuteAD(fs, trajectory *varchange.FieldSet) (bool, error) {
	adjT, err := fs.Field("t")
	if err != nil {
		return false, err
	}
	adjPs, err := fs.Field("ps")
	if err != nil {
		return false, err
	}
	adjPt, err := fs.Field("pt")
	if err != nil {
		return false, err
	}
	t0, err := trajectory.Field("t")
	if err != nil {
		return false, err
	}
	ps0, err := trajectory.Field("ps")
	if err != nil {
		return false, err
	}
	for level := 0; level < adjT.Levels(); level++ {
		for node := 0; node < adjT.Size(); node++ {
			ratio := math.Pow(r.p0/ps0.At(node, 0), r.kappa)
			seed := adjPt.At(node, level)
			adjT.Set(node, level, adjT.At(node, level)+ratio*seed)
			// ps has a single level; its adjoint accumulates contributions
			// from every level of pt.
			delta := -r.kappa * ratio * (t0.At(node, level) / ps0.At(node, 0)) * seed
			adjPs.Set(node, 0, adjPs.At(node, 0)+delta)
		}
	}
	return true, nil
}

// PotentialTemperatureFromTemperatureUnlinearized computes the identical
// forward formula as PotentialTemperatureFromTemperature but implements no
// TL/AD variant, giving a cookbook entry a second candidate the planner must
// skip when planning a trajectory-capturing (TL/AD-capable) plan. Registered
// under the name "t_to_pt_simple".
type PotentialTemperatureFromTemperatureUnlinearized struct {
	ttOptParameters
}

func newPotentialTemperatureFromTemperatureUnlinearized(params varchange.RecipeParameters, cfg *varchange.ConfigStore) (varchange.Recipe, error) {
	p, err := newTTOptParameters(params, cfg)
	if err != nil {
		return nil, err
	}
	return &PotentialTemperatureFromTemperatureUnlinearized{p}, nil
}

func init() {
	varchange.Register("t_to_pt_simple", newPotentialTemperatureFromTemperatureUnlinearized)
}

func (r *PotentialTemperatureFromTemperatureUnlinearized) Name() string    { return "t_to_pt_simple" }
func (r *PotentialTemperatureFromTemperatureUnlinearized) Product() string { return "pt" }
func (r *PotentialTemperatureFromTemperatureUnlinearized) Ingredients() []string {
	return []string{"t", "ps"}
}
func (r *PotentialTemperatureFromTemperatureUnlinearized) HasTLAD() bool       { return false }
func (r *PotentialTemperatureFromTemperatureUnlinearized) RequiresSetup() bool { return false }
func (r *PotentialTemperatureFromTemperatureUnlinearized) Setup(fs *varchange.FieldSet) error {
	return nil
}

func (r *PotentialTemperatureFromTemperatureUnlinearized) ProductLevels(fs *varchange.FieldSet) (int, error) {
	t, err := fs.Field("t")
	if err != nil {
		return 0, err
	}
	return t.Levels(), nil
}

func (r *PotentialTemperatureFromTemperatureUnlinearized) ProductFunctionSpace(fs *varchange.FieldSet) (varchange.FunctionSpace, error) {
	t, err := fs.Field("t")
	if err != nil {
		return varchange.FunctionSpace{}, err
	}
	return t.FunctionSpace(), nil
}

func (r *PotentialTemperatureFromTemperatureUnlinearized) ExecuteNL(fs *varchange.FieldSet) (bool, error) {
	t, err := fs.Field("t")
	if err != nil {
		return false, err
	}
	ps, err := fs.Field("ps")
	if err != nil {
		return false, err
	}
	pt, err := fs.Field("pt")
	if err != nil {
		return false, err
	}
	for level := 0; level < t.Levels(); level++ {
		for node := 0; node < t.Size(); node++ {
			ratio := math.Pow(r.p0/ps.At(node, 0), r.kappa)
			pt.Set(node, level, t.At(node, level)*ratio)
		}
	}
	return true, nil
}

func (r *PotentialTemperatureFromTemperatureUnlinearized) ExecuteTL(fs, trajectory *varchange.FieldSet) (bool, error) {
	return false, nil
}

func (r *PotentialTemperatureFromTemperatureUnlinearized) ExecuteAD(fs, trajectory *varchange.FieldSet) (bool, error) {
	return false, nil
}
