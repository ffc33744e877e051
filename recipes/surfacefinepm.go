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
	"math"

	"github.com/spatialmodel/varchange"
)

// SurfaceFinePM estimates near-surface fine particulate concentration from
// air temperature and surface pressure. NL only. Registered under the name
// "surface_fine_pm".
//
// surface_fine_pm = air_temperature * (reference_pressure/surface_pressure)^kappa
type SurfaceFinePM struct {
	referencePressure float64
	kappa             float64
}

func newSurfaceFinePM(params varchange.RecipeParameters, cfg *varchange.ConfigStore) (varchange.Recipe, error) {
	p0, err := cfg.GetDoubleOrDefault("reference_pressure", defaultP0)
	if err != nil {
		return nil, err
	}
	kappa, err := cfg.GetDoubleOrDefault("kappa", defaultKappa)
	if err != nil {
		return nil, err
	}
	if v, ok := params.Options["reference_pressure"].(float64); ok {
		p0 = v
	}
	if v, ok := params.Options["kappa"].(float64); ok {
		kappa = v
	}
	return &SurfaceFinePM{referencePressure: p0, kappa: kappa}, nil
}

func init() {
	varchange.Register("surface_fine_pm", newSurfaceFinePM)
}

func (r *SurfaceFinePM) Name() string    { return "surface_fine_pm" }
func (r *SurfaceFinePM) Product() string { return "surface_fine_pm" }
func (r *SurfaceFinePM) Ingredients() []string {
	return []string{"air_temperature", "surface_pressure"}
}
func (r *SurfaceFinePM) HasTLAD() bool                                         { return false }
func (r *SurfaceFinePM) RequiresSetup() bool                                   { return false }
func (r *SurfaceFinePM) Setup(fs *varchange.FieldSet) error                    { return nil }
func (r *SurfaceFinePM) ExecuteTL(fs, trajectory *varchange.FieldSet) (bool, error) { return false, nil }
func (r *SurfaceFinePM) ExecuteAD(fs, trajectory *varchange.FieldSet) (bool, error) { return false, nil }

func (r *SurfaceFinePM) ProductLevels(fs *varchange.FieldSet) (int, error) {
	t, err := fs.Field("air_temperature")
	if err != nil {
		return 0, err
	}
	return t.Levels(), nil
}

func (r *SurfaceFinePM) ProductFunctionSpace(fs *varchange.FieldSet) (varchange.FunctionSpace, error) {
	t, err := fs.Field("air_temperature")
	if err != nil {
		return varchange.FunctionSpace{}, err
	}
	return t.FunctionSpace(), nil
}

func checkUnits(f *varchange.Field, want string) error {
	if got := f.Units(); got != want {
		return fmt.Errorf("varchange/recipes: field %q has units %q, want %q: %w",
			f.Name(), got, want, varchange.ErrUnitMismatch)
	}
	return nil
}

func (r *SurfaceFinePM) ExecuteNL(fs *varchange.FieldSet) (bool, error) {
	t, err := fs.Field("air_temperature")
	if err != nil {
		return false, err
	}
	if err := checkUnits(t, "K"); err != nil {
		return false, err
	}
	ps, err := fs.Field("surface_pressure")
	if err != nil {
		return false, err
	}
	if err := checkUnits(ps, "Pa"); err != nil {
		return false, err
	}
	out, err := fs.Field("surface_fine_pm")
	if err != nil {
		return false, err
	}
	for level := 0; level < t.Levels(); level++ {
		for node := 0; node < t.Size(); node++ {
			ratio := math.Pow(r.referencePressure/ps.At(node, 0), r.kappa)
			out.Set(node, level, t.At(node, level)*ratio)
		}
	}
	return true, nil
}
