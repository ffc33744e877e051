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

import "github.com/spatialmodel/varchange"

// VirtualTemperature computes virtual temperature from air temperature and
// specific humidity. NL only. Registered under the name "virtual_temperature".
// No other recipe in this package lists virtual_temperature as an
// ingredient.
//
// virtual_temperature = air_temperature * (1 + 0.608*specific_humidity)
type VirtualTemperature struct{}

func newVirtualTemperature(params varchange.RecipeParameters, cfg *varchange.ConfigStore) (varchange.Recipe, error) {
	return &VirtualTemperature{}, nil
}

func init() {
	varchange.Register("virtual_temperature", newVirtualTemperature)
}

func (r *VirtualTemperature) Name() string    { return "virtual_temperature" }
func (r *VirtualTemperature) Product() string { return "virtual_temperature" }
func (r *VirtualTemperature) Ingredients() []string {
	return []string{"air_temperature", "specific_humidity"}
}
func (r *VirtualTemperature) HasTLAD() bool       { return false }
func (r *VirtualTemperature) RequiresSetup() bool { return false }
func (r *VirtualTemperature) Setup(fs *varchange.FieldSet) error { return nil }
func (r *VirtualTemperature) ExecuteTL(fs, trajectory *varchange.FieldSet) (bool, error) {
	return false, nil
}
func (r *VirtualTemperature) ExecuteAD(fs, trajectory *varchange.FieldSet) (bool, error) {
	return false, nil
}

func (r *VirtualTemperature) ProductLevels(fs *varchange.FieldSet) (int, error) {
	t, err := fs.Field("air_temperature")
	if err != nil {
		return 0, err
	}
	return t.Levels(), nil
}

func (r *VirtualTemperature) ProductFunctionSpace(fs *varchange.FieldSet) (varchange.FunctionSpace, error) {
	t, err := fs.Field("air_temperature")
	if err != nil {
		return varchange.FunctionSpace{}, err
	}
	return t.FunctionSpace(), nil
}

func (r *VirtualTemperature) ExecuteNL(fs *varchange.FieldSet) (bool, error) {
	t, err := fs.Field("air_temperature")
	if err != nil {
		return false, err
	}
	q, err := fs.Field("specific_humidity")
	if err != nil {
		return false, err
	}
	out, err := fs.Field("virtual_temperature")
	if err != nil {
		return false, err
	}
	qLevels := q.Levels()
	for level := 0; level < t.Levels(); level++ {
		qLevel := level
		if qLevel >= qLevels {
			qLevel = qLevels - 1
		}
		for node := 0; node < t.Size(); node++ {
			out.Set(node, level, t.At(node, level)*(1+0.608*q.At(node, qLevel)))
		}
	}
	return true, nil
}
