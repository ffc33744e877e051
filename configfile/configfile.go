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

// Package configfile reads a TOML document describing a cookbook, its
// per-recipe parameters, and shared config constants into the already-typed
// Go values varchange's core package constructors expect. It is a
// convenience layered on top of the core, not a dependency of it - nothing
// in the core package imports this one.
package configfile

import (
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spatialmodel/varchange"
)

// document is the raw shape decoded from TOML, e.g.:
//
//	[cookbook]
//	pt = ["t_to_pt", "t_to_pt_simple"]
//
//	[config]
//	p0 = 1000.0
//	kappa = 0.286
//
//	[[recipe]]
//	name = "t_to_pt_simple"
//	[recipe.options]
//	p0 = 1013.25
type document struct {
	Cookbook map[string][]string      `toml:"cookbook"`
	Config   map[string]interface{}   `toml:"config"`
	Recipe   []recipeBlock            `toml:"recipe"`
}

type recipeBlock struct {
	Name    string                 `toml:"name"`
	Options map[string]interface{} `toml:"options"`
}

// Result is everything a TOML document yields: a cookbook definition, a
// flat slice of per-recipe parameter blocks, and a populated config store,
// ready to hand to varchange.NewCookbook or varchange.New.
type Result struct {
	Cookbook varchange.CookbookDefinition
	Params   []varchange.RecipeParameters
	Config   *varchange.ConfigStore
}

// Load reads and decodes the TOML document at path.
func Load(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads and decodes a TOML document from r.
func Decode(r io.Reader) (*Result, error) {
	var doc document
	if _, err := toml.DecodeReader(r, &doc); err != nil {
		return nil, err
	}
	return fromDocument(doc)
}

func fromDocument(doc document) (*Result, error) {
	cookbook := varchange.CookbookDefinition(doc.Cookbook)

	cfg := varchange.NewConfigStore()
	for name, v := range doc.Config {
		if err := setTyped(cfg, name, v); err != nil {
			return nil, err
		}
	}

	params := make([]varchange.RecipeParameters, 0, len(doc.Recipe))
	for _, block := range doc.Recipe {
		params = append(params, varchange.RecipeParameters{
			Name:    block.Name,
			Options: block.Options,
		})
	}

	return &Result{Cookbook: cookbook, Params: params, Config: cfg}, nil
}

// setTyped narrows v to one of the scalar types ConfigStore.Set accepts.
// TOML's decoder hands back int64 for bare integers, which ConfigStore does
// not accept directly (it distinguishes int from double deliberately, per
// its ErrTypeMismatch contract), so integral TOML values are narrowed to
// Go's int here rather than left as int64.
func setTyped(cfg *varchange.ConfigStore, name string, v interface{}) error {
	switch t := v.(type) {
	case int64:
		return cfg.Set(name, int(t))
	default:
		return cfg.Set(name, v)
	}
}
