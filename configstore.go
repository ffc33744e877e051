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

import "fmt"

// configKind tags the type of a value stored in a ConfigStore.
type configKind int

const (
	configDouble configKind = iota
	configInt
	configString
)

func (k configKind) String() string {
	switch k {
	case configDouble:
		return "double"
	case configInt:
		return "int"
	case configString:
		return "string"
	default:
		return "unknown"
	}
}

type configValue struct {
	kind configKind
	d    float64
	i    int
	s    string
}

// ConfigStore is a keyed bag of heterogeneous scalar constants supplied by a
// caller and queried by recipes, by name, during construction or execution.
// It is a tagged-variant map rather than a `boost::any`-style type-erased
// bag: every value remembers its own kind, and the typed getters fail with
// ErrTypeMismatch on any disagreement rather than silently coercing.
//
// A ConfigStore has no side effects beyond Set; it is logically immutable
// during planning and execution.
type ConfigStore struct {
	values map[string]configValue
}

// NewConfigStore returns an empty ConfigStore.
func NewConfigStore() *ConfigStore {
	return &ConfigStore{values: make(map[string]configValue)}
}

// SetDouble inserts or replaces the double-valued constant name.
func (c *ConfigStore) SetDouble(name string, v float64) {
	c.values[name] = configValue{kind: configDouble, d: v}
}

// SetInt inserts or replaces the int-valued constant name.
func (c *ConfigStore) SetInt(name string, v int) {
	c.values[name] = configValue{kind: configInt, i: v}
}

// SetString inserts or replaces the string-valued constant name.
func (c *ConfigStore) SetString(name string, v string) {
	c.values[name] = configValue{kind: configString, s: v}
}

// Set inserts or replaces the constant name using whichever typed scalar
// value is supplied; it is a convenience wrapper around the Set* methods for
// callers assembling a ConfigStore from an already-typed source (such as the
// configfile loader). It returns an error if value is not a float64, int, or
// string.
func (c *ConfigStore) Set(name string, value interface{}) error {
	switch v := value.(type) {
	case float64:
		c.SetDouble(name, v)
	case int:
		c.SetInt(name, v)
	case string:
		c.SetString(name, v)
	default:
		return fmt.Errorf("varchange: config value for %q has unsupported type %T", name, value)
	}
	return nil
}

// GetDouble returns the double-valued constant name, failing with
// ErrMissingConfig if it was never set and ErrTypeMismatch if it was set with
// a different type.
func (c *ConfigStore) GetDouble(name string) (float64, error) {
	v, ok := c.values[name]
	if !ok {
		return 0, fmt.Errorf("varchange: config %q: %w", name, ErrMissingConfig)
	}
	if v.kind != configDouble {
		return 0, fmt.Errorf("varchange: config %q is a %s, not a double: %w", name, v.kind, ErrTypeMismatch)
	}
	return v.d, nil
}

// GetInt returns the int-valued constant name, failing with
// ErrMissingConfig if it was never set and ErrTypeMismatch if it was set with
// a different type.
func (c *ConfigStore) GetInt(name string) (int, error) {
	v, ok := c.values[name]
	if !ok {
		return 0, fmt.Errorf("varchange: config %q: %w", name, ErrMissingConfig)
	}
	if v.kind != configInt {
		return 0, fmt.Errorf("varchange: config %q is a %s, not an int: %w", name, v.kind, ErrTypeMismatch)
	}
	return v.i, nil
}

// GetString returns the string-valued constant name, failing with
// ErrMissingConfig if it was never set and ErrTypeMismatch if it was set with
// a different type.
func (c *ConfigStore) GetString(name string) (string, error) {
	v, ok := c.values[name]
	if !ok {
		return "", fmt.Errorf("varchange: config %q: %w", name, ErrMissingConfig)
	}
	if v.kind != configString {
		return "", fmt.Errorf("varchange: config %q is a %s, not a string: %w", name, v.kind, ErrTypeMismatch)
	}
	return v.s, nil
}

// Has reports whether name has been set, regardless of its type.
func (c *ConfigStore) Has(name string) bool {
	_, ok := c.values[name]
	return ok
}

// GetDoubleOrDefault returns the double-valued constant name, or def if it
// was never set. It still fails with ErrTypeMismatch if name was set with a
// different type. This is the common pattern recipes use for config
// constants that have a sensible physical default, mirroring
// TempToPTempRecipe's p0_/kappa_ fallback to default_p0/default_kappa in the
// original source.
func (c *ConfigStore) GetDoubleOrDefault(name string, def float64) (float64, error) {
	if !c.Has(name) {
		return def, nil
	}
	return c.GetDouble(name)
}
