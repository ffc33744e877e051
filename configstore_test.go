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
	"errors"
	"testing"
)

func TestConfigStoreRoundTrip(t *testing.T) {
	cfg := NewConfigStore()
	cfg.SetDouble("p0", 1000.0)
	cfg.SetInt("levels", 30)
	cfg.SetString("units", "K")

	if v, err := cfg.GetDouble("p0"); err != nil || v != 1000.0 {
		t.Errorf("GetDouble(p0) = %v, %v; want 1000.0, nil", v, err)
	}
	if v, err := cfg.GetInt("levels"); err != nil || v != 30 {
		t.Errorf("GetInt(levels) = %v, %v; want 30, nil", v, err)
	}
	if v, err := cfg.GetString("units"); err != nil || v != "K" {
		t.Errorf("GetString(units) = %v, %v; want K, nil", v, err)
	}
	if !cfg.Has("p0") || cfg.Has("nope") {
		t.Errorf("Has reported wrong presence")
	}
}

func TestConfigStoreMissing(t *testing.T) {
	cfg := NewConfigStore()
	if _, err := cfg.GetDouble("p0"); !errors.Is(err, ErrMissingConfig) {
		t.Errorf("GetDouble on absent key: got %v, want ErrMissingConfig", err)
	}
}

func TestConfigStoreTypeMismatch(t *testing.T) {
	cfg := NewConfigStore()
	cfg.SetDouble("p0", 1000.0)
	if _, err := cfg.GetInt("p0"); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("GetInt on double key: got %v, want ErrTypeMismatch", err)
	}
	if _, err := cfg.GetString("p0"); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("GetString on double key: got %v, want ErrTypeMismatch", err)
	}
}

func TestConfigStoreSetGeneric(t *testing.T) {
	cfg := NewConfigStore()
	if err := cfg.Set("kappa", 0.286); err != nil {
		t.Fatalf("Set(float64): %v", err)
	}
	if err := cfg.Set("name", "t_to_pt"); err != nil {
		t.Fatalf("Set(string): %v", err)
	}
	if err := cfg.Set("flag", true); err == nil {
		t.Errorf("Set(bool) should have failed with unsupported type")
	}
}

func TestConfigStoreGetDoubleOrDefault(t *testing.T) {
	cfg := NewConfigStore()
	if v, err := cfg.GetDoubleOrDefault("p0", 1000.0); err != nil || v != 1000.0 {
		t.Errorf("GetDoubleOrDefault on absent key = %v, %v; want default 1000.0, nil", v, err)
	}
	cfg.SetDouble("p0", 1013.25)
	if v, err := cfg.GetDoubleOrDefault("p0", 1000.0); err != nil || v != 1013.25 {
		t.Errorf("GetDoubleOrDefault on present key = %v, %v; want 1013.25, nil", v, err)
	}
	cfg.SetString("p0bad", "oops")
	if _, err := cfg.GetDoubleOrDefault("p0bad", 1.0); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("GetDoubleOrDefault on mistyped key: got %v, want ErrTypeMismatch", err)
	}
}
