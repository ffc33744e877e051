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

func TestFieldBasics(t *testing.T) {
	grid := FunctionSpace{Name: "cell-centers", NumNodes: 2}
	f := NewField("t", grid, 3)
	if f.Name() != "t" || f.Size() != 2 || f.Levels() != 3 {
		t.Fatalf("unexpected field shape: name=%s size=%d levels=%d", f.Name(), f.Size(), f.Levels())
	}
	f.Set(1, 2, 42.5)
	if got := f.At(1, 2); got != 42.5 {
		t.Errorf("At(1,2) = %v, want 42.5", got)
	}
	f.Metadata()["units"] = "K"
	if f.Units() != "K" {
		t.Errorf("Units() = %q, want K", f.Units())
	}
}

func TestFieldCloneIsDeep(t *testing.T) {
	grid := FunctionSpace{Name: "cell-centers", NumNodes: 1}
	f := NewField("t", grid, 1)
	f.Set(0, 0, 300.0)
	f.Metadata()["units"] = "K"

	clone := f.Clone()
	clone.Set(0, 0, 999.0)
	clone.Metadata()["units"] = "C"

	if f.At(0, 0) != 300.0 {
		t.Errorf("mutating clone changed original value: %v", f.At(0, 0))
	}
	if f.Units() != "K" {
		t.Errorf("mutating clone changed original metadata: %v", f.Units())
	}
}

func TestFieldSet(t *testing.T) {
	fs := NewFieldSet()
	grid := FunctionSpace{Name: "g", NumNodes: 1}
	fs.Add(NewField("t", grid, 1))
	fs.Add(NewField("ps", grid, 1))

	if !fs.Has("t") || fs.Has("pt") {
		t.Errorf("Has reported wrong presence")
	}
	if names := fs.FieldNames(); len(names) != 2 || names[0] != "t" || names[1] != "ps" {
		t.Errorf("FieldNames() = %v, want [t ps]", names)
	}
	if _, err := fs.Field("pt"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("Field(pt) error = %v, want ErrUnknownField", err)
	}
}

func TestFieldSetCloneIsDeepAndOrdered(t *testing.T) {
	fs := NewFieldSet()
	grid := FunctionSpace{Name: "g", NumNodes: 1}
	t1 := NewField("t", grid, 1)
	t1.Set(0, 0, 300.0)
	fs.Add(t1)
	fs.Add(NewField("ps", grid, 1))

	clone := fs.Clone()
	cloneT, err := clone.Field("t")
	if err != nil {
		t.Fatalf("clone missing field t: %v", err)
	}
	cloneT.Set(0, 0, -1)

	original, _ := fs.Field("t")
	if original.At(0, 0) != 300.0 {
		t.Errorf("cloning aliased the underlying array; original mutated to %v", original.At(0, 0))
	}
	if names := clone.FieldNames(); len(names) != 2 || names[0] != "t" || names[1] != "ps" {
		t.Errorf("clone FieldNames() = %v, want [t ps]", names)
	}
}
