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

	"github.com/ctessum/sparse"
)

// FunctionSpace describes the grid topology that a Field's nodes are laid
// out on. It is a minimal stand-in for the kind of function-space object a
// full unstructured-mesh array library would provide: just enough identity
// and size information for the planner and executor to size and compare
// product fields against their ingredients.
type FunctionSpace struct {
	// Name identifies the grid (e.g. "cell-centers", "node-points"). Two
	// function spaces with the same Name are considered the same grid.
	Name string
	// NumNodes is the number of horizontal grid points in this function
	// space.
	NumNodes int
}

// Field is a named multi-dimensional numeric array with metadata. Values are
// stored as a dense 2-D array indexed (node, level), backed by
// github.com/ctessum/sparse's DenseArray, the array type spatialmodel/inmap
// itself uses for its own gridded meteorology and pollutant fields.
type Field struct {
	name  string
	grid  FunctionSpace
	meta  map[string]string
	array *sparse.DenseArray // shape [NumNodes, Levels]
}

// NewField allocates a new, zero-valued Field named name on the given
// function space with the given number of vertical levels.
func NewField(name string, grid FunctionSpace, levels int) *Field {
	return &Field{
		name:  name,
		grid:  grid,
		meta:  make(map[string]string),
		array: sparse.ZerosDense(grid.NumNodes, levels),
	}
}

// Name returns the field's variable name.
func (f *Field) Name() string { return f.name }

// FunctionSpace returns the grid topology this field's nodes are defined on.
func (f *Field) FunctionSpace() FunctionSpace { return f.grid }

// Levels returns the number of vertical levels in the field.
func (f *Field) Levels() int {
	shape := f.array.GetShape()
	return shape[1]
}

// Size returns the number of horizontal grid nodes in the field.
func (f *Field) Size() int {
	shape := f.array.GetShape()
	return shape[0]
}

// At returns the value at the given node and level.
func (f *Field) At(node, level int) float64 {
	return f.array.Get(node, level)
}

// Set assigns the value at the given node and level.
func (f *Field) Set(node, level int, val float64) {
	f.array.Set(val, node, level)
}

// Metadata returns the field's string-keyed metadata bag (used at least for
// a "units" tag). Callers may read and write it directly.
func (f *Field) Metadata() map[string]string { return f.meta }

// Units is a convenience accessor for the "units" metadata tag.
func (f *Field) Units() string { return f.meta["units"] }

// Clone returns a deep copy of f: a new Field with the same name, grid, and
// metadata, and an independently-allocated value array populated by
// element-wise assignment. This is the primitive the trajectory snapshot in
// Kitchen.ChangeVarTraj is built from; aliasing the source array would
// silently break TL/AD across multiple calls once the caller mutates the
// field set again.
func (f *Field) Clone() *Field {
	meta := make(map[string]string, len(f.meta))
	for k, v := range f.meta {
		meta[k] = v
	}
	return &Field{
		name:  f.name,
		grid:  f.grid,
		meta:  meta,
		array: f.array.Copy(),
	}
}

// FieldSet is an ordered association from variable name to Field.
type FieldSet struct {
	order  []string
	fields map[string]*Field
}

// NewFieldSet returns an empty FieldSet.
func NewFieldSet() *FieldSet {
	return &FieldSet{fields: make(map[string]*Field)}
}

// Add inserts f into the field set, appending it to the iteration order. If
// a field with the same name already exists, it is replaced in place
// (iteration order is unchanged).
func (fs *FieldSet) Add(f *Field) {
	if _, ok := fs.fields[f.name]; !ok {
		fs.order = append(fs.order, f.name)
	}
	fs.fields[f.name] = f
}

// Has reports whether name is present in the field set.
func (fs *FieldSet) Has(name string) bool {
	_, ok := fs.fields[name]
	return ok
}

// Field returns the named field, failing with ErrUnknownField if absent.
func (fs *FieldSet) Field(name string) (*Field, error) {
	f, ok := fs.fields[name]
	if !ok {
		return nil, fmt.Errorf("varchange: field %q: %w", name, ErrUnknownField)
	}
	return f, nil
}

// FieldNames returns the names of every field in the set, in insertion
// order.
func (fs *FieldSet) FieldNames() []string {
	names := make([]string, len(fs.order))
	copy(names, fs.order)
	return names
}

// Clone performs a deep copy of every field in fs into a fresh FieldSet,
// preserving iteration order. See Field.Clone for what "deep" means.
func (fs *FieldSet) Clone() *FieldSet {
	out := NewFieldSet()
	for _, name := range fs.order {
		out.Add(fs.fields[name].Clone())
	}
	return out
}
