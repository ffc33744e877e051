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

// VariableList is an ordered sequence of variable names. Kitchen's public
// operations mutate one in place as they plan and execute: names the system
// successfully plans are removed.
type VariableList struct {
	names []string
}

// NewVariableList returns a VariableList containing the given names, in the
// order given. Duplicate names are preserved as given by the caller; callers
// that need set semantics should deduplicate before constructing.
func NewVariableList(names ...string) *VariableList {
	v := &VariableList{names: make([]string, len(names))}
	copy(v.names, names)
	return v
}

// Has reports whether name is currently in the list.
func (v *VariableList) Has(name string) bool {
	for _, n := range v.names {
		if n == name {
			return true
		}
	}
	return false
}

// Remove deletes every occurrence of name from the list.
func (v *VariableList) Remove(name string) {
	out := v.names[:0]
	for _, n := range v.names {
		if n != name {
			out = append(out, n)
		}
	}
	v.names = out
}

// Add appends name to the list if it is not already present.
func (v *VariableList) Add(name string) {
	if !v.Has(name) {
		v.names = append(v.names, name)
	}
}

// Names returns a copy of the list's current contents, in order.
func (v *VariableList) Names() []string {
	out := make([]string, len(v.names))
	copy(out, v.names)
	return out
}

// Len returns the number of names currently in the list.
func (v *VariableList) Len() int { return len(v.names) }

// Subtract removes from v every name present in other, preserving the
// relative order of what remains. This is the Go rendering of oops::Variables
// operator-=, used by changeVarTL/changeVarAD to subtract the stored plan's
// products from the caller's needed-variables list.
func (v *VariableList) Subtract(other *VariableList) {
	for _, name := range other.names {
		v.Remove(name)
	}
}
