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

// PlanEntry pairs a product variable name with the Recipe chosen to
// manufacture it.
type PlanEntry struct {
	Product string
	Recipe  Recipe
}

// Plan is an ordered sequence of PlanEntry values produced by the Planner.
// Order reflects execution dependency: an ingredient's entry always appears
// before the entry of any recipe that consumes it (post-order). Executing a
// Plan forward in NL or TL mode, or in reverse in AD mode, is therefore
// guaranteed to satisfy every data dependency.
type Plan []PlanEntry

// Products returns the product names of every entry in the plan, in plan
// order.
func (p Plan) Products() []string {
	out := make([]string, len(p))
	for i, entry := range p {
		out[i] = entry.Product
	}
	return out
}
