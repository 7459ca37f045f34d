/*
Copyright © 2021 the oemoflex authors.
This file is part of oemoflex.

oemoflex is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

oemoflex is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with oemoflex.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package oemoflex derives named, human-interpretable metrics from the raw
// output of an energy-system optimization: summed flows, storage and
// transmission losses, invested capacities and their costs, variable costs,
// and the total system cost.
//
// The raw parameters and results are flattened into long-format scalar and
// sequence tables indexed by edge keys. A Calculator owns these tables and a
// registry of named calculations; each calculation declares its dependencies,
// is resolved by canonical name, and is computed lazily and at most once per
// run. The naming pass then rewrites the opaque edge keys of the combined
// results into readable (name, var_name) rows annotated with node attributes.
package oemoflex

// Version gives the version number of this version of oemoflex.
const Version = "0.2.0"
