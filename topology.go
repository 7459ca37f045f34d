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

package oemoflex

import "strings"

// The functions in this file recover the meaning of an edge key from the bus
// and link sets alone: which side is the component, which the bus, which
// carrier the bus balances and, for links, whether the edge is the from-bus
// or to-bus flow. They are pure functions of the key, the two sets and the
// scalar parameters; ambiguous keys degrade to "no match" rather than
// failing, since the naming pass must be total over all observed edges.

// componentSide returns 1 if the component is the second element of the key,
// which is the case exactly when the first element is a bus. Node-level keys
// and keys without any bus side have the component first.
func componentSide(k EdgeKey, isBus func(string) bool) int {
	if !k.IsNode() && isBus(k.Source) {
		return 1
	}
	return 0
}

// componentOf returns the component endpoint of the key.
func componentOf(k EdgeKey, isBus func(string) bool) string {
	if componentSide(k, isBus) == 1 {
		return k.Target
	}
	return k.Source
}

// busOf returns the endpoint of the key that is a member of the bus set. The
// second return value is false when neither side is a bus.
func busOf(k EdgeKey, isBus func(string) bool) (string, bool) {
	if isBus(k.Source) {
		return k.Source, true
	}
	if !k.IsNode() && isBus(k.Target) {
		return k.Target, true
	}
	return "", false
}

// carrierOf returns the carrier segment of the key's bus identifier, which by
// convention follows the region segment. Keys without a bus side or with an
// undelimited bus identifier yield "".
func carrierOf(k EdgeKey, isBus func(string) bool, delimiter string) string {
	bus, ok := busOf(k, isBus)
	if !ok {
		return ""
	}
	parts := strings.Split(bus, delimiter)
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

// inOrOut classifies a flow key as an input ("in") or output ("out") of its
// component. Node-level keys carry no direction and yield "".
func inOrOut(k EdgeKey, side int) string {
	if k.IsNode() {
		return ""
	}
	if side == 1 {
		return "in"
	}
	return "out"
}

// fromOrToBus reports whether the key is the from-bus or to-bus flow of a
// link, by comparing the key's bus side against the link's recorded from_bus
// and to_bus parameters. Keys whose component is not a link, node-level keys
// and keys that match neither recorded bus yield "".
func fromOrToBus(k EdgeKey, side int, isBus, isLink func(string) bool, params *ScalarTable) string {
	if k.IsNode() {
		return ""
	}
	var comp string
	if side == 1 {
		comp = k.Target
	} else {
		comp = k.Source
	}
	if !isLink(comp) {
		return ""
	}
	bus, ok := busOf(k, isBus)
	if !ok {
		return ""
	}
	if to, ok := params.Str(NodeKey(comp, toBusAttr)); ok && bus == to {
		return "to_bus"
	}
	if from, ok := params.Str(NodeKey(comp, fromBusAttr)); ok && bus == from {
		return "from_bus"
	}
	return ""
}
