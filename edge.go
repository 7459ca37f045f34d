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

import "fmt"

// NodePair identifies the element a raw input entry is attached to: either a
// flow between two nodes or a single node. The two cases are tagged explicitly
// so that a node-level entry can never be confused with a flow whose target
// happens to be the empty string.
type NodePair struct {
	Source string
	Target string
	node   bool
}

// Pair returns the pair addressing the flow from source to target.
func Pair(source, target string) NodePair {
	return NodePair{Source: source, Target: target}
}

// NodeOnly returns the pair addressing a single node.
func NodeOnly(node string) NodePair {
	return NodePair{Source: node, node: true}
}

// IsNode reports whether the pair addresses a single node rather than a flow.
func (p NodePair) IsNode() bool { return p.node }

// EdgeKey addresses one scalar or sequence entry in a table. A key either
// belongs to a flow (source, target, variable) or to a single node
// (node, variable). Keys are comparable and can be used as map keys.
type EdgeKey struct {
	Source string
	Target string
	Var    string
	node   bool
}

// FlowKey returns the key for variable varName of the flow from source to
// target.
func FlowKey(source, target, varName string) EdgeKey {
	return EdgeKey{Source: source, Target: target, Var: varName}
}

// NodeKey returns the key for variable varName attached to a single node.
func NodeKey(node, varName string) EdgeKey {
	return EdgeKey{Source: node, Var: varName, node: true}
}

// KeyFor returns the key for variable varName attached to pair.
func KeyFor(pair NodePair, varName string) EdgeKey {
	if pair.IsNode() {
		return NodeKey(pair.Source, varName)
	}
	return FlowKey(pair.Source, pair.Target, varName)
}

// IsNode reports whether the key addresses a node-level variable.
func (k EdgeKey) IsNode() bool { return k.node }

// Node returns the node a node-level key is attached to.
func (k EdgeKey) Node() string { return k.Source }

// Pair returns the node pair the key is attached to, dropping the variable
// name.
func (k EdgeKey) Pair() NodePair {
	if k.node {
		return NodeOnly(k.Source)
	}
	return Pair(k.Source, k.Target)
}

// WithVar returns a copy of the key with the variable name replaced. The
// flow/node tag is kept, so a parameter attached to the same element as a
// result can be addressed by relabeling the result's key.
func (k EdgeKey) WithVar(varName string) EdgeKey {
	k.Var = varName
	return k
}

func (k EdgeKey) String() string {
	if k.node {
		return fmt.Sprintf("%s.%s", k.Source, k.Var)
	}
	return fmt.Sprintf("%s->%s.%s", k.Source, k.Target, k.Var)
}
