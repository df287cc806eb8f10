// SPDX-License-Identifier: MIT

package tree

import "github.com/nipinghe/fmmtl/geom"

// MaxLevelBits bounds D·depth so the finest level has at most 2^MaxLevelBits boxes.
const MaxLevelBits = 24

// NoParent marks the root's Parent link.
const NoParent = -1

// Box is one node of a Tree. Boxes are immutable once the tree is built.
type Box struct {
	geom.Box // Center ± Extents

	ID       int   // arena index
	Level    int   // 0 = root
	Index    int   // position within Level; counterpart index in coefficient tables
	Parent   int   // arena ID of the parent, NoParent for the root
	Children []int // arena IDs, empty for leaves
	Begin    int   // first body (tree order)
	End      int   // one past the last body
}

// NumBodies returns End - Begin.
func (b Box) NumBodies() int { return b.End - b.Begin }

// IsLeaf reports whether b has no children.
func (b Box) IsLeaf() bool { return len(b.Children) == 0 }

// IsRoot reports whether b is the root.
func (b Box) IsRoot() bool { return b.Parent == NoParent }
