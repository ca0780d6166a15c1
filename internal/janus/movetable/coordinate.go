package movetable

// CornerCoordinate is the flattened (position, spin) coordinate of one
// Janus projection's corners: position ranks one of C(8,4)=70 ways to place
// the four upper corners, spin packs the base-3 orientation of seven
// corners (the eighth is redundant, recoverable mod 3).
type CornerCoordinate struct {
	Position uint8
	Spin     uint16
}

// TableIndex returns the flat index used to address the corner lookup
// tables.
func (c CornerCoordinate) TableIndex() uint32 {
	return uint32(c.Spin)*nSymCornerPositions + uint32(c.Position)
}

// EdgeCoordinate is the flattened (position, flip) coordinate of one Janus
// projection's edges: position ranks one of the variant's symmetry-reduced
// edge placements (2256 for aequivalens's 16-element group, more for
// disparilis's smaller 8-element group - see Table.nSymEdgePositions), flip
// packs the 8-bit orientation of the tracked edges.
type EdgeCoordinate struct {
	Position uint16
	Flip     uint16
}

// TableIndex returns the flat index used to address the edge lookup tables.
func (e EdgeCoordinate) TableIndex() uint32 {
	return uint32(e.Position)<<8 + uint32(e.Flip)
}
