package dictionary

// AdditionalMetadata holds the connection-id lookups the user dictionary
// needs to synthesize morphemes without re-scanning left-id.def/right-id.def
// at tokenize time.
type AdditionalMetadata struct {
	LeftIDNNG         uint16
	RightIDNNG        uint16
	RightIDNNGWCoda   uint16
	RightIDNNGWOCoda  uint16
}

// ConnectionCost is the dense bigram-cost matrix between a left morpheme's
// right-connection class and a right morpheme's left-connection class.
type ConnectionCost struct {
	ForwardSize  int32
	BackwardSize int32
	Costs        []int16 // row-major, index = rightID*BackwardSize + leftID
	Additional   AdditionalMetadata
}

// Cost looks up the connection cost between a preceding morpheme's RightID
// and a following morpheme's LeftID.
func (c *ConnectionCost) Cost(rightID, leftID uint16) int32 {
	idx := int32(rightID)*c.BackwardSize + int32(leftID)
	if idx < 0 || int(idx) >= len(c.Costs) {
		return 0
	}
	return int32(c.Costs[idx])
}
