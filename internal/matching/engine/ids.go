package engine

import "github.com/abdoElHodaky/tradsys-clob/internal/matching/book"

// AskFlag is the most significant bit of a 64-bit order id. It is set iff
// the order is on the ask side (spec.md §3, §9).
const AskFlag uint64 = 1 << 63

// EncodeID builds the public order id for a given side and dense arena
// index.
func EncodeID(side book.Side, index uint64) uint64 {
	if side == book.Ask {
		return AskFlag | index
	}
	return index
}

// DecodeSide reports which side a raw id belongs to by inspecting the top
// bit, for callers that present only the id (spec.md §3, P8).
func DecodeSide(id uint64) book.Side {
	if id&AskFlag != 0 {
		return book.Ask
	}
	return book.Bid
}

// DecodeIndex strips the side flag, returning the dense arena index.
func DecodeIndex(id uint64) uint64 {
	return id &^ AskFlag
}
