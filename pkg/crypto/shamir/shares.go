package shamir

import (
	"fmt"
	"sort"
)

// Share pairs a part identifier with its bytes, for callers that prefer
// ordered slices over the identifier-keyed map.
type Share struct {
	Index byte
	Data  []byte
}

// SharesFromMap flattens Split output into shares sorted by index.
func SharesFromMap(parts map[byte][]byte) []Share {
	shares := make([]Share, 0, len(parts))
	for id, data := range parts {
		shares = append(shares, Share{Index: id, Data: data})
	}
	sort.Slice(shares, func(i, j int) bool {
		return shares[i].Index < shares[j].Index
	})
	return shares
}

// MapFromShares rebuilds Join input from a slice of shares. Indices must
// be nonzero and unique.
func MapFromShares(shares []Share) (map[byte][]byte, error) {
	parts := make(map[byte][]byte, len(shares))
	for _, share := range shares {
		if share.Index == 0 {
			return nil, fmt.Errorf("share index cannot be 0")
		}
		if _, ok := parts[share.Index]; ok {
			return nil, fmt.Errorf("duplicate share index %d", share.Index)
		}
		parts[share.Index] = share.Data
	}
	return parts, nil
}
