package base

import (
	"sort"

	"github.com/ethereum/go-ethereum/rlp"
)

// ProposalList is the ordered proposals. The encoded bytes of ProposalList
// are encrypted into BlindVote, so every node must produce the same bytes for
// the same proposals; use SortProposals before encoding.
type ProposalList []Proposal

// SortProposals sorts by tx id and then by uid. Every proposal in blind vote
// has confirmed tx, so tx id decides the order; uid breaks the tie of the
// empty tx id.
func SortProposals(l ProposalList) ProposalList {
	sorted := make(ProposalList, len(l))
	copy(sorted, l)

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].txID != sorted[j].txID {
			return sorted[i].txID < sorted[j].txID
		}

		return sorted[i].uid < sorted[j].uid
	})

	return sorted
}

func (l ProposalList) Bytes() ([]byte, error) {
	return rlp.EncodeToBytes([]Proposal(l))
}

func NewProposalListFromBytes(b []byte) (ProposalList, error) {
	var l []Proposal
	if err := rlp.DecodeBytes(b, &l); err != nil {
		return nil, err
	}

	return ProposalList(l), nil
}

func (l ProposalList) UIDs() []string {
	uids := make([]string, len(l))
	for i := range l {
		uids[i] = l[i].uid
	}

	return uids
}

func (l ProposalList) Contains(pr Proposal) bool {
	for i := range l {
		if l[i].Equal(pr) {
			return true
		}
	}

	return false
}
