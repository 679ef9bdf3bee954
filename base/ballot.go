package base

import (
	"github.com/spikeekips/mitum-dao/util/isvalid"
)

type Vote uint8

const (
	VoteNone Vote = iota
	VoteAccept
	VoteReject
)

func (v Vote) String() string {
	switch v {
	case VoteAccept:
		return "ACCEPT"
	case VoteReject:
		return "REJECT"
	default:
		return "NONE"
	}
}

func (v Vote) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

func (v *Vote) UnmarshalText(b []byte) error {
	switch string(b) {
	case "ACCEPT":
		*v = VoteAccept
	case "REJECT":
		*v = VoteReject
	default:
		*v = VoteNone
	}

	return nil
}

// Ballot is the accepted Proposal. The vote of Ballot is set by the voter and
// does not affect the membership of ballot list.
type Ballot struct {
	Proposal Proposal `json:"proposal" bson:"proposal"`
	Vote     Vote     `json:"vote" bson:"vote"`
}

func NewBallot(pr Proposal) Ballot {
	return Ballot{Proposal: pr}
}

func (bl Ballot) IsValid([]byte) error {
	return isvalid.Check(nil, false, bl.Proposal)
}

func (bl Ballot) WithVote(v Vote) Ballot {
	nbl := bl
	nbl.Vote = v

	return nbl
}

func (bl Ballot) Equal(b Ballot) bool {
	return bl.Proposal.Equal(b.Proposal)
}

// BallotList is the persisted ballots.
type BallotList struct {
	Ballots []Ballot `json:"ballots" bson:"ballots"`
}

func (bl BallotList) Len() int {
	return len(bl.Ballots)
}

// Find returns the index of ballot of the proposal, -1 if not found.
func (bl BallotList) Find(pr Proposal) int {
	for i := range bl.Ballots {
		if bl.Ballots[i].Proposal.Equal(pr) {
			return i
		}
	}

	return -1
}

func (bl BallotList) Contains(pr Proposal) bool {
	return bl.Find(pr) >= 0
}

func (bl BallotList) Copy() []Ballot {
	b := make([]Ballot, len(bl.Ballots))
	copy(b, bl.Ballots)

	return b
}

func (bl BallotList) Proposals() ProposalList {
	l := make(ProposalList, len(bl.Ballots))
	for i := range bl.Ballots {
		l[i] = bl.Ballots[i].Proposal
	}

	return l
}
