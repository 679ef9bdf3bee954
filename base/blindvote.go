package base

import (
	"bytes"
	"io"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/spikeekips/mitum-dao/base/key"
	"github.com/spikeekips/mitum-dao/util/isvalid"
	"github.com/spikeekips/mitum-dao/util/valuehash"
)

// MaxEncryptedProposalListSize limits the gossiped blob.
const MaxEncryptedProposalListSize = 1 << 20

// BlindVote is immutable. The encrypted proposal list is revealed later by
// the secret key; only the hash of it is anchored in the blind vote tx.
type BlindVote struct {
	encryptedProposalList []byte
	txID                  string
	stake                 int64
	signer                key.BTCPublickey
}

func NewBlindVote(encryptedProposalList []byte, txID string, stake int64, signer key.BTCPublickey) BlindVote {
	return BlindVote{
		encryptedProposalList: copyBytes(encryptedProposalList),
		txID:                  txID,
		stake:                 stake,
		signer:                signer,
	}
}

func (bv BlindVote) IsValid([]byte) error {
	switch l := len(bv.encryptedProposalList); {
	case l < 1:
		return isvalid.InvalidError.Errorf("empty encrypted proposal list")
	case l > MaxEncryptedProposalListSize:
		return isvalid.InvalidError.Errorf("too large encrypted proposal list, %d", l)
	}

	if len(bv.txID) < 1 {
		return isvalid.InvalidError.Errorf("empty tx id")
	}

	if bv.stake < 1 {
		return isvalid.InvalidError.Errorf("stake should be positive, %d", bv.stake)
	}

	if err := bv.signer.IsValid(nil); err != nil {
		return isvalid.InvalidError.Wrap(err)
	}

	return nil
}

func (bv BlindVote) EncryptedProposalList() []byte {
	return copyBytes(bv.encryptedProposalList)
}

func (bv BlindVote) TxID() string {
	return bv.txID
}

func (bv BlindVote) Stake() int64 {
	return bv.stake
}

func (bv BlindVote) Signer() key.BTCPublickey {
	return bv.signer
}

func (bv BlindVote) HashOfEncryptedProposalList() valuehash.L32 {
	return valuehash.NewSHA256(bv.encryptedProposalList)
}

// Equal compares every field; two different blind votes can claim the same
// tx id and the validity filter decides which one counts.
func (bv BlindVote) Equal(b BlindVote) bool {
	return bv.txID == b.txID &&
		bv.stake == b.stake &&
		bv.signer.Equal(b.signer) &&
		bytes.Equal(bv.encryptedProposalList, b.encryptedProposalList)
}

// ValidateHashOfOpReturnData checks that the op-return of tx anchors this
// blind vote.
func (bv BlindVote) ValidateHashOfOpReturnData(tx Tx) error {
	od, err := ParseOpReturnData(tx.OpReturn())
	if err != nil {
		return err
	}

	if od.Type != OpReturnTypeBlindVote {
		return isvalid.InvalidError.Errorf("op return type is not blind vote, %s", od.Type)
	}

	if !od.Hash.Equal(bv.HashOfEncryptedProposalList()) {
		return isvalid.InvalidError.Errorf("hash of encrypted proposal list does not match with op return data")
	}

	return nil
}

func (bv BlindVote) ValidateCorrectTxType(tx Tx) error {
	if tx.Type() != TxTypeBlindVote {
		return isvalid.InvalidError.Errorf("wrong tx type for blind vote, %s", tx.Type())
	}

	return nil
}

type BlindVoteRLPPacker struct {
	EP []byte
	TX string
	ST uint64
	SI []byte
}

func (bv BlindVote) EncodeRLP(w io.Writer) error {
	if bv.stake < 0 {
		return isvalid.InvalidError.Errorf("negative stake can not be encoded")
	}

	return rlp.Encode(w, BlindVoteRLPPacker{
		EP: bv.encryptedProposalList,
		TX: bv.txID,
		ST: uint64(bv.stake),
		SI: bv.signer.Bytes(),
	})
}

func (bv *BlindVote) DecodeRLP(s *rlp.Stream) error {
	var u BlindVoteRLPPacker
	if err := s.Decode(&u); err != nil {
		return err
	}

	signer, err := key.NewBTCPublickeyFromBytes(u.SI)
	if err != nil {
		return err
	}

	*bv = NewBlindVote(u.EP, u.TX, int64(u.ST), signer)

	return nil
}

// BlindVoteList is the persisted blind votes. It only grows.
type BlindVoteList struct {
	BlindVotes []BlindVote `json:"blind_votes" bson:"blind_votes"`
}

func (bl BlindVoteList) Len() int {
	return len(bl.BlindVotes)
}

func (bl BlindVoteList) Contains(bv BlindVote) bool {
	for i := range bl.BlindVotes {
		if bl.BlindVotes[i].Equal(bv) {
			return true
		}
	}

	return false
}

func (bl BlindVoteList) Copy() []BlindVote {
	b := make([]BlindVote, len(bl.BlindVotes))
	copy(b, bl.BlindVotes)

	return b
}
