package base

import (
	"bytes"
	"io"
	"time"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/spikeekips/mitum-dao/base/key"
	"github.com/spikeekips/mitum-dao/util/isvalid"
)

// ProposalRLPPacker is the consensus encoding of Proposal; the field order
// must not be changed.
type ProposalRLPPacker struct {
	UI string
	TY uint8
	NA string
	TI string
	DE string
	LI string
	SI []byte
	CA uint64
	TX string
	RA uint64
	BA string
	PA uint8
	PV uint64
}

func (pr Proposal) EncodeRLP(w io.Writer) error {
	if pr.requestedAmount < 0 || pr.paramValue < 0 {
		return isvalid.InvalidError.Errorf("negative amount can not be encoded")
	}

	var createdAt uint64
	if !pr.createdAt.IsZero() {
		createdAt = uint64(pr.createdAt.UnixMilli())
	}

	return rlp.Encode(w, ProposalRLPPacker{
		UI: pr.uid,
		TY: uint8(pr.proposalType),
		NA: pr.fields.Name,
		TI: pr.fields.Title,
		DE: pr.fields.Description,
		LI: pr.fields.Link,
		SI: pr.signer.Bytes(),
		CA: createdAt,
		TX: pr.txID,
		RA: uint64(pr.requestedAmount),
		BA: pr.bsqAddress,
		PA: uint8(pr.param),
		PV: uint64(pr.paramValue),
	})
}

func (pr *Proposal) DecodeRLP(s *rlp.Stream) error {
	var u ProposalRLPPacker
	if err := s.Decode(&u); err != nil {
		return err
	}

	signer, err := key.NewBTCPublickeyFromBytes(u.SI)
	if err != nil {
		return err
	}

	var createdAt time.Time
	if u.CA > 0 {
		createdAt = time.UnixMilli(int64(u.CA)).UTC()
	}

	*pr = Proposal{
		uid:          u.UI,
		proposalType: ProposalType(u.TY),
		fields: ProposalFields{
			Name:        u.NA,
			Title:       u.TI,
			Description: u.DE,
			Link:        u.LI,
		},
		signer:          signer,
		createdAt:       createdAt,
		txID:            u.TX,
		requestedAmount: int64(u.RA),
		bsqAddress:      u.BA,
		param:           Param(u.PA),
		paramValue:      int64(u.PV),
	}

	return nil
}

func (pr Proposal) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := pr.EncodeRLP(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func NewProposalFromBytes(b []byte) (Proposal, error) {
	var pr Proposal
	if err := rlp.DecodeBytes(b, &pr); err != nil {
		return Proposal{}, err
	}

	return pr, nil
}
