package blindvote

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/spikeekips/mitum-dao/base"
)

// PendingCommit is the blind vote tx, which was reported as timed out. The
// tx may be confirmed later, so the materials of blind vote are kept until
// it is reconciled.
type PendingCommit struct {
	TxID                  string    `json:"tx_id" bson:"tx_id"`
	Stake                 int64     `json:"stake" bson:"stake"`
	Fee                   int64     `json:"fee" bson:"fee"`
	EncryptedProposalList []byte    `json:"encrypted_proposal_list" bson:"encrypted_proposal_list"`
	SecretKey             SecretKey `json:"-" bson:"secret_key"`
	ProposalList          []byte    `json:"proposal_list" bson:"proposal_list"`
	CreatedAt             time.Time `json:"created_at" bson:"created_at"`
}

func (pc PendingCommit) MarshalZerologObject(e *zerolog.Event) {
	e.Str("tx_id", pc.TxID).
		Int64("stake", pc.Stake).
		Int64("fee", pc.Fee).
		Time("created_at", pc.CreatedAt)
}

func (pc PendingCommit) Proposals() (base.ProposalList, error) {
	return base.NewProposalListFromBytes(pc.ProposalList)
}

type PendingCommitList struct {
	Commits []PendingCommit `json:"commits" bson:"commits"`
}

type ReconcileResult uint8

const (
	// ReconcileKept means the tx is still pending in wallet.
	ReconcileKept ReconcileResult = iota
	// ReconcileMaterialized means the tx is confirmed and the blind vote is
	// added.
	ReconcileMaterialized
	// ReconcileReleased means the tx will never be confirmed or is confirmed
	// out of the current cycle; the stake is released by wallet.
	ReconcileReleased
)

func (r ReconcileResult) String() string {
	switch r {
	case ReconcileKept:
		return "kept"
	case ReconcileMaterialized:
		return "materialized"
	case ReconcileReleased:
		return "released"
	default:
		return "<unknown ReconcileResult>"
	}
}

// Reconciliation is the result of one pending commit. Err of materialized one
// is gossip.PublishFailedError when the blind vote could not be published.
type Reconciliation struct {
	TxID      string
	Result    ReconcileResult
	BlindVote base.BlindVote
	Err       error
}
