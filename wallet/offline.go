package wallet

// OfflineWallet is the Wallet without any keystore or network. It can not
// create tx; the known txs are regarded as pending, so the pending commits
// are not released.
type OfflineWallet struct{}

func NewOfflineWallet() OfflineWallet {
	return OfflineWallet{}
}

func (OfflineWallet) AvailableBalance() int64 {
	return 0
}

func (OfflineWallet) PrepareBurnFeeTx(int64) (Transaction, error) {
	return Transaction{}, WalletError.Errorf("offline wallet")
}

func (OfflineWallet) PrepareBlindVoteTx(int64, int64) (Transaction, error) {
	return Transaction{}, WalletError.Errorf("offline wallet")
}

func (OfflineWallet) AttachOpReturn(Transaction, []byte) (Transaction, error) {
	return Transaction{}, WalletError.Errorf("offline wallet")
}

func (OfflineWallet) Sign(Transaction) (Transaction, error) {
	return Transaction{}, WalletError.Errorf("offline wallet")
}

func (OfflineWallet) Broadcast(tx Transaction, cb BroadcastCallback) {
	go cb.OnFailure(BroadcastFailedError.Errorf("offline wallet; tx=%q", tx.ID))
}

func (OfflineWallet) TxStatus(string) TxStatus {
	return TxStatusPending
}
