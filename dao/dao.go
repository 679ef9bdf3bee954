package dao

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spikeekips/mitum-dao/base"
	"github.com/spikeekips/mitum-dao/base/key"
	"github.com/spikeekips/mitum-dao/blindvote"
	"github.com/spikeekips/mitum-dao/genesis"
	"github.com/spikeekips/mitum-dao/gossip"
	"github.com/spikeekips/mitum-dao/ledger"
	"github.com/spikeekips/mitum-dao/param"
	"github.com/spikeekips/mitum-dao/period"
	"github.com/spikeekips/mitum-dao/proposal"
	"github.com/spikeekips/mitum-dao/storage"
	"github.com/spikeekips/mitum-dao/util"
	"github.com/spikeekips/mitum-dao/util/cache"
	"github.com/spikeekips/mitum-dao/util/logging"
	"github.com/spikeekips/mitum-dao/wallet"
	"golang.org/x/sync/errgroup"
)

var DefaultMaxBackups = 20

type Config struct {
	DevMode    bool
	MaxBackups int
	Signer     key.BTCPublickey
	// HashCache is the cache uri for the hashes of encrypted proposal lists.
	HashCache string
}

// heightNotifier is the ledger, which tells the new chain height.
type heightNotifier interface {
	AddHeightListener(ledger.HeightListener)
}

// DAO holds the governance services, which share one ledger, one gossip store
// and one wallet.
type DAO struct {
	*logging.Logging
	config     Config
	db         storage.Database
	ledger     ledger.ReadWriter
	store      gossip.Store
	wallet     wallet.Wallet
	Period     *period.Service
	Cycles     *period.CycleService
	Params     *param.Service
	Genesis    *genesis.Validator
	Ballots    *proposal.BallotListService
	BlindVotes *blindvote.Service
	Proposals  *proposal.Service
}

func Setup(
	config Config,
	db storage.Database,
	lr ledger.ReadWriter,
	store gossip.Store,
	wl wallet.Wallet,
) (*DAO, error) {
	if config.MaxBackups < 1 {
		config.MaxBackups = DefaultMaxBackups
	}

	if err := config.Signer.IsValid(nil); err != nil {
		return nil, errors.Wrap(err, "invalid signer")
	}

	hashes := cache.Cache(cache.Dummy{})
	if len(config.HashCache) > 0 {
		i, err := cache.NewCacheFromURI(config.HashCache)
		if err != nil {
			return nil, err
		}
		hashes = i
	}

	devEnv := util.NewDevEnv(config.DevMode)

	ps := period.NewService(lr)
	params := param.NewService(db, config.MaxBackups, devEnv)
	validator := proposal.NewDefaultValidator(params, lr)
	ballots := proposal.NewBallotListService(db, config.MaxBackups, lr, ps, validator, devEnv)

	return &DAO{
		Logging: logging.NewLogging(func(c zerolog.Context) zerolog.Context {
			return c.Str("module", "dao")
		}),
		config:  config,
		db:      db,
		ledger:  lr,
		store:   store,
		wallet:  wl,
		Period:  ps,
		Cycles:  period.NewCycleService(lr, params),
		Params:  params,
		Genesis: genesis.NewValidator(lr),
		Ballots: ballots,
		BlindVotes: blindvote.NewService(
			db, config.MaxBackups, lr, ps, ballots, params, wl, store, config.Signer, hashes, devEnv,
		),
		Proposals: proposal.NewService(lr, params, validator, wl, store),
	}, nil
}

func (d *DAO) SetLogging(l *logging.Logging) *logging.Logging {
	_ = d.Cycles.SetLogging(l)
	_ = d.Params.SetLogging(l)
	_ = d.Genesis.SetLogging(l)
	_ = d.Ballots.SetLogging(l)
	_ = d.BlindVotes.SetLogging(l)
	_ = d.Proposals.SetLogging(l)

	return d.Logging.SetLogging(l)
}

// Start loads the persisted states, registers the listeners and then applies
// the payloads, which are already in the gossip store. The timed out blind
// vote commits are reconciled at last.
func (d *DAO) Start() error {
	var eg errgroup.Group
	eg.Go(d.Params.Load)
	eg.Go(d.Ballots.Load)
	eg.Go(d.BlindVotes.Load)

	if err := eg.Wait(); err != nil {
		return errors.Wrap(err, "failed to load")
	}

	d.store.AddListener(d.Params)
	d.store.AddListener(d.Ballots)
	d.store.AddListener(d.BlindVotes)

	if hn, ok := d.ledger.(heightNotifier); ok {
		hn.AddHeightListener(func(height base.Height) {
			if err := d.Cycles.OnChainHeight(height); err != nil {
				d.Log().Error().Err(err).Int64("height", height.Int64()).Msg("failed to update cycles")
			}
		})
	}

	if height := d.ledger.ChainHeight(); height >= d.ledger.GenesisHeight() {
		if err := d.Cycles.OnChainHeight(height); err != nil {
			return err
		}
	}

	if err := d.Params.Start(); err != nil {
		return err
	}

	snapshot := d.store.Snapshot()

	if err := d.Ballots.Start(snapshot); err != nil {
		return err
	}

	if err := d.BlindVotes.Start(snapshot); err != nil {
		return err
	}

	rs := d.BlindVotes.ReconcilePending()

	d.Log().Info().Int("payloads", len(snapshot)).Int("reconciled", len(rs)).Msg("dao started")

	return nil
}

// Stop flushes the pending saves and stops the save queues.
func (d *DAO) Stop() error {
	var eg errgroup.Group
	eg.Go(func() error {
		if err := d.Params.Stop(); err != nil && !errors.Is(err, util.DaemonAlreadyStoppedError) {
			return err
		}

		return nil
	})
	eg.Go(d.Ballots.Stop)
	eg.Go(d.BlindVotes.Stop)

	if err := eg.Wait(); err != nil {
		return err
	}

	d.Log().Info().Msg("dao stopped")

	return nil
}

func (d *DAO) Close() error {
	if err := d.Stop(); err != nil {
		return err
	}

	return d.db.Close()
}
