package manager

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sunnya97/cosmos-kit/pkg/logging"
	"github.com/sunnya97/cosmos-kit/pkg/session"
	"github.com/sunnya97/cosmos-kit/pkg/wallet"
	"github.com/sunnya97/cosmos-kit/pkg/walletrepo"
)

// RestoreSessions reconnects the wallets of persisted sessions which have not
// expired. Chains are restored concurrently; the wallets of one chain in
// registration order. Expired sessions, and sessions whose wallet fails to
// reconnect, are deleted. Only store failures and ctx errors are returned.
func (m *WalletManager) RestoreSessions(ctx context.Context) error {
	group, groupCtx := errgroup.WithContext(ctx)
	for _, record := range m.records {
		repo := m.repos[record.Name]
		group.Go(func() error {
			return m.restoreChain(groupCtx, repo)
		})
	}
	return group.Wait()
}

func (m *WalletManager) restoreChain(ctx context.Context, repo *walletrepo.WalletRepo) error {
	chainName := repo.ChainName()
	logger := logging.ForChainComponent(m.logger, logging.ComponentWalletManager, chainName)

	for _, w := range repo.Wallets() {
		walletName := w.WalletName()
		sess, err := m.store.Get(ctx, chainName, walletName)
		if err != nil {
			return err
		}
		if sess == nil {
			continue
		}

		walletLogger := logger.With(logging.FieldWallet, string(walletName))
		now := time.Now()
		if sess.Expired(now) {
			sessionsRestoredTotal.WithLabelValues(chainName, "expired").Inc()
			walletLogger.Debug().Time(logging.FieldExpiresAt, sess.ExpiresAt).Msg("dropping expired session")
			if err = m.store.Delete(ctx, chainName, walletName); err != nil {
				return err
			}
			continue
		}

		key := session.Key(chainName, walletName)
		m.restoring.Store(key, struct{}{})
		err = w.Connect(ctx, m.remainingSessionOptions(sess, now))
		m.restoring.Delete(key)

		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			sessionsRestoredTotal.WithLabelValues(chainName, logging.ResultFailure).Inc()
			walletLogger.Warn().Err(err).Msg("unable to restore session, forgetting it")
			if err = m.store.Delete(ctx, chainName, walletName); err != nil {
				return err
			}
			continue
		}

		sessionsRestoredTotal.WithLabelValues(chainName, logging.ResultSuccess).Inc()
		walletLogger.Info().Msg("session restored")
	}
	return nil
}

// remainingSessionOptions returns the configured session options with the
// duration cut down to what is left of sess.
func (m *WalletManager) remainingSessionOptions(sess *session.Session, now time.Time) *wallet.SessionOptions {
	restored := &wallet.SessionOptions{}
	if m.sessionOptions != nil {
		restored.OnExpire = m.sessionOptions.OnExpire
	}
	if !sess.ExpiresAt.IsZero() {
		restored.Duration = sess.ExpiresAt.Sub(now)
	}
	return restored
}
