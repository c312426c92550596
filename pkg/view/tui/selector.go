package tui

import (
	"context"
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/sunnya97/cosmos-kit/pkg/logging"
	"github.com/sunnya97/cosmos-kit/pkg/polylog"
	"github.com/sunnya97/cosmos-kit/pkg/polylog/polyzero"
	"github.com/sunnya97/cosmos-kit/pkg/wallet"
	"github.com/sunnya97/cosmos-kit/pkg/walletrepo"
)

// SelectorOption configures a Selector.
type SelectorOption func(*Selector)

func WithLogger(logger polylog.Logger) SelectorOption {
	return func(s *Selector) { s.logger = logger }
}

// WithScreenFn makes the selector draw on the screens returned by newScreen,
// one per opening. By default tview opens the terminal.
func WithScreenFn(newScreen func() tcell.Screen) SelectorOption {
	return func(s *Selector) { s.newScreen = newScreen }
}

// WithReadyFn registers fn to be called with the screen once the wallet list
// has been drawn for the first time.
func WithReadyFn(fn func(screen tcell.Screen)) SelectorOption {
	return func(s *Selector) { s.onReady = fn }
}

// Selector lists the wallets of a repo and connects the one the user picks.
type Selector struct {
	ctx       context.Context
	logger    polylog.Logger
	newScreen func() tcell.Screen
	onReady   func(tcell.Screen)

	mu      sync.Mutex
	repo    *walletrepo.WalletRepo
	app     *tview.Application
	lastErr error
}

// NewSelector returns a selector which connects wallets with ctx.
func NewSelector(ctx context.Context, opts ...SelectorOption) *Selector {
	s := &Selector{
		ctx:    ctx,
		logger: polyzero.NewLogger(polyzero.WithLevel(polyzero.InfoLevel.ZerologLevel())),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.ForComponent(s.logger, logging.ComponentSelectorView)
	return s
}

// Actions returns the view controller to install on wallet repos.
func (s *Selector) Actions() walletrepo.Actions {
	return walletrepo.Actions{
		ViewWalletRepo: s.viewWalletRepo,
		ViewOpen:       s.viewOpen,
	}
}

// Err returns the outcome of the last selection: nil after a successful
// connection, ErrSelectorCanceled when the user quit, or the connect error.
func (s *Selector) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Selector) viewWalletRepo(repo *walletrepo.WalletRepo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.repo = repo
}

func (s *Selector) viewOpen(open bool) {
	if !open {
		s.mu.Lock()
		app := s.app
		s.mu.Unlock()
		if app != nil {
			app.Stop()
		}
		return
	}

	s.setErr(s.run())
}

// run shows the selection list until the user picks a wallet or quits, then
// connects the picked wallet.
func (s *Selector) run() error {
	s.mu.Lock()
	repo := s.repo
	s.mu.Unlock()
	if repo == nil {
		return ErrSelectorNoRepo
	}

	wallets := repo.Wallets()
	var picked wallet.Name

	app := tview.NewApplication()
	if s.newScreen != nil {
		app.SetScreen(s.newScreen())
	}

	list := tview.NewList()
	for i, w := range wallets {
		info := w.WalletInfo()
		shortcut := rune(0)
		if i < 9 {
			shortcut = rune('1' + i)
		}
		name := w.WalletName()
		list.AddItem(info.PrettyName, describe(info, w.Status()), shortcut, func() {
			picked = name
			app.Stop()
		})
	}
	list.AddItem("Quit", "Cancel the connection", 'q', app.Stop)

	list.SetBorder(true).
		SetBorderColor(tcell.ColorGreen).
		SetTitle(fmt.Sprintf(" Connect a wallet to %s ", repo.ChainRecord().Info.PrettyName)).
		SetTitleAlign(tview.AlignLeft)
	list.SetDoneFunc(app.Stop)

	if s.onReady != nil {
		var ready sync.Once
		app.SetAfterDrawFunc(func(screen tcell.Screen) {
			ready.Do(func() { s.onReady(screen) })
		})
	}

	s.mu.Lock()
	s.app = app
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.app = nil
		s.mu.Unlock()
	}()

	s.logger.Debug().
		Str(logging.FieldChainName, repo.ChainName()).
		Int(logging.FieldCount, len(wallets)).
		Msg("opening wallet selector")

	if err := app.SetRoot(list, true).Run(); err != nil {
		return ErrSelectorRun.Wrapf("%v", err)
	}

	if picked == "" {
		s.logger.Info().Str(logging.FieldChainName, repo.ChainName()).Msg("wallet selection canceled")
		return ErrSelectorCanceled
	}

	s.logger.Info().
		Str(logging.FieldChainName, repo.ChainName()).
		Str(logging.FieldWallet, string(picked)).
		Msg("wallet selected")
	return repo.Connect(s.ctx, picked)
}

func (s *Selector) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = err
}

func describe(info wallet.Info, status wallet.Status) string {
	return fmt.Sprintf("%s, %s", info.Mode, status)
}
