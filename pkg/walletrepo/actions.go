package walletrepo

// Actions is the view controller a WalletRepo signals. Either field may be
// nil, in which case the corresponding signal is dropped.
type Actions struct {
	// ViewWalletRepo tells the view which repo to show.
	ViewWalletRepo func(repo *WalletRepo)
	// ViewOpen opens (true) or closes (false) the view.
	ViewOpen func(open bool)
}
