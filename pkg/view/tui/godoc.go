// Package tui implements a terminal wallet selector with tview. A Selector
// plugs into a WalletRepo as its view: when the repo cannot tell which wallet
// to connect, it opens the selector and the wallet picked by the user is
// connected.
package tui
