// Package testwallet provides controllable fakes of wallet.Client and
// wallet.ChainWallet for tests.
package testwallet
