// Package leveldb implements session.Store on a goleveldb database. It is the
// default store of the walletkit CLI.
package leveldb
