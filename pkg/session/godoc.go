// Package session describes persisted wallet sessions: which wallet was
// connected on which chain, and until when. Stores live in the leveldb and
// redis subpackages.
package session
