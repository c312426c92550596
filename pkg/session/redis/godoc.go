// Package redis implements session.Store on Redis, for deployments where
// several processes share wallet sessions.
package redis
