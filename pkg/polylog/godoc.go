// Package polylog is a logger-agnostic structured logging facade. Components
// depend on polylog.Logger and never on a concrete logging library; the
// zerolog-backed implementation lives in pkg/polylog/polyzero.
package polylog
