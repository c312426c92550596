// Package polyzero provides a polylog.Logger implementation backed by zerolog.
// As the polylog interface mirrors zerolog, this package is a thin wrapper and
// only maps the subset of the zerolog API used in this module.
package polyzero
