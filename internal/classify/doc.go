// Package classify holds the pure predicates the reconciliation engine uses
// to pick candidates: unwanted-filename pattern matching and subtitle/movie
// extension membership.
//
// Everything here is side-effect free apart from reading directory entries.
// Extension checks are case-insensitive; pattern order is caller order so the
// first configured rule wins.
package classify
