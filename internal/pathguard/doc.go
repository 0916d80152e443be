// Package pathguard validates operation roots before any traversal or
// mutation runs.
//
// A root must exist and, once resolved through symlinks to canonical form,
// must not sit inside a protected system location. Sandboxed temporary roots
// (and any configured extras) are exempted, checked before the deny-list.
package pathguard
