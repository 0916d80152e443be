// Package batch applies delete/move/copy mutations over candidate lists
// under a success budget.
//
// The loop guarantees the re-entrancy contract: failures never consume
// budget, vanished candidates are silent no-ops, the traversal root is
// re-checked before every mutation, and dry runs mirror live accounting
// without touching disk.
package batch
