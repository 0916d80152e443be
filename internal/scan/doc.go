// Package scan produces candidate lists through controlled traversals:
// bottom-up for emptiness, top-down with early stop for the movie-folder
// search, shallow listings for duplicate comparison, and recursive sorted
// collection for subtitle files.
//
// Scans are stateless and re-entrant; every call re-reads current disk
// state. Unreadable subtrees are skipped and reported, never fatal.
package scan
