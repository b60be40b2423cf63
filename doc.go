// Package allocation maintains a hierarchical investment portfolio and
// decides which securities to buy or sell so that actual allocation
// percentages track configured targets.
//
// The core is the rebalancing engine: the tree of asset classes with its
// deviation math and the 5/25 out-of-balance rule, the lazy-investment and
// overweight-selling algorithms, and the buy/sell semantics on individual
// holdings (buys at the ask, sells at the bid, valuation always at the
// market price). Every executed trade is appended to an immutable
// transaction log.
//
// Around the core, the package carries what a command invocation needs:
// a YAML loader that assembles the working-copy portfolio, a quote-service
// abstraction with an offline static implementation (the live provider
// lives in the yfin subpackage), price-anomaly validation, and a read-only
// snapshot visitor for reporting.
//
// This package serves as the foundational logic for the `alloc`
// command-line tool. Nothing here persists anything: the portfolio is
// rebuilt from its configuration files on every run.
package allocation
