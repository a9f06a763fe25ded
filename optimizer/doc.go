// Package optimizer orchestrates the full layout search pipeline: Phase 0
// seed generation, Phase 1/2 simulated annealing (proxy-scored then
// routed-scored), Phase 3 port reassignment, and Phase 4 compaction plus
// orientation polish. Run drives one fixed-budget pass; RunDeep chains
// repeated passes, persisting the elite archive between them, until the
// caller stops it or no improvement has been seen for a plateau window.
package optimizer
