package models

// Counters accumulates the outcome of one comparison run. Each classified
// path or artifact increments exactly one field. The structure is threaded
// explicitly through the engine, never held as process-wide state, so a run
// stays self-contained and testable.
type Counters struct {
	// Same counts common files with byte-identical content (no artifact).
	Same int

	// NewFiles counts files present only in the target tree.
	NewFiles int

	// DelFiles counts files present only in the base tree, including files
	// materialized under a deleted-directory head.
	DelFiles int

	// ModText counts modified files rendered as annotated line diffs.
	ModText int

	// ModBinary counts modified files copied raw (binary or oversized).
	ModBinary int

	// DelDirs counts deleted-directory heads, one per collapsed subtree.
	DelDirs int
}

// DryRunCounts summarizes what a run would touch without writing anything.
type DryRunCounts struct {
	// BaseOnly is the number of files that would be reported deleted.
	BaseOnly int

	// TargetOnly is the number of files that would be reported new.
	TargetOnly int

	// Common is the number of files whose content would be checked.
	Common int
}
