// Package proof assembles the domain proofs run by the prover: the
// tree cases, which show that a freshly attached component can always
// be merged away, and the nice path cases, which show progress along
// a partially built path. Both modes plug component enumerators and
// merge tactics into the engine and render their results as indented
// proof artifacts.
package proof

// Options configures a proof run.
type Options struct {
	// OutputDir receives the rendered proof artifacts.
	OutputDir string
	// OutputDepth collapses successful subtrees below this depth in
	// the rendered tree. Failing branches always render in full.
	OutputDepth int
	// ShortCircuit stops sequential quantifiers at the first failing
	// case. Disabling it records complete case lists at the cost of
	// longer searches.
	ShortCircuit bool
	// Compress writes bzip2 compressed artifacts.
	Compress bool
	// Parallel proves independent path cases on the worker pool
	// instead of sequentially.
	Parallel bool
	// MaxDepth bounds the case split recursion of the path search.
	MaxDepth int
	// InitialDepth pre-expands path instances this many components
	// deep before handing them to the search.
	InitialDepth int
}
