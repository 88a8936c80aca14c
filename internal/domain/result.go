package domain

// ResizeNote is appended to the optimization line when a resize happened.
const ResizeNote = ", Размер уменьшен до FHD"

type TransformResult struct {
	OriginalSize  int64
	OptimizedSize int64
	Resized       bool
	Width         int
	Height        int
	TargetWidth   int
	TargetHeight  int
	Note          string
}

func (r TransformResult) Saved() int64 {
	return r.OriginalSize - r.OptimizedSize
}

type OutcomeKind int

const (
	// OutcomeExcluded covers files dropped by the pre-filters (extension,
	// recency). They appear in no tally.
	OutcomeExcluded OutcomeKind = iota
	OutcomeOptimized
	OutcomeSkippedOptimized
	OutcomeSkippedZeroByte
	OutcomeFailed
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeOptimized:
		return "optimized"
	case OutcomeSkippedOptimized:
		return "skipped_optimized"
	case OutcomeSkippedZeroByte:
		return "skipped_zero_byte"
	case OutcomeFailed:
		return "failed"
	default:
		return "excluded"
	}
}

// Outcome is the per-file result folded into a RunSummary.
type Outcome struct {
	Kind   OutcomeKind
	Path   string
	Result TransformResult
	Err    error
}

type RunSummary struct {
	Candidates       int
	Processed        int
	Errors           int
	ZeroByte         int
	SkippedOptimized int
	BytesBefore      int64
	BytesAfter       int64
}

func (s *RunSummary) Fold(o Outcome) {
	switch o.Kind {
	case OutcomeOptimized:
		s.Processed++
		s.BytesBefore += o.Result.OriginalSize
		s.BytesAfter += o.Result.OptimizedSize
	case OutcomeSkippedOptimized:
		s.SkippedOptimized++
	case OutcomeSkippedZeroByte:
		s.ZeroByte++
	case OutcomeFailed:
		s.Errors++
	}
}

func (s RunSummary) BytesSaved() int64 {
	return s.BytesBefore - s.BytesAfter
}
