package selection

// Result is the outcome of one selection run: either "run everything" with
// the trigger that forced it, or a deduplicated set of test file paths.
// FullTest=false with no Files is a valid outcome meaning partial testing is
// safe and nothing is affected.
type Result struct {
	FullTest bool
	Reason   string
	Files    []string
}

// FullTestResult returns the full-test sentinel
func FullTestResult(reason string) Result {
	return Result{FullTest: true, Reason: reason}
}

// PartialResult returns a partial selection over the given files
func PartialResult(files []string) Result {
	return Result{Files: files}
}
