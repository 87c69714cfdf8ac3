package check

// Checker is implemented by all check types.
// Each check validates a specific aspect of the deployment environment
// and returns a Result indicating success or failure.
//
// Implementations:
//   - dircheck.Check: verifies a directory exists and is writable
//   - depcheck.Check: verifies a backend dependency can be loaded
//   - docprobe.Probe: renders and writes a test PDF end to end
type Checker interface {
	Run() Result
}
