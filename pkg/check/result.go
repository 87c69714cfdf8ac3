package check

// Status represents the outcome of a check.
type Status string

const (
	StatusOK   Status = "OK"
	StatusFail Status = "FAIL"
)

// Reason is a short machine-friendly code explaining an outcome.
type Reason string

const (
	ReasonNone                 Reason = ""
	ReasonExists               Reason = "exists"
	ReasonCreated              Reason = "created"
	ReasonNotDirectory         Reason = "not_directory"
	ReasonNotWritable          Reason = "not_writable"
	ReasonStatFailed           Reason = "stat_failed"
	ReasonCreateFailed         Reason = "create_failed"
	ReasonMissingDependency    Reason = "missing_dependency"
	ReasonVersionMismatch      Reason = "version_mismatch"
	ReasonInvalidDependency    Reason = "invalid_dependency"
	ReasonDirectoryUnavailable Reason = "directory_unavailable"
	ReasonGenerationFailed     Reason = "generation_failed"
	ReasonWriteFailed          Reason = "write_failed"
)

// Result holds the outcome of a single check.
type Result struct {
	Name    string   // e.g., "dir: backend", "dep: flask"
	Status  Status   // OK or FAIL
	Reason  Reason   // why the check ended the way it did
	Details []string // human-readable details
	Err     error    // underlying error for failures
}

// OK returns true if the check passed.
func (r Result) OK() bool {
	return r.Status == StatusOK
}
