package orchestrator

import (
	"os"
	"strings"
	"time"
)

// Timeout constants for different operations
var (
	// DefaultWorkflowTimeout bounds a whole tagging run
	DefaultWorkflowTimeout = getTimeoutOrDefault("AUTOTAG_WORKFLOW_TIMEOUT", 10*time.Minute, 5*time.Second)
	// DefaultRetryDelay is the initial delay for exponential backoff of transient
	// GitHub failures; the use cases take it from here
	DefaultRetryDelay = getTimeoutOrDefault("AUTOTAG_RETRY_DELAY", 1*time.Second, 10*time.Millisecond)
)

// Step output names
const (
	OutputVersion    = "version"
	OutputTagName    = "tagname"
	OutputTagSHA     = "tagsha"
	OutputTagURI     = "taguri"
	OutputTagMessage = "tagmessage"
	OutputTagRef     = "tagref"
)

// tagOutputs are the outputs blanked when a run fails unexpectedly.
var tagOutputs = []string{OutputTagName, OutputTagSHA, OutputTagURI, OutputTagMessage, OutputTagRef}

// isTestEnvironment detects if we're running in a test environment
func isTestEnvironment() bool {
	for _, arg := range os.Args {
		if strings.Contains(arg, ".test") || strings.Contains(arg, "go test") {
			return true
		}
	}
	return os.Getenv("GO_TEST") == "true" || os.Getenv("TEST_MODE") == "true"
}

// getTimeoutOrDefault returns production timeout or test timeout based on environment
func getTimeoutOrDefault(envVar string, prodDefault, testDefault time.Duration) time.Duration {
	if env := os.Getenv(envVar); env != "" {
		if duration, err := time.ParseDuration(env); err == nil {
			return duration
		}
	}
	if isTestEnvironment() {
		return testDefault
	}
	return prodDefault
}
