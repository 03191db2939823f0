package testutils

import (
	"os"
	"testing"
)

// IntegrationEnvVar enables tests that start external services.
const IntegrationEnvVar = "GO_TEST_INTEGRATION"

// IsIntegrationTestEnvironment reports whether integration tests should run.
func IsIntegrationTestEnvironment() bool {
	return os.Getenv(IntegrationEnvVar) != ""
}

// SkipUnlessIntegration skips t when integration tests are disabled.
func SkipUnlessIntegration(t *testing.T) {
	t.Helper()
	if !IsIntegrationTestEnvironment() {
		t.Skipf("set %s=1 to run integration tests", IntegrationEnvVar)
	}
}
