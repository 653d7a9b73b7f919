// ABOUTME: Tests for the cobra command tree
// ABOUTME: Runs commands in-process against the demo data and checks their output
package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/pipeline/store"
)

// clearEnv blanks CRM_* variables so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, v := range []string{"CRM_LOCALE", "CRM_CURRENCY", "CRM_DATA_FILE", "CRM_WEB_ADDR", "CRM_LOG_LEVEL", "CRM_RECENT_ACTIVITY"} {
		t.Setenv(v, "")
	}
}

// run executes the root command with args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	clearEnv(t)

	root := NewRootCommand("test")
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestCustomersCommand(t *testing.T) {
	out, err := run(t, "customers")
	require.NoError(t, err)
	assert.Contains(t, out, "Acme Corporation")
	assert.Contains(t, out, "Showing 3 of 3 customers")

	out, err = run(t, "customers", "--query", "tech")
	require.NoError(t, err)
	assert.Contains(t, out, "Tech Solutions Inc")
	assert.NotContains(t, out, "Acme Corporation")
	assert.Contains(t, out, "Showing 1 of 3 customers")

	out, err = run(t, "customers", "--query", "zzz")
	require.NoError(t, err)
	assert.Contains(t, out, "No customers found matching your search.")

	_, err = run(t, "customers", "--status", "sleeping")
	assert.Error(t, err)
}

func TestDealsCommand(t *testing.T) {
	out, err := run(t, "deals", "--stage", "negotiation")
	require.NoError(t, err)
	assert.Contains(t, out, "Enterprise Software License")
	assert.Contains(t, out, "$50,000.00")
	assert.Contains(t, out, "Showing 1 of 3 deals")
	assert.Contains(t, out, "Total Pipeline Value: $225,000.00")
	assert.Contains(t, out, "Active Deals:         3")
}

func TestContactsCommand(t *testing.T) {
	out, err := run(t, "contacts", "--query", "cto")
	require.NoError(t, err)
	assert.Contains(t, out, "John Smith")
	assert.Contains(t, out, "Showing 1 of 3 contacts")
}

func TestLocaleFlag(t *testing.T) {
	out, err := run(t, "--locale", "de", "--currency", "EUR", "pipeline")
	require.NoError(t, err)
	assert.Contains(t, out, "NEGOTIATION (1)")

	_, err = run(t, "--locale", "zh-CN", "pipeline")
	assert.Error(t, err)
}

func TestPipelineCommand(t *testing.T) {
	out, err := run(t, "pipeline")
	require.NoError(t, err)
	assert.Contains(t, out, "NEGOTIATION (1) $50,000.00")
	assert.Contains(t, out, "Total Pipeline Value: $225,000.00")
}

func TestDashboardCommand(t *testing.T) {
	out, err := run(t, "dashboard")
	require.NoError(t, err)
	assert.Contains(t, out, "PIPELINE CRM DASHBOARD")
}

func TestAddCustomerCommand(t *testing.T) {
	out, err := run(t, "add-customer", "--name", "Initech", "--email", "hello@initech.com", "--status", "prospect")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Customer created: Initech")
	assert.Contains(t, out, "Status: Prospect")

	_, err = run(t, "add-customer", "--name", "Initech", "--email", "not-an-email")
	assert.Error(t, err)
}

func TestAddContactCommand(t *testing.T) {
	out, err := run(t, "add-contact", "--first-name", "Ann", "--last-name", "Lee", "--email", "ann@example.com", "--customer", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Contact created: Ann Lee")

	_, err = run(t, "add-contact", "--first-name", "Ann", "--last-name", "Lee", "--email", "ann@example.com", "--customer", "42")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestAddDealCommand(t *testing.T) {
	out, err := run(t, "add-deal", "--title", "Support Plan", "--amount", "1200")
	require.NoError(t, err)
	assert.Contains(t, out, "Amount: $1,200.00")
	assert.Contains(t, out, "Stage: Lead")

	_, err = run(t, "add-deal", "--title", "Support Plan", "--probability", "150")
	assert.Error(t, err)

	_, err = run(t, "add-deal", "--title", "Support Plan", "--amount", "Inf")
	assert.Error(t, err)
}

func TestMoveDealCommand(t *testing.T) {
	out, err := run(t, "move-deal", "1", "closed-won")
	require.NoError(t, err)
	assert.Contains(t, out, `Deal "Enterprise Software License" moved to Closed Won`)

	_, err = run(t, "move-deal", "1", "won")
	assert.Error(t, err)

	_, err = run(t, "move-deal", "404", "lead")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = run(t, "move-deal", "1")
	assert.Error(t, err)
}

func TestGraphCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline.dot")
	_, err := run(t, "graph", "pipeline", "--output", path)
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotEmpty(t, raw)

	_, err = run(t, "graph", "account")
	assert.Error(t, err)

	_, err = run(t, "graph", "account", "42")
	assert.Error(t, err)

	_, err = run(t, "graph", "orgchart")
	assert.Error(t, err)
}

func TestDataFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crm.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
customers:
  - id: "a"
    name: Umbrella
    email: ops@umbrella.example
    status: active
    created_at: "2024-02-01T00:00:00Z"
`), 0o600))

	out, err := run(t, "--data", path, "customers")
	require.NoError(t, err)
	assert.Contains(t, out, "Umbrella")
	assert.Contains(t, out, "Showing 1 of 1 customers")

	_, err = run(t, "--data", filepath.Join(t.TempDir(), "missing.yaml"), "customers")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestMCPServerBuilds(t *testing.T) {
	clearEnv(t)
	a := &app{}
	require.NoError(t, a.setup(&cobra.Command{}))
	assert.NotNil(t, newMCPServer(a, ""))
}
