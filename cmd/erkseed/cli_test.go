package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eureka-residences/erkseed/internal/fakeapi"
)

func startFake(t *testing.T) (*fakeapi.Server, string) {
	t.Helper()
	fake := fakeapi.New(fakeapi.Options{})
	hs := httptest.NewServer(fake.Handler())
	t.Cleanup(hs.Close)
	return fake, hs.URL
}

// run executes the CLI with admin credentials for baseURL prepended.
func run(t *testing.T, baseURL string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{
		"--base-url", baseURL,
		"--email", fakeapi.DefaultAdminEmail,
		"--password", fakeapi.DefaultAdminPassword,
	}, args...))
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestCLI_SeedNamedSteps(t *testing.T) {
	fake, url := startFake(t)

	out, _, err := run(t, url, "seed", "buildings", "floors", "--show-ids")
	require.NoError(t, err)

	assert.Equal(t, 1, fake.Count("buildings"))
	assert.Equal(t, 2, fake.Count("floors"))
	assert.Contains(t, out, "buildings")
	assert.Contains(t, out, "floors")
	assert.Contains(t, out, "floor_")
}

func TestCLI_SeedRequiresSteps(t *testing.T) {
	_, url := startFake(t)

	_, _, err := run(t, url, "seed")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--all")

	_, _, err = run(t, url, "seed", "--all", "buildings")
	require.Error(t, err)
}

func TestCLI_SeedUnknownStepSendsNothing(t *testing.T) {
	fake, url := startFake(t)

	_, _, err := run(t, url, "seed", "buildings", "gardens")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"gardens"`)
	assert.Equal(t, 0, fake.Count("buildings"))
}

func TestCLI_SeedFailureStillWritesMetrics(t *testing.T) {
	_, url := startFake(t)
	metrics := filepath.Join(t.TempDir(), "seed.prom")

	// floors needs a building that does not exist yet.
	out, _, err := run(t, url, "--metrics-file", metrics, "seed", "floors")
	require.Error(t, err)
	assert.Contains(t, out, "failed")

	data, readErr := os.ReadFile(metrics)
	require.NoError(t, readErr)
	assert.Contains(t, string(data), "erkseed_seed_step_runs_total")
}

func TestCLI_SeedAccountsFlag(t *testing.T) {
	fake, url := startFake(t)
	accounts := filepath.Join(t.TempDir(), "accounts.csv")
	csv := "Nom Etudiant(e),Prénom Etudiant(e),Identifiant EurekaNet,Mot de passe par défaut\n" +
		"NGONO,Awa,eureka-h1,pw-h1\n"
	require.NoError(t, os.WriteFile(accounts, []byte(csv), 0o600))

	_, _, err := run(t, url, "seed", "users", "--accounts", accounts)
	require.NoError(t, err)
	assert.Equal(t, 2, fake.Count("users"))
}

func TestCLI_SeedUserParam(t *testing.T) {
	fake := fakeapi.New(fakeapi.Options{PageSize: 2})
	hs := httptest.NewServer(fake.Handler())
	t.Cleanup(hs.Close)
	accounts := filepath.Join(t.TempDir(), "accounts.csv")
	csv := "Nom Etudiant(e),Prénom Etudiant(e),Identifiant EurekaNet,Mot de passe par défaut\n" +
		"NGONO,Awa,eureka-h1,pw-h1\n" +
		"ESSOMBA,Paul,eureka-h2,pw-h2\n" +
		"MBARGA,Lea,eureka-n1,pw-n1\n"
	require.NoError(t, os.WriteFile(accounts, []byte(csv), 0o600))

	_, _, err := run(t, hs.URL, "seed", "--accounts", accounts, "--user-param", "page_size=50",
		"users", "buildings", "floors", "unit-types", "units", "tenants")
	require.NoError(t, err)
	assert.Equal(t, 3, fake.Count("units"))
	assert.Equal(t, 3, fake.Count("tenants"))
}

func TestCLI_Whoami(t *testing.T) {
	_, url := startFake(t)

	out, _, err := run(t, url, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, fakeapi.DefaultAdminEmail)
	assert.Contains(t, out, "yes")
}

func TestCLI_WhoamiBadPassword(t *testing.T) {
	_, url := startFake(t)

	var stdout bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"--base-url", url, "--email", fakeapi.DefaultAdminEmail, "--password", "wrong", "whoami"})
	require.Error(t, root.Execute())
	assert.Empty(t, stdout.String())
}

func TestCLI_MissingCredentials(t *testing.T) {
	_, url := startFake(t)
	t.Setenv("ERKSEED_EMAIL", "")
	t.Setenv("ERKSEED_PASSWORD", "")

	root := NewRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"--base-url", url, "whoami"})
	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "credentials")
}

func TestCLI_ListBuildings(t *testing.T) {
	_, url := startFake(t)
	_, _, err := run(t, url, "seed", "buildings")
	require.NoError(t, err)

	out, _, err := run(t, url, "list", "buildings", "--search", "Eureka")
	require.NoError(t, err)
	assert.Contains(t, out, "ERK")

	out, _, err = run(t, url, "list", "buildings", "--search", "nowhere")
	require.NoError(t, err)
	assert.NotContains(t, out, "ERK")
}

func TestCLI_ListUnknownResource(t *testing.T) {
	_, url := startFake(t)

	_, _, err := run(t, url, "list", "parking-lots")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown resource")
}

func TestCLI_Steps(t *testing.T) {
	_, url := startFake(t)

	out, _, err := run(t, url, "steps")
	require.NoError(t, err)
	for _, name := range []string{"users", "buildings", "common-areas", "contacts"} {
		assert.Contains(t, out, name)
	}
	// common-areas is the only opt-in step.
	assert.Equal(t, 1, strings.Count(out, " no "))
}

func TestCLI_Env(t *testing.T) {
	_, url := startFake(t)

	out, _, err := run(t, url, "env")
	require.NoError(t, err)
	assert.Contains(t, out, "ERKSEED_BASE_URL")
	assert.Contains(t, out, "ERKSEED_ACCOUNTS_FILE")
}
