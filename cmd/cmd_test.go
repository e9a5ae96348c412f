package cmd

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ui_mockups/generator"
)

func setupEnv(t *testing.T, placeholderURL string) string {
	t.Helper()
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("LLM_PROVIDER", "mock")
	t.Setenv("MOCK_MODE", "true")
	t.Setenv("LOG_LEVEL", "error")
	if placeholderURL != "" {
		t.Setenv("PLACEHOLDER_URL", placeholderURL)
	}
	return filepath.Join(t.TempDir(), "missing-config.json")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeDoc(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestPlanCommand_MockProvider(t *testing.T) {
	cfgPath := setupEnv(t, "")
	doc := writeDoc(t, "req.txt", "Login\nEmail and password fields")
	out := filepath.Join(t.TempDir(), "plan.json")

	_, err := execute(t, "--config", cfgPath, "plan", "--doc", doc, "-o", out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var plan generator.Plan
	require.NoError(t, json.Unmarshal(data, &plan))
	require.Len(t, plan.Screens, 1)
	assert.Equal(t, "Login", plan.Screens[0].Name)
}

func TestRunCommand_OfflineBundle(t *testing.T) {
	png := []byte("placeholder-png")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(png)
	}))
	defer srv.Close()
	cfgPath := setupEnv(t, srv.URL)
	doc := writeDoc(t, "req.md", "Login")

	out, err := execute(t, "--config", cfgPath, "run", "--doc", doc, "--count", "3")
	require.NoError(t, err)

	var bundle struct {
		Images []struct {
			Name string `json:"name"`
			Data string `json:"data"`
		} `json:"images"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &bundle))
	require.Len(t, bundle.Images, 1)
	assert.Equal(t, "Login_1.png", bundle.Images[0].Name)
	assert.Equal(t, "data:image/png;base64,"+base64.StdEncoding.EncodeToString(png), bundle.Images[0].Data)
}

func TestGenerateCommand_RejectsBadOptions(t *testing.T) {
	cfgPath := setupEnv(t, "")
	plan := writeDoc(t, "plan.json", `{"screens":[{"name":"Login"}]}`)

	_, err := execute(t, "--config", cfgPath, "generate", "--plan", plan, "--platform", "Desktop")

	assert.ErrorIs(t, err, generator.ErrInvalidOptions)
}

func TestCheckCommand_NoMustItems(t *testing.T) {
	cfgPath := setupEnv(t, "")
	plan := writeDoc(t, "plan.json", `{"screens":[{"name":"Login"}]}`)
	img := writeDoc(t, "Login_1.png", "png")

	out, err := execute(t, "--config", cfgPath, "check", "--plan", plan, "--screen", "Login", "--image", img)

	require.NoError(t, err)
	assert.Equal(t, generator.NoMustItemsMessage+"\n", out)
}

func TestCheckCommand_UnknownScreen(t *testing.T) {
	cfgPath := setupEnv(t, "")
	plan := writeDoc(t, "plan.json", `{"screens":[{"name":"Login"}]}`)
	img := writeDoc(t, "x.png", "png")

	_, err := execute(t, "--config", cfgPath, "check", "--plan", plan, "--screen", "Home", "--image", img)

	assert.ErrorContains(t, err, `screen "Home" not found`)
}

func TestPlanCommand_MissingCredential(t *testing.T) {
	cfgPath := setupEnv(t, "")
	t.Setenv("LLM_PROVIDER", "openai")
	doc := writeDoc(t, "req.txt", "Login")

	_, err := execute(t, "--config", cfgPath, "plan", "--doc", doc)

	assert.ErrorIs(t, err, generator.ErrMissingCredential)
}
