package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const registriesJSON = `[
	{"id": "R1", "usuario": "P1", "horario": "2024-01-05T14:00:00Z",
	 "alimentos": [{"id": {"grupoExportable": "Leches", "caloriasMacronutrientes": {"energia": 100}}, "cantidad": 2}]}
]`

func fakeRegistryAPI(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method + " " + r.URL.Path {
		case "GET /registroDietetico/exports":
			_, _ = io.WriteString(w, registriesJSON)
		case "GET /opcionesRegistro":
			_, _ = io.WriteString(w, `[{"_id": "o1", "registroLibre": false}]`)
		case "PATCH /opcionesRegistro/o1", "PATCH /opcionesRegistro":
			_, _ = io.WriteString(w, `{}`)
		default:
			http.Error(w, "not found", http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestExportCommand(t *testing.T) {
	chdir(t, t.TempDir())
	srv := fakeRegistryAPI(t)
	out := filepath.Join(t.TempDir(), "grupos.csv")

	stdout, err := run(t, "export", "--api-url", srv.URL, "--log-level", "error", "--dimension", "group", "--out", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "1 rows")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], "R1,P1,05/01/2024,Leches"), lines[1])
}

func TestExportCommandRejectsDimension(t *testing.T) {
	chdir(t, t.TempDir())
	_, err := run(t, "export", "--api-url", "http://127.0.0.1:1", "--dimension", "colores")
	assert.Error(t, err)
}

func TestAdminFreeRegistry(t *testing.T) {
	chdir(t, t.TempDir())
	srv := fakeRegistryAPI(t)

	stdout, err := run(t, "admin", "free-registry", "--api-url", srv.URL, "--log-level", "error")
	require.NoError(t, err)
	assert.Equal(t, "registroLibre: true\n", stdout)
}

func TestVersion(t *testing.T) {
	stdout, err := run(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, stdout, version)
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	oldwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	oldPWD, hadPWD := os.LookupEnv("PWD")
	os.Setenv("PWD", dir)
	t.Cleanup(func() {
		if err := os.Chdir(oldwd); err != nil {
			panic("testing.Chdir: " + err.Error())
		}
		if hadPWD {
			os.Setenv("PWD", oldPWD)
		} else {
			os.Unsetenv("PWD")
		}
	})
}
