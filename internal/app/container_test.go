package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize_RunsDialogueAgainstDataDir(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	chdirForTest(t, t.TempDir())

	dataDir := filepath.Join(t.TempDir(), "vocab")
	require.NoError(t, os.MkdirAll(dataDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "words"), []byte("the,9,,\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "user_data"),
		[]byte("abcdefghijklmnopqrstuvwxyz\nversion,v1-2\nsave,remember\ngreeting,Welcome back\n"), 0o644))
	t.Setenv("DATA_DIR", dataDir)
	t.Setenv("SESSION_EXIT_TOKEN", "bye")
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	in := strings.NewReader("the cat\nnoun\nyes\nremember\nbye\n")
	c, err := Initialize(context.Background(), Stdio{In: in, Out: &out})
	require.NoError(t, err)

	assert.Equal(t, "v11-wyz", c.Session.Prefs.Version)
	require.NoError(t, c.Engine.Run(context.Background()))

	assert.Equal(t, strings.Join([]string{
		"Connected to Charm interactive (v11-wyz)",
		"Welcome back",
		"What is cat?",
		"Is 'cat' a noun?",
		"Got it, 'cat' is a noun",
		"I remember!",
	}, "\n")+"\n", out.String())

	saved, err := os.ReadFile(filepath.Join(dataDir, "words"))
	require.NoError(t, err)
	assert.Equal(t, "the,9,,\ncat,1,,\n", string(saved))
}

// chdirForTest changes the working directory for the duration of the test
// (equivalent to testing.T.Chdir, which requires Go 1.24).
func chdirForTest(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir %s: %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore working directory %s: %v", prev, err)
		}
	})
}
