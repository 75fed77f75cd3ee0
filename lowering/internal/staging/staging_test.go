package staging

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// The staging area is process-wide and initializes exactly once, so the
// whole lifecycle runs in a single test.
func TestLifecycle(t *testing.T) {
	root := t.TempDir()

	require.Empty(t, Dir(), "Dir must be empty before Init")
	_, err := Stage("fn", "x = 1\n")
	require.Error(t, err, "Stage must fail before Init")

	require.NoError(t, Init(Options{Dir: root}))
	d := Dir()
	require.True(t, strings.HasPrefix(d, root), "staging dir %q must live under %q", d, root)

	// Repeated Init is a no-op returning the first outcome.
	require.NoError(t, Init(Options{Dir: "/nonexistent/elsewhere"}))
	require.Equal(t, d, Dir())

	p1, err := Stage("true_fn", "def true_fn_0():\n    pass\n")
	require.NoError(t, err)
	p2, err := Stage("true_fn", "def true_fn_1():\n    pass\n")
	require.NoError(t, err)
	require.NotEqual(t, p1, p2)
	require.True(t, strings.HasSuffix(p1, ".gl"))

	data, err := os.ReadFile(p1)
	require.NoError(t, err)
	require.Equal(t, "def true_fn_0():\n    pass\n", string(data))

	require.NoError(t, Shutdown())
	_, err = os.Stat(d)
	require.True(t, os.IsNotExist(err), "staging dir must be removed at shutdown")

	_, err = Stage("fn", "x = 1\n")
	require.Error(t, err, "Stage must fail after Shutdown")
	require.NoError(t, Shutdown(), "Shutdown is idempotent")
}
