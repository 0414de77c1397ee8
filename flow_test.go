package flow_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flowlang/flow"
)

// The public constructors must report the caller's own source line, not
// a line inside flow.go — otherwise every diagnostic a consumer of this
// module sees points into the library instead of their own code.
func TestConstructorLocReportsCallerSite(t *testing.T) {
	t.Parallel()

	con := flow.Con(1)
	got := con.Loc().String()

	require.True(t, strings.Contains(got, "flow_test.go"),
		"expected Loc to point at this test file, got %q", got)
}

func TestSugarConstructorLocReportsCallerSite(t *testing.T) {
	t.Parallel()

	add := flow.Add(flow.Con(1), flow.Con(2))
	got := add.Loc().String()

	require.True(t, strings.Contains(got, "flow_test.go"),
		"expected Loc to point at this test file, got %q", got)
}
