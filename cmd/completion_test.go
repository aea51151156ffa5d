package cmd

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletion(t *testing.T) {
	top := flag.NewFlagSet("psheet", flag.ContinueOnError)
	top.String("config", "perfsheet.yaml", "")
	top.String("base", "", "")
	top.Bool("pretty", false, "")

	c := Completion(top)

	assert.Len(t, c.Sub, len(Commands))
	for _, name := range []string{"holdings", "performance", "allocations", "characteristics", "run", "report", "inspect", "topic"} {
		assert.Contains(t, c.Sub, name)
	}
	assert.Contains(t, c.Flags, "pretty")
	assert.Contains(t, c.Sub["run"].Flags, "date")
	assert.Contains(t, c.Sub["run"].Flags, "asof")
	assert.Contains(t, c.Sub["report"].Flags, "raw")
	require.Contains(t, c.Sub["inspect"].Flags, "q")
	assert.NotNil(t, c.Sub["topic"].Args)
	assert.Contains(t, c.Flags, "config")
	assert.Contains(t, c.Flags, "base")
}
