package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/perfsheet"
	"github.com/google/subcommands"
)

type inspectCmd struct {
	runFlags
	query string
}

func (*inspectCmd) Name() string     { return "inspect" }
func (*inspectCmd) Synopsis() string { return "query the extracted figures with a JSONPath expression" }
func (*inspectCmd) Usage() string {
	return `psheet inspect [-date <day>] [-asof] [-q <jsonpath>]

  Runs every stage without writing any workbook and prints the part of the
  extracted report selected by the JSONPath expression, for instance:

    psheet inspect -q '$.countryWeights[?(@.country == "Japan")].weight'
`
}

func (c *inspectCmd) SetFlags(f *flag.FlagSet) {
	c.runFlags.SetFlags(f)
	f.StringVar(&c.query, "q", "$", "JSONPath expression evaluated on the report.")
}

func (c *inspectCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, status := c.start()
	if p == nil {
		return status
	}
	p.dryRun = true
	failed := p.runAll(ctx, os.Stderr)

	v, err := query(&p.report, c.query)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error evaluating %q: %v\n", c.query, err)
		return subcommands.ExitUsageError
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding result: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println(string(out))
	if failed > 0 {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// query evaluates the JSONPath expression path on the JSON form of r.
func query(r *perfsheet.Report, path string) (any, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	var obj any
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, err
	}
	return jsonpath.Get(path, obj)
}
