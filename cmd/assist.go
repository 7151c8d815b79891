package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"google.golang.org/genai"

	"github.com/hoodviz/hoodviz"
	"github.com/hoodviz/hoodviz/report"
)

const assistModel = "gemini-2.5-pro"

const assistInstruction = `You are a cautious portfolio analyst.
Given the holdings summary below, comment on the allocation, the
concentration and anything unusual. Be concrete and short. You are not a
financial adviser and must not give buy or sell recommendations.`

// assistCmd asks Gemini to comment on the current allocation.
type assistCmd struct {
	refresh bool
}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "ask the AI assistant to comment on the portfolio" }
func (*assistCmd) Usage() string {
	return `hv assist [question...]

  Sends the holdings summary to Gemini and prints its commentary.
  An optional question focuses the answer.
`
}

func (c *assistCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.refresh, "refresh", false, "ignore the cached snapshot and refetch from the brokerage")
}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	snap, _, err := loadSnapshot(c.refresh)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	summary := report.Summary(snap, hoodviz.Enrich(snap), hoodviz.Diversify(snap))

	prompt := assistInstruction + "\n\n" + summary
	if f.NArg() > 0 {
		prompt += "\n\nQuestion: " + strings.Join(f.Args(), " ")
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	resp, err := client.Models.GenerateContent(ctx, assistModel, genai.Text(prompt), nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error querying Gemini:", err)
		return subcommands.ExitFailure
	}

	printMarkdown(resp.Text())
	return subcommands.ExitSuccess
}
