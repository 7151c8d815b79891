package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/hoodviz/hoodviz/robinhood"
)

// loginCmd exchanges credentials for a session usable by the other commands.
type loginCmd struct {
	mfa string
}

func (*loginCmd) Name() string     { return "login" }
func (*loginCmd) Synopsis() string { return "log in to Robinhood and store the session" }
func (*loginCmd) Usage() string {
	return `hv login [-mfa <code>]

  Logs in to Robinhood with the ROBINHOOD_USERNAME and ROBINHOOD_PASSWORD
  environment variables and stores the session for the other commands.
  Accounts with two-factor enabled must pass the one-time code with -mfa.
`
}

func (c *loginCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.mfa, "mfa", "", "one-time code for accounts with two-factor enabled")
}

func (c *loginCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	creds := robinhood.Credentials{
		Username: os.Getenv("ROBINHOOD_USERNAME"),
		Password: os.Getenv("ROBINHOOD_PASSWORD"),
		MFA:      c.mfa,
	}
	if creds.Username == "" || creds.Password == "" {
		fmt.Fprintln(os.Stderr, "Error: set ROBINHOOD_USERNAME and ROBINHOOD_PASSWORD first.")
		return subcommands.ExitUsageError
	}

	headers, err := robinhood.Login(creds)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := robinhood.SaveSession(headers); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Println("✅ Robinhood session stored.")
	return subcommands.ExitSuccess
}

// logoutCmd discards the stored session.
type logoutCmd struct{}

func (*logoutCmd) Name() string           { return "logout" }
func (*logoutCmd) Synopsis() string       { return "discard the stored Robinhood session" }
func (*logoutCmd) Usage() string          { return "hv logout\n" }
func (*logoutCmd) SetFlags(*flag.FlagSet) {}

func (c *logoutCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := robinhood.Logout(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println("Logged out.")
	return subcommands.ExitSuccess
}
