// Package cli implements frontdeskctl, an operator tool that prints the
// front-desk reports straight from the upstream services and manages
// staff accounts.
package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/iliyamo/frontdesk/internal/booking"
	"github.com/iliyamo/frontdesk/internal/catalog"
	"github.com/iliyamo/frontdesk/internal/upstream"
)

var longHelp = `
frontdeskctl reads the reservation proxy and the housekeeping API the same
way the front-desk server does and prints the day's reports in the
terminal.  It also hashes passwords and creates staff accounts.

Connection settings default to the server's environment variables
(RESERVATIONS_URL, HOUSEKEEPING_URL, CATALOG_FILE, APP_TIMEZONE).`

var (
	heading = color.New(color.FgCyan, color.Bold)
	good    = color.New(color.FgGreen)
	bad     = color.New(color.FgRed, color.Bold)
	muted   = color.New(color.Faint)
)

type options struct {
	reservationsURL string
	housekeepingURL string
	catalogFile     string
	timezone        string
	timeout         time.Duration
	noColor         bool

	now func() time.Time
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command { return newRootCmd(time.Now) }

func newRootCmd(now func() time.Time) *cobra.Command {
	o := &options{now: now}
	root := &cobra.Command{
		Use:           "frontdeskctl",
		Short:         "Front-desk reports and staff account tools",
		Long:          longHelp,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if o.noColor {
				color.NoColor = true
			}
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true

	f := root.PersistentFlags()
	f.StringVar(&o.reservationsURL, "reservations", os.Getenv("RESERVATIONS_URL"), "reservation proxy base URL")
	f.StringVar(&o.housekeepingURL, "housekeeping", os.Getenv("HOUSEKEEPING_URL"), "housekeeping API base URL")
	f.StringVar(&o.catalogFile, "catalog", os.Getenv("CATALOG_FILE"), "room catalog YAML (default: built in)")
	f.StringVar(&o.timezone, "tz", envOr("APP_TIMEZONE", "UTC"), "hotel timezone")
	f.DurationVar(&o.timeout, "timeout", 15*time.Second, "upstream request timeout")
	f.BoolVar(&o.noColor, "no-color", false, "disable colored output")

	root.AddCommand(newTodayCmd(o), newAvailabilityCmd(o), newAccountingCmd(o), newBoardCmd(o), newUserCmd())
	return root
}

// Execute runs frontdeskctl and exits non-zero on error.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprint(os.Stderr, " ")
		bad.Fprint(os.Stderr, "ERROR")
		fmt.Fprintf(os.Stderr, ": %v\n", err)
		os.Exit(1)
	}
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func (o *options) client() (*upstream.Client, error) {
	if o.reservationsURL == "" {
		return nil, fmt.Errorf("no reservation proxy configured, set RESERVATIONS_URL or --reservations")
	}
	return upstream.New(upstream.Options{
		ReservationsURL: o.reservationsURL,
		HousekeepingURL: o.housekeepingURL,
		Timeout:         o.timeout,
	}), nil
}

func (o *options) catalog() (*catalog.Catalog, error) {
	return catalog.Load(o.catalogFile)
}

// today is the current date in the hotel's timezone.
func (o *options) today() (booking.Date, error) {
	loc, err := time.LoadLocation(o.timezone)
	if err != nil {
		return "", fmt.Errorf("timezone %q: %w", o.timezone, err)
	}
	return booking.DateOf(o.now().In(loc)), nil
}

// dateOrToday parses raw, or returns today when raw is empty.
func (o *options) dateOrToday(raw string) (booking.Date, error) {
	if raw == "" {
		return o.today()
	}
	d, ok := booking.ParseDate(raw)
	if !ok {
		return "", fmt.Errorf("invalid date %q, expected YYYY-MM-DD", raw)
	}
	return d, nil
}

func money(v float64) string { return fmt.Sprintf("%.2f", v) }

func printHeading(w io.Writer, format string, args ...any) {
	heading.Fprintf(w, format, args...)
	fmt.Fprintln(w)
}
