package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/iliyamo/frontdesk/internal/booking"
	"github.com/iliyamo/frontdesk/internal/catalog"
	"github.com/iliyamo/frontdesk/internal/housekeeping"
)

func newTodayCmd(o *options) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "today",
		Short: "Print arrivals, departures and in-house guests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := o.dateOrToday(date)
			if err != nil {
				return err
			}
			cat, list, err := o.snapshot(cmd)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			printHeading(w, "Front desk for %s", ref)
			for _, s := range []struct {
				title  string
				bucket booking.Bucket
			}{
				{"Arrivals", booking.BucketArrivals},
				{"Departures", booking.BucketDepartures},
				{"In house", booking.BucketInHouse},
			} {
				rows := booking.SortByArrivalDesc(booking.FilterByBucket(list, s.bucket, ref))
				fmt.Fprintln(w)
				printHeading(w, "%s (%d)", s.title, len(rows))
				printBookings(w, cat, rows)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "report date, YYYY-MM-DD (default: today)")
	return cmd
}

func newAvailabilityCmd(o *options) *cobra.Command {
	var in, out string
	cmd := &cobra.Command{
		Use:   "availability",
		Short: "List free and taken units for a stay",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			start, _ := booking.ParseDate(in)
			end, _ := booking.ParseDate(out)
			if err := booking.ValidateRange(start, end); err != nil {
				return err
			}
			cat, list, err := o.snapshot(cmd)
			if err != nil {
				return err
			}
			units := cat.Units()
			free := booking.ScanAvailability(list, catalog.Keys(units), start, end)
			count := 0
			for _, ok := range free {
				if ok {
					count++
				}
			}

			w := cmd.OutOrStdout()
			nights := booking.Booking{Arrival: start, Departure: end}.Nights()
			printHeading(w, "%s to %s, %d night(s): %d of %d units free", start, end, nights, count, len(units))
			tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ROOM\tTYPE\tSTATE")
			for i, u := range units {
				state := bad.Sprint("taken")
				if free[i] {
					state = good.Sprint("free")
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", u.Number, u.RoomName, state)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&in, "in", "", "check-in date, YYYY-MM-DD")
	cmd.Flags().StringVar(&out, "out", "", "check-out date, YYYY-MM-DD")
	_ = cmd.MarkFlagRequired("in")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func newAccountingCmd(o *options) *cobra.Command {
	var month string
	cmd := &cobra.Command{
		Use:   "accounting",
		Short: "Summarize a month's revenue, payments and balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			first, err := o.month(month)
			if err != nil {
				return err
			}
			from := booking.DateOf(first)
			to := booking.DateOf(first.AddDate(0, 1, -1))
			cat, list, err := o.snapshot(cmd)
			if err != nil {
				return err
			}
			inMonth := booking.ArrivalsBetween(list, from, to)
			t := booking.Rollup(inMonth)
			p := booking.ByPaymentStatus(inMonth)

			w := cmd.OutOrStdout()
			printHeading(w, "Accounting for %s", first.Format("January 2006"))
			tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "Bookings\t%d\n", t.Count)
			fmt.Fprintf(tw, "Revenue\t%s\n", money(t.TotalRevenue))
			fmt.Fprintf(tw, "Paid\t%s\n", money(t.TotalPaid))
			fmt.Fprintf(tw, "Due\t%s\n", bad.Sprint(money(t.TotalDue)))
			fmt.Fprintf(tw, "Fully paid / partial / unpaid\t%d / %d / %d\n", len(p.FullyPaid), len(p.PartiallyPaid), len(p.Unpaid))
			if err := tw.Flush(); err != nil {
				return err
			}

			fmt.Fprintln(w)
			printHeading(w, "Daily arrivals")
			tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
			for _, d := range booking.DailyArrivals(inMonth, from, to) {
				fmt.Fprintf(tw, "%s\t%d\t%s\n", d.Date, d.Count, money(d.Revenue))
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			owing := booking.Outstanding(inMonth)
			fmt.Fprintln(w)
			printHeading(w, "Outstanding (%d)", len(owing))
			printBookings(w, cat, owing)
			return nil
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "month, YYYY-MM (default: current month)")
	return cmd
}

func newBoardCmd(o *options) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Print the housekeeping board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := o.dateOrToday(date)
			if err != nil {
				return err
			}
			cat, list, err := o.snapshot(cmd)
			if err != nil {
				return err
			}
			c, err := o.client()
			if err != nil {
				return err
			}
			stored := housekeeping.StatusMap{}
			if o.housekeepingURL != "" {
				stored = c.FetchRoomStatus(cmd.Context())
			}
			board := housekeeping.BuildBoard(cat.Units(), list, stored, ref)

			w := cmd.OutOrStdout()
			printHeading(w, "Housekeeping for %s", ref)
			tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ROOM\tSTATUS\tGUEST")
			for _, u := range board.Units {
				guest := muted.Sprint("-")
				if u.Booking != nil {
					guest = u.Booking.GuestName()
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", u.Number, u.Label, guest)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintln(w)
			for _, s := range board.Summary {
				if s.Count > 0 {
					fmt.Fprintf(w, "%s: %d\n", s.Label, s.Count)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "board date, YYYY-MM-DD (default: today)")
	return cmd
}

// snapshot loads the catalog and a fresh booking list.
func (o *options) snapshot(cmd *cobra.Command) (*catalog.Catalog, []booking.Booking, error) {
	cat, err := o.catalog()
	if err != nil {
		return nil, nil, err
	}
	c, err := o.client()
	if err != nil {
		return nil, nil, err
	}
	list, err := c.FetchBookings(cmd.Context())
	if err != nil {
		return nil, nil, err
	}
	return cat, list, nil
}

// month returns the first day of raw (YYYY-MM), or of the current month.
func (o *options) month(raw string) (time.Time, error) {
	if raw == "" {
		today, err := o.today()
		if err != nil {
			return time.Time{}, err
		}
		raw = string(today)[:7]
	}
	t, err := time.Parse("2006-01", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q, expected YYYY-MM", raw)
	}
	return t, nil
}

func printBookings(w io.Writer, cat *catalog.Catalog, list []booking.Booking) {
	if len(list) == 0 {
		muted.Fprintln(w, "  none")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tROOM\tGUEST\tARRIVAL\tDEPARTURE\tNIGHTS\tDUE")
	for _, b := range list {
		due := money(b.Due())
		if b.Due() > 0 {
			due = bad.Sprint(due)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%d\t%s\n",
			b.ID, cat.RoomNumber(b.RoomID, b.UnitID), b.GuestName(), b.Arrival, b.Departure, b.Nights(), due)
	}
	_ = tw.Flush()
}
