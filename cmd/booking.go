package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"findyourseat/models"
	"findyourseat/services"
)

func (c *cli) bookCmd() *cobra.Command {
	var (
		seats    []string
		place    string
		date     string
		showtime string
		title    string
	)
	cmd := &cobra.Command{
		Use:   "book <movie-id>",
		Short: "Book seats for a movie",
		Long: "Book seats for a movie.\n\nPlaces: " + strings.Join(services.Places, ", ") +
			"\nShowtimes: " + strings.Join(services.Showtimes, ", "),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sel := c.app.NewSelection(args[0])
			for _, s := range seats {
				s = strings.ToUpper(strings.TrimSpace(s))
				if !c.app.layout.Has(s) {
					return fmt.Errorf("%s: %w", s, services.ErrUnknownSeat)
				}
				if sel.IsSelected(s) {
					continue
				}
				sel.Toggle(s)
			}
			if place != "" {
				if err := sel.SetPlace(place); err != nil {
					return err
				}
			}
			if date != "" {
				if err := sel.SetDate(date); err != nil {
					return err
				}
			}
			if showtime != "" {
				if err := sel.SetTime(showtime); err != nil {
					return err
				}
			}
			if title != "" {
				sel.SetMovieTitle(title)
			}

			rec, err := sel.SubmitBooking(cmd.Context())
			if err != nil {
				return err
			}

			color.New(color.FgGreen, color.Bold).Fprintln(cmd.OutOrStdout(), "Booking confirmed!")
			printBooking(cmd.OutOrStdout(), rec)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringSliceVar(&seats, "seats", nil, "seats to book, e.g. A1,A2")
	f.StringVar(&place, "place", "", "cinema")
	f.StringVar(&date, "date", "", "show date ("+services.DateLayout+")")
	f.StringVar(&showtime, "time", "", "showtime, e.g. \"4:00 PM\"")
	f.StringVar(&title, "title", "", "movie title (defaults to the last viewed movie)")
	return cmd
}

func printBooking(w io.Writer, rec *models.BookingRecord) {
	fmt.Fprintf(w, "Booking ID:   %s\n", rec.BookingID)
	fmt.Fprintf(w, "Movie:        %s\n", rec.MovieTitle)
	fmt.Fprintf(w, "Seats:        %s\n", strings.Join(rec.Seats, ", "))
	fmt.Fprintf(w, "Date:         %s\n", services.FormatShortDate(rec.Date))
	fmt.Fprintf(w, "Time:         %s\n", rec.Timing)
	fmt.Fprintf(w, "Place:        %s\n", rec.Place)
	fmt.Fprintf(w, "Total Amount: %s\n", services.FormatAmount(rec.TotalAmount))
}

func (c *cli) bookingCmd() *cobra.Command {
	var forget bool
	cmd := &cobra.Command{
		Use:   "booking",
		Short: "Show the last confirmed booking",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if forget {
				if err := c.app.bookings.Clear(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Booking cleared")
				return nil
			}

			rec, err := c.app.bookings.Load(cmd.Context())
			if errors.Is(err, services.ErrNoBooking) {
				out := cmd.OutOrStdout()
				color.New(color.FgYellow).Fprintln(out, "No Booking Found")
				fmt.Fprintln(out, "Please start a new booking process with `findyourseat book`.")
				return nil
			}
			if err != nil {
				return err
			}
			printBooking(cmd.OutOrStdout(), rec)
			return nil
		},
	}
	cmd.Flags().BoolVar(&forget, "clear", false, "forget the stored booking")
	return cmd
}

func (c *cli) payCmd() *cobra.Command {
	var (
		method string
		form   models.PaymentForm
		upiApp string
	)
	cmd := &cobra.Command{
		Use:   "pay",
		Short: "Pay for the last confirmed booking",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			form.Method = models.PaymentMethod(strings.ToLower(method))
			form.UPIApp = models.UPIApp(strings.ToLower(upiApp))

			receipt, err := c.app.payments.Pay(cmd.Context(), form, nil)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			color.New(color.FgGreen, color.Bold).Fprintln(out, "Payment successful")
			fmt.Fprintf(out, "Reference:  %s\n", receipt.Reference)
			fmt.Fprintf(out, "Booking ID: %s\n", receipt.BookingID)
			fmt.Fprintf(out, "Amount:     INR %s\n", receipt.Amount.StringFixed(2))
			fmt.Fprintln(out, "Download your ticket with `findyourseat ticket`.")
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&method, "method", string(models.PaymentMethodCard), "card or upi")
	f.StringVar(&form.CardNumber, "card", "", "card number")
	f.StringVar(&upiApp, "upi-app", "", "gpay, phonepe or paytm")
	f.StringVar(&form.UPIID, "upi-id", "", "UPI ID, e.g. name@bank")
	return cmd
}

func (c *cli) ticketCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "ticket",
		Short: "Export the last confirmed booking as a PDF ticket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dir == "" {
				dir = c.cfg.TicketDir
			}
			path, t, err := c.app.tickets.ExportToDir(cmd.Context(), nil, dir)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			color.New(color.FgGreen).Fprintf(out, "Ticket saved to %s\n", path)
			fmt.Fprintf(out, "%s, %s - %s\n", t.MovieTitle, t.FormattedDate, t.Timing)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "output directory (overrides TICKET_DIR)")
	return cmd
}

func (c *cli) invoiceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invoice",
		Short: "Generate or fetch invoices",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "generate",
		Short: "Generate an invoice for the last confirmed booking",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := c.app.invoices.Generate(cmd.Context(), nil)
			if err != nil {
				return err
			}
			if resp.Message != "" {
				color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), resp.Message)
			}
			if resp.Invoice != nil {
				printInvoice(cmd.OutOrStdout(), resp.Invoice)
			}
			return nil
		},
	}, &cobra.Command{
		Use:   "get <invoice-id>",
		Short: "Fetch an invoice by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := c.app.invoices.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printInvoice(cmd.OutOrStdout(), inv)
			return nil
		},
	})
	return cmd
}

func printInvoice(w io.Writer, inv *models.Invoice) {
	fmt.Fprintf(w, "Invoice ID:   %s\n", inv.ID)
	if inv.BookingID != "" {
		fmt.Fprintf(w, "Booking ID:   %s\n", inv.BookingID)
	}
	if inv.MovieName != "" {
		fmt.Fprintf(w, "Movie:        %s\n", inv.MovieName)
	}
	if len(inv.Seats) > 0 {
		fmt.Fprintf(w, "Seats:        %s\n", strings.Join(inv.Seats, ", "))
	}
	fmt.Fprintf(w, "Total Amount: %s\n", services.FormatAmount(inv.TotalAmount))
}
