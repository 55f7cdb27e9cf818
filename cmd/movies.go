package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"findyourseat/services"
)

func (c *cli) moviesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "movies",
		Short: "List all movies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp := c.app.gateway.GetAllMovies(cmd.Context())
			if resp == nil {
				return errors.New("unable to load movies")
			}

			out := cmd.OutOrStdout()
			if len(resp.Movies) == 0 {
				fmt.Fprintln(out, "No movies found")
				return nil
			}
			for _, m := range resp.Movies {
				title := m.Title
				if m.Featured {
					title += color.YellowString(" *")
				}
				fmt.Fprintf(out, "%-26s %s\n", m.ID, title)
			}
			return nil
		},
	}
}

func (c *cli) movieCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "movie <id>",
		Short: "Show a movie and remember it for booking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := c.app.session.ViewMovie(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			color.New(color.Bold).Fprintln(out, m.Title)
			if m.ReleaseDate != "" {
				fmt.Fprintf(out, "Release: %s\n", services.FormatShortDate(m.ReleaseDate))
			}
			if len(m.Actors) > 0 {
				fmt.Fprintf(out, "Cast: %s\n", strings.Join(m.Actors, ", "))
			}
			if m.Description != "" {
				fmt.Fprintln(out, m.Description)
			}
			return nil
		},
	}
}

func (c *cli) seatsCmd() *cobra.Command {
	var selected []string
	cmd := &cobra.Command{
		Use:   "seats",
		Short: "Show the seat layout with prices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sel := c.app.NewSelection("")
			for _, s := range selected {
				if !c.app.layout.Has(s) {
					return fmt.Errorf("%s: %w", s, services.ErrUnknownSeat)
				}
				sel.Toggle(s)
			}
			printLayout(cmd.OutOrStdout(), sel)
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&selected, "select", nil, "preview a selection, e.g. A1,A2")
	return cmd
}

var categoryColors = []*color.Color{
	color.New(color.FgCyan),
	color.New(color.FgYellow),
	color.New(color.FgMagenta),
}

// printLayout draws the seat grid row by row. Selected seats are green.
func printLayout(w io.Writer, sel *services.SeatSelection) {
	picked := color.New(color.FgGreen, color.Bold)

	category := ""
	for _, row := range sel.Layout().Rows() {
		if row.Category != category {
			category = row.Category
			fmt.Fprintf(w, "\n%s - %s\n", strings.ToUpper(category), services.FormatAmount(row.Price))
		}

		c := categoryColors[categoryIndex(sel.Layout(), category)%len(categoryColors)]
		fmt.Fprintf(w, "%-2s ", row.Label)
		for _, seat := range row.Seats {
			cell := fmt.Sprintf("%-4s", seat)
			if sel.IsSelected(seat) {
				picked.Fprint(w, cell)
			} else {
				c.Fprint(w, cell)
			}
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "\n        SCREEN THIS WAY")
	if seats := sel.Seats(); len(seats) > 0 {
		fmt.Fprintf(w, "\nSelected: %s\n", strings.Join(seats, ", "))
		fmt.Fprintf(w, "Total: %s\n", services.FormatAmount(sel.TotalAmount()))
	}
}

func categoryIndex(l *services.SeatLayout, name string) int {
	for i, cat := range l.Categories() {
		if cat.Name == name {
			return i
		}
	}
	return 0
}
