package cmd

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"findyourseat/models"
)

func credentialFlags(cmd *cobra.Command, creds *models.Credentials, withName bool) {
	if withName {
		cmd.Flags().StringVar(&creds.Name, "name", "", "your name")
	}
	cmd.Flags().StringVar(&creds.Email, "email", "", "email address")
	cmd.Flags().StringVar(&creds.Password, "password", "", "password")
}

func requireCredentials(creds models.Credentials, withName bool) error {
	if creds.Email == "" || creds.Password == "" || (withName && creds.Name == "") {
		return errors.New("all fields are required")
	}
	return nil
}

func (c *cli) signupCmd() *cobra.Command {
	var creds models.Credentials
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and log in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.authenticate(cmd, creds, true)
		},
	}
	credentialFlags(cmd, &creds, true)
	return cmd
}

func (c *cli) loginCmd() *cobra.Command {
	var creds models.Credentials
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with email and password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.authenticate(cmd, creds, false)
		},
	}
	credentialFlags(cmd, &creds, false)
	return cmd
}

func (c *cli) authenticate(cmd *cobra.Command, creds models.Credentials, signup bool) error {
	if err := requireCredentials(creds, signup); err != nil {
		return err
	}
	if !signup {
		creds.Name = ""
	}

	user, err := c.app.session.Authenticate(cmd.Context(), creds, signup)
	if err != nil {
		return err
	}

	name := user.Name
	if name == "" {
		name = creds.Email
	}
	color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", name)
	fmt.Fprintf(cmd.OutOrStdout(), "User ID: %s\n", user.ID)
	return nil
}

func (c *cli) adminLoginCmd() *cobra.Command {
	var creds models.Credentials
	cmd := &cobra.Command{
		Use:   "admin-login",
		Short: "Authenticate against the admin endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireCredentials(creds, false); err != nil {
				return err
			}
			resp, err := c.app.session.AdminLogin(cmd.Context(), creds)
			if err != nil {
				return err
			}
			msg := resp.Message
			if msg == "" {
				msg = "Admin authenticated"
			}
			color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}
	credentialFlags(cmd, &creds, false)
	return cmd
}

func (c *cli) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the logged in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.app.session.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func (c *cli) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := c.app.session.Current(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !sess.LoggedIn() {
				fmt.Fprintln(out, "Not logged in")
			} else {
				fmt.Fprintf(out, "User ID: %s\n", sess.UserID)
			}
			if sess.MovieTitle != "" {
				fmt.Fprintf(out, "Last viewed movie: %s\n", sess.MovieTitle)
			}
			return nil
		},
	}
}
