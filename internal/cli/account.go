package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ghaggin/tourpal/internal/api"
	"github.com/ghaggin/tourpal/internal/auth"
	"github.com/ghaggin/tourpal/internal/service"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func Login(out io.Writer, newLogger loggerFunc) *cobra.Command {
	var (
		email      string
		password   string
		rememberMe bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "sign in and remember the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				fmt.Fprint(out, "Password: ")
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && err != io.EOF {
					return errors.Wrap(err, "failed to read password")
				}
				password = strings.TrimRight(line, "\r\n")
			}

			e, err := newEnv(cmd.Context(), out, newLogger)
			if err != nil {
				return err
			}
			defer e.Close()

			user, token, err := e.auth.Login(cmd.Context(), strings.TrimSpace(email), password, rememberMe)
			if err != nil {
				var authErr *auth.Error
				if errors.As(err, &authErr) && authErr.EmailNotConfirmed() {
					fmt.Fprintln(out, "Check your inbox for the confirmation link before signing in.")
				}
				return err
			}

			if err := e.sessions.Login(cmd.Context(), user, token); err != nil {
				return errors.Wrap(err, "failed to save session")
			}

			fmt.Fprintf(out, "Signed in as %s (%s)\n", user.FullName, user.UserType)
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password, read from stdin when empty")
	cmd.Flags().BoolVar(&rememberMe, "remember-me", false, "ask for a long lived token")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func Logout(out io.Writer, newLogger loggerFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "forget the saved session",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd.Context(), out, newLogger)
			if err != nil {
				return err
			}
			defer e.Close()

			if err := e.sessions.Logout(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintln(out, "Signed out.")
			return nil
		},
	}

	return cmd
}

func Whoami(out io.Writer, newLogger loggerFunc) *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "show the saved session",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd.Context(), out, newLogger)
			if err != nil {
				return err
			}
			defer e.Close()

			snap := e.sessions.Snapshot()
			if !snap.IsAuthenticated() || snap.User == nil {
				fmt.Fprintln(out, "Not signed in.")
				return nil
			}

			if check {
				if _, err := service.NewUsers(e.client).Profile(cmd.Context()); err != nil {
					if errors.Is(err, api.ErrSessionExpired) {
						return nil
					}
					return err
				}
			}

			fmt.Fprintf(out, "%s <%s>\nrole: %s\n", snap.User.FullName, snap.User.Email, snap.User.UserType)
			if exp, ok := e.sessions.ExpiresAt(); ok {
				fmt.Fprintf(out, "expires: %s\n", exp.Local().Format(time.RFC1123))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "ask the api whether the session is still valid")

	return cmd
}
