package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	account "auction-house/internal/accountService"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	userEmail     string
	userFirstName string
	userLastName  string
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage users",
	Long:  "Manage user accounts for the auction site",
}

var usersAddCmd = &cobra.Command{
	Use:   "add <username>",
	Short: "Add a new user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		username := args[0]

		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		password, err := readPassword(cmd, "Enter password: ")
		if err != nil {
			return err
		}
		confirmation, err := readPassword(cmd, "Confirm password: ")
		if err != nil {
			return err
		}

		user, err := services.Accounts.Register(cmd.Context(), account.RegisterInput{
			Username:     username,
			Email:        userEmail,
			Password:     password,
			Confirmation: confirmation,
			FirstName:    userFirstName,
			LastName:     userLastName,
		})
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "User '%s' created successfully\n", user.Username)
		return nil
	},
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all users",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		users, err := services.Accounts.ListUsers(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list users: %w", err)
		}

		if len(users) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No users found")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "USERNAME\tNAME\tEMAIL\tCREATED")
		for _, u := range users {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", u.Username, u.FullName(), u.Email, u.CreatedAt.Format(time.RFC3339))
		}
		return w.Flush()
	},
}

// readPassword prompts without echo on a terminal and reads a plain line otherwise
func readPassword(cmd *cobra.Command, prompt string) (string, error) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.OutOrStdout(), prompt)
		password, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(password), nil
	}

	line, err := stdinReader(in).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

var (
	bufferedIn     *bufio.Reader
	bufferedSource io.Reader
)

// stdinReader keeps one buffered reader per input so consecutive prompts do not lose bytes
func stdinReader(in io.Reader) *bufio.Reader {
	if bufferedIn == nil || bufferedSource != in {
		bufferedIn = bufio.NewReader(in)
		bufferedSource = in
	}
	return bufferedIn
}

func init() {
	rootCmd.AddCommand(usersCmd)
	usersCmd.AddCommand(usersAddCmd)
	usersCmd.AddCommand(usersListCmd)

	usersAddCmd.Flags().StringVar(&userEmail, "email", "", "email address")
	usersAddCmd.Flags().StringVar(&userFirstName, "first-name", "", "first name")
	usersAddCmd.Flags().StringVar(&userLastName, "last-name", "", "last name")
}
