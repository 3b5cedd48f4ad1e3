package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/me/botdash/internal/backend"
	"github.com/me/botdash/internal/schema"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const credentialsFileName = "credentials.json"

type credentials struct {
	Backend string `json:"backend"`
	Cookie  string `json:"cookie"`
}

func newLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and save the session cookie",
		Long:  "Sign in with email and password. The session cookie is saved for later commands.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				p, err := readPassword(cmd)
				if err != nil {
					return fmt.Errorf("read password: %w", err)
				}
				password = p
			}

			form := schema.ParseQuery[schema.SignInForm](url.Values{
				"email":    {email},
				"password": {password},
			})
			if err := form.Err(); err != nil {
				return err
			}

			resp, cookies, err := ld.SignIn(cmd.Context(), form.Value.Email, form.Value.Password)
			if err != nil {
				if backend.IsUnauthorized(err) {
					return fmt.Errorf("sign-in refused: invalid email or password")
				}
				return fmt.Errorf("sign in: %w", err)
			}
			if resp.User.Banned {
				return fmt.Errorf("sign-in refused: account is banned")
			}

			parts := make([]string, 0, len(cookies))
			for _, c := range cookies {
				parts = append(parts, c.Name+"="+c.Value)
			}
			if len(parts) == 0 {
				return fmt.Errorf("sign in: backend set no session cookie")
			}

			credPath, err := credentialsPath()
			if err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(credPath), 0700); err != nil {
				return fmt.Errorf("create config directory: %w", err)
			}
			data, err := json.MarshalIndent(credentials{Backend: flagBackend, Cookie: strings.Join(parts, "; ")}, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal credentials: %w", err)
			}
			if err := os.WriteFile(credPath, data, 0600); err != nil {
				return fmt.Errorf("write credentials: %w", err)
			}

			fmt.Fprintf(out(cmd), "Signed in as %s (%s)\n", resp.User.Email, resp.User.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password (read from stdin if omitted)")
	cmd.MarkFlagRequired("email")
	return cmd
}

// readPassword prompts on a terminal without echoing the input. Piped input
// is read up to the first newline.
func readPassword(cmd *cobra.Command) (string, error) {
	if f, ok := cmd.InOrStdin().(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		return string(b), err
	}
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session and forget the saved cookie",
		RunE: func(cmd *cobra.Command, args []string) error {
			if c := cookie(); c != "" {
				if _, err := ld.SignOut(cmd.Context(), c); err != nil {
					logger.Warn("sign-out call failed", "kind", backend.ErrorKind(err), "error", err)
				}
			}
			credPath, err := credentialsPath()
			if err != nil {
				return err
			}
			if err := os.Remove(credPath); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("remove credentials: %w", err)
			}
			fmt.Fprintln(out(cmd), "Signed out")
			return nil
		},
	}
}

// credentialsPath returns the path to the credentials file (~/.botdash/credentials.json).
func credentialsPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("find home directory: %w", err)
	}
	return filepath.Join(home, ".botdash", credentialsFileName), nil
}

// LoadCookie reads the saved session cookie, returning empty string if not
// found or saved for another backend.
func LoadCookie() string {
	p, err := credentialsPath()
	if err != nil {
		return ""
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return ""
	}
	var creds credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return ""
	}
	if creds.Backend != "" && creds.Backend != flagBackend {
		return ""
	}
	return creds.Cookie
}
