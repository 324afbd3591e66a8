package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// newLoginCmd autentica contra el API y deja el token en disco. La clave se
// pide sin eco; con --password se acepta por flag para scripts.
func newLoginCmd(deps *Deps) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login <email>",
		Short: "Inicia sesión contra el servidor de inventario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			email := args[0]
			if password == "" {
				var err error
				password, err = readPassword("Contraseña: ")
				if err != nil {
					return err
				}
			}
			if err := deps.Auth.Login(cmd.Context(), email, password); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Sesión iniciada como %s\n", email)
			return nil
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "contraseña (si se omite se pide por consola)")
	return cmd
}

func newLogoutCmd(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Cierra la sesión local",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return deps.Auth.Logout()
		},
	}
}

func newSessionCmd(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "sesion",
		Short: "Muestra la sesión vigente",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			email, err := deps.Auth.Session()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), email)
			return nil
		},
	}
}

// readPassword lee sin eco cuando stdin es una terminal; si está
// redirigido (pipes, tests) cae a lectura de línea normal.
func readPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
