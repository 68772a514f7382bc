package wallet

import (
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"golang.org/x/term"

	"github.com/quantumauth-io/policy-client/internal/securefile"
)

const minPasswordLen = 8

// Prompter asks the user for the wallet password.
type Prompter interface {
	Password(prompt string) ([]byte, error)
}

// TerminalPrompter reads a password from the controlling terminal without echo.
type TerminalPrompter struct {
	In  *os.File
	Out io.Writer
}

func NewTerminalPrompter() *TerminalPrompter {
	return &TerminalPrompter{In: os.Stdin, Out: os.Stderr}
}

func (p *TerminalPrompter) Password(prompt string) ([]byte, error) {
	fd := int(p.In.Fd())
	if !term.IsTerminal(fd) {
		return nil, errors.New("password prompt needs a terminal")
	}

	_, _ = fmt.Fprint(p.Out, prompt)
	pw, err := term.ReadPassword(fd)
	_, _ = fmt.Fprintln(p.Out) // best-effort newline

	if err != nil {
		securefile.ZeroBytes(pw)
		return nil, errors.Wrap(err, "password input failed")
	}
	return pw, nil
}

// ValidateNewPassword applies the rules for a password protecting a new wallet.
func ValidateNewPassword(pw []byte) error {
	if len(pw) < minPasswordLen {
		return errors.Newf("password must be at least %d characters long", minPasswordLen)
	}
	for _, b := range pw {
		if !isAllowedPasswordChar(b) {
			return errors.New("password contains invalid characters (use letters, numbers, and special characters only)")
		}
	}
	return nil
}

// printable ASCII, no spaces
func isAllowedPasswordChar(b byte) bool {
	return b > ' ' && b <= '~'
}
