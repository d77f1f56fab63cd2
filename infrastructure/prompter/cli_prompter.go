// Package prompter asks the user to approve permission requests on the terminal.
package prompter

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/reglet-dev/wallet-sdk/domain/entities"
	"github.com/reglet-dev/wallet-sdk/domain/ports"
)

var _ ports.Prompter = (*CliPrompter)(nil)

// CliPrompter implements ports.Prompter for CLI environments.
type CliPrompter struct {
	in  io.Reader
	out io.Writer
}

// NewCliPrompter creates a new CliPrompter.
func NewCliPrompter(in io.Reader, out io.Writer) *CliPrompter {
	return &CliPrompter{in: in, out: out}
}

// IsInteractive checks if the input is a terminal.
func (p *CliPrompter) IsInteractive() bool {
	f, ok := p.in.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ConfirmPermissions prints a summary of params and asks whether to send the
// request. Anything other than y or yes denies.
func (p *CliPrompter) ConfirmPermissions(params *entities.IssuePermissionsParameters) (bool, error) {
	_, _ = fmt.Fprintln(p.out, "The wallet will be asked for the following permissions:")
	for _, line := range Summarize(params) {
		_, _ = fmt.Fprintf(p.out, "- %s\n", line)
	}
	_, _ = fmt.Fprintf(p.out, "Expires: %s\n", entities.ExpiryTime(params.Expiry).UTC().Format(time.RFC3339))
	_, _ = fmt.Fprint(p.out, "Send request? [y/N]: ")

	scanner := bufio.NewScanner(p.in)
	if scanner.Scan() {
		text := strings.ToLower(strings.TrimSpace(scanner.Text()))
		return text == "y" || text == "yes", nil
	}
	if err := scanner.Err(); err != nil {
		return false, err
	}
	return false, io.EOF
}

// FormatNonInteractiveError creates a helpful error.
func (p *CliPrompter) FormatNonInteractiveError(params *entities.IssuePermissionsParameters) error {
	return fmt.Errorf("refusing to request %d permission(s) without confirmation in non-interactive mode; review the parameters and rerun with --yes",
		len(params.Permissions))
}

// Summarize describes each requested permission on one line.
func Summarize(params *entities.IssuePermissionsParameters) []string {
	lines := make([]string, 0, len(params.Permissions))
	for _, perm := range params.Permissions {
		line := fmt.Sprintf("%s: %s", perm.Type, describe(perm.Data))
		if perm.IsRequired() {
			line += " (required)"
		}
		lines = append(lines, line)
	}
	return lines
}

func describe(data any) string {
	switch d := data.(type) {
	case entities.NativeTokenLimit:
		return fmt.Sprintf("up to %s wei", d.Amount)
	case entities.ERC20TokenLimit:
		return fmt.Sprintf("up to %s of token %s", d.Amount, d.Address.Hex())
	case entities.GasLimit:
		return fmt.Sprintf("up to %s gas", d.Amount)
	case entities.RateLimit:
		return fmt.Sprintf("%d call(s) every %ds", d.Count, d.Interval)
	case entities.ContractCall:
		if len(d.Calls) == 0 {
			return fmt.Sprintf("any call to %s", d.Address.Hex())
		}
		return fmt.Sprintf("%s on %s", strings.Join(d.Calls, ", "), d.Address.Hex())
	default:
		return "custom data"
	}
}
