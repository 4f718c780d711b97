package cli

import (
	"fmt"
	"io"

	"github.com/Debmalya06/Mess-Milega-sub000/domain"
)

// TerminalNavigator renders navigation as a prompt: the terminal has no
// pages, so "go to the login page" becomes an instruction to log in.
type TerminalNavigator struct {
	Out io.Writer
}

// Navigate implements domain.Navigator
func (n *TerminalNavigator) Navigate(route string) {
	if n == nil || n.Out == nil {
		return
	}
	if route == domain.LoginRoute {
		fmt.Fprintln(n.Out, "Your session has expired. Run `messmilega login` to sign in again.")
		return
	}
	fmt.Fprintf(n.Out, "-> %s\n", route)
}
