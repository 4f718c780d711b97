// Package cli implements the messmilega terminal client. Each command is a
// thin view over the client SDK: it validates flags, calls one or two SDK
// operations, and prints the result.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/Debmalya06/Mess-Milega-sub000/domain"
	"github.com/Debmalya06/Mess-Milega-sub000/internal/app"
	"github.com/Debmalya06/Mess-Milega-sub000/internal/config"
	"github.com/Debmalya06/Mess-Milega-sub000/internal/realtime"
)

// Command is one subcommand of the CLI
type Command struct {
	Name    string
	Summary string
	Usage   string
	Flags   *pflag.FlagSet
	Run     func(s *Shell, args []string) error
}

// Shell is the state shared by commands during one invocation
type Shell struct {
	Ctx       context.Context
	In        io.Reader
	Out       io.Writer
	Err       io.Writer
	Container *app.Container
	// Inbox receives every chat message the channel delivers
	Inbox <-chan domain.ChatMessage
}

// ErrNotSignedIn is returned by commands that need a session when none can
// be restored
var ErrNotSignedIn = errors.New("not signed in: run `messmilega login` first")

// User restores the persisted session and returns its user
func (s *Shell) User() (*domain.User, error) {
	u := s.Container.Restore(s.Ctx)
	if u == nil {
		return nil, ErrNotSignedIn
	}
	return u, nil
}

// RequireRole is User plus a role check
func (s *Shell) RequireRole(role domain.Role) (*domain.User, error) {
	u, err := s.User()
	if err != nil {
		return nil, err
	}
	if u.Role != role {
		return nil, fmt.Errorf("this command is only available to %s accounts", role)
	}
	return u, nil
}

func (s *Shell) table() *tabwriter.Writer {
	return tabwriter.NewWriter(s.Out, 0, 4, 2, ' ', 0)
}

func (s *Shell) printf(format string, args ...any) {
	fmt.Fprintf(s.Out, format, args...)
}

// rootFlags are accepted before the command name
type rootFlags struct {
	configPath string
	apiURL     string
	socketURL  string
	tokenStore string
	tokenPath  string
}

func (r *rootFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&r.configPath, "config", "", "path to config.yml (default: $CONFIG_PATH or config/config.yml)")
	fs.StringVar(&r.apiURL, "api-url", "", "REST base URL (overrides VITE_API_URL)")
	fs.StringVar(&r.socketURL, "socket-url", "", "realtime URL (overrides VITE_SOCKET_URL)")
	fs.StringVar(&r.tokenStore, "token-store", "", "where the session token is kept: file, redis or memory")
	fs.StringVar(&r.tokenPath, "token-path", "", "token file for the file store")
}

func (r *rootFlags) load() (*config.Config, error) {
	var cfg *config.Config
	var err error
	if r.configPath != "" {
		cfg, err = config.LoadFile(r.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	override(&cfg.APIURL, r.apiURL)
	override(&cfg.SocketURL, r.socketURL)
	override(&cfg.TokenStore, r.tokenStore)
	override(&cfg.TokenPath, r.tokenPath)
	return cfg, nil
}

func override(field *string, v string) {
	if v != "" {
		*field = v
	}
}

// Run executes one invocation: global flags, a command name, then the
// command's own flags and arguments
func Run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) error {
	var root rootFlags
	fs := pflag.NewFlagSet("messmilega", pflag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.SetInterspersed(false)
	root.register(fs)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(errOut, commands())
			return nil
		}
		return err
	}

	rest := fs.Args()
	if len(rest) == 0 || rest[0] == "help" {
		printHelp(out, commands())
		return nil
	}

	cmd := lookup(commands(), rest[0])
	if cmd == nil {
		return fmt.Errorf("unknown command %q (run `messmilega help`)", rest[0])
	}
	if cmd.Flags != nil {
		cmd.Flags.SetOutput(errOut)
		if err := cmd.Flags.Parse(rest[1:]); err != nil {
			if errors.Is(err, pflag.ErrHelp) {
				return nil
			}
			return err
		}
		rest = cmd.Flags.Args()
	} else {
		rest = rest[1:]
	}

	cfg, err := root.load()
	if err != nil {
		return err
	}
	inbox := make(chan domain.ChatMessage, 64)
	container, err := app.NewContainer(cfg, &TerminalNavigator{Out: errOut},
		realtime.WithMessageHandler(func(m domain.ChatMessage) {
			select {
			case inbox <- m:
			default:
			}
		}))
	if err != nil {
		return err
	}
	defer container.Close()

	return cmd.Run(&Shell{Ctx: ctx, In: in, Out: out, Err: errOut, Container: container, Inbox: inbox}, rest)
}

func lookup(cmds []*Command, name string) *Command {
	for _, c := range cmds {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func printHelp(w io.Writer, cmds []*Command) {
	fmt.Fprintln(w, "messmilega: find and manage PG accommodation from the terminal")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage: messmilega [--config file] [--api-url url] <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, c := range cmds {
		usage := c.Usage
		if usage == "" {
			usage = c.Name
		}
		fmt.Fprintf(tw, "  %s\t%s\n", usage, c.Summary)
	}
	_ = tw.Flush()
}

// exactArgs checks the positional argument count
func exactArgs(cmd string, args []string, n int, names ...string) error {
	if len(args) != n {
		return fmt.Errorf("%w: usage: messmilega %s %s", domain.ErrInvalidInput, cmd, strings.Join(names, " "))
	}
	return nil
}
