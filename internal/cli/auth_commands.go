package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/Debmalya06/Mess-Milega-sub000/domain"
)

// PasswordEnv is read when --password is not given
const PasswordEnv = "MESSMILEGA_PASSWORD"

func commands() []*Command {
	return []*Command{
		loginCommand(),
		logoutCommand(),
		whoamiCommand(),
		registerCommand(),
		verifyCommand(),
		resendCommand(),
		searchCommand(),
		propertyCommand(),
		addPropertyCommand(),
		myPropertiesCommand(),
		bookCommand(),
		bookingsCommand(),
		decideCommand(),
		dashboardCommand(),
		inquireCommand(),
		inquiriesCommand(),
		chatCommand(),
	}
}

// readPassword takes the flag, then the environment, then one line of input
func readPassword(s *Shell, flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if v := os.Getenv(PasswordEnv); v != "" {
		return v, nil
	}
	fmt.Fprint(s.Err, "Password: ")
	line, err := bufio.NewReader(s.In).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func resultError(r domain.Result) error {
	if r.Success {
		return nil
	}
	return errors.New(r.Error)
}

func loginCommand() *Command {
	var email, password string
	fs := pflag.NewFlagSet("login", pflag.ContinueOnError)
	fs.StringVarP(&email, "email", "e", "", "account email")
	fs.StringVarP(&password, "password", "p", "", "password (default: $"+PasswordEnv+" or prompt)")
	return &Command{
		Name:    "login",
		Summary: "sign in and remember the session",
		Flags:   fs,
		Run: func(s *Shell, args []string) error {
			if email == "" {
				return fmt.Errorf("%w: --email is required", domain.ErrInvalidInput)
			}
			pw, err := readPassword(s, password)
			if err != nil {
				return err
			}
			if err := resultError(s.Container.Session.Login(s.Ctx, email, pw)); err != nil {
				return err
			}
			u := s.Container.Session.User()
			s.printf("Signed in as %s (%s)\n", u.FullName, u.Role)
			return nil
		},
	}
}

func logoutCommand() *Command {
	return &Command{
		Name:    "logout",
		Summary: "forget the stored session",
		Run: func(s *Shell, args []string) error {
			s.Container.Session.Logout(s.Ctx)
			s.printf("Signed out\n")
			return nil
		},
	}
}

func whoamiCommand() *Command {
	return &Command{
		Name:    "whoami",
		Summary: "show the signed-in account",
		Run: func(s *Shell, args []string) error {
			u, err := s.User()
			if err != nil {
				return err
			}
			tw := s.table()
			fmt.Fprintf(tw, "ID\t%d\n", u.ID)
			fmt.Fprintf(tw, "Name\t%s\n", u.FullName)
			fmt.Fprintf(tw, "Email\t%s\n", u.Email)
			fmt.Fprintf(tw, "Role\t%s\n", u.Role)
			return tw.Flush()
		},
	}
}

func registerCommand() *Command {
	var form domain.RegisterForm
	fs := pflag.NewFlagSet("register", pflag.ContinueOnError)
	fs.StringVar(&form.Name, "name", "", "full name")
	fs.StringVarP(&form.Email, "email", "e", "", "email address")
	fs.StringVar(&form.Phone, "phone", "", "phone number")
	fs.StringVarP(&form.Password, "password", "p", "", "password (default: $"+PasswordEnv+" or prompt)")
	fs.StringVar(&form.Role, "role", "student", "owner to list properties, student to find rooms")
	return &Command{
		Name:    "register",
		Summary: "create an account; a verification code is sent by email",
		Flags:   fs,
		Run: func(s *Shell, args []string) error {
			pw, err := readPassword(s, form.Password)
			if err != nil {
				return err
			}
			form.Password = pw
			if err := form.ValidatePassword(); err != nil {
				return err
			}
			r := s.Container.Session.Register(s.Ctx, form)
			if err := resultError(r); err != nil {
				return err
			}
			s.printf("%s\n", r.Message)
			s.printf("Run `messmilega verify --email %s --otp <code>` to finish.\n", r.Email)
			return nil
		},
	}
}

func verifyCommand() *Command {
	var email, code string
	fs := pflag.NewFlagSet("verify", pflag.ContinueOnError)
	fs.StringVarP(&email, "email", "e", "", "email used to register")
	fs.StringVar(&code, "otp", "", "verification code")
	return &Command{
		Name:    "verify",
		Summary: "confirm an email with its verification code",
		Flags:   fs,
		Run: func(s *Shell, args []string) error {
			r := s.Container.Session.VerifyOTP(s.Ctx, email, code)
			if err := resultError(r); err != nil {
				return err
			}
			s.printf("%s\n", r.Message)
			return nil
		},
	}
}

func resendCommand() *Command {
	var email string
	fs := pflag.NewFlagSet("resend", pflag.ContinueOnError)
	fs.StringVarP(&email, "email", "e", "", "email used to register")
	return &Command{
		Name:    "resend",
		Summary: "send a new verification code",
		Flags:   fs,
		Run: func(s *Shell, args []string) error {
			r := s.Container.Session.ResendOTP(s.Ctx, email)
			if err := resultError(r); err != nil {
				return err
			}
			s.printf("%s\n", r.Message)
			return nil
		},
	}
}
