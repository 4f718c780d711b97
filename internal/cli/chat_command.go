package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/Debmalya06/Mess-Milega-sub000/domain"
	"github.com/Debmalya06/Mess-Milega-sub000/internal/realtime"
)

// echoWait bounds how long chat waits for the server to echo messages sent
// just before input ended
const echoWait = 3 * time.Second

func chatCommand() *Command {
	var to uint
	fs := pflag.NewFlagSet("chat", pflag.ContinueOnError)
	fs.UintVar(&to, "to", 0, "user id to chat with")
	return &Command{
		Name:    "chat",
		Summary: "chat with another user; one line per message, /online lists who is connected",
		Flags:   fs,
		Run: func(s *Shell, args []string) error {
			if to == 0 {
				return fmt.Errorf("%w: --to is required", domain.ErrInvalidInput)
			}
			me, err := s.User()
			if err != nil {
				return err
			}
			s.Container.Connect()
			if s.Container.Channel.State() != realtime.StateOpen {
				return errors.New("could not connect to chat")
			}
			s.printf("Chatting with user %d. Ctrl-D to leave.\n", to)
			return s.chat(me.ID, to)
		},
	}
}

func (s *Shell) chat(me, peer uint) error {
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(s.In)
		for sc.Scan() {
			lines <- sc.Text()
		}
	}()

	pending := 0
	var deadline <-chan time.Time
	for {
		select {
		case <-s.Ctx.Done():
			return nil
		case <-deadline:
			return nil
		case m := <-s.Inbox:
			if m.SenderID == me && m.ReceiverID == peer {
				s.printf("me: %s\n", m.Message)
				if pending > 0 {
					pending--
				}
			} else if m.SenderID == peer {
				s.printf("user %d: %s\n", peer, m.Message)
			}
			if lines == nil && pending == 0 {
				return nil
			}
		case line, ok := <-lines:
			if !ok {
				lines = nil
				if pending == 0 {
					return nil
				}
				deadline = time.After(echoWait)
				continue
			}
			line = strings.TrimSpace(line)
			switch {
			case line == "":
			case line == "/online":
				s.printf("online: %v\n", s.Container.Channel.OnlineUsers())
			default:
				if err := s.Container.Channel.Send(s.Ctx, peer, line); err != nil {
					return err
				}
				pending++
			}
		}
	}
}
