package mtp

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"termsweeper/board"
	"termsweeper/engine"
)

const ProtocolVersion = "1"

// Commands lists every command the server answers, in list_commands order.
var Commands = []string{
	"protocol_version",
	"name",
	"version",
	"known_command",
	"list_commands",
	"reveal",
	"flag",
	"reset",
	"save",
	"load",
	"showboard",
	"status",
	"quit",
}

// Server answers MTP commands read from in by driving eng, writing replies to out.
type Server struct {
	eng     engine.GameEngine
	in      io.Reader
	out     io.Writer
	log     logrus.FieldLogger
	Name    string
	Version string
}

type command struct {
	id   string
	name string
	args []string
}

type reply struct {
	ok   bool
	body string
	quit bool
}

// NewServer creates a server. A nil logger discards.
func NewServer(eng engine.GameEngine, in io.Reader, out io.Writer, log logrus.FieldLogger) *Server {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Server{
		eng:     eng,
		in:      in,
		out:     out,
		log:     log,
		Name:    "termsweeper",
		Version: "dev",
	}
}

// Serve reads commands until EOF, quit, or ctx is done. EOF and quit return nil.
//
// A read cannot be interrupted, so when ctx is done Serve closes the input if
// it is an io.Closer. Otherwise the reading goroutine stays blocked until the
// next line or EOF arrives.
func (s *Server) Serve(ctx context.Context) error {
	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(s.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			if c, ok := s.in.(io.Closer); ok {
				c.Close()
			}
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-readErr:
					if err != nil {
						return fmt.Errorf("read command: %w", err)
					}
				default:
				}
				return nil
			}
			cmd, ok := parseLine(line)
			if !ok {
				continue
			}
			r := s.dispatch(cmd)
			if err := s.write(cmd.id, r); err != nil {
				return fmt.Errorf("write reply: %w", err)
			}
			if r.quit {
				return nil
			}
		}
	}
}

// parseLine strips comments and splits a line into id, command name and
// arguments. Blank lines yield ok == false.
func parseLine(line string) (command, bool) {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return command{}, false
	}

	var cmd command
	if _, err := strconv.Atoi(fields[0]); err == nil {
		cmd.id = fields[0]
		fields = fields[1:]
		if len(fields) == 0 {
			return command{}, false
		}
	}
	cmd.name = strings.ToLower(fields[0])
	cmd.args = fields[1:]
	return cmd, true
}

func (s *Server) write(id string, r reply) error {
	prefix := "="
	if !r.ok {
		prefix = "?"
	}
	line := prefix + id
	if r.body != "" && !strings.HasPrefix(r.body, "\n") {
		line += " "
	}
	line += r.body
	_, err := fmt.Fprintf(s.out, "%s\n\n", line)
	return err
}

func success(body string) reply {
	return reply{ok: true, body: body}
}

func failure(format string, a ...interface{}) reply {
	return reply{body: fmt.Sprintf(format, a...)}
}

func (s *Server) dispatch(cmd command) reply {
	log := s.log.WithFields(logrus.Fields{
		"command": cmd.name,
		"args":    cmd.args,
	})
	log.Debug("mtp command")

	r := s.handle(cmd)
	if !r.ok {
		log.WithField("error", r.body).Debug("mtp error")
	}
	return r
}

func (s *Server) handle(cmd command) reply {
	switch cmd.name {
	case "protocol_version":
		return success(ProtocolVersion)

	case "name":
		return success(s.Name)

	case "version":
		return success(s.Version)

	case "list_commands":
		return success(strings.Join(Commands, "\n"))

	case "known_command":
		if len(cmd.args) != 1 {
			return failure("known_command needs a command name")
		}
		for _, c := range Commands {
			if c == strings.ToLower(cmd.args[0]) {
				return success("true")
			}
		}
		return success("false")

	case "reveal":
		x, y, err := s.vertexArg(cmd)
		if err != nil {
			return failure("%v", err)
		}
		state := s.eng.Reveal(x, y)
		s.log.WithFields(logrus.Fields{
			"vertex": PosToVertex(x, y),
			"state":  state,
		}).Debug("mtp reveal")
		return success(state.String())

	case "flag":
		x, y, err := s.vertexArg(cmd)
		if err != nil {
			return failure("%v", err)
		}
		flagged := s.eng.ToggleFlag(x, y)
		s.log.WithFields(logrus.Fields{
			"vertex":  PosToVertex(x, y),
			"flagged": flagged,
		}).Debug("mtp flag")
		if flagged {
			return success("flagged")
		}
		return success("unflagged")

	case "reset":
		s.eng.Reset()
		return success("")

	case "save":
		if len(cmd.args) != 1 {
			return failure("save needs a file path")
		}
		if err := s.eng.Save(cmd.args[0]); err != nil {
			return failure("%v", err)
		}
		return success("")

	case "load":
		if len(cmd.args) != 1 {
			return failure("load needs a file path")
		}
		if err := s.eng.Load(cmd.args[0]); err != nil {
			return failure("%v", err)
		}
		return success(s.eng.GetBoardState().State.String())

	case "showboard":
		return success("\n" + strings.TrimSuffix(board.Format(s.eng.GetBoardState()), "\n"))

	case "status":
		st := s.eng.GetBoardState()
		return success(fmt.Sprintf("state=%s elapsed=%d flags=%d mines=%d revealed=%d",
			st.State, st.ElapsedSecs, st.FlagsUsed, st.MineCount, st.RevealedCount))

	case "quit":
		return reply{ok: true, quit: true}
	}
	return failure("unknown command")
}

func (s *Server) vertexArg(cmd command) (int, int, error) {
	if len(cmd.args) != 1 {
		return 0, 0, fmt.Errorf("%s needs a vertex", cmd.name)
	}
	return VertexToPos(cmd.args[0], s.eng.GetBoardState().Width())
}
