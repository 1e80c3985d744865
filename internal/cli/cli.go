// Package cli is the interactive terminal client: the pages of the travel
// app as readline commands over one persisted session.
package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/chzyer/readline"
	"go.uber.org/zap"

	"github.com/cairogo-gateway/internal/pkg/errors"
	"github.com/cairogo-gateway/internal/session"
	"github.com/cairogo-gateway/internal/usecase"
	"github.com/cairogo-gateway/internal/usecase/dto"
)

// ErrExit is returned by Execute when the user asks to quit.
var ErrExit = stderrors.New("exit requested")

// Deps - use cases behind the commands
type Deps struct {
	Auth            *usecase.AuthUseCase
	Profile         *usecase.ProfileUseCase
	Catalog         *usecase.CatalogUseCase
	Recommendations *usecase.RecommendationUseCase
	Favorites       *usecase.FavoriteUseCase
	Preferences     *usecase.PreferenceUseCase
	Trips           *usecase.TripPlanUseCase
}

type CLI struct {
	deps   Deps
	sess   *session.Store
	logger *zap.Logger

	mu    sync.Mutex
	out   io.Writer
	rl    *readline.Instance
	plans []dto.GeneratedPlan
}

func NewCLI(deps Deps, sess *session.Store, out io.Writer, logger *zap.Logger) *CLI {
	return &CLI{
		deps:   deps,
		sess:   sess,
		out:    out,
		logger: logger,
	}
}

// Attach reads commands from rl; its stdout replaces the writer given to NewCLI.
func (c *CLI) Attach(rl *readline.Instance) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rl = rl
	c.out = rl.Stdout()
}

// Prompt shows who is signed in.
func (c *CLI) Prompt() string {
	if u := c.sess.User(); u != nil && c.sess.IsAuthenticated() {
		name := u.FullName
		if name == "" {
			name = u.Email
		}
		return fmt.Sprintf("cairogo (%s)> ", name)
	}
	return "cairogo> "
}

// Run reads and executes one line.
func (c *CLI) Run(ctx context.Context) error {
	line, err := c.rl.Readline()
	if err != nil {
		return err
	}

	args := ParseArgs(strings.TrimSpace(line))
	if len(args) == 0 {
		return nil
	}
	err = c.Execute(ctx, args)
	c.rl.SetPrompt(c.Prompt())
	return err
}

// Watch prints a line for every favorites change of the session until ctx is done.
func (c *CLI) Watch(ctx context.Context) error {
	events, err := c.deps.Favorites.Events(ctx, c.sess)
	if err != nil {
		return err
	}
	go func() {
		for evt := range events {
			c.printf("* favorites %s: %s\n", strings.ReplaceAll(string(evt.Op), "_", " "), evt.Key)
		}
	}()
	return nil
}

// ParseArgs splits a command line on spaces; double quotes group words.
func ParseArgs(input string) []string {
	var args []string
	var current strings.Builder
	inQuotes := false
	quoted := false

	flush := func() {
		if current.Len() > 0 || quoted {
			args = append(args, current.String())
			current.Reset()
		}
		quoted = false
	}

	for _, r := range input {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			quoted = true
		case (r == ' ' || r == '\t') && !inQuotes:
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()
	return args
}

// Execute runs one parsed command.
func (c *CLI) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no command provided")
	}

	switch strings.ToLower(args[0]) {
	case "login":
		return c.handleLogin(ctx, args[1:])
	case "register":
		return c.handleRegister(ctx, args[1:])
	case "logout":
		return c.handleLogout(ctx)
	case "whoami":
		return c.handleWhoami(ctx)
	case "browse", "ls":
		return c.handleBrowse(ctx, args[1:])
	case "show":
		return c.handleShow(ctx, args[1:])
	case "recommend":
		return c.handleRecommend(ctx, args[1:])
	case "quiz":
		return c.handleQuiz(ctx, args[1:])
	case "trips":
		return c.handleTrips(ctx, args[1:])
	case "fav":
		return c.handleFavorites(ctx, args[1:])
	case "dark":
		return c.handleDark(ctx, args[1:])
	case "help":
		c.printHelp(strings.Join(args[1:], " "))
		return nil
	case "exit", "quit":
		c.printf("Goodbye!\n")
		return ErrExit
	default:
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

func (c *CLI) printf(format string, a ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, format, a...)
}

// Describe renders err for the terminal: application errors show their message only.
func Describe(err error) string {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		msg := appErr.Message
		for _, field := range slices.Sorted(maps.Keys(appErr.Details)) {
			msg += fmt.Sprintf("\n  %s: %v", field, appErr.Details[field])
		}
		return msg
	}
	return err.Error()
}
