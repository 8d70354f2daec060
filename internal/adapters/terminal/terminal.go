// Package terminal drives matches over a line-oriented text interface.
package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/okian/battle/internal/domain/character"
	"github.com/okian/battle/internal/domain/match"
	"github.com/okian/battle/internal/domain/types"
	"github.com/okian/battle/pkg/logger"
)

// Games is the session service the terminal plays against.
type Games interface {
	NewMatch(ctx context.Context, name1, name2 string) (*match.Controller, error)
	FinishMatch(ctx context.Context, c *match.Controller) (*match.Player, error)
	AbandonMatch(ctx context.Context, c *match.Controller)
	Leaderboard(ctx context.Context) ([]types.Entry, error)
}

// Session reads player input line by line and writes the game screens.
type Session struct {
	in     *bufio.Scanner
	out    io.Writer
	games  Games
	pause  time.Duration
	logger logger.Logger
}

// New creates a Session reading from in and writing to out.
func New(in io.Reader, out io.Writer, games Games, opts ...Option) *Session {
	s := &Session{
		in:     bufio.NewScanner(in),
		out:    out,
		games:  games,
		pause:  3 * time.Second,
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run plays matches until the players decline a rematch, input ends, or
// ctx is cancelled. End of input is a normal exit.
func (s *Session) Run(ctx context.Context) error {
	for {
		err := s.playMatch(ctx)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		again, err := s.prompt(ctx, "\nPlay again? (y/n): ")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if !strings.EqualFold(again, "y") && !strings.EqualFold(again, "yes") {
			s.printf("Thanks for playing!\n")
			return nil
		}
	}
}

func (s *Session) playMatch(ctx context.Context) (err error) {
	s.printf("Welcome to\nBattle Game!\n\n")
	name1, err := s.prompt(ctx, "Player 1 name: ")
	if err != nil {
		return err
	}
	name2, err := s.prompt(ctx, "Player 2 name: ")
	if err != nil {
		return err
	}

	c, err := s.games.NewMatch(ctx, name1, name2)
	if err != nil {
		return err
	}
	finished := false
	defer func() {
		if !finished {
			s.logger.Debug(ctx, "leaving unfinished match", logger.String("match", c.ID()), logger.Error(err))
			s.games.AbandonMatch(context.WithoutCancel(ctx), c)
		}
	}()
	if err := s.coinToss(ctx, c); err != nil {
		return err
	}
	if err := s.chooseArchetypes(ctx, c); err != nil {
		return err
	}
	if err := s.battle(ctx, c); err != nil {
		return err
	}

	winner, err := s.games.FinishMatch(ctx, c)
	if err != nil {
		return err
	}
	finished = true
	if winner == nil {
		s.printf("\nThe match is a draw.\n")
	} else {
		s.printf("\n%s wins the match!\n", winner.Name())
	}
	return s.showLeaderboard(ctx)
}

func (s *Session) coinToss(ctx context.Context, c *match.Controller) error {
	for {
		answer, err := s.prompt(ctx, fmt.Sprintf("\n%s, choose heads or tails to flip the coin: ", c.Player1().Name()))
		if err != nil {
			return err
		}
		guess, err := match.ParseSide(answer)
		if err != nil {
			s.printf("Please answer heads or tails.\n")
			continue
		}
		outcome, err := c.CoinToss(ctx, guess)
		if err != nil {
			return err
		}
		first, err := c.CurrentPlayer()
		if err != nil {
			return err
		}
		s.printf("The result was %s. %s goes first.\n", outcome, first.Name())
		return nil
	}
}

func (s *Session) chooseArchetypes(ctx context.Context, c *match.Controller) error {
	for c.State() == match.AwaitingArchetypes {
		p, err := c.CurrentPlayer()
		if err != nil {
			return err
		}
		s.printf("\n%s, choose your character class:\n", p.Name())
		for _, a := range c.Registry().Available() {
			s.printf("  %-8s %s\n", a, a.Description())
		}
		class, err := s.prompt(ctx, "Class: ")
		if err != nil {
			return err
		}
		if _, ok := character.ParseArchetype(class); !ok {
			s.printf("Unknown class %q.\n", class)
			continue
		}
		name, err := s.prompt(ctx, "Name your character: ")
		if err != nil {
			return err
		}
		ok, err := c.ChooseArchetype(ctx, class, name)
		if err != nil {
			return err
		}
		if !ok {
			s.printf("%s is already taken.\n", class)
		}
	}
	return nil
}

func (s *Session) battle(ctx context.Context, c *match.Controller) error {
	for {
		p, err := c.CurrentPlayer()
		if err != nil {
			return err
		}
		s.status(c, p)

		token, err := s.prompt(ctx, "Attack (con/bal/agg): ")
		if err != nil {
			return err
		}
		report, err := c.Attack(ctx, token)
		if errors.Is(err, character.ErrInvalidStrength) {
			s.printf("Choose con, bal or agg.\n")
			continue
		}
		if err != nil {
			return err
		}

		info := fmt.Sprintf("%s dealt %d", report.Attacker.Combatant().Name(), report.Result.DamageToOpponent)
		if report.Result.DamageToSelf > 0 {
			info += fmt.Sprintf(", but suffered %d.", report.Result.DamageToSelf)
		} else {
			info += "."
		}
		s.printf("%s\n", info)

		if report.Outcome == nil {
			continue
		}
		if report.Outcome.Draw {
			s.printf("It's a Draw.\n")
		} else {
			s.printf("%s Wins!\n", report.Outcome.Winner.Name())
		}
		if report.MatchOver {
			return nil
		}
		if err := sleep(ctx, s.pause); err != nil {
			return err
		}
		if err := c.NextRound(ctx, report.Outcome.Draw); err != nil {
			return err
		}
	}
}

func (s *Session) status(c *match.Controller, current *match.Player) {
	c1, c2 := c.Player1().Combatant(), c.Player2().Combatant()
	s.printf("\nRound %d - %s's Turn\n", c.Round(), current.Name())
	s.printf("  %-16s %4d HP\n", c1.Name(), c1.Health())
	s.printf("  %-16s %4d HP\n", c2.Name(), c2.Health())
}

func (s *Session) showLeaderboard(ctx context.Context) error {
	entries, err := s.games.Leaderboard(ctx)
	if err != nil {
		return err
	}
	s.printf("\nLeaderboard\n")
	if len(entries) == 0 {
		s.printf("  (no wins yet)\n")
	}
	for _, e := range entries {
		s.printf("  %d. %-16s %d\n", e.Rank, e.Name, e.Score)
	}
	return nil
}

// prompt writes text and returns the next trimmed input line.
func (s *Session) prompt(ctx context.Context, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.printf("%s", text)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimSpace(s.in.Text()), nil
}

func (s *Session) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(s.out, format, args...); err != nil {
		s.logger.Warn(context.Background(), "write failed", logger.Error(err))
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
