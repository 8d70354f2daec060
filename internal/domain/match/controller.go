// Package match drives one two-player match: turn order, rounds and the
// round-winner tally.
package match

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/okian/battle/internal/domain/character"
	"github.com/okian/battle/internal/domain/registry"
	"github.com/okian/battle/internal/domain/rng"
	"github.com/okian/battle/pkg/logger"
	"github.com/okian/battle/pkg/metrics"
)

// MaxRounds is the number of decisive rounds in a match.
const MaxRounds = 3

// RoundOutcome is the result of a finished round. Winner is nil on a draw.
type RoundOutcome struct {
	Round  int
	Winner *Player
	Draw   bool
}

// TurnReport describes one resolved attack and, when it ended the round,
// the round outcome.
type TurnReport struct {
	Round     int
	Attacker  *Player
	Defender  *Player
	Result    character.AttackResult
	Outcome   *RoundOutcome
	MatchOver bool
}

// Controller is the match state machine. It is not safe for concurrent use.
type Controller struct {
	id       string
	players  [2]*Player
	order    [2]*Player
	decided  bool
	settled  bool
	turn     int
	round    int
	winners  []*Player
	state    State
	registry *registry.Registry
	rng      rng.Source
	logger   logger.Logger
}

// New creates a controller awaiting players.
func New(opts ...Option) *Controller {
	c := &Controller{
		id:       uuid.NewString(),
		round:    1,
		state:    AwaitingPlayers,
		registry: registry.New(),
		logger:   logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		c.rng = rng.NewSeeded(0)
	}
	return c
}

func (c *Controller) ID() string                   { return c.id }
func (c *Controller) Round() int                   { return c.round }
func (c *Controller) Player1() *Player             { return c.players[0] }
func (c *Controller) Player2() *Player             { return c.players[1] }
func (c *Controller) Registry() *registry.Registry { return c.registry }

// State reports the lifecycle stage. Round and match completion are derived
// from combatant health, so damage applied outside Attack is seen too.
func (c *Controller) State() State {
	if c.state == InProgress && c.IsRoundOver() {
		if c.IsMatchOver() {
			return MatchOver
		}
		return RoundResolved
	}
	return c.state
}

// SetPlayers seats both players.
func (c *Controller) SetPlayers(ctx context.Context, p1, p2 *Player) error {
	if c.state != AwaitingPlayers {
		return c.premature("set_players")
	}
	if p1 == nil || p2 == nil || p1 == p2 {
		return ErrInvalidPlayer
	}
	c.players = [2]*Player{p1, p2}
	c.state = AwaitingCoinToss
	c.logger.Debug(ctx, "players seated",
		logger.String("match", c.id),
		logger.String("player1", p1.Name()),
		logger.String("player2", p2.Name()),
	)
	return nil
}

// CoinToss flips a fair coin against player 1's guess. A correct guess lets
// player 1 act first. The toss may be repeated until an archetype is bound.
func (c *Controller) CoinToss(ctx context.Context, guess Side) (Side, error) {
	switch c.state {
	case AwaitingCoinToss:
	case AwaitingArchetypes:
		if c.players[0].bound() || c.players[1].bound() {
			return 0, c.premature("coin_toss")
		}
	default:
		return 0, c.premature("coin_toss")
	}
	if guess != Heads && guess != Tails {
		return 0, fmt.Errorf("%w: %d", ErrInvalidCoinSide, guess)
	}

	outcome := Heads
	if c.rng.Intn(2) == 1 {
		outcome = Tails
	}
	if outcome == guess {
		c.order = [2]*Player{c.players[0], c.players[1]}
	} else {
		c.order = [2]*Player{c.players[1], c.players[0]}
	}
	c.turn = 0
	c.decided = true
	c.state = AwaitingArchetypes

	metrics.RecordCoinToss(outcome.String())
	c.logger.Debug(ctx, "coin tossed",
		logger.String("match", c.id),
		logger.String("guess", guess.String()),
		logger.String("outcome", outcome.String()),
		logger.String("first", c.order[0].Name()),
	)
	return outcome, nil
}

// CurrentPlayer returns the player whose turn it is.
func (c *Controller) CurrentPlayer() (*Player, error) {
	if !c.decided {
		return nil, c.premature("current_player")
	}
	return c.order[c.turn], nil
}

// OpponentPlayer returns the player whose turn it is not.
func (c *Controller) OpponentPlayer() (*Player, error) {
	if !c.decided {
		return nil, c.premature("opponent_player")
	}
	return c.order[1-c.turn], nil
}

// SwapTurn hands the turn to the other player.
func (c *Controller) SwapTurn() error {
	if !c.decided {
		return c.premature("swap_turn")
	}
	c.turn = 1 - c.turn
	return nil
}

// ChooseArchetype binds an archetype to the current player through the
// match registry. A false return means the token was unknown or taken; the
// turn does not pass. Once both players are bound the match starts with the
// coin-toss winner to act.
func (c *Controller) ChooseArchetype(ctx context.Context, token, name string) (bool, error) {
	if c.state != AwaitingArchetypes {
		return false, c.premature("choose_archetype")
	}
	p := c.order[c.turn]
	if !c.registry.Bind(p, token, name) {
		return false, nil
	}
	c.logger.Debug(ctx, "archetype bound",
		logger.String("match", c.id),
		logger.String("player", p.Name()),
		logger.String("archetype", p.Combatant().Archetype().String()),
		logger.String("character", p.Combatant().Name()),
	)
	c.turn = 1 - c.turn
	if c.players[0].bound() && c.players[1].bound() {
		c.state = InProgress
		c.logger.Info(ctx, "match started",
			logger.String("match", c.id),
			logger.String("first", c.order[c.turn].Name()),
		)
	}
	return true, nil
}

// IsRoundOver reports whether a bound combatant has no health left.
func (c *Controller) IsRoundOver() bool {
	if !c.decided || !c.order[0].bound() || !c.order[1].bound() {
		return false
	}
	return c.order[0].combatant.IsDead() || c.order[1].combatant.IsDead()
}

// IsMatchOver reports whether the final round is over.
func (c *Controller) IsMatchOver() bool {
	return c.IsRoundOver() && c.round == MaxRounds
}

// RegisterRoundWinner appends p to the round-winner history. The round
// must be over and not yet settled, by Attack or by an earlier call.
func (c *Controller) RegisterRoundWinner(p *Player) error {
	if p == nil || (p != c.players[0] && p != c.players[1]) {
		return ErrInvalidPlayer
	}
	if !c.IsRoundOver() || c.settled {
		return c.premature("register_round_winner")
	}
	c.winners = append(c.winners, p)
	c.settled = true
	return nil
}

// RoundWinners returns the round-winner history in order.
func (c *Controller) RoundWinners() []*Player {
	out := make([]*Player, len(c.winners))
	copy(out, c.winners)
	return out
}

// Attack resolves one attack by the current player at the given strength
// token, passes the turn, and settles the round if it ended. An invalid
// token changes nothing.
func (c *Controller) Attack(ctx context.Context, token string) (TurnReport, error) {
	if c.State() != InProgress {
		return TurnReport{}, c.premature("attack")
	}
	strength, err := character.ParseStrength(token)
	if err != nil {
		metrics.RecordErrorByComponent("match", "invalid_strength")
		return TurnReport{}, err
	}

	attacker, defender := c.order[c.turn], c.order[1-c.turn]
	res, err := attacker.combatant.Attack(defender.combatant, strength, c.rng)
	if err != nil {
		return TurnReport{}, err
	}
	metrics.RecordAttack(attacker.combatant.Archetype().String(), strength.String(), res.DamageToOpponent, res.DamageToSelf)

	report := TurnReport{
		Round:    c.round,
		Attacker: attacker,
		Defender: defender,
		Result:   res,
	}
	c.turn = 1 - c.turn

	if c.IsRoundOver() {
		outcome := c.settleRound(ctx)
		report.Outcome = &outcome
		report.MatchOver = c.IsMatchOver()
	}
	return report, nil
}

// settleRound registers the survivor as round winner. Both combatants down
// is a draw and registers nobody.
func (c *Controller) settleRound(ctx context.Context) RoundOutcome {
	p1, p2 := c.players[0], c.players[1]
	outcome := RoundOutcome{Round: c.round}
	c.settled = true
	switch {
	case p1.combatant.IsDead() && p2.combatant.IsDead():
		outcome.Draw = true
	case p2.combatant.IsDead():
		outcome.Winner = p1
	default:
		outcome.Winner = p2
	}

	result := "draw"
	fields := []logger.Field{logger.String("match", c.id), logger.Int("round", c.round)}
	if outcome.Winner != nil {
		c.winners = append(c.winners, outcome.Winner)
		result = "win"
		fields = append(fields, logger.String("winner", outcome.Winner.Name()))
	}
	metrics.RecordRoundResolved(result)
	c.logger.Info(ctx, "round resolved", append(fields, logger.String("outcome", result))...)
	return outcome
}

// NextRound starts the next round. The round number advances unless the
// round was a draw; both combatants return to full health with no ticks.
func (c *Controller) NextRound(ctx context.Context, wasDraw bool) error {
	if !c.IsRoundOver() || c.IsMatchOver() {
		return c.premature("next_round")
	}
	if !wasDraw {
		c.round++
	}
	c.settled = false
	for _, p := range c.players {
		p.combatant.ResetHealth()
		p.combatant.ResetDotTicks()
	}
	c.logger.Debug(ctx, "round started", logger.String("match", c.id), logger.Int("round", c.round))
	return nil
}

// MatchWinner returns the player with strictly more round wins, or nil on
// a tie.
func (c *Controller) MatchWinner() *Player {
	var w1, w2 int
	for _, p := range c.winners {
		switch p {
		case c.players[0]:
			w1++
		case c.players[1]:
			w2++
		}
	}
	switch {
	case w1 > w2:
		return c.players[0]
	case w2 > w1:
		return c.players[1]
	default:
		return nil
	}
}

func (c *Controller) premature(op string) error {
	metrics.RecordErrorByComponent("match", "premature_operation")
	return fmt.Errorf("%s in state %s: %w", op, c.State(), ErrPrematureOperation)
}
