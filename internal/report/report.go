// Package report turns an aggregate into the figures people read: outcome
// shares, per-game averages and the balance extrema. It does no simulation.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/xtding233/chance-sim/internal/chance"
)

var hundred = decimal.NewFromInt(100)

// Report is the presentation view of one run.
type Report struct {
	Requested int
	Games     int
	Wins      int
	Losses    int
	Draws     int

	WinPct  decimal.Decimal
	LossPct decimal.Decimal
	DrawPct decimal.Decimal

	AvgRounds  decimal.Decimal
	AvgBalance decimal.Decimal
	MaxBalance int
	MinBalance int

	// nominal amounts the thresholds represent relative to the start
	WinAmount  int
	LossAmount int

	Rounds *chance.Stats // set when per-game samples were kept
}

// Build derives a report. Shares and averages are over completed games, which
// equals NumSimulations unless the run was cancelled.
func Build(cfg chance.GameConfig, res chance.SimulationResults) Report {
	r := Report{
		Requested:  cfg.NumSimulations,
		Games:      res.Games,
		Wins:       res.Wins,
		Losses:     res.Losses,
		Draws:      res.Draws(),
		MaxBalance: res.MaxBalance,
		MinBalance: res.MinBalance,
		WinAmount:  cfg.WinThreshold - cfg.InitialBalance,
		LossAmount: cfg.LoseThreshold - cfg.InitialBalance,
	}
	if res.Games == 0 {
		return r
	}
	games := decimal.NewFromInt(int64(res.Games))
	share := func(n int) decimal.Decimal {
		return decimal.NewFromInt(int64(n)).Mul(hundred).Div(games)
	}
	r.WinPct = share(res.Wins)
	r.LossPct = share(res.Losses)
	r.DrawPct = share(r.Draws)
	r.AvgRounds = decimal.NewFromInt(int64(res.TotalRounds)).Div(games)
	r.AvgBalance = decimal.NewFromInt(int64(res.TotalBalance)).Div(games)

	if len(res.RoundSamples) > 0 {
		st := chance.Distribution(res.RoundSamples)
		r.Rounds = &st
	}
	return r
}

// Render writes the report as plain text.
func (r Report) Render(w io.Writer) error {
	var b strings.Builder

	fmt.Fprintf(&b, "\n--- Results of %s simulations ---\n", humanize.Comma(int64(r.Games)))
	if r.Games < r.Requested {
		fmt.Fprintf(&b, "(interrupted: %s of %s requested)\n", humanize.Comma(int64(r.Games)), humanize.Comma(int64(r.Requested)))
	}
	fmt.Fprintf(&b, "Wins:   %s (%s%%)\n", humanize.Comma(int64(r.Wins)), r.WinPct.StringFixed(2))
	fmt.Fprintf(&b, "Losses: %s (%s%%)\n", humanize.Comma(int64(r.Losses)), r.LossPct.StringFixed(2))
	fmt.Fprintf(&b, "Draws:  %s (%s%%)\n", humanize.Comma(int64(r.Draws)), r.DrawPct.StringFixed(2))

	fmt.Fprintf(&b, "\nAverage rounds per game: %s\n", r.AvgRounds.StringFixed(2))
	fmt.Fprintf(&b, "Average final balance:   $%s\n", r.AvgBalance.StringFixed(2))
	fmt.Fprintf(&b, "Highest balance reached: $%d\n", r.MaxBalance)
	fmt.Fprintf(&b, "Lowest balance reached:  $%d\n", r.MinBalance)

	if r.Wins > 0 {
		fmt.Fprintf(&b, "\nWin probability:   %s%%\n", r.WinPct.StringFixed(2))
		fmt.Fprintf(&b, "Gain when winning: $%d.00\n", r.WinAmount)
	}
	if r.Losses > 0 {
		fmt.Fprintf(&b, "Loss probability:  %s%%\n", r.LossPct.StringFixed(2))
		fmt.Fprintf(&b, "Loss when losing:  $%d.00\n", r.LossAmount)
	}

	if r.Rounds != nil {
		fmt.Fprintf(&b, "\nRounds per game: mean %.2f, stddev %.2f, p50 %.0f, p90 %.0f, p99 %.0f, max %d\n",
			r.Rounds.Mean, r.Rounds.StdDev, r.Rounds.P50, r.Rounds.P90, r.Rounds.P99, r.Rounds.Max)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
