package scoreboard

import (
	"context"
	"log/slog"
	"strconv"

	"cbbsync/lib/textutil"
)

// Game is one completed contest, reshaped winner-first. Site is "N"
// for a neutral venue, otherwise "H" when the home side won and "A"
// when the away side did.
type Game struct {
	Date        string
	WinnerTeam  string
	WinnerScore int
	LoserTeam   string
	LoserScore  int
	Site        string
	Location    string
}

// Row renders the game in the games CSV column order.
func (g Game) Row() []string {
	return []string{
		g.Date,
		g.WinnerTeam,
		strconv.Itoa(g.WinnerScore),
		g.LoserTeam,
		strconv.Itoa(g.LoserScore),
		g.Site,
	}
}

// CompletedGames reduces raw scoreboard events to finished two-team
// games. Events that are still live, missing exactly one home and one
// away side, or carrying unparseable scores are skipped silently, the
// provider mixes such records into every response.
func CompletedGames(ctx context.Context, events []Event, displayDate string) []Game {
	var games []Game
	for _, ev := range events {
		game, ok := gameFromEvent(ctx, ev)
		if !ok {
			continue
		}
		game.Date = displayDate
		games = append(games, game)
	}
	return games
}

func gameFromEvent(ctx context.Context, ev Event) (Game, bool) {
	if len(ev.Competitions) == 0 {
		return Game{}, false
	}
	comp := ev.Competitions[0]

	if !comp.Status.Type.Completed {
		return Game{}, false
	}
	if len(comp.Competitors) != 2 {
		return Game{}, false
	}

	var home, away *Competitor
	for i := range comp.Competitors {
		c := &comp.Competitors[i]
		switch c.HomeAway {
		case "home":
			if home != nil {
				return Game{}, false
			}
			home = c
		case "away":
			if away != nil {
				return Game{}, false
			}
			away = c
		}
	}
	if home == nil || away == nil {
		return Game{}, false
	}

	homeScore, err := strconv.Atoi(home.Score)
	if err != nil {
		return Game{}, false
	}
	awayScore, err := strconv.Atoi(away.Score)
	if err != nil {
		return Game{}, false
	}
	if homeScore == awayScore {
		// completed basketball games cannot end level, skip instead of
		// picking a winner by comparison order
		slog.DebugContext(ctx, "skipping tied completed event", "id", ev.Id)
		return Game{}, false
	}

	game := Game{
		Location: textutil.CombineLocation(
			comp.Venue.FullName,
			comp.Venue.Address.City,
			comp.Venue.Address.State,
		),
	}

	homeWin := homeScore > awayScore
	if homeWin {
		game.WinnerTeam = textutil.Normalize(home.Team.DisplayName)
		game.WinnerScore = homeScore
		game.LoserTeam = textutil.Normalize(away.Team.DisplayName)
		game.LoserScore = awayScore
	} else {
		game.WinnerTeam = textutil.Normalize(away.Team.DisplayName)
		game.WinnerScore = awayScore
		game.LoserTeam = textutil.Normalize(home.Team.DisplayName)
		game.LoserScore = homeScore
	}

	switch {
	case comp.NeutralSite:
		game.Site = "N"
	case homeWin:
		game.Site = "H"
	default:
		game.Site = "A"
	}
	return game, true
}
