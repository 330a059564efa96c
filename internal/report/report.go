// Package report renders computed stat tables for the terminal and CSV
// export.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/go-nfl-stats/internal/model"
	"github.com/pable/go-nfl-stats/internal/stats"
	"github.com/pable/go-nfl-stats/internal/storage"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// terminalColumns is the compact subset shown on screen; the full table
// only fits a CSV.
func terminalColumns(level model.SummaryLevel, statType model.StatType) []string {
	var cols []string
	cols = append(cols, "season")
	if level == model.SummaryWeek {
		cols = append(cols, "week")
	}
	if statType == model.StatPlayer {
		cols = append(cols, "player_name")
	}
	cols = append(cols, "team")
	if level == model.SummaryWeek {
		cols = append(cols, "opponent_team")
	} else {
		cols = append(cols, "games")
	}
	cols = append(cols,
		"completions", "attempts", "passing_yards", "passing_tds",
		"interceptions", "passing_epa",
		"carries", "rushing_yards", "rushing_tds",
		"receptions", "targets", "receiving_yards", "receiving_tds",
	)
	return cols
}

// PrintStatTable renders the compact on-screen stat table.
func PrintStatTable(w io.Writer, rows []model.StatRow, level model.SummaryLevel, statType model.StatType) {
	cols := terminalColumns(level, statType)
	table := newTable(w)

	header := make([]any, len(cols))
	for i, c := range cols {
		header[i] = c
	}
	table.Header(header...)

	for _, r := range rows {
		cells := make([]any, len(cols))
		for i, c := range cols {
			v := stats.Cell(r, c)
			if v == "" {
				v = "—"
			}
			cells[i] = v
		}
		table.Append(cells...)
	}
	table.Render()
}

// WriteCSV writes the full stat table in the canonical column order.
// Null cells come out empty.
func WriteCSV(w io.Writer, rows []model.StatRow, level model.SummaryLevel, statType model.StatType) error {
	cols := stats.Columns(level, statType)
	cw := csv.NewWriter(w)
	if err := cw.Write(cols); err != nil {
		return err
	}
	rec := make([]string, len(cols))
	for _, r := range rows {
		for i, c := range cols {
			rec[i] = stats.Cell(r, c)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// PrintOverview prints the store summary header.
func PrintOverview(w io.Writer, o storage.Overview) {
	fmt.Fprintf(w, "\nPlayer rows: %d  |  Team rows: %d  |  Players: %d  |  Seasons: %d-%d\n\n",
		o.PlayerRows, o.TeamRows, o.DistinctPlayers, o.FirstSeason, o.LastSeason)
}

// PrintLeaders renders a leaderboard for one yardage category.
func PrintLeaders(w io.Writer, category string, leaders []storage.Leader) {
	fmt.Fprintf(w, "Top %s yards\n", category)
	table := newTable(w)
	table.Header("PLAYER", "TEAM", "YARDS")
	for _, l := range leaders {
		name := l.PlayerName
		if name == "" {
			name = l.PlayerID
		}
		table.Append(name, l.Team, strconv.Itoa(l.Value))
	}
	table.Render()
}
