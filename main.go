// Package main is the entry point for the nflstats CLI tool, which
// downloads nflverse play-by-play data and computes player/team stat
// summaries.
package main

import "github.com/pable/go-nfl-stats/cmd"

func main() {
	cmd.Execute()
}
