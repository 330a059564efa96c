// Package nflverse downloads per-season play-by-play and play stat CSV
// assets from the nflverse-data releases and caches them on disk. Parsed
// output feeds the stat pipeline as raw rows and stat events.
package nflverse

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/pable/go-nfl-stats/internal/model"
)

const defaultBaseURL = "https://github.com/nflverse/nflverse-data/releases/download"

// Earliest season with play-by-play coverage in the feed.
const minSeason = 1999

// Client fetches and caches nflverse assets. It satisfies stats.Source.
type Client struct {
	BaseURL  string
	CacheDir string
	HTTP     *http.Client
}

// New returns a client caching under dir.
func New(dir string) *Client {
	return &Client{
		BaseURL:  defaultBaseURL,
		CacheDir: dir,
		HTTP:     http.DefaultClient,
	}
}

func (c *Client) assetURL(kind string, season int) string {
	switch kind {
	case "pbp":
		return fmt.Sprintf("%s/pbp/play_by_play_%d.csv.gz", c.BaseURL, season)
	default:
		return fmt.Sprintf("%s/playstats/playstats_%d.csv.gz", c.BaseURL, season)
	}
}

func (c *Client) assetPath(kind string, season int) string {
	return filepath.Join(c.CacheDir, fmt.Sprintf("%s_%d.csv.gz", kind, season))
}

// Fetch downloads both assets for a season, skipping ones already cached.
func (c *Client) Fetch(ctx context.Context, season int) error {
	for _, kind := range []string{"pbp", "playstats"} {
		if _, err := c.ensure(ctx, kind, season); err != nil {
			return err
		}
	}
	return nil
}

// ensure returns the cached asset path, downloading it first if needed.
func (c *Client) ensure(ctx context.Context, kind string, season int) (string, error) {
	path := c.assetPath(kind, season)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	if err := os.MkdirAll(c.CacheDir, 0o755); err != nil {
		return "", fmt.Errorf("creating cache dir: %w", err)
	}

	url := c.assetURL(kind, season)
	slog.Info("downloading nflverse asset", "kind", kind, "season", season, "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "go-nfl-stats/1.0")
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s %d: %w", kind, season, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("fetching %s: %s (%s)", url, resp.Status, strings.TrimSpace(string(b)))
	}

	tmp, err := os.CreateTemp(c.CacheDir, kind+"-*")
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return path, nil
}

func (c *Client) openAsset(ctx context.Context, kind string, season int) (io.ReadCloser, error) {
	path, err := c.ensure(ctx, kind, season)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	gz, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decompressing %s: %w", path, err)
	}
	return &gzipFile{gz: gz, f: f}, nil
}

type gzipFile struct {
	gz *gzip.Reader
	f  *os.File
}

func (g *gzipFile) Read(p []byte) (int, error) { return g.gz.Read(p) }

func (g *gzipFile) Close() error {
	gzErr := g.gz.Close()
	if err := g.f.Close(); err != nil {
		return err
	}
	return gzErr
}

// LoadPBP loads raw play-by-play rows for the given seasons.
func (c *Client) LoadPBP(ctx context.Context, seasons []int) ([]model.Row, error) {
	var out []model.Row
	for _, season := range seasons {
		if season < minSeason {
			return nil, fmt.Errorf("play-by-play data starts in %d, got season %d", minSeason, season)
		}
		r, err := c.openAsset(ctx, "pbp", season)
		if err != nil {
			return nil, err
		}
		rows, err := parsePBP(r)
		r.Close()
		if err != nil {
			return nil, fmt.Errorf("parsing pbp %d: %w", season, err)
		}
		out = append(out, rows...)
	}
	return out, nil
}

// LoadPlayStats loads play stat events for the given seasons.
func (c *Client) LoadPlayStats(ctx context.Context, seasons []int) ([]model.StatEvent, error) {
	var out []model.StatEvent
	for _, season := range seasons {
		r, err := c.openAsset(ctx, "playstats", season)
		if err != nil {
			return nil, err
		}
		events, err := parsePlayStats(r)
		r.Close()
		if err != nil {
			return nil, fmt.Errorf("parsing playstats %d: %w", season, err)
		}
		out = append(out, events...)
	}
	return out, nil
}

// parsePBP decodes a play-by-play CSV into generic rows keyed by header.
func parsePBP(r io.Reader) ([]model.Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	hdr, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	var rows []model.Row
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}
		row := make(model.Row, len(hdr))
		for i, col := range hdr {
			if i < len(rec) {
				row[col] = rec[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// parsePlayStats decodes a playstats CSV into typed stat events using a
// header index, tolerating extra columns and reordered headers.
func parsePlayStats(r io.Reader) ([]model.StatEvent, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	hdr, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	idx := func(name string) int {
		for i, h := range hdr {
			if strings.EqualFold(h, name) {
				return i
			}
		}
		return -1
	}

	iSeason := idx("season")
	iWeek := idx("week")
	iGame := idx("game_id")
	iPlay := idx("play_id")
	iPlayer := idx("gsis_player_id")
	iName := idx("player_name")
	iTeam := idx("team_abbr")
	iStat := idx("stat_id")
	iYards := idx("yards")
	if iSeason < 0 || iWeek < 0 || iGame < 0 || iPlay < 0 || iPlayer < 0 || iTeam < 0 || iStat < 0 || iYards < 0 {
		return nil, fmt.Errorf("required playstats columns missing")
	}

	field := func(rec []string, i int) string {
		if i >= 0 && i < len(rec) {
			return rec[i]
		}
		return ""
	}

	var events []model.StatEvent
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}
		season, _ := strconv.Atoi(field(rec, iSeason))
		week, _ := strconv.Atoi(field(rec, iWeek))
		playID := atoiFloat(field(rec, iPlay))
		statID, _ := strconv.Atoi(field(rec, iStat))
		yards := atoiFloat(field(rec, iYards))

		events = append(events, model.StatEvent{
			Season:     season,
			Week:       week,
			GameID:     field(rec, iGame),
			PlayID:     playID,
			PlayerID:   field(rec, iPlayer),
			PlayerName: field(rec, iName),
			Team:       field(rec, iTeam),
			StatID:     statID,
			Yards:      yards,
		})
	}
	return events, nil
}

// atoiFloat parses ints that the feed sometimes formats as floats.
func atoiFloat(s string) int {
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return int(f)
}
