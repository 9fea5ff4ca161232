package season

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// Serialize writes the snapshot in the line-oriented wire format: a
// "$ conferences" section with one "%"-delimited record per conference,
// followed by a "$ games" section with one "*"-delimited record per game.
func (s SeasonSnapshot) Serialize(w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "$ year\n%d\n", s.Year)

	fmt.Fprintln(bw, "$ conferences")
	for _, c := range s.Conferences {
		ccg := "0"
		if c.HasChampionshipGame {
			ccg = "1"
		}
		fmt.Fprintf(bw, "%s%%%s%%%s%%%s%%%s\n", c.Name, c.Seeder, strings.Join(c.Teams, ","), ccg, writeDivisions(c.Divisions))
	}

	fmt.Fprintln(bw, "$ games")
	for _, g := range s.Games {
		if err := writeGame(bw, g); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeGame(w io.Writer, g Game) error {
	neutral := "0"
	if g.Neutral {
		neutral = "1"
	}
	switch {
	case g.IsOver():
		fmt.Fprintf(w, "%s*%s*%s*%s*final*%d,%d*%s\n",
			g.Date.Format(time.RFC3339), g.TeamA, g.TeamB, neutral, g.FinalScore[0], g.FinalScore[1], countsFlag(g))
	case g.TeamAWinProbability != nil:
		fmt.Fprintf(w, "%s*%s*%s*%s*prob*%s*%s\n",
			g.Date.Format(time.RFC3339), g.TeamA, g.TeamB, neutral,
			strconv.FormatFloat(*g.TeamAWinProbability, 'g', -1, 64), countsFlag(g))
	default:
		return fmt.Errorf("%w: game %s vs %s has neither a score nor a win probability", ErrSnapshotMalformed, g.TeamA, g.TeamB)
	}
	return nil
}

// writeDivisions serializes divisions as "&"-separated records, each
// "name,team,team,...".
func writeDivisions(divisions []Division) string {
	parts := make([]string, len(divisions))
	for i, d := range divisions {
		fields := append([]string{d.Name}, d.Teams...)
		parts[i] = strings.Join(fields, ",")
	}
	return strings.Join(parts, "&")
}

func parseDivisions(field string) []Division {
	if field == "" {
		return nil
	}
	records := strings.Split(field, "&")
	divisions := make([]Division, 0, len(records))
	for _, rec := range records {
		if rec == "" {
			continue
		}
		fields := strings.Split(rec, ",")
		divisions = append(divisions, Division{Name: fields[0], Teams: fields[1:]})
	}
	return divisions
}

func countsFlag(g Game) string {
	if g.CountsTowardTwelve {
		return "1"
	}
	return "0"
}

// DeserializeSnapshot parses the wire format produced by Serialize.
func DeserializeSnapshot(r io.Reader) (SeasonSnapshot, error) {
	scanner := bufio.NewScanner(r)
	var snap SeasonSnapshot
	section := ""
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		switch line {
		case "$ year":
			section = "year"
			continue
		case "$ conferences":
			section = "conferences"
			continue
		case "$ games":
			section = "games"
			continue
		}
		switch section {
		case "year":
			year, err := strconv.Atoi(strings.TrimSpace(line))
			if err != nil {
				return SeasonSnapshot{}, fmt.Errorf("%w: year %q: %v", ErrSnapshotMalformed, line, err)
			}
			snap.Year = year
		case "conferences":
			conf, err := parseConference(line)
			if err != nil {
				return SeasonSnapshot{}, err
			}
			snap.Conferences = append(snap.Conferences, conf)
		case "games":
			g, err := parseGame(line)
			if err != nil {
				return SeasonSnapshot{}, err
			}
			snap.Games = append(snap.Games, g)
		default:
			return SeasonSnapshot{}, fmt.Errorf("%w: line outside any section: %q", ErrSnapshotMalformed, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return SeasonSnapshot{}, fmt.Errorf("%w: %v", ErrSnapshotMalformed, err)
	}
	return snap, nil
}

func parseConference(line string) (Conference, error) {
	parts := strings.Split(line, "%")
	if len(parts) < 3 || len(parts) > 5 {
		return Conference{}, fmt.Errorf("%w: conference record %q: expected 3 to 5 %%-delimited fields", ErrSnapshotMalformed, line)
	}
	var teams []TeamName
	if parts[2] != "" {
		teams = strings.Split(parts[2], ",")
	}
	hasCCG := len(parts) >= 4 && parts[3] == "1"
	var divisions []Division
	if len(parts) == 5 {
		divisions = parseDivisions(parts[4])
	}
	conf := Conference{Name: parts[0], Seeder: parts[1], Teams: teams, HasChampionshipGame: hasCCG, Divisions: divisions}
	if err := conf.validateDivisions(); err != nil {
		return Conference{}, err
	}
	return conf, nil
}

func parseGame(line string) (Game, error) {
	parts := strings.Split(line, "*")
	if len(parts) < 6 {
		return Game{}, fmt.Errorf("%w: game record %q: too few *-delimited fields", ErrSnapshotMalformed, line)
	}
	date, err := time.Parse(time.RFC3339, parts[0])
	if err != nil {
		return Game{}, fmt.Errorf("%w: game date %q: %v", ErrSnapshotMalformed, parts[0], err)
	}
	neutral := parts[3] == "1"
	kind := parts[4]

	switch kind {
	case "final":
		scores := strings.Split(parts[5], ",")
		if len(scores) != 2 {
			return Game{}, fmt.Errorf("%w: final score %q malformed", ErrSnapshotMalformed, parts[5])
		}
		scoreA, errA := strconv.Atoi(scores[0])
		scoreB, errB := strconv.Atoi(scores[1])
		if errA != nil || errB != nil {
			return Game{}, fmt.Errorf("%w: final score %q not numeric", ErrSnapshotMalformed, parts[5])
		}
		g := NewCompletedGame(date, parts[1], parts[2], neutral, scoreA, scoreB)
		g.CountsTowardTwelve = parseCountsFlag(parts, 6)
		return g, nil
	case "prob":
		p, err := strconv.ParseFloat(parts[5], 64)
		if err != nil {
			return Game{}, fmt.Errorf("%w: win probability %q not numeric", ErrSnapshotMalformed, parts[5])
		}
		g := NewScheduledGame(date, parts[1], parts[2], neutral, p)
		g.CountsTowardTwelve = parseCountsFlag(parts, 6)
		return g, nil
	default:
		return Game{}, fmt.Errorf("%w: unknown game record kind %q", ErrSnapshotMalformed, kind)
	}
}

func parseCountsFlag(parts []string, idx int) bool {
	if idx >= len(parts) {
		return true
	}
	return parts[idx] != "0"
}
