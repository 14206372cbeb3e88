package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/databricks/databricks-sdk-go/logger"
	"github.com/databrickslabs/sandbox/tally/counters"
)

// See https://git-scm.com/docs/pretty-formats for docs
const prettyFormat = "--pretty=commit,%at,%H,%aN,%aE"

// See https://git-scm.com/docs/git-log
// shows number of added and deleted lines in decimal notation and pathname without abbreviation,
// to make it more machine friendly. For binary files, outputs two - instead of saying 0 0.
type NumStat struct {
	Added    int
	Deleted  int
	Pathname string
}

type CommitInfo struct {
	// %aI - author date, strict ISO 8601 format
	Time time.Time

	// %H - commit hash
	Sha string

	// %aN - author name (respecting .mailmap, see git-shortlog[1] or git-blame[1])
	Author string

	// %aE - author email (respecting .mailmap, see git-shortlog[1] or git-blame[1])
	Email string

	Stats []NumStat
}

// History runs git log with numstat in dir and parses the output.
func History(ctx context.Context, dir string) (Commits, error) {
	args := []string{"log", "--all", prettyFormat, "--numstat"}
	logger.Debugf(ctx, "running: git %s", strings.Join(args, " "))
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("git log: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return ParseLog(stdout.String()), nil
}

// ParseLog reads the output of git log in the format History asks for.
func ParseLog(raw string) (out Commits) {
	var current CommitInfo
	for _, l := range strings.Split(raw, "\n") {
		if strings.HasPrefix(l, "commit,") {
			// New commit found, save the previous commit (if any)
			if current.Sha != "" {
				out = append(out, current)
			}
			fields := strings.SplitN(l, ",", 5)
			if len(fields) < 5 {
				current = CommitInfo{}
				continue
			}
			current = CommitInfo{
				Time:   time.Unix(int64(parseStat(fields[1])), 0),
				Sha:    fields[2],
				Author: fields[3],
				Email:  fields[4],
			}
			continue
		}
		if strings.Contains(l, "\t") {
			fields := strings.SplitN(l, "\t", 3)
			if len(fields) < 3 {
				continue
			}
			current.Stats = append(current.Stats, NumStat{
				Added:    parseStat(fields[0]),
				Deleted:  parseStat(fields[1]),
				Pathname: fields[2],
			})
		}
	}
	if current.Sha != "" {
		out = append(out, current)
	}
	return out
}

func parseStat(stat string) int {
	num, err := strconv.Atoi(strings.TrimSpace(stat))
	if err != nil {
		return 0
	}
	return num
}

type Commits []CommitInfo

// ByAuthor counts commits per "Name <email>".
func (all Commits) ByAuthor() *counters.Table[string] {
	t := counters.New[string]()
	for _, c := range all {
		t.Add(fmt.Sprintf("%s <%s>", c.Author, c.Email))
	}
	return t
}

// Churn counts added plus deleted lines per path.
func (all Commits) Churn() *counters.Table[string] {
	t := counters.New[string]()
	for _, c := range all {
		for _, s := range c.Stats {
			// AddN only fails on negative input, and parseStat never
			// returns a negative number for git output.
			_ = t.AddN(s.Pathname, s.Added+s.Deleted)
		}
	}
	return t
}

// ByHour counts commits per hour of the day, in the author's local zone of
// the machine running the scan.
func (all Commits) ByHour() *counters.Table[int] {
	t := counters.New[int]()
	for _, c := range all {
		t.Add(c.Time.Hour())
	}
	return t
}

type AuthorInfo struct {
	Author  string
	Email   string
	Commits int
	Added   int
	Deleted int
}

func (a AuthorInfo) Totals() int {
	return a.Commits + a.Added + a.Deleted
}

type author struct {
	Author, Email string
}

func (all Commits) Contributors() (out Authors) {
	// this method doesn't count contributions per folder
	commits := counters.New[author]()
	added := counters.Counter[author]{}
	deleted := counters.Counter[author]{}
	for _, c := range all {
		k := author{c.Author, c.Email}
		commits.Add(k)
		for _, s := range c.Stats {
			added.AddN(k, s.Added)
			deleted.AddN(k, s.Deleted)
		}
	}
	for _, p := range commits.Pairs() {
		out = append(out, AuthorInfo{
			Author:  p.Item.Author,
			Email:   p.Item.Email,
			Commits: p.Frequency,
			Added:   added[p.Item],
			Deleted: deleted[p.Item],
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Totals() > out[j].Totals()
	})
	return out
}

type Authors []AuthorInfo
