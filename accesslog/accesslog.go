// Package accesslog reads web server access logs in the Common Log Format
// and tallies their fields.
package accesslog

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/databricks/databricks-sdk-go/logger"
	"github.com/databrickslabs/sandbox/tally/counters"
)

// Layout is the timestamp layout of the Common Log Format.
const Layout = "02/Jan/2006:15:04:05 -0700"

var ErrMalformed = errors.New("malformed log line")

// host ident authuser [date] "request" status bytes
var line = regexp.MustCompile(`^(\S+) (\S+) (\S+) \[([^\]]+)\] "([^"]*)" (\d{3}) (\d+|-)$`)

type Entry struct {
	Host     string
	Identity string
	AuthUser string
	Time     time.Time
	Method   string
	Path     string
	Protocol string
	Status   int
	// Bytes is -1 when the server did not report a size.
	Bytes int
}

func Parse(raw string) (Entry, error) {
	m := line.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return Entry{}, fmt.Errorf("%w: %q", ErrMalformed, raw)
	}
	ts, err := time.Parse(Layout, m[4])
	if err != nil {
		return Entry{}, fmt.Errorf("%w: time: %s", ErrMalformed, err)
	}
	status, _ := strconv.Atoi(m[6])
	size := -1
	if m[7] != "-" {
		size, err = strconv.Atoi(m[7])
		if err != nil {
			return Entry{}, fmt.Errorf("%w: bytes: %s", ErrMalformed, err)
		}
	}
	e := Entry{
		Host:     m[1],
		Identity: m[2],
		AuthUser: m[3],
		Time:     ts,
		Status:   status,
		Bytes:    size,
	}
	request := strings.Fields(m[5])
	switch len(request) {
	case 3:
		e.Protocol = request[2]
		fallthrough
	case 2:
		e.Method, e.Path = request[0], request[1]
	case 1:
		e.Path = request[0]
	}
	return e, nil
}

func (e Entry) Request() string {
	return strings.TrimSpace(strings.Join([]string{e.Method, e.Path, e.Protocol}, " "))
}

func (e Entry) String() string {
	size := "-"
	if e.Bytes >= 0 {
		size = strconv.Itoa(e.Bytes)
	}
	return fmt.Sprintf(`%s %s %s [%s] "%s" %d %s`,
		e.Host, e.Identity, e.AuthUser, e.Time.Format(Layout),
		e.Request(), e.Status, size)
}

type Field string

const (
	FieldHost   Field = "host"
	FieldUser   Field = "user"
	FieldMethod Field = "method"
	FieldPath   Field = "path"
	FieldStatus Field = "status"
	FieldHour   Field = "hour"
)

var Fields = []Field{FieldHost, FieldUser, FieldMethod, FieldPath, FieldStatus, FieldHour}

func ParseField(s string) (Field, error) {
	for _, f := range Fields {
		if string(f) == strings.ToLower(s) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown field: %s", s)
}

func (f Field) Of(e Entry) string {
	switch f {
	case FieldHost:
		return e.Host
	case FieldUser:
		return e.AuthUser
	case FieldMethod:
		return e.Method
	case FieldPath:
		return e.Path
	case FieldStatus:
		return strconv.Itoa(e.Status)
	case FieldHour:
		return fmt.Sprintf("%02d", e.Time.Hour())
	default:
		return ""
	}
}

type Summary struct {
	Entries   int
	Malformed int
	Table     *counters.Table[string]
}

// Tally counts the values of a field over every well-formed line of r.
// Malformed lines are skipped and counted.
func Tally(ctx context.Context, r io.Reader, field Field) (*Summary, error) {
	summary := &Summary{Table: counters.New[string]()}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		raw := scanner.Text()
		if strings.TrimSpace(raw) == "" {
			continue
		}
		e, err := Parse(raw)
		if err != nil {
			logger.Tracef(ctx, "skipping: %s", err)
			summary.Malformed++
			continue
		}
		summary.Entries++
		summary.Table.Add(field.Of(e))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	logger.Debugf(ctx, "%d entries, %d malformed", summary.Entries, summary.Malformed)
	return summary, nil
}
