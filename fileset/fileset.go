package fileset

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/databricks/databricks-sdk-go/logger"
)

type FileSet []File

func (fi FileSet) Root() string {
	if len(fi) == 0 {
		return "."
	}
	return fi[0].Dir()
}

func (fi FileSet) Filter(pathRegex string) (out FileSet) {
	path := regexp.MustCompile(pathRegex)
	for _, v := range fi {
		if !path.MatchString(v.Absolute) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// Exclude drops every file whose relative path matches any of the regexes.
func (fi FileSet) Exclude(pathRegexes ...string) (out FileSet, err error) {
	var patterns []*regexp.Regexp
	for _, v := range pathRegexes {
		re, err := regexp.Compile(v)
		if err != nil {
			return nil, fmt.Errorf("exclude %s: %w", v, err)
		}
		patterns = append(patterns, re)
	}
	for _, v := range fi {
		if v.matchesAny(patterns) {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

type File struct {
	fs.DirEntry
	Absolute string
	Relative string
}

func (fi File) Ext(suffix string) bool {
	return strings.HasSuffix(fi.Name(), suffix)
}

func (fi File) Dir() string {
	return path.Dir(fi.Absolute)
}

func (fi File) matchesAny(patterns []*regexp.Regexp) bool {
	for _, re := range patterns {
		if re.MatchString(fi.Relative) {
			return true
		}
	}
	return false
}

func (fi File) Open() (*os.File, error) {
	return os.Open(fi.Absolute)
}

func (fi File) Raw() ([]byte, error) {
	f, err := fi.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// Lines calls fn for every line of the file, without the line terminator.
func (fi File) Lines(ctx context.Context, fn func(line string) error) error {
	f, err := fi.Open()
	if err != nil {
		return err
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	n := 0
	for scanner.Scan() {
		n++
		if err := fn(scanner.Text()); err != nil {
			return fmt.Errorf("%s:%d: %w", fi.Relative, n, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%s: %w", fi.Relative, err)
	}
	logger.Tracef(ctx, "read %d lines from %s", n, fi.Relative)
	return nil
}

// Resolve returns every regular file under target, or target alone when it
// is a file.
func Resolve(target string) (FileSet, error) {
	info, err := os.Stat(target)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return RecursiveChildren(target)
	}
	absolute, err := filepath.Abs(target)
	if err != nil {
		return nil, fmt.Errorf("abs: %w", err)
	}
	return FileSet{{
		DirEntry: fs.FileInfoToDirEntry(info),
		Absolute: absolute,
		Relative: info.Name(),
	}}, nil
}

func RecursiveChildren(dir string) (found FileSet, err error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("abs: %w", err)
	}
	queue, err := ReadDir(root)
	if err != nil {
		return nil, err
	}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if !current.IsDir() {
			current.Relative = strings.TrimPrefix(current.Absolute, root+"/")
			found = append(found, current)
			continue
		}
		switch current.Name() {
		case "vendor", ".git", "node_modules":
			continue
		}
		children, err := ReadDir(current.Absolute)
		if err != nil {
			return nil, err
		}
		queue = append(queue, children...)
	}
	return found, nil
}

func ReadDir(dir string) (queue []File, err error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()
	dirs, err := f.ReadDir(-1)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}
	sort.Slice(dirs, func(i, j int) bool {
		return dirs[i].Name() < dirs[j].Name()
	})
	for _, v := range dirs {
		absolute, err := filepath.Abs(path.Join(dir, v.Name()))
		if err != nil {
			return nil, fmt.Errorf("abs: %w", err)
		}
		queue = append(queue, File{v, absolute, ""})
	}
	return
}
