// Package sed applies ordered regular expression substitutions to text,
// which is how raw input is normalised before it is counted.
package sed

import (
	"regexp"
	"strings"
)

func Rule(regex, replace string) *rule {
	return &rule{regexp.MustCompile(regex), replace}
}

type rule struct {
	regex   *regexp.Regexp
	replace string
}

func (r *rule) Apply(src string) string {
	return r.regex.ReplaceAllString(src, r.replace)
}

type Pipeline []*rule

func (r Pipeline) Apply(src string) string {
	for _, v := range r {
		src = v.Apply(src)
	}
	return src
}

// Fields applies the pipeline and splits the result on whitespace.
func (r Pipeline) Fields(src string) []string {
	return strings.Fields(r.Apply(src))
}

// Words keeps letters, digits, apostrophes inside words and dashes inside
// words. Everything else becomes a separator.
var Words = Pipeline{
	Rule(`[^\p{L}\p{N}'\-]+`, " "),
	Rule(`(^|\s)['\-]+|['\-]+(\s|$)`, " "),
}

// Lower is Words with everything folded to lower case.
func Lower(src string) []string {
	return Words.Fields(strings.ToLower(src))
}
