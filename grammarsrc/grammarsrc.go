// Package grammarsrc reads the grammar text-file format described in
// spec.md §6: one rule per line, "#" comments, an optional leading "N. "
// ordinal, "LHS -> RHS1 RHS2 …" with whitespace-separated symbols, single
// quotes around terminal literals. It is the external collaborator that
// supplies grammar.New with a raw rule list; it never decides reachability
// or renaming, only syntax.
package grammarsrc

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/JosephPotashnik/EarleyParser/grammar"
)

var leadingOrdinal = regexp.MustCompile(`^\d+\.\s+`)

// LineError reports a grammar-format error at a specific source line,
// letting callers (notably the diagnostics server) place a squiggle
// without parsing the error string.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string { return fmt.Sprintf("line %d: %v", e.Line, e.Err) }
func (e *LineError) Unwrap() error { return e.Err }

// Load opens path and reads its rules.
func Load(path string) ([]*grammar.Rule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("grammarsrc: open %s: %w", path, err)
	}
	defer f.Close()
	rules, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("grammarsrc: %s: %w", path, err)
	}
	return rules, nil
}

// Read parses rules from r. A line with no "->" is skipped silently, per
// spec.md §7 ("missing -> skipped silently during file reading but not
// during programmatic rule construction"). A line whose rule fails
// grammar.NewRule's format validation is a hard error.
func Read(r io.Reader) ([]*grammar.Rule, error) {
	var rules []*grammar.Rule
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = leadingOrdinal.ReplaceAllString(line, "")

		idx := strings.Index(line, "->")
		if idx < 0 {
			continue
		}

		lhs := strings.TrimSpace(line[:idx])
		rhsPart := strings.TrimSpace(line[idx+2:])
		var rhs []string
		if rhsPart != "" {
			rhs = strings.Fields(rhsPart)
		}

		rule, err := grammar.NewRule(lhs, rhs)
		if err != nil {
			return nil, &LineError{Line: lineNo, Err: err}
		}
		rules = append(rules, rule)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	return rules, nil
}
