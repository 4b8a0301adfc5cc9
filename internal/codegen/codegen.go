// Package codegen renders sliding-window implementations in several
// languages from embedded templates keyed by (language, window type,
// algorithm).
package codegen

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"text/template"

	"github.com/kmacinski/slidewin/internal/engine"
)

// DefaultWindowSize is substituted when a request carries no window size.
const DefaultWindowSize = 3

// ErrNotAvailable is returned for combinations without a template.
var ErrNotAvailable = errors.New("implementation not available for this combination")

//go:embed templates
var templateFS embed.FS

// Language is a target language for generated code.
type Language string

const (
	Python     Language = "python"
	JavaScript Language = "javascript"
	Go         Language = "go"
	Java       Language = "java"
	Cpp        Language = "cpp"
)

// Languages lists every language in display order.
var Languages = []Language{Python, JavaScript, Go, Java, Cpp}

var languageAliases = map[string]Language{
	"py":     Python,
	"js":     JavaScript,
	"node":   JavaScript,
	"golang": Go,
	"c++":    Cpp,
}

// ParseLanguage resolves a language name or alias.
func ParseLanguage(s string) (Language, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for _, l := range Languages {
		if string(l) == key {
			return l, nil
		}
	}
	if l, ok := languageAliases[key]; ok {
		return l, nil
	}
	return "", fmt.Errorf("%w: language %q", ErrNotAvailable, s)
}

// Label returns the display name of the language.
func (l Language) Label() string {
	switch l {
	case Python:
		return "Python"
	case JavaScript:
		return "JavaScript"
	case Go:
		return "Go"
	case Java:
		return "Java"
	case Cpp:
		return "C++"
	}
	return string(l)
}

// Request selects one template.
type Request struct {
	Algorithm  engine.Algorithm
	WindowType engine.WindowType
	Language   Language
	WindowSize int
}

// Combination is one available (language, window type, algorithm) triple.
type Combination struct {
	Language   Language          `json:"language"`
	WindowType engine.WindowType `json:"window_type"`
	Algorithm  engine.Algorithm  `json:"algorithm"`
}

// Generator renders templates. The zero value is not usable; use New.
type Generator struct {
	templates map[Combination]*template.Template
}

// New parses every embedded template.
func New() (*Generator, error) {
	g := &Generator{templates: make(map[Combination]*template.Template)}
	err := fs.WalkDir(templateFS, "templates", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || path.Ext(p) != ".tmpl" {
			return err
		}
		combo, ok := parseTemplatePath(p)
		if !ok {
			return fmt.Errorf("codegen: unexpected template path %s", p)
		}
		tmpl, err := template.ParseFS(templateFS, p)
		if err != nil {
			return fmt.Errorf("codegen: parse %s: %w", p, err)
		}
		g.templates[combo] = tmpl
		return nil
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

// templates/<language>/<window type>_<algorithm>.tmpl
func parseTemplatePath(p string) (Combination, bool) {
	dir, file := path.Split(strings.TrimPrefix(p, "templates/"))
	typ, alg, ok := strings.Cut(strings.TrimSuffix(file, ".tmpl"), "_")
	if !ok {
		return Combination{}, false
	}
	return Combination{
		Language:   Language(strings.Trim(dir, "/")),
		WindowType: engine.WindowType(typ),
		Algorithm:  engine.Algorithm(alg),
	}, true
}

// Generate renders the template for req. Unknown combinations fail with
// ErrNotAvailable.
func (g *Generator) Generate(req Request) (string, error) {
	if req.WindowType == "" {
		req.WindowType = req.Algorithm.DefaultWindowType()
	}
	if req.WindowSize < 1 {
		req.WindowSize = DefaultWindowSize
	}

	tmpl, ok := g.templates[Combination{Language: req.Language, WindowType: req.WindowType, Algorithm: req.Algorithm}]
	if !ok {
		return "", fmt.Errorf("%w: %s %s %s", ErrNotAvailable, req.Language, req.WindowType, req.Algorithm)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, req); err != nil {
		return "", fmt.Errorf("codegen: render %s: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}

// Available lists every combination with a template, sorted.
func (g *Generator) Available() []Combination {
	out := make([]Combination, 0, len(g.templates))
	for c := range g.templates {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Language != b.Language {
			return a.Language < b.Language
		}
		if a.WindowType != b.WindowType {
			return a.WindowType < b.WindowType
		}
		return a.Algorithm < b.Algorithm
	})
	return out
}

// LanguagesFor returns the languages that have a template for the algorithm
// and window type.
func (g *Generator) LanguagesFor(alg engine.Algorithm, typ engine.WindowType) []Language {
	var out []Language
	for _, l := range Languages {
		if _, ok := g.templates[Combination{Language: l, WindowType: typ, Algorithm: alg}]; ok {
			out = append(out, l)
		}
	}
	return out
}
