package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/codewithboateng/stylint/internal/sym"
)

// ParseError reports malformed source-unit input. It is fatal: analysis
// never starts when Load returns one.
type ParseError struct {
	File string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.File, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

type Diagnostics struct {
	Warnings []string
}

// unitDoc is the on-disk shape of one source unit: the declaration tree a
// front-end parser emitted for one file.
type unitDoc struct {
	Unit         string      `yaml:"unit"`
	Declarations []*sym.Node `yaml:"declarations"`
}

// Load builds a Run from the source units under path. Path may be a single
// unit file or a directory walked for *.yml / *.yaml files in lexical
// order, so traversal matches declaration order deterministically.
func Load(path string) (sym.Run, Diagnostics, error) {
	var run sym.Run
	run.SchemaVersion = sym.SchemaVersion
	run.Source = filepath.Clean(path)
	diags := Diagnostics{}

	files, err := unitFiles(path)
	if err != nil {
		return run, diags, &ParseError{File: path, Err: err}
	}

	for _, f := range files {
		unit, err := loadFile(f)
		if err != nil {
			return run, diags, err
		}
		run.Units = append(run.Units, unit)
	}

	if len(run.Units) == 0 {
		diags.Warnings = append(diags.Warnings, "no source-unit files found under "+run.Source)
	}
	return run, diags, nil
}

func unitFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	var files []string
	err = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		name := strings.ToLower(d.Name())
		if strings.HasSuffix(name, ".yml") || strings.HasSuffix(name, ".yaml") {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func loadFile(p string) (sym.Unit, error) {
	b, err := os.ReadFile(p)
	if err != nil {
		return sym.Unit{}, &ParseError{File: p, Err: err}
	}
	var doc unitDoc
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return sym.Unit{}, &ParseError{File: p, Err: err}
	}

	file := strings.TrimSpace(doc.Unit)
	if file == "" {
		file = filepath.Base(p)
	}

	root := &sym.Node{
		Kind:     sym.KindUnit,
		Name:     file,
		File:     file,
		Children: doc.Declarations,
	}
	if err := validate(root, file); err != nil {
		return sym.Unit{}, &ParseError{File: p, Err: err}
	}
	if err := root.Link(); err != nil {
		return sym.Unit{}, &ParseError{File: p, Err: err}
	}
	return sym.Unit{File: file, Root: root}, nil
}

// validate checks every declaration carries a known kind and a name, and
// stamps the unit file onto nodes the front end left unlocated.
func validate(root *sym.Node, file string) error {
	var walk func(n *sym.Node) error
	walk = func(n *sym.Node) error {
		if n == nil {
			return fmt.Errorf("null declaration node")
		}
		if !sym.ValidKind(n.Kind) {
			return fmt.Errorf("declaration %q: unknown kind %q", n.Name, n.Kind)
		}
		if n.Kind != sym.KindUnit && strings.TrimSpace(n.Name) == "" {
			return fmt.Errorf("declaration of kind %q is missing a name", n.Kind)
		}
		if n.File == "" {
			n.File = file
		}
		for _, c := range n.Children {
			if err := walk(c); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(root)
}
