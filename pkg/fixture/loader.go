package fixture

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/praetorian-inc/almanac/pkg/puzzle"
	"gopkg.in/yaml.v3"
)

// Loader handles loading fixtures from YAML files.
type Loader struct {
	fs fs.FS // embedded filesystem for built-in fixtures
}

// NewLoader creates a loader with built-in fixtures from embedded filesystem.
func NewLoader() *Loader {
	return &Loader{
		fs: builtinFixturesFS,
	}
}

// NewLoaderWithFS creates a loader with a custom filesystem.
func NewLoaderWithFS(fsys fs.FS) *Loader {
	return &Loader{
		fs: fsys,
	}
}

// readFunc reads a file named by an input_file entry.
type readFunc func(name string) ([]byte, error)

// Load parses fixtures from YAML bytes. input_file entries are not
// supported here since there is no base directory to resolve them against.
func (l *Loader) Load(data []byte) ([]*Fixture, error) {
	return decode(data, func(name string) ([]byte, error) {
		return nil, fmt.Errorf("input_file %s: not supported without a base directory", name)
	})
}

// LoadFile loads fixtures from a YAML file path. input_file entries are
// resolved relative to the file's directory.
func (l *Loader) LoadFile(p string) ([]*Fixture, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", p, err)
	}

	dir := filepath.Dir(p)
	fixtures, err := decode(data, func(name string) ([]byte, error) {
		return os.ReadFile(filepath.Join(dir, name))
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p, err)
	}
	return fixtures, nil
}

// LoadBuiltin loads every *.yml file under "fixtures" in the loader's
// filesystem.
func (l *Loader) LoadBuiltin() ([]*Fixture, error) {
	var fixtures []*Fixture

	err := fs.WalkDir(l.fs, "fixtures", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path.Ext(p) != ".yml" {
			return nil
		}

		data, err := fs.ReadFile(l.fs, p)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", p, err)
		}

		dir := path.Dir(p)
		parsed, err := decode(data, func(name string) ([]byte, error) {
			return fs.ReadFile(l.fs, path.Join(dir, name))
		})
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", p, err)
		}

		fixtures = append(fixtures, parsed...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return fixtures, nil
}

func decode(data []byte, read readFunc) ([]*Fixture, error) {
	var file yamlFixturesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if len(file.Fixtures) == 0 {
		return nil, fmt.Errorf("no fixtures found in YAML")
	}

	fixtures := make([]*Fixture, 0, len(file.Fixtures))
	for _, yf := range file.Fixtures {
		f, err := convertYAMLFixture(yf, read)
		if err != nil {
			return nil, err
		}
		if err := Validate(f); err != nil {
			return nil, err
		}
		fixtures = append(fixtures, f)
	}
	return fixtures, nil
}

func convertYAMLFixture(yf yamlFixture, read readFunc) (*Fixture, error) {
	f := &Fixture{
		Name:        yf.Name,
		Puzzle:      yf.Puzzle,
		Description: yf.Description,
		Input:       yf.Input,
	}

	if yf.InputFile != "" {
		if yf.Input != "" {
			return nil, fmt.Errorf("fixture %s: input and input_file are mutually exclusive", yf.Name)
		}
		data, err := read(yf.InputFile)
		if err != nil {
			return nil, fmt.Errorf("fixture %s: %w", yf.Name, err)
		}
		f.Input = string(data)
	}

	for _, ye := range yf.Expect {
		f.Expect = append(f.Expect, Expectation{Part: puzzle.Part(ye.Part), Answer: ye.Answer})
	}
	return f, nil
}
