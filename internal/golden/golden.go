// Package golden implements the Driver and golden-fixture Comparator of
// spec.md §4.7: Emit lowers one ast.Module to TL text, CompareGolden
// walks a directory of txtar fixtures and reports every mismatch.
//
// Fixtures are txtar archives (golang.org/x/tools/txtar) with exactly
// two files: ast.json (an internal/ast.Decode-able Module) and
// expected.tl (the checked-in TL text, compared byte-for-byte — P7
// demands the emitter be fully deterministic, so no normalization is
// applied on either side).
package golden

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
	"golang.org/x/tools/txtar"

	"dyonc/internal/ast"
	"dyonc/internal/codegen"
)

// Emit is the Driver (§4.7): it generates TL text from an
// already-decoded module (decoding is ast.Decode's job).
func Emit(module ast.Module) (string, error) {
	return codegen.EmitModule(module)
}

// Mismatch describes one fixture whose emitted text diverged from the
// checked-in expectation.
type Mismatch struct {
	Fixture  string
	Expected string
	Got      string
	Err      error
}

// CompareGolden loads every *.txtar file under dir, emits each one's
// ast.json and diffs the result against expected.tl. Fixtures whose
// emission errors are reported as mismatches with Err set rather than
// aborting the whole run, so one bad fixture doesn't hide the rest.
func CompareGolden(dir string) ([]Mismatch, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "read golden dir %s", dir)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".txtar" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var mismatches []Mismatch
	for _, name := range names {
		path := filepath.Join(dir, name)
		m, err := compareOne(path)
		if err != nil {
			return nil, errors.Wrapf(err, "fixture %s", name)
		}
		if m != nil {
			mismatches = append(mismatches, *m)
		}
	}
	return mismatches, nil
}

func compareOne(path string) (*Mismatch, error) {
	archive, err := txtar.ParseFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "parse txtar")
	}
	var astJSON, expected []byte
	for _, f := range archive.Files {
		switch f.Name {
		case "ast.json":
			astJSON = f.Data
		case "expected.tl":
			expected = f.Data
		}
	}
	if astJSON == nil {
		return nil, fmt.Errorf("fixture %s missing ast.json", path)
	}
	if expected == nil {
		return nil, fmt.Errorf("fixture %s missing expected.tl", path)
	}

	module, err := ast.Decode(astJSON)
	if err != nil {
		return &Mismatch{Fixture: path, Expected: string(expected), Err: err}, nil
	}
	got, err := Emit(module)
	if err != nil {
		return &Mismatch{Fixture: path, Expected: string(expected), Err: err}, nil
	}
	if got != string(expected) {
		return &Mismatch{Fixture: path, Expected: string(expected), Got: got}, nil
	}
	return nil, nil
}
