package sqlinline

import (
	"go/ast"
	"go/parser"
	"go/token"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

var markerPattern = regexp.MustCompile(`^--sql [0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// Every query constant must start with a unique --sql <uuid> marker so the
// runner can tag its log lines.
func TestQueriesCarryUniqueMarkers(t *testing.T) {
	files, err := filepath.Glob("*.go")
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	seen := map[string]string{}
	fset := token.NewFileSet()
	for _, path := range files {
		if strings.HasSuffix(path, "_test.go") {
			continue
		}
		file, err := parser.ParseFile(fset, path, nil, 0)
		if err != nil {
			t.Fatalf("parse %s: %v", path, err)
		}
		ast.Inspect(file, func(n ast.Node) bool {
			vs, ok := n.(*ast.ValueSpec)
			if !ok {
				return true
			}
			for i, value := range vs.Values {
				lit, ok := value.(*ast.BasicLit)
				if !ok || lit.Kind != token.STRING || !strings.HasPrefix(lit.Value, "`") {
					continue
				}
				name := vs.Names[i].Name
				body := strings.Trim(lit.Value, "`")
				marker := strings.TrimSpace(strings.SplitN(strings.TrimLeft(body, "\n"), "\n", 2)[0])
				if !markerPattern.MatchString(marker) {
					t.Errorf("%s: %s has no valid --sql marker", path, name)
					continue
				}
				if prev, dup := seen[marker]; dup {
					t.Errorf("%s reuses the marker of %s", name, prev)
				}
				seen[marker] = name
			}
			return true
		})
	}
	if len(seen) == 0 {
		t.Fatalf("no queries found")
	}
}
