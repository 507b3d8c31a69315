package architecture_test

import (
	"go/parser"
	"go/token"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
)

const modulesImport = "inkwell/internal/modules/"

// moduleImports calls fn for every import of a module package made by a
// non-test file under root.
func moduleImports(t *testing.T, root string, fn func(file, importPath string)) {
	t.Helper()
	fset := token.NewFileSet()
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		node, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			return err
		}
		for _, imp := range node.Imports {
			importPath := strings.Trim(imp.Path.Value, `"`)
			if strings.Contains(importPath, modulesImport) {
				fn(filepath.ToSlash(path), importPath)
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk %s: %v", root, err)
	}
}

func TestHexagonalLayerImports(t *testing.T) {
	t.Parallel()
	moduleImports(t, filepath.Join("..", "modules"), func(file, importPath string) {
		module, layer := moduleName(file), detectLayer(file)
		if module == "" || layer == "" {
			return
		}
		if violatesLayerRule(module, layer, importPath) {
			t.Errorf("forbidden import in %s (%s): %s", file, layer, importPath)
		}
	})
}

// The dashboard and the platform packages sit outside the modules. The
// dashboard talks to them only through inbound ports and DTOs; platform code
// never sees them.
func TestOuterPackagesKeepToPorts(t *testing.T) {
	t.Parallel()
	moduleImports(t, filepath.Join("..", "ui"), func(file, importPath string) {
		if !isPortIn(importPath) && !isDTO(importPath) {
			t.Errorf("dashboard file %s reaches into %s", file, importPath)
		}
	})
	moduleImports(t, filepath.Join("..", "platform"), func(file, importPath string) {
		t.Errorf("platform file %s imports module package %s", file, importPath)
	})
}

func TestLayerRules(t *testing.T) {
	t.Parallel()
	cases := []struct {
		module, layer, importPath string
		want                      bool
	}{
		{"goals", "service", modulesImport + "goals/domain", false},
		{"goals", "service", modulesImport + "goals/adapter/out", true},
		{"goals", "usecase", modulesImport + "goals/service", false},
		{"goals", "usecase", modulesImport + "goals/adapter/in", true},
		{"goals", "adapter/out", modulesImport + "ledger/port/in", false},
		{"goals", "adapter/out", modulesImport + "ledger/dto", false},
		{"goals", "adapter/out", modulesImport + "ledger/service", true},
		{"goals", "adapter/in", modulesImport + "goals/domain", true},
		{"goals", "domain", modulesImport + "goals/port/out", true},
		{"ledger", "domain", modulesImport + "ledger/domain", false},
	}
	for _, tc := range cases {
		if got := violatesLayerRule(tc.module, tc.layer, tc.importPath); got != tc.want {
			t.Errorf("violatesLayerRule(%s, %s, %s) = %v, want %v", tc.module, tc.layer, tc.importPath, got, tc.want)
		}
	}
}

func moduleName(path string) string {
	parts := strings.Split(path, "/")
	for i := 0; i < len(parts)-1; i++ {
		if parts[i] == "modules" {
			return parts[i+1]
		}
	}
	return ""
}

func detectLayer(path string) string {
	for _, layer := range []string{"adapter/in", "adapter/out", "usecase", "service", "domain", "port/in", "port/out", "dto"} {
		if strings.Contains(path, "/"+layer+"/") {
			return layer
		}
	}
	return ""
}

func isPortIn(path string) bool {
	return strings.Contains(path, "/port/in/") || strings.HasSuffix(path, "/port/in")
}

func isDTO(path string) bool {
	return strings.Contains(path, "/dto/") || strings.HasSuffix(path, "/dto")
}

func violatesLayerRule(module, layer, importPath string) bool {
	if !strings.Contains(importPath, modulesImport+module+"/") {
		return !isPortIn(importPath) && !isDTO(importPath)
	}
	switch layer {
	case "adapter/in":
		return !isPortIn(importPath) && !isDTO(importPath)
	case "usecase":
		return strings.Contains(importPath, "/adapter/")
	case "service":
		return strings.Contains(importPath, "/adapter/") || strings.Contains(importPath, "/usecase/")
	case "domain":
		return !strings.HasSuffix(importPath, "/domain")
	default:
		return false
	}
}
