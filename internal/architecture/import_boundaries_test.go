package architecture_test

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Tests may cross layers to wire real repositories; only production files
// are held to the rules.
func TestImportBoundaries(t *testing.T) {
	files, err := collectGoFiles(internalRootDir())
	require.NoError(t, err)
	require.NotEmpty(t, files)

	violations := make([]string, 0)
	for _, file := range files {
		if isTestFile(file) {
			continue
		}

		sourcePkg := packageImportPath(file)
		rule, ok := findRule(sourcePkg)
		if !ok {
			continue
		}

		for _, importPath := range parseImports(t, file) {
			if !strings.HasPrefix(importPath, modulePath+"/") {
				continue
			}
			if hasPathPrefix(importPath, sourcePkg) {
				continue
			}
			if matchingForbiddenPrefix(importPath, rule.forbidden) == "" {
				continue
			}
			violations = append(violations,
				"governance: "+sourcePkg+" imports "+importPath+" via "+relToRepoRoot(file)+"; allowed direction: "+rule.hint,
			)
		}
	}

	if len(violations) > 0 {
		sort.Strings(violations)
		t.Fatalf("%s", strings.Join(violations, "\n"))
	}
}

func TestFindRule(t *testing.T) {
	rule, ok := findRule(modulePath + "/internal/service/feed")
	require.True(t, ok)
	require.Equal(t, modulePath+"/internal/service", rule.sourcePrefix)

	_, ok = findRule(modulePath + "/internal/app")
	require.False(t, ok)

	// A shared prefix is not a path prefix.
	_, ok = findRule(modulePath + "/internal/domainx")
	require.False(t, ok)
}
