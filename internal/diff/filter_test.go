package diff

import (
	"fmt"
	"strings"
	"testing"

	"github.com/Tomas-vilte/MateRisk/internal/domain/models"
	"github.com/stretchr/testify/assert"
)

const sampleDiff = `diff --git a/app/main.go b/app/main.go
index 1..2 100644
--- a/app/main.go
+++ b/app/main.go
@@ -1 +1 @@
-old
+new
diff --git a/pr-risk-agent/index.go b/pr-risk-agent/index.go
--- a/pr-risk-agent/index.go
+++ b/pr-risk-agent/index.go
@@ -1 +1 @@
-x
+y
diff --git a/docs/README.md b/docs/README.md
@@ -1 +1 @@
-a
+b
`

func TestFilterSelfReferences(t *testing.T) {
	t.Run("removes segments of the agent directory", func(t *testing.T) {
		filtered := FilterSelfReferences(sampleDiff, DefaultSelfDirectory)

		assert.NotContains(t, filtered, "pr-risk-agent/index.go")
		assert.Contains(t, filtered, "diff --git a/app/main.go b/app/main.go")
		assert.Contains(t, filtered, "diff --git a/docs/README.md b/docs/README.md")
		assert.Equal(t, 2, strings.Count(filtered, "diff --git "))
	})

	t.Run("is idempotent", func(t *testing.T) {
		once := FilterSelfReferences(sampleDiff, DefaultSelfDirectory)
		twice := FilterSelfReferences(once, DefaultSelfDirectory)

		assert.Equal(t, once, twice)
	})

	t.Run("catches files moved into the agent directory", func(t *testing.T) {
		raw := "diff --git a/tools/x.go b/pr-risk-agent/x.go\nrename from tools/x.go\n"

		assert.Equal(t, "", FilterSelfReferences(raw, DefaultSelfDirectory))
	})

	t.Run("keeps similarly named directories", func(t *testing.T) {
		raw := "diff --git a/pr-risk-agent-docs/a.md b/pr-risk-agent-docs/a.md\n+x\n"

		assert.Equal(t, raw, FilterSelfReferences(raw, DefaultSelfDirectory))
	})

	t.Run("text without markers is unchanged", func(t *testing.T) {
		assert.Equal(t, "no diff here", FilterSelfReferences("no diff here", DefaultSelfDirectory))
	})

	t.Run("empty self directory disables filtering", func(t *testing.T) {
		assert.Equal(t, sampleDiff, FilterSelfReferences(sampleDiff, ""))
	})
}

func TestFilterTree(t *testing.T) {
	t.Run("excludes agent paths before capping", func(t *testing.T) {
		entries := []models.TreeEntry{
			{Path: "pr-risk-agent", Kind: models.KindDirectory},
			{Path: "pr-risk-agent/index.go", Kind: models.KindFile},
		}
		for i := 0; i < 400; i++ {
			entries = append(entries, models.TreeEntry{Path: fmt.Sprintf("src/f%d.go", i), Kind: models.KindFile})
		}

		tree := FilterTree(entries, "/pr-risk-agent/")

		assert.Len(t, tree.Entries, models.MaxTreeEntries)
		assert.Equal(t, "src/f0.go", tree.Entries[0].Path)
		for _, e := range tree.Entries {
			assert.False(t, IsSelfPath(e.Path, DefaultSelfDirectory))
		}
	})
}

func TestTouchesSelf(t *testing.T) {
	assert.True(t, TouchesSelf(sampleDiff, DefaultSelfDirectory))
	assert.False(t, TouchesSelf(FilterSelfReferences(sampleDiff, DefaultSelfDirectory), DefaultSelfDirectory))
	assert.False(t, TouchesSelf("plain text", DefaultSelfDirectory))
}

func TestIsSelfPath(t *testing.T) {
	assert.True(t, IsSelfPath("pr-risk-agent", DefaultSelfDirectory))
	assert.True(t, IsSelfPath("pr-risk-agent/a/b.go", DefaultSelfDirectory))
	assert.False(t, IsSelfPath("pr-risk-agentx/b.go", DefaultSelfDirectory))
	assert.False(t, IsSelfPath("src/pr-risk-agent/b.go", DefaultSelfDirectory))
	assert.False(t, IsSelfPath("anything", ""))
}
