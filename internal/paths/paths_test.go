package paths

import (
	"testing"

	"menedzer-plikow/internal/models"

	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	p, err := Resolve("uploads", nil, "A")
	require.NoError(t, err)
	require.Equal(t, "uploads/A", p)

	parent := &models.Node{Path: "uploads/A/B"}
	p, err = Resolve("uploads", parent, "x.txt")
	require.NoError(t, err)
	require.Equal(t, "uploads/A/B/x.txt", p)

	_, err = Resolve("uploads", parent, "")
	require.ErrorIs(t, err, ErrEmptyName)
}

func TestValidateName(t *testing.T) {
	name, err := ValidateName("  Raport  ")
	require.NoError(t, err)
	require.Equal(t, "Raport", name)

	for _, bad := range []string{"", "   ", ".", "..", "a/b", `a\b`} {
		_, err := ValidateName(bad)
		require.Error(t, err, "name %q should be rejected", bad)
	}
}

func TestReplaceLastAndRebase(t *testing.T) {
	require.Equal(t, "uploads/A/Y", ReplaceLast("uploads/A/X", "Y"))
	require.Equal(t, "Y", ReplaceLast("X", "Y"))
	require.Equal(t, "uploads/A", Parent("uploads/A/X"))

	require.Equal(t, "uploads/B/x.txt", Rebase("uploads/A/B/x.txt", "uploads/A/B", "uploads/B"))
	require.Equal(t, "uploads/B", Rebase("uploads/A/B", "uploads/A/B", "uploads/B"))
	// Wspólny prefiks nazwy to nie to samo co poddrzewo
	require.Equal(t, "uploads/A/BB", Rebase("uploads/A/BB", "uploads/A/B", "uploads/B"))
	require.True(t, IsWithin("uploads/A/B", "uploads/A"))
	require.False(t, IsWithin("uploads/AB", "uploads/A"))
}

func TestClassifyType(t *testing.T) {
	cases := map[string]string{
		"Report.DOCX":  models.TypeDocument,
		"notes.txt":    models.TypeDocument,
		"budget.xlsx":  models.TypeSpreadsheet,
		"deck.ppt":     models.TypePresentation,
		"scan.pdf":     models.TypePDF,
		"photo.JPEG":   models.TypeImage,
		"archive.zip":  models.TypeFile,
		"pdf":          models.TypeFile,
		".bashrc":      models.TypeFile,
		"trailingdot.": models.TypeFile,
	}
	for name, want := range cases {
		require.Equal(t, want, ClassifyType(name), name)
	}
}

func TestCandidates(t *testing.T) {
	require.Equal(t, "x.txt", UploadCandidate("x.txt", 0))
	require.Equal(t, "x (2).txt", UploadCandidate("x.txt", 2))
	require.Equal(t, "README (1)", UploadCandidate("README", 1))

	require.Equal(t, "Copy of Report.docx", CopyCandidate("Report.docx", false, 0))
	require.Equal(t, "Copy of Report (1).docx", CopyCandidate("Report.docx", false, 1))
	require.Equal(t, "Copy of v1.2 (3)", CopyCandidate("v1.2", true, 3))
}

func TestUnique(t *testing.T) {
	taken := map[string]bool{"Copy of a.txt": true, "Copy of a (1).txt": true}
	name, err := Unique(func(n int) string { return CopyCandidate("a.txt", false, n) },
		func(name string) (bool, error) { return taken[name], nil })
	require.NoError(t, err)
	require.Equal(t, "Copy of a (2).txt", name)
}

func TestUniqueGivesUp(t *testing.T) {
	calls := 0
	_, err := Unique(func(n int) string { return UploadCandidate("a.txt", n) },
		func(string) (bool, error) { calls++; return true, nil })
	require.ErrorIs(t, err, ErrNoFreeName)
	require.Equal(t, maxCandidates, calls)
}
