package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dupfinder-ai/internal/ticket"
)

func writeDump(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestLoadDocuments(t *testing.T) {
	dir := t.TempDir()
	writeDump(t, dir, "GM-2_consolidated.txt", "second ticket")
	writeDump(t, dir, "GM-1_consolidated.txt", "first ticket")
	writeDump(t, dir, "notes.md", "ignored")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "GM-3_consolidated.txt"), 0755))

	docs, err := loadDocuments(dir, 0)
	require.NoError(t, err)
	require.Len(t, docs, 2)

	assert.Equal(t, "GM-1", docs[0].ID)
	assert.Equal(t, "first ticket", docs[0].Text)
	assert.Equal(t, "GM-1", docs[0].Metadata[ticket.MetaTicketID])
	assert.Equal(t, "GM-2", docs[1].ID)
}

func TestLoadDocuments_Limit(t *testing.T) {
	dir := t.TempDir()
	writeDump(t, dir, "GM-1_consolidated.txt", "a")
	writeDump(t, dir, "GM-2_consolidated.txt", "b")
	writeDump(t, dir, "GM-3_consolidated.txt", "c")

	docs, err := loadDocuments(dir, 2)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "GM-1", docs[0].ID)
	assert.Equal(t, "GM-2", docs[1].ID)
}

func TestLoadDocuments_MissingDir(t *testing.T) {
	_, err := loadDocuments(filepath.Join(t.TempDir(), "nope"), 0)
	assert.Error(t, err)
}
