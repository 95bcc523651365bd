package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pingsocial/internal/domain"
)

func TestLoadTribeSeeds_DefaultsWhenUnset(t *testing.T) {
	seeds, err := LoadTribeSeeds("")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultTribeSeeds(), seeds)
}

func TestLoadTribeSeeds_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tribes.yaml")
	content := "tribes:\n  - name: ' Hikers '\n    description: Trails\n  - name: Readers\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	seeds, err := LoadTribeSeeds(path)
	require.NoError(t, err)
	assert.Equal(t, []domain.TribeSeed{
		{Name: "Hikers", Description: "Trails"},
		{Name: "Readers"},
	}, seeds)
}

func TestLoadTribeSeeds_MissingFile(t *testing.T) {
	_, err := LoadTribeSeeds(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestParseTribeSeeds_Rejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"empty list", "tribes: []\n"},
		{"blank name", "tribes:\n  - name: '  '\n"},
		{"duplicate", "tribes:\n  - name: A\n  - name: A\n"},
		{"unknown key", "tribes:\n  - name: A\n    colour: red\n"},
		{"not yaml", "tribes: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTribeSeeds([]byte(tt.yaml))
			require.Error(t, err)
		})
	}
}
