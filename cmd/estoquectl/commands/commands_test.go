package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestRootCmd_Subcomandos(t *testing.T) {
	root := NewRootCmd()
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"migrate", "seed", "user"})
}

func TestUserCreate_NivelInvalidoNoTocaLaBase(t *testing.T) {
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"user", "create", "--name", "Ana", "--email", "ana@x.dev", "--password", "p", "--level", "4"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--level")
}

func TestLoadReferenceData_ArchivoLatin1(t *testing.T) {
	dir := t.TempDir()
	raw, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte("nome;sigla\nMaranhão;MA\n"))
	require.NoError(t, err)
	statesPath := filepath.Join(dir, "estados.csv")
	require.NoError(t, os.WriteFile(statesPath, raw, 0o600))

	states, categories, err := loadReferenceData(statesPath, "")
	require.NoError(t, err)
	require.Len(t, states, 1)
	assert.Equal(t, "Maranhão", states[0].Name)
	assert.NotEmpty(t, categories, "sin archivo usa las categorías embebidas")
}

func TestLoadReferenceData_ArchivoInexistente(t *testing.T) {
	_, _, err := loadReferenceData(filepath.Join(t.TempDir(), "nada.csv"), "")
	assert.Error(t, err)
}
