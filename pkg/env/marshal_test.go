package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type inner struct {
	Role string `env:"ROLE"`
}

type sample struct {
	Name    string   `env:"NAME,required"`
	Limit   int      `env:"LIMIT" envDefault:"200"`
	Debug   bool     `env:"DEBUG"`
	Tags    []string `env:"TAGS"`
	User    inner    `envPrefix:"USER_"`
	Skipped string
	hidden  string `env:"HIDDEN"`
}

func TestToMap(t *testing.T) {
	m, err := ToMap(&sample{
		Name:   "Game night",
		Limit:  50,
		Tags:   []string{"a", "b"},
		User:   inner{Role: "gamemaster"},
		hidden: "x",
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"NAME":      "Game night",
		"LIMIT":     "50",
		"TAGS":      "a,b",
		"USER_ROLE": "gamemaster",
	}, m)
}

func TestToMap_Errors(t *testing.T) {
	_, err := ToMap((*sample)(nil))
	assert.Error(t, err)

	_, err = ToMap("nope")
	assert.Error(t, err)
}

func TestMarshalEnv_RoundTrip(t *testing.T) {
	content, err := MarshalEnv(sample{Name: "Game night #3", Limit: 25, Debug: true})
	require.NoError(t, err)

	parsed, err := godotenv.Unmarshal(content)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"NAME":  "Game night #3",
		"LIMIT": "25",
		"DEBUG": "true",
	}, parsed)
}

func TestMarshalEnv_Empty(t *testing.T) {
	content, err := MarshalEnv(&sample{})
	require.NoError(t, err)
	assert.Empty(t, content)
}

func TestWriteEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runtime", ".env")

	require.NoError(t, WriteEnv(path, &sample{Name: "first"}, false))
	assert.Error(t, WriteEnv(path, &sample{Name: "second"}, false), "refuses to overwrite")

	require.NoError(t, WriteEnv(path, &sample{Name: "second"}, true))
	env, err := godotenv.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "second", env["NAME"])

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
