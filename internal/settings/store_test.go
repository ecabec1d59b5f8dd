package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestStore_DefaultAndOverride(t *testing.T) {
	s := New()
	require.NoError(t, s.Define("a.b.c", WithDefault(cty.StringVal("nothing"))))

	v, err := s.Get("a.b.c")
	require.NoError(t, err)
	assert.Equal(t, cty.StringVal("nothing"), v)
	assert.Equal(t, "default", s.Origin("a.b.c"))

	require.NoError(t, s.Set("a.b.c", "something", "test"))
	v, err = s.Get("a.b.c")
	require.NoError(t, err)
	assert.Equal(t, cty.StringVal("something"), v)
	assert.Equal(t, "test", s.Origin("a.b.c"))
}

func TestStore_DefineRejectsDuplicatesAndBadNames(t *testing.T) {
	s := New()
	require.NoError(t, s.Define("server.web.port"))
	assert.ErrorIs(t, s.Define("server.web.port"), ErrDuplicate)
	assert.Error(t, s.Define("server..port"))
	assert.Equal(t, []string{"server.web.port"}, s.Keys())
}

func TestStore_IntValidator(t *testing.T) {
	s := New()
	require.NoError(t, s.Define("test", WithDefault(cty.NumberIntVal(0)), WithValidator(Int)))

	require.NoError(t, s.Set("test", "100", "test"))
	v, err := s.Get("test")
	require.NoError(t, err)
	n, ok := AsInt(v)
	require.True(t, ok)
	assert.Equal(t, 100, n)

	assert.ErrorIs(t, s.Set("test", "", "test"), ErrInvalidValue)
	assert.ErrorIs(t, s.Set("test", "1.5", "test"), ErrInvalidValue)
}

func TestStore_DefaultConvertedToValidatorType(t *testing.T) {
	s := New()
	require.NoError(t, s.Define("count", WithDefault(cty.StringVal("5")), WithValidator(Int)))
	v, err := s.Get("count")
	require.NoError(t, err)
	assert.Equal(t, cty.Number, v.Type())

	err = s.Define("flag", WithDefault(cty.StringVal("maybe")), WithValidator(Bool))
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestStore_StringDefaultParsedLikeOverride(t *testing.T) {
	s := New()
	require.NoError(t, s.Define("debug", WithDefault(cty.StringVal("yes")), WithValidator(Bool)))
	v, err := s.Get("debug")
	require.NoError(t, err)
	assert.Equal(t, cty.True, v)

	require.NoError(t, s.Set("debug", "no", "test"))
	v, err = s.Get("debug")
	require.NoError(t, err)
	assert.Equal(t, cty.False, v)

	require.NoError(t, s.Define("retries", WithDefault(cty.StringVal(" 3 ")), WithValidator(Int)))
	v, err = s.Get("retries")
	require.NoError(t, err)
	assert.True(t, v.RawEquals(cty.NumberIntVal(3)))
}

func TestStore_FileValidator(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "cert.pem")
	require.NoError(t, os.WriteFile(existing, []byte("x"), 0600))

	s := New()
	require.NoError(t, s.Define("server.web.ssl.certfile", WithValidator(File)))

	v, err := s.Get("server.web.ssl.certfile")
	require.NoError(t, err)
	assert.True(t, v.IsNull(), "an unset file key must be null")

	require.NoError(t, s.Set("server.web.ssl.certfile", existing, "test"))
	assert.ErrorIs(t, s.Set("server.web.ssl.certfile", existing+"x", "test"), ErrInvalidValue)
	assert.ErrorIs(t, s.Set("server.web.ssl.certfile", dir, "test"), ErrInvalidValue)
}

func TestStore_UndefinedKey(t *testing.T) {
	s := New()
	_, err := s.Get("nope")
	assert.ErrorIs(t, err, ErrUndefined)
	assert.ErrorIs(t, s.Set("nope", "1", "test"), ErrUndefined)

	_, ok := s.Lookup("nope")
	assert.False(t, ok)
}

func TestStore_ApplyEnv(t *testing.T) {
	s := New()
	require.NoError(t, s.Define("db.port", WithValidator(Int), WithEnv("DB_PORT")))
	require.NoError(t, s.Define("db.host", WithDefault(cty.StringVal("localhost")), WithEnv("DB_HOST")))
	require.NoError(t, s.Define("db.name", WithDefault(cty.StringVal("app"))))

	env := map[string]string{"DB_PORT": "5432"}
	n, err := s.ApplyEnv(func(k string) (string, bool) { v, ok := env[k]; return v, ok })
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	port, _ := s.Lookup("db.port")
	assert.Equal(t, cty.NumberIntVal(5432), port)
	assert.Equal(t, "env:DB_PORT", s.Origin("db.port"))
	host, _ := s.Lookup("db.host")
	assert.Equal(t, cty.StringVal("localhost"), host)

	env["DB_PORT"] = "not-a-port"
	_, err = s.ApplyEnv(func(k string) (string, bool) { v, ok := env[k]; return v, ok })
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestValidatorByName(t *testing.T) {
	for _, name := range ValidatorNames() {
		v, ok := ValidatorByName(name)
		require.True(t, ok, name)
		assert.Equal(t, name, v.Name)
	}
	_, ok := ValidatorByName("float")
	assert.False(t, ok)
	_, ok = ValidatorByName("string")
	assert.False(t, ok)
}

func TestParseBool(t *testing.T) {
	testCases := []struct {
		raw      string
		expected bool
		wantErr  bool
	}{
		{raw: "true", expected: true},
		{raw: "True", expected: true},
		{raw: "1", expected: true},
		{raw: "yes", expected: true},
		{raw: "false", expected: false},
		{raw: "OFF", expected: false},
		{raw: "0", expected: false},
		{raw: "maybe", wantErr: true},
		{raw: "", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.raw, func(t *testing.T) {
			b, err := ParseBool(tc.raw)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, b)
		})
	}
}
