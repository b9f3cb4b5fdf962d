package media

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)

func TestSave(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := NewStorage(fs, "http://localhost:8080/uploads/")

	stored, err := s.Save("games/1/cover", "foo-cover.png", bytes.NewReader(pngBytes))
	require.NoError(t, err)
	require.Equal(t, "/games/1/cover/foo-cover.png", stored.Path)
	require.Equal(t, "http://localhost:8080/uploads/games/1/cover/foo-cover.png", stored.URL)
	require.Equal(t, "image/png", stored.MimeType)
	require.EqualValues(t, len(pngBytes), stored.Size)

	data, err := afero.ReadFile(fs, stored.Path)
	require.NoError(t, err)
	require.Equal(t, pngBytes, data)

	f, err := s.FileSystem().Open(stored.Path)
	require.NoError(t, err)
	defer f.Close()
	served, err := io.ReadAll(f)
	require.NoError(t, err)
	require.Equal(t, pngBytes, served)
}

func TestSaveDoesNotOverwrite(t *testing.T) {
	s := NewStorage(afero.NewMemMapFs(), "http://cdn")

	first, err := s.Save("g", "a.png", bytes.NewReader(pngBytes))
	require.NoError(t, err)
	second, err := s.Save("g", "a.png", bytes.NewReader(pngBytes))
	require.NoError(t, err)
	third, err := s.Save("g", "a.png", bytes.NewReader(pngBytes))
	require.NoError(t, err)

	require.Equal(t, "/g/a.png", first.Path)
	require.Equal(t, "/g/a-1.png", second.Path)
	require.Equal(t, "/g/a-2.png", third.Path)
}

func TestSaveRejectsNonImages(t *testing.T) {
	s := NewStorage(afero.NewMemMapFs(), "http://cdn")

	_, err := s.Save("g", "notes.png", strings.NewReader("just some text, not an image"))
	require.ErrorIs(t, err, ErrUnsupportedType)

	_, err = s.Save("g", "empty.png", strings.NewReader(""))
	require.ErrorIs(t, err, ErrEmpty)
}

func TestSaveRejectsLargeFiles(t *testing.T) {
	s := NewStorage(afero.NewMemMapFs(), "http://cdn")
	big := append(append([]byte{}, pngBytes...), make([]byte, MaxFileSize)...)

	_, err := s.Save("g", "big.png", bytes.NewReader(big))
	require.ErrorIs(t, err, ErrTooLarge)
}

func TestCleanName(t *testing.T) {
	testCases := []struct {
		name     string
		expected string
	}{
		{"cover.jpg", "cover.jpg"},
		{"../../etc/passwd", "passwd.png"},
		{"..\\windows\\shot 1.jpg", "shot_1.jpg"},
		{"", "file.png"},
		{".hidden", "hidden.png"},
		{"Pokémon.jpg", "Pok_mon.jpg"},
	}

	for _, test := range testCases {
		require.Equal(t, test.expected, CleanName(test.name, ".png"), test.name)
	}
}
