package storage

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locvowork/skilltrack/internal/apperrors"
)

// smallest valid PNG header plus IHDR chunk start, enough for sniffing
var pngBytes = []byte{
	0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n',
	0x00, 0x00, 0x00, 0x0d, 'I', 'H', 'D', 'R',
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01, 0x08, 0x06, 0x00, 0x00, 0x00,
}

func TestLocalStorage_SavePhoto(t *testing.T) {
	root := t.TempDir()
	ls, err := NewLocalStorage(root, "/media/", 1<<20)
	require.NoError(t, err)

	url, err := ls.SavePhoto(context.Background(), bytes.NewReader(pngBytes), "image/png")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "/media/employee_photos/"), url)
	assert.True(t, strings.HasSuffix(url, ".png"), url)
	stored, err := os.ReadFile(filepath.Join(root, PhotoDir, filepath.Base(url)))
	require.NoError(t, err)
	assert.Equal(t, pngBytes, stored)

	require.NoError(t, ls.DeletePhoto(context.Background(), url))
	_, err = os.Stat(filepath.Join(root, PhotoDir, filepath.Base(url)))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStorage_RejectsUploads(t *testing.T) {
	testCases := map[string]struct {
		data         []byte
		declaredType string
	}{
		"declared as text":    {data: pngBytes, declaredType: "text/plain"},
		"content not image":   {data: []byte("%PDF-1.4 not a picture"), declaredType: "image/png"},
		"larger than maximum": {data: append(append([]byte{}, pngBytes...), make([]byte, 64)...), declaredType: "image/png"},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			root := t.TempDir()
			ls, err := NewLocalStorage(root, "/media", int64(len(pngBytes)+10))
			require.NoError(t, err)

			_, err = ls.SavePhoto(context.Background(), bytes.NewReader(tc.data), tc.declaredType)

			var verr *apperrors.ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Contains(t, verr.Fields, "photo")
			entries, _ := os.ReadDir(filepath.Join(root, PhotoDir))
			assert.Empty(t, entries)
		})
	}
}
