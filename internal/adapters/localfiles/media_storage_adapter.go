package localfiles

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/port"

	"github.com/google/uuid"
)

// MediaStorageAdapter сохраняет загружаемые файлы на локальный диск под
// MEDIA_ROOT и возвращает публичный URL вида <mediaURL>/<namespace>/<имя>.
// Имя файла получает случайный префикс, чтобы одинаковые имена не затирали
// друг друга.
type MediaStorageAdapter struct {
	mediaRoot string
	mediaURL  string
}

func NewMediaStorageAdapter(mediaRoot, mediaURL string) (*MediaStorageAdapter, error) {
	if mediaRoot == "" {
		return nil, fmt.Errorf("media root is required")
	}
	if err := os.MkdirAll(mediaRoot, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media root %q: %w", mediaRoot, err)
	}
	return &MediaStorageAdapter{
		mediaRoot: mediaRoot,
		mediaURL:  strings.TrimRight(mediaURL, "/"),
	}, nil
}

func (a *MediaStorageAdapter) SaveFile(ctx context.Context, namespace, filename string, content io.Reader) (string, error) {
	logger := contextkeys.LoggerFromContext(ctx)

	safeName := sanitizeFilename(filename)
	storedName := uuid.New().String()[:8] + "_" + safeName

	dir := filepath.Join(a.mediaRoot, namespace)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create media directory %q: %w", dir, err)
	}

	path := filepath.Join(dir, storedName)
	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create media file %q: %w", path, err)
	}
	defer dst.Close()

	written, err := io.Copy(dst, content)
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write media file %q: %w", path, err)
	}

	logger.Debug("Media file saved", port.Fields{
		"component": "MediaStorageAdapter",
		"path":      path,
		"bytes":     written,
	})

	return a.mediaURL + "/" + namespace + "/" + storedName, nil
}

// sanitizeFilename оставляет от клиентского имени только базовую часть
// и безопасные символы: никаких разделителей пути в имени на диске.
func sanitizeFilename(filename string) string {
	base := filepath.Base(filename)

	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	cleaned := strings.Trim(b.String(), "._")
	if cleaned == "" {
		return "file"
	}
	return cleaned
}
