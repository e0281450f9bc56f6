package port

import (
	"context"
	"io"
)

// FileStoragePort - контракт blob-хранилища для загружаемых файлов.
// Возвращает публичный URL сохраненного файла.
type FileStoragePort interface {
	SaveFile(ctx context.Context, namespace, filename string, content io.Reader) (string, error)
}
