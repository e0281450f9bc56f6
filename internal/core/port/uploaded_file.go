package port

import "io"

// UploadedFile - один файл из multipart-запроса
type UploadedFile struct {
	Filename string
	Size     int64
	Content  io.Reader
}
