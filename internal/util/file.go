package util

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"
)

// SniffContentType 读取文件头判断 MIME 类型，读完后回到文件开头
// allowed 为 MIME 前缀，如 "image/"
func SniffContentType(rs io.ReadSeeker, allowed ...string) (string, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(rs, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", err
	}
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	mimeType := http.DetectContentType(head[:n])
	for _, prefix := range allowed {
		if strings.HasPrefix(mimeType, prefix) {
			return mimeType, nil
		}
	}
	return mimeType, Validationf("unsupported file type %s", mimeType)
}

func HasAllowedExtension(filename string, allowed []string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, a := range allowed {
		if ext == a {
			return true
		}
	}
	return false
}
