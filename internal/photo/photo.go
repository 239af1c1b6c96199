// Package photo 解析註冊時拍攝的 data URI 照片並交給儲存後端保存
package photo

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrDecode   = errors.New("invalid photo data")
	ErrNotFound = errors.New("photo not found")
)

// Store 是照片的儲存後端 (本機目錄或 S3)
type Store interface {
	Save(ctx context.Context, name string, data []byte, contentType string) error
	Open(ctx context.Context, name string) (io.ReadCloser, string, error)
	Delete(ctx context.Context, name string) error
}

var newID = uuid.NewString

// Decode 解析 "data:image/jpeg;base64,...." 形式的字串，回傳內容與 MIME type
func Decode(dataURI string) ([]byte, string, error) {
	header, payload, ok := strings.Cut(dataURI, ",")
	if !ok || payload == "" {
		return nil, "", fmt.Errorf("%w: missing payload", ErrDecode)
	}
	contentType := "image/jpeg"
	if meta, found := strings.CutPrefix(header, "data:"); found {
		mime, _, _ := strings.Cut(meta, ";")
		if mime != "" {
			contentType = mime
		}
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, "", fmt.Errorf("%w: unsupported type %q", ErrDecode, contentType)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if len(data) == 0 {
		return nil, "", fmt.Errorf("%w: empty image", ErrDecode)
	}
	return data, contentType, nil
}

// NewFilename 以 UUID 產生不會碰撞的檔名
func NewFilename(contentType string) string {
	return "user_" + newID() + extension(contentType)
}

func extension(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".jpg"
	}
}

// ContentTypeOf 依副檔名推回 MIME type，供讀取本機檔案時使用
func ContentTypeOf(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	case ".gif":
		return "image/gif"
	default:
		return "image/jpeg"
	}
}

// validName 拒絕含路徑或隱藏檔的名稱
func validName(name string) bool {
	return name != "" &&
		name == filepath.Base(name) &&
		!strings.HasPrefix(name, ".") &&
		!strings.ContainsAny(name, `/\`)
}

// FakeStore 以 map 保存照片，供測試使用
type FakeStore struct {
	Files   map[string][]byte
	SaveErr error
	Deleted []string
}

func (f *FakeStore) Save(_ context.Context, name string, data []byte, _ string) error {
	if f.SaveErr != nil {
		return f.SaveErr
	}
	if f.Files == nil {
		f.Files = map[string][]byte{}
	}
	f.Files[name] = data
	return nil
}

func (f *FakeStore) Open(_ context.Context, name string) (io.ReadCloser, string, error) {
	data, ok := f.Files[name]
	if !ok {
		return nil, "", ErrNotFound
	}
	return io.NopCloser(strings.NewReader(string(data))), ContentTypeOf(name), nil
}

func (f *FakeStore) Delete(_ context.Context, name string) error {
	f.Deleted = append(f.Deleted, name)
	delete(f.Files, name)
	return nil
}
