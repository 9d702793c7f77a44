// Package media 解碼上傳的食譜圖片並存放在本機磁碟
package media

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

var (
	ErrInvalidImage = errors.New("invalid image")
	// ErrNotImage 表示內容可解碼但不是圖片
	ErrNotImage = errors.New("file is not an image")
)

// ImageDir 是食譜圖片相對於 media 根目錄的位置
const ImageDir = "recipes/images"

// Image 是解碼後的上傳圖片
type Image struct {
	Data []byte
	MIME string
	Ext  string
}

// DecodeDataURI 解析 "data:<mime>;base64,<payload>"；忽略宣告的 MIME，改以內容判斷
func DecodeDataURI(s string) (*Image, error) {
	header, payload, ok := strings.Cut(s, ",")
	if !ok || !strings.HasPrefix(header, "data:") || !strings.HasSuffix(header, ";base64") {
		return nil, fmt.Errorf("%w: expected a base64 data URI", ErrInvalidImage)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrInvalidImage)
	}

	mt := mimetype.Detect(data)
	for m := mt; m != nil; m = m.Parent() {
		if strings.HasPrefix(m.String(), "image/") {
			return &Image{Data: data, MIME: mt.String(), Ext: mt.Extension()}, nil
		}
	}
	return nil, fmt.Errorf("%w: detected %s", ErrNotImage, mt.String())
}

// Storage 保存圖片並將儲存路徑轉成 URL
type Storage interface {
	Save(img *Image) (string, error)
	Remove(path string) error
	URL(path string) string
}

// LocalStorage 將檔案寫在 Root 之下，並以 BaseURL 對外提供
type LocalStorage struct {
	Root    string
	BaseURL string
}

func NewLocalStorage(root, baseURL string) *LocalStorage {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &LocalStorage{Root: root, BaseURL: baseURL}
}

var newName = defaultName

func defaultName() string { return uuid.NewString() }

// Save 以隨機檔名儲存 img 並回傳相對路徑，例如 "recipes/images/3f1c....png"
func (s *LocalStorage) Save(img *Image) (string, error) {
	dir := filepath.Join(s.Root, filepath.FromSlash(ImageDir))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("media: %w", err)
	}
	rel := path.Join(ImageDir, newName()+img.Ext)
	if err := os.WriteFile(filepath.Join(s.Root, filepath.FromSlash(rel)), img.Data, 0o644); err != nil {
		return "", fmt.Errorf("media: %w", err)
	}
	return rel, nil
}

// Remove 刪除已儲存的檔案，檔案不存在不視為錯誤
func (s *LocalStorage) Remove(rel string) error {
	if rel == "" {
		return nil
	}
	clean := path.Clean("/" + rel)[1:]
	err := os.Remove(filepath.Join(s.Root, filepath.FromSlash(clean)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("media: %w", err)
	}
	return nil
}

func (s *LocalStorage) URL(rel string) string {
	if rel == "" {
		return ""
	}
	return s.BaseURL + rel
}
