package media

// FakeStorage 在記憶體中記錄儲存與刪除的路徑
type FakeStorage struct {
	SaveFn  func(img *Image) (string, error)
	Removed []string
}

func (f *FakeStorage) Save(img *Image) (string, error) {
	if f.SaveFn != nil {
		return f.SaveFn(img)
	}
	return ImageDir + "/fake" + img.Ext, nil
}

func (f *FakeStorage) Remove(path string) error {
	f.Removed = append(f.Removed, path)
	return nil
}

func (f *FakeStorage) URL(path string) string {
	if path == "" {
		return ""
	}
	return "http://media.test/" + path
}
