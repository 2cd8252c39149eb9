package repository

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

var (
	errTableFileIsDir = errors.New("table file is dir")
)

type Data struct {
	Items map[string]string `json:"items"`
}

type jsonRepo struct {
	path string
	log  *zap.Logger

	mu   sync.Mutex
	data *Data
}

// NewJSON loads path if it exists. Every mutation is written through.
func NewJSON(path string, log *zap.Logger) Repository {
	r := &jsonRepo{
		path: path,
		log:  log,
		data: &Data{Items: map[string]string{}},
	}

	err := r.readfile()
	if err != nil && !os.IsNotExist(err) {
		// only log, data will be empty and will be overwritten
		// on the next write
		r.log.Warn("failed reading json repo data file", zap.String("path", path), zap.Error(err))
	}

	return r
}

func (r *jsonRepo) readfile() error {
	finfo, err := os.Stat(r.path)
	if err != nil {
		return err
	}

	if finfo.IsDir() {
		return errTableFileIsDir
	}

	f, err := os.Open(r.path)
	if err != nil {
		return err
	}
	defer f.Close()

	data := &Data{}
	if err := json.NewDecoder(f).Decode(data); err != nil {
		return err
	}
	if data.Items == nil {
		data.Items = map[string]string{}
	}

	r.data = data
	return nil
}

func (r *jsonRepo) writefile() error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0o700); err != nil {
		return err
	}

	b, err := json.MarshalIndent(r.data, "", "  ")
	if err != nil {
		return err
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}

	return os.Rename(tmp, r.path)
}

func (r *jsonRepo) Get(_ context.Context, key string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.data.Items[key]
	if !ok {
		return "", ErrNotFound
	}

	return v, nil
}

func (r *jsonRepo) Set(_ context.Context, key string, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.data.Items[key] = value
	return r.writefile()
}

func (r *jsonRepo) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.data.Items[key]; !ok {
		return nil
	}

	delete(r.data.Items, key)
	return r.writefile()
}

func (r *jsonRepo) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.data.Items) == 0 {
		if _, err := os.Stat(r.path); os.IsNotExist(err) {
			return nil
		}
	}

	return r.writefile()
}
