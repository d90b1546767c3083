package codec

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

var (
	mu            sync.RWMutex
	imageEncoders = make(map[string]ImageEncoderBuilder)
	extensions    = make(map[string]string)
)

// Register makes an encoder available under name and the given file extensions
// (without the leading dot). It is meant to be called from init.
func Register(name string, builder ImageEncoderBuilder, exts ...string) {
	mu.Lock()
	defer mu.Unlock()

	imageEncoders[name] = builder
	extensions[name] = name
	for _, ext := range exts {
		extensions[strings.ToLower(ext)] = name
	}
}

func BuildImageEncoder(name string, s ImageSetting) (ImageEncoder, error) {
	mu.RLock()
	b, ok := imageEncoders[name]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("codec: can't find %s image encoder", name)
	}

	return b.BuildImageEncoder(s)
}

// FormatFromPath returns the registered encoder name matching the extension of path.
func FormatFromPath(path string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "" {
		return "", fmt.Errorf("codec: %s has no file extension", path)
	}

	mu.RLock()
	defer mu.RUnlock()
	name, ok := extensions[ext]
	if !ok {
		return "", fmt.Errorf("codec: no image encoder for .%s files", ext)
	}
	return name, nil
}

// Names returns the registered encoder names.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(imageEncoders))
	for name := range imageEncoders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
