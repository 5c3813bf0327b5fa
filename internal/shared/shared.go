// Package shared mirrors the latest stable gesture event into a
// memory-mapped file so external processes (overlay renderers,
// debuggers) can poll it without talking to the peer.
package shared

import (
	"encoding/json"
	"os"

	"github.com/edsrzf/mmap-go"
)

type EventMirror struct {
	file *os.File
	data mmap.MMap
	size int
}

func NewEventMirror(path string, size int) (*EventMirror, error) {
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, err
	}
	if err := file.Truncate(int64(size)); err != nil {
		file.Close()
		return nil, err
	}

	data, err := mmap.Map(file, mmap.RDWR, 0)
	if err != nil {
		file.Close()
		return nil, err
	}

	return &EventMirror{
		file: file,
		data: data,
		size: size,
	}, nil
}

// WriteJSON replaces the mirrored payload. Readers rely on the null
// terminator to find the end of the document.
func (m *EventMirror) WriteJSON(obj interface{}) error {
	jsonData, err := json.Marshal(obj)
	if err != nil {
		return err
	}
	if len(jsonData) >= m.size {
		return os.ErrInvalid
	}

	copy(m.data, jsonData)
	m.data[len(jsonData)] = 0 // null-terminate
	return nil
}

func (m *EventMirror) Close() error {
	if err := m.data.Unmap(); err != nil {
		return err
	}
	err := m.file.Close()
	os.Remove(m.file.Name())
	return err
}
