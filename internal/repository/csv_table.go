package repository

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrStorage envuelve cualquier fallo de lectura/escritura de las tablas.
var ErrStorage = errors.New("storage failure")

func storageErr(op, path string, err error) error {
	return fmt.Errorf("%w: %s %s: %v", ErrStorage, op, path, err)
}

// table es un CSV en memoria que conserva el header y el orden de columnas
// original, incluyendo columnas que el servicio no usa.
type table struct {
	header []string
	index  map[string]int
	rows   [][]string
}

func newTable(header []string) *table {
	t := &table{header: header, index: make(map[string]int, len(header))}
	for i, h := range header {
		name := strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := t.index[name]; !dup {
			t.index[name] = i
		}
	}
	return t
}

// get devuelve el valor de la columna o "" si la columna/celda no existe.
func (t *table) get(row []string, col string) string {
	i, ok := t.index[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (t *table) set(row []string, col, v string) []string {
	i, ok := t.index[col]
	if !ok {
		return row
	}
	for len(row) < len(t.header) {
		row = append(row, "")
	}
	row[i] = v
	return row
}

// ensure agrega columnas faltantes al final del header.
func (t *table) ensure(cols ...string) {
	for _, c := range cols {
		if _, ok := t.index[c]; ok {
			continue
		}
		t.index[c] = len(t.header)
		t.header = append(t.header, c)
	}
}

// readTable lee el CSV completo. Si el archivo no existe devuelve os.ErrNotExist sin envolver.
func readTable(path string) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		return nil, storageErr("open", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err == io.EOF {
		return newTable(nil), nil
	}
	if err != nil {
		return nil, storageErr("read header", path, err)
	}

	t := newTable(header)
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, storageErr("read", path, err)
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" && len(header) > 1 {
			continue
		}
		t.rows = append(t.rows, rec)
	}
	return t, nil
}

// writeTable reescribe el archivo completo vía temp + rename en el mismo directorio.
func writeTable(path string, t *table) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return storageErr("create temp", path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op tras el rename

	w := csv.NewWriter(tmp)
	if err := w.Write(t.header); err != nil {
		tmp.Close()
		return storageErr("write header", path, err)
	}
	for _, row := range t.rows {
		for len(row) < len(t.header) {
			row = append(row, "")
		}
		if err := w.Write(row); err != nil {
			tmp.Close()
			return storageErr("write", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return storageErr("flush", path, err)
	}
	if err := tmp.Close(); err != nil {
		return storageErr("close", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return storageErr("rename", path, err)
	}
	return nil
}

// fileVersion es la huella (tamaño + mtime) usada como parte de las claves de cache.
func fileVersion(path string) (string, error) {
	st, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "none", nil
		}
		return "", storageErr("stat", path, err)
	}
	return fmt.Sprintf("%d-%d", st.Size(), st.ModTime().UnixNano()), nil
}
