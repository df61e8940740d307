package commands

import (
	"RGFlow/internal/service"
	"fmt"
	"os"
	"path/filepath"
)

// openInputs открывает файлы с диска для загрузки. MIME определяется по содержимому.
func openInputs(paths []string) ([]service.FileInput, func(), error) {
	var opened []*os.File
	closeAll := func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}
	inputs := make([]service.FileInput, 0, len(paths))
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			closeAll()
			return nil, func() {}, &service.FileReadError{Name: filepath.Base(p), Err: err}
		}
		opened = append(opened, f)
		inputs = append(inputs, service.FileInput{Name: filepath.Base(p), Reader: f})
	}
	return inputs, closeAll, nil
}

// dirSink пишет файлы в каталог, не перезаписывая существующие.
func dirSink(dir string) func(name, mime string, data []byte) error {
	return func(name, _ string, data []byte) error {
		p := filepath.Join(dir, filepath.Base(name))
		f, err := os.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err != nil {
			return err
		}
		if _, err := f.Write(data); err != nil {
			_ = f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Fprintf(Out, "Salvo: %s (%d bytes)\n", p, len(data))
		return nil
	}
}

func humanSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
