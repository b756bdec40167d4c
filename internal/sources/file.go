package sources

import (
	"context"
	"fmt"
	"os"

	"github.com/chrissnell/circadian/internal/series"
)

// FileSource reads a CSV file from local disk
type FileSource struct {
	Path string
}

func (f *FileSource) Fetch(ctx context.Context) (series.RawSeries, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", f.Path, err)
	}
	defer file.Close()

	return series.ParseCSV(file)
}

func (f *FileSource) Describe() string {
	return "file:" + f.Path
}
