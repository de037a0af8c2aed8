package builder

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sourcegraph/conc/pool"

	"github.com/theographic/theodb/pkg"
)

var collectionRecordsGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "theodb",
	Name:      "collection_records",
	Help:      "The number of records loaded per collection.",
}, []string{"collection"})

// CollectionSpec names a collection file and the secondary indexes to build for it.
type CollectionSpec struct {
	Name    string
	Indexes []string
}

type rawRecord struct {
	ID     any            `json:"id"`
	Fields map[string]any `json:"fields"`
}

// ReadCollectionFile decodes a JSON array of {id, fields} records.
// Records without an id are skipped.
func ReadCollectionFile(file string) ([]*Record, error) {
	buf, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	var raw []rawRecord
	if err := json.Unmarshal(buf, &raw); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", file, err)
	}

	records := make([]*Record, 0, len(raw))
	skipped := 0
	for _, r := range raw {
		if r.ID == nil || r.ID == "" {
			skipped++
			continue
		}
		records = append(records, NewRecord(formatIndexValue(r.ID), r.Fields))
	}

	if skipped > 0 {
		pkg.WarnLog("skipped", skipped, "records without an id in", file)
	}
	return records, nil
}

// LoadStore reads <dir>/<name>.json for every CollectionSpec. A collection whose file
// is missing or cannot be decoded is logged and left empty.
func LoadStore(dir string, specs []CollectionSpec) *Store {
	loaded := make([][]*Record, len(specs))

	p := pool.New().WithMaxGoroutines(runtime.GOMAXPROCS(0))
	for i, spec := range specs {
		p.Go(func() {
			file := path.Join(dir, spec.Name+".json")
			records, err := ReadCollectionFile(file)
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					pkg.WarnLog("could not find", file, "; collection", spec.Name, "is empty")
				} else {
					pkg.WarnLog("failed to load", file, err, "; collection", spec.Name, "is empty")
				}
				records = []*Record{}
			}
			loaded[i] = records
		})
	}
	p.Wait()

	collections := make([]*Collection, len(specs))
	for i, spec := range specs {
		collections[i] = NewCollection(spec.Name, loaded[i], spec.Indexes...)
		collectionRecordsGauge.WithLabelValues(spec.Name).Set(float64(collections[i].Len()))
		pkg.InfoLog("loaded", collections[i].Len(), "records into", spec.Name)
	}

	return NewStore(collections...)
}
