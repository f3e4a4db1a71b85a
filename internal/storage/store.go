package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/wobble/internal/motion"
)

var ErrMalformedTrace = errors.New("storage: malformed trace")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type TraceMetadata struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Timestamp  time.Time     `json:"timestamp"`
	Seed       int64         `json:"seed"`
	IntervalMs int           `json:"interval_ms"`
	Ticks      int           `json:"ticks"`
	Params     motion.Params `json:"params"`
	// Behaviors maps element id to behaviour name.
	Behaviors map[string]string `json:"behaviors"`
}

// Sample is one surface write.
type Sample struct {
	Tick    int
	Element string
	motion.Transform
}

func (s *Store) Save(meta TraceMetadata, samples []Sample) (string, error) {
	if meta.Name == "" {
		meta.Name = "trace"
	}
	now := time.Now()
	meta.ID = fmt.Sprintf("%s_%d", meta.Name, now.UnixNano())
	meta.Timestamp = now
	runDir := filepath.Join(s.baseDir, meta.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "trace.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write([]string{"tick", "element", "dx", "dy", "angle"}); err != nil {
		return "", err
	}
	for _, smp := range samples {
		row := []string{
			strconv.Itoa(smp.Tick),
			smp.Element,
			strconv.FormatFloat(smp.DX, 'f', 6, 64),
			strconv.FormatFloat(smp.DY, 'f', 6, 64),
			strconv.FormatFloat(smp.Angle, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return meta.ID, nil
}

// List returns traces oldest first. Directories without readable metadata
// are skipped.
func (s *Store) List() ([]TraceMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []TraceMetadata{}, nil
		}
		return nil, err
	}

	traces := make([]TraceMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		traces = append(traces, *meta)
	}

	sort.Slice(traces, func(i, j int) bool {
		return traces[i].Timestamp.Before(traces[j].Timestamp)
	})
	return traces, nil
}

func (s *Store) Load(id string) (*TraceMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta TraceMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadSamples(id string) ([]Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, id, "trace.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []Sample{}, nil
	}

	samples := make([]Sample, 0, len(records)-1)
	for i, rec := range records[1:] {
		if len(rec) != 5 {
			return nil, fmt.Errorf("%w: line %d has %d fields", ErrMalformedTrace, i+2, len(rec))
		}
		tick, err := strconv.Atoi(rec[0])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedTrace, i+2, err)
		}
		var vals [3]float64
		for j := range vals {
			if vals[j], err = strconv.ParseFloat(rec[2+j], 64); err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedTrace, i+2, err)
			}
		}
		samples = append(samples, Sample{
			Tick:      tick,
			Element:   rec[1],
			Transform: motion.Transform{DX: vals[0], DY: vals[1], Angle: vals[2]},
		})
	}
	return samples, nil
}

// Series extracts one field of one element's samples, in tick order.
func Series(samples []Sample, element string, field func(motion.Transform) float64) []float64 {
	out := make([]float64, 0)
	for _, smp := range samples {
		if smp.Element == element {
			out = append(out, field(smp.Transform))
		}
	}
	return out
}

func DX(t motion.Transform) float64    { return t.DX }
func DY(t motion.Transform) float64    { return t.DY }
func Angle(t motion.Transform) float64 { return t.Angle }
