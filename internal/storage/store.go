package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/rainfx/internal/metrics"
	"github.com/san-kum/rainfx/internal/rain"
)

const (
	metaFile   = "metadata.json"
	framesFile = "frames.csv"
)

var header = []string{
	"time", "rain_amount", "pulse_progress", "pulse_amplitude",
	"is_decreasing", "disable_secondary", "speed", "story",
	"pointer_x", "pointer_y", "pointer_down",
	"width", "height", "pixel_ratio",
}

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
	ID        string             `json:"id"`
	Scenario  string             `json:"scenario"`
	Timestamp time.Time          `json:"timestamp"`
	FPS       int                `json:"fps"`
	Duration  float64            `json:"duration"`
	Frames    int                `json:"frames"`
	Params    rain.Params        `json:"params"`
	Summary   map[string]float64 `json:"summary"`
}

func (s *Store) Save(scenario string, fps int, params rain.Params, frames []rain.RenderParams) (string, error) {
	traceID := fmt.Sprintf("%s_%d", scenario, time.Now().UnixNano())
	traceDir := filepath.Join(s.baseDir, traceID)

	if err := os.MkdirAll(traceDir, 0755); err != nil {
		return "", err
	}

	duration := 0.0
	if len(frames) > 0 {
		duration = frames[len(frames)-1].ElapsedTime
	}

	meta := TraceMetadata{
		ID:        traceID,
		Scenario:  scenario,
		Timestamp: time.Now(),
		FPS:       fps,
		Duration:  duration,
		Frames:    len(frames),
		Params:    params,
		Summary:   Summarize(frames),
	}

	if err := writeJSON(filepath.Join(traceDir, metaFile), meta); err != nil {
		return "", err
	}
	if err := writeFrames(filepath.Join(traceDir, framesFile), frames); err != nil {
		return "", err
	}
	return traceID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeFrames(path string, frames []rain.RenderParams) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, p := range frames {
		row := []string{
			formatFloat(p.ElapsedTime),
			formatFloat(p.RainAmount),
			formatFloat(p.PulseProgress),
			formatFloat(p.PulseAmplitude),
			strconv.FormatBool(p.IsDecreasing),
			strconv.FormatBool(p.DisableSecondaryEffect),
			formatFloat(p.SpeedMultiplier),
			strconv.FormatBool(p.StoryActive),
			formatFloat(p.Pointer.X),
			formatFloat(p.Pointer.Y),
			strconv.FormatBool(p.Pointer.Down),
			formatFloat(p.Viewport.Width),
			formatFloat(p.Viewport.Height),
			formatFloat(p.Viewport.PixelRatio),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// List returns stored traces, newest first.
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
		return traces[i].Timestamp.After(traces[j].Timestamp)
	})
	return traces, nil
}

func (s *Store) Load(traceID string) (*TraceMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, traceID, metaFile))
	if err != nil {
		return nil, err
	}

	var meta TraceMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadFrames(traceID string) ([]rain.RenderParams, error) {
	file, err := os.Open(filepath.Join(s.baseDir, traceID, framesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(header)

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []rain.RenderParams{}, nil
	}

	frames := make([]rain.RenderParams, 0, len(records)-1)
	for i, record := range records[1:] {
		p, err := parseFrame(record)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", framesFile, i+2, err)
		}
		frames = append(frames, p)
	}
	return frames, nil
}

func parseFrame(rec []string) (rain.RenderParams, error) {
	var (
		p   rain.RenderParams
		err error
	)
	floats := []struct {
		idx int
		dst *float64
	}{
		{0, &p.ElapsedTime},
		{1, &p.RainAmount},
		{2, &p.PulseProgress},
		{3, &p.PulseAmplitude},
		{6, &p.SpeedMultiplier},
		{8, &p.Pointer.X},
		{9, &p.Pointer.Y},
		{11, &p.Viewport.Width},
		{12, &p.Viewport.Height},
		{13, &p.Viewport.PixelRatio},
	}
	for _, f := range floats {
		if *f.dst, err = strconv.ParseFloat(rec[f.idx], 64); err != nil {
			return p, err
		}
	}

	bools := []struct {
		idx int
		dst *bool
	}{
		{4, &p.IsDecreasing},
		{5, &p.DisableSecondaryEffect},
		{7, &p.StoryActive},
		{10, &p.Pointer.Down},
	}
	for _, b := range bools {
		if *b.dst, err = strconv.ParseBool(rec[b.idx]); err != nil {
			return p, err
		}
	}
	return p, nil
}

// Summarize reduces a frame stream to the standard metrics.
func Summarize(frames []rain.RenderParams) map[string]float64 {
	if len(frames) == 0 {
		return map[string]float64{}
	}
	set := metrics.Standard()
	for _, p := range frames {
		set.Observe(p)
	}
	return set.Values()
}

// Recorder is a renderer that keeps every frame it is handed.
type Recorder struct {
	frames []rain.RenderParams
}

func (r *Recorder) Render(p rain.RenderParams) { r.frames = append(r.frames, p) }

func (r *Recorder) Frames() []rain.RenderParams { return r.frames }
