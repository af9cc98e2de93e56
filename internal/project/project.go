// Package project provides digitizer session files (.ddproj).
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"data-digitizer/internal/axis"
	"data-digitizer/internal/calibrate"
	"data-digitizer/internal/points"
)

// Extension is the session file extension.
const Extension = ".ddproj"

// CurrentVersion is written into every saved file.
const CurrentVersion = 1

// File represents a digitizer session file.
type File struct {
	Version  int       `json:"version"`
	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`

	// Image path (relative to the session file)
	ImagePath string `json:"image,omitempty"`

	// Image dimensions at save time
	Rows int `json:"rows,omitempty"`
	Cols int `json:"cols,omitempty"`

	XBounds calibrate.Bounds `json:"x_bounds"`
	YBounds calibrate.Bounds `json:"y_bounds"`
	XScale  axis.Scale       `json:"x_scale"`
	YScale  axis.Scale       `json:"y_scale"`

	TestX float64 `json:"test_x"`
	TestY float64 `json:"test_y"`

	Points []points.Point `json:"points"`
}

// New creates a session file with default axis bounds.
func New() *File {
	now := time.Now()
	return &File{
		Version:  CurrentVersion,
		Created:  now,
		Modified: now,
		XBounds:  calibrate.Bounds{Min: 0, Max: 1},
		YBounds:  calibrate.Bounds{Min: 0, Max: 1},
		TestX:    1,
		TestY:    1,
	}
}

// Load loads a session from a .ddproj file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var proj File
	if err := json.Unmarshal(data, &proj); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if proj.Version > CurrentVersion {
		return nil, fmt.Errorf("%s: unsupported session version %d", path, proj.Version)
	}

	return &proj, nil
}

// Save saves the session to a file.
func (p *File) Save(path string) error {
	p.Modified = time.Now()
	if p.Version == 0 {
		p.Version = CurrentVersion
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// SetImage sets the image path (relative to the session file).
func (p *File) SetImage(projectPath, imagePath string) {
	if imagePath == "" {
		p.ImagePath = ""
		return
	}
	rel, err := filepath.Rel(filepath.Dir(projectPath), imagePath)
	if err != nil {
		p.ImagePath = imagePath
	} else {
		p.ImagePath = rel
	}
}

// GetImagePath returns the absolute path to the image.
func (p *File) GetImagePath(projectPath string) string {
	if p.ImagePath == "" {
		return ""
	}
	if filepath.IsAbs(p.ImagePath) {
		return p.ImagePath
	}
	return filepath.Join(filepath.Dir(projectPath), p.ImagePath)
}

// Store rebuilds a point store from the saved points.
func (p *File) Store() *points.Store {
	s := points.NewStore()
	for _, pt := range p.Points {
		s.Append(pt)
	}
	return s
}

// Axes builds the calibration saved in the file.
func (p *File) Axes(store *points.Store) (calibrate.Axes, error) {
	return calibrate.BuildAxes(store, p.XBounds, p.YBounds, p.XScale, p.YScale)
}
