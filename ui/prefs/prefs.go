// Package prefs provides INI-based application preferences.
//
// Keys are written "section.key"; a key without a dot lives in the unnamed
// top section of the file.
package prefs

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/susji/tinyini"
)

const (
	appDir    = "data-digitizer"
	prefsFile = "settings.ini"
)

// Well-known preference keys.
const (
	KeyImageFolder    = "folders.image_folder"
	KeyHitFraction    = "digitizer.hit_fraction"
	KeyShiftFraction  = "digitizer.shift_fraction"
	KeyMarkerFraction = "digitizer.marker_fraction"
	KeyAutoFit        = "view.fit_to_window"
)

// Prefs stores application preferences as a key-value map.
type Prefs struct {
	mu     sync.RWMutex
	values map[string]string
	path   string
}

// DefaultPath returns ~/.config/data-digitizer/settings.ini.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(configDir, appDir, prefsFile)
}

// Load reads preferences from the default location.
// Returns a Prefs with defaults if the file doesn't exist or is invalid.
func Load() *Prefs {
	return LoadFile(DefaultPath())
}

// LoadFile reads preferences from path.
func LoadFile(path string) *Prefs {
	p := &Prefs{
		values: make(map[string]string),
		path:   path,
	}

	f, err := os.Open(path)
	if err != nil {
		return p
	}
	defer f.Close()

	if err := p.parse(f); err != nil {
		log.Printf("Ignoring preferences %s: %v", path, err)
		p.values = make(map[string]string)
	}
	return p
}

func (p *Prefs) parse(r io.Reader) error {
	sections, errs := tinyini.Parse(r)
	if len(errs) != 0 {
		for n, err := range errs {
			log.Printf("[%d] %v", n+1, err)
		}
		return errors.New("invalid preferences file")
	}
	for section, keys := range sections {
		for key, pairs := range keys {
			if len(pairs) == 0 {
				continue
			}
			// last assignment wins
			p.values[joinKey(section, key)] = pairs[len(pairs)-1].Value
		}
	}
	return nil
}

// Path returns the file the preferences are saved to.
func (p *Prefs) Path() string {
	return p.path
}

// Save writes preferences to disk.
func (p *Prefs) Save() error {
	p.mu.RLock()
	data := p.encode()
	p.mu.RUnlock()

	dir := filepath.Dir(p.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(p.path, data, 0o644)
}

func (p *Prefs) encode() []byte {
	bySection := make(map[string][]string)
	for k := range p.values {
		section, _ := splitKey(k)
		bySection[section] = append(bySection[section], k)
	}
	sections := make([]string, 0, len(bySection))
	for s := range bySection {
		sections = append(sections, s)
	}
	sort.Strings(sections)

	var buf bytes.Buffer
	for _, section := range sections {
		if section != "" {
			if buf.Len() > 0 {
				buf.WriteByte('\n')
			}
			fmt.Fprintf(&buf, "[%s]\n", section)
		}
		keys := bySection[section]
		sort.Strings(keys)
		for _, k := range keys {
			_, name := splitKey(k)
			fmt.Fprintf(&buf, "%s = %s\n", name, p.values[k])
		}
	}
	return buf.Bytes()
}

func joinKey(section, key string) string {
	if section == "" {
		return key
	}
	return section + "." + key
}

func splitKey(k string) (section, key string) {
	if i := strings.IndexByte(k, '.'); i >= 0 {
		return k[:i], k[i+1:]
	}
	return "", k
}

// Float returns a float64 preference, or 0 if not set.
func (p *Prefs) Float(key string) float64 {
	return p.FloatWithFallback(key, 0)
}

// FloatWithFallback returns a float64 preference, or fallback if not set
// or not a number.
func (p *Prefs) FloatWithFallback(key string, fallback float64) float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if v, ok := p.values[key]; ok {
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f
		}
	}
	return fallback
}

// SetFloat stores a float64 preference.
func (p *Prefs) SetFloat(key string, val float64) {
	p.SetString(key, strconv.FormatFloat(val, 'g', -1, 64))
}

// String returns a string preference, or "" if not set.
func (p *Prefs) String(key string) string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.values[key]
}

// SetString stores a string preference.
func (p *Prefs) SetString(key string, val string) {
	p.mu.Lock()
	p.values[key] = strings.TrimSpace(strings.ReplaceAll(val, "\n", " "))
	p.mu.Unlock()
}

// Bool returns a bool preference, or fallback if not set.
func (p *Prefs) Bool(key string, fallback bool) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if v, ok := p.values[key]; ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return b
		}
	}
	return fallback
}

// SetBool stores a bool preference.
func (p *Prefs) SetBool(key string, val bool) {
	p.SetString(key, strconv.FormatBool(val))
}
