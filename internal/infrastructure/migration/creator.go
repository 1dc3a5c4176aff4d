package migration

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"text/template"
	"time"
)

// versionWidth matches the zero padding of 000001_init_schema
const versionWidth = 6

var fileNamePattern = regexp.MustCompile(`^(\d+)_([a-z0-9_]+)\.(up|down)\.sql$`)

var upTemplate = template.Must(template.New("up").Parse(`-- {{.Base}}
-- {{.Description}}
-- Created {{.Created}}

BEGIN;

COMMIT;
`))

var downTemplate = template.Must(template.New("down").Parse(`-- {{.Base}} (rollback)
-- Created {{.Created}}

BEGIN;

COMMIT;
`))

// Migration is one versioned up/down pair
type Migration struct {
	Version uint
	Name    string
	HasDown bool
}

// Base returns the shared file name prefix, e.g. 000002_add_lot_numbers
func (m Migration) Base() string {
	return fmt.Sprintf("%0*d_%s", versionWidth, m.Version, m.Name)
}

// CreatedMigration reports the files written by CreateMigration
type CreatedMigration struct {
	Migration
	UpPath   string
	DownPath string
}

// CreateMigration writes an empty up/down pair numbered after the highest existing version
func CreateMigration(dir, name, description string) (*CreatedMigration, error) {
	slug := sanitizeName(name)
	if slug == "" {
		return nil, fmt.Errorf("migration name %q has no usable characters", name)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create migrations directory: %w", err)
	}

	existing, err := ListMigrations(os.DirFS(dir))
	if err != nil {
		return nil, err
	}
	var next uint = 1
	if n := len(existing); n > 0 {
		next = existing[n-1].Version + 1
	}

	cm := &CreatedMigration{Migration: Migration{Version: next, Name: slug, HasDown: true}}
	cm.UpPath = filepath.Join(dir, cm.Base()+".up.sql")
	cm.DownPath = filepath.Join(dir, cm.Base()+".down.sql")

	data := map[string]string{
		"Base":        cm.Base(),
		"Description": description,
		"Created":     time.Now().UTC().Format(time.RFC3339),
	}
	if data["Description"] == "" {
		data["Description"] = name
	}

	if err := writeTemplate(cm.UpPath, upTemplate, data); err != nil {
		return nil, err
	}
	if err := writeTemplate(cm.DownPath, downTemplate, data); err != nil {
		_ = os.Remove(cm.UpPath)
		return nil, err
	}
	return cm, nil
}

func writeTemplate(path string, tmpl *template.Template, data any) error {
	// O_EXCL keeps a concurrent create from clobbering a version
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()
	if err := tmpl.Execute(f, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// ListMigrations returns the migrations found in fsys ordered by version.
// A missing directory yields an empty list.
func ListMigrations(fsys fs.FS) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read migrations: %w", err)
	}

	byVersion := make(map[uint]*Migration)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		match := fileNamePattern.FindStringSubmatch(entry.Name())
		if match == nil {
			continue
		}
		v, err := strconv.ParseUint(match[1], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("bad migration version in %s: %w", entry.Name(), err)
		}
		m, ok := byVersion[uint(v)]
		if !ok {
			m = &Migration{Version: uint(v), Name: match[2]}
			byVersion[uint(v)] = m
		} else if m.Name != match[2] {
			return nil, fmt.Errorf("version %d is used by both %s and %s", v, m.Name, match[2])
		}
		if match[3] == "down" {
			m.HasDown = true
		}
	}

	out := make([]Migration, 0, len(byVersion))
	for _, m := range byVersion {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out, nil
}

// sanitizeName lowercases name and collapses separators into single underscores
func sanitizeName(name string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			pendingSep = true
		}
	}
	return b.String()
}
