// Package roster loads the list of wait staff from a delimited text file.
//
// The file holds one "staffId,name" record per line. Only the first comma
// separates the fields, so names may contain commas. Blank lines and lines
// starting with '#' are skipped. Malformed lines are logged and skipped.
// A missing or unreadable file yields an empty roster.
package roster

import (
	"bufio"
	"errors"
	"io"
	"io/fs"
	"os"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/tableside/pkg/types"
)

// Directory is a loaded roster, keyed by staff ID.
type Directory struct {
	staff []types.WaitStaff
	byID  map[string]types.WaitStaff
}

// Load reads the roster at path. It never fails: I/O errors are logged and
// produce an empty directory.
func Load(path string, log *zap.Logger) *Directory {
	if log == nil {
		log = zap.NewNop()
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Info("roster file not found, starting with empty roster", zap.String("path", path))
		} else {
			log.Warn("roster file unreadable, starting with empty roster", zap.String("path", path), zap.Error(err))
		}
		return New(nil)
	}
	defer f.Close()

	d := Parse(f, log.With(zap.String("path", path)))
	log.Info("roster loaded", zap.String("path", path), zap.Int("staff", d.Len()))
	return d
}

// Parse reads roster records from r. A read error ends parsing; records read
// up to that point are kept.
func Parse(r io.Reader, log *zap.Logger) *Directory {
	if log == nil {
		log = zap.NewNop()
	}
	var staff []types.WaitStaff
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ws, ok := parseLine(line)
		if !ok {
			log.Warn("skipping malformed roster line", zap.Int("line", lineNo), zap.String("text", line))
			continue
		}
		staff = append(staff, ws)
	}
	if err := sc.Err(); err != nil {
		log.Warn("roster read interrupted", zap.Int("line", lineNo), zap.Error(err))
	}
	return New(staff)
}

func parseLine(line string) (types.WaitStaff, bool) {
	parts := strings.SplitN(line, ",", 2)
	if len(parts) != 2 {
		return types.WaitStaff{}, false
	}
	ws, err := types.NewWaitStaff(parts[0], parts[1])
	if err != nil {
		return types.WaitStaff{}, false
	}
	return ws, true
}

// New builds a directory from records. A later record with the same ID
// replaces the earlier one but keeps its position.
func New(staff []types.WaitStaff) *Directory {
	d := &Directory{byID: make(map[string]types.WaitStaff, len(staff))}
	for _, ws := range staff {
		if _, dup := d.byID[ws.ID]; dup {
			for i := range d.staff {
				if d.staff[i].ID == ws.ID {
					d.staff[i] = ws
				}
			}
		} else {
			d.staff = append(d.staff, ws)
		}
		d.byID[ws.ID] = ws
	}
	return d
}

// Lookup returns the staff member with the given ID.
func (d *Directory) Lookup(id string) (types.WaitStaff, bool) {
	ws, ok := d.byID[strings.TrimSpace(id)]
	return ws, ok
}

// Staff returns the roster in file order.
func (d *Directory) Staff() []types.WaitStaff {
	out := make([]types.WaitStaff, len(d.staff))
	copy(out, d.staff)
	return out
}

// IDs returns the sorted staff IDs.
func (d *Directory) IDs() []string {
	ids := make([]string, 0, len(d.byID))
	for id := range d.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of staff members.
func (d *Directory) Len() int { return len(d.staff) }

// Empty reports whether the roster has no staff.
func (d *Directory) Empty() bool { return len(d.staff) == 0 }
