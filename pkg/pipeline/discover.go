package pipeline

import (
	"bufio"
	"os"
	"slices"
	"strings"

	"github.com/ndexcontent/tcgaloader/pkg/errors"
)

// Discovery is the file selection of a batch.
type Discovery struct {
	// Files are base names inside the data directory, sorted.
	Files []string
	// Missing are network list entries with no matching file.
	Missing []string
}

// Discover selects the regular files of opts.DataDir that pass the
// patterns and, when a network list is set, appear in it.
func Discover(opts Options) (*Discovery, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(opts.DataDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "data directory %s", opts.DataDir)
		}
		return nil, err
	}

	var listed map[string]bool
	if opts.NetworkList != "" {
		names, err := ReadNetworkList(opts.NetworkList)
		if err != nil {
			return nil, err
		}
		listed = make(map[string]bool, len(names))
		for _, n := range names {
			listed[n] = false
		}
	}

	d := &Discovery{}
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		name := e.Name()
		if listed != nil {
			if _, ok := listed[name]; !ok {
				continue
			}
			listed[name] = true
		}
		if opts.Match(name) {
			d.Files = append(d.Files, name)
		}
	}
	for name, found := range listed {
		if !found {
			d.Missing = append(d.Missing, name)
		}
	}
	slices.Sort(d.Files)
	slices.Sort(d.Missing)
	return d, nil
}

// ReadNetworkList reads a network list file: one file name per line.
// Blank lines and lines starting with '#' are ignored. Every entry must be
// a plain file name.
func ReadNetworkList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "network list %s", path)
		}
		return nil, err
	}
	defer f.Close()

	var names []string
	sc := bufio.NewScanner(f)
	for line := 1; sc.Scan(); line++ {
		entry := strings.TrimSpace(sc.Text())
		if entry == "" || strings.HasPrefix(entry, "#") {
			continue
		}
		if err := errors.ValidateNetworkFilename(entry); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "%s:%d", path, line)
		}
		names = append(names, entry)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return names, nil
}
