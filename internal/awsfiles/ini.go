package awsfiles

import (
	"fmt"

	"gopkg.in/ini.v1"
)

// section is the neutral parse result both shared files reduce to: a named
// section, its key/value pairs, and any comment lines attached to it.
type section struct {
	name     string
	keys     map[string]string
	comments []string
}

func parseINI(path string, data []byte) ([]section, error) {
	file, err := ini.LoadSources(ini.LoadOptions{
		SkipUnrecognizableLines: false,
	}, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, path, err)
	}

	var out []section
	for _, sec := range file.Sections() {
		if sec.Name() == ini.DefaultSection {
			// Keys before the first header have no profile to belong to.
			continue
		}
		s := section{
			name: sec.Name(),
			keys: make(map[string]string, len(sec.Keys())),
		}
		if c := sec.Comment; c != "" {
			s.comments = append(s.comments, c)
		}
		for _, key := range sec.Keys() {
			s.keys[key.Name()] = key.Value()
			if key.Comment != "" {
				s.comments = append(s.comments, key.Comment)
			}
		}
		out = append(out, s)
	}
	return out, nil
}
