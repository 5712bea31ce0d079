// Package messages loads the language-keyed text shown by message
// triggers.
package messages

import (
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/samber/oops"
	"gopkg.in/yaml.v3"

	"github.com/automoto/jlvl/shared/levelcompiler"
)

// CodeCatalog is the oops code for catalog load failures.
const CodeCatalog = "MESSAGE_CATALOG"

// Catalog holds message text per language.
type Catalog struct {
	langs    map[string]map[uint16]string
	fallback string
}

// NewCatalog returns an empty catalog that falls back to the fallback
// language for ids a language does not define.
func NewCatalog(fallback string) *Catalog {
	return &Catalog{langs: map[string]map[uint16]string{}, fallback: fallback}
}

// LoadCatalog reads every <lang>.yaml file in dir. Each file maps a message
// id, or its registry name such as "welcome", to text.
func LoadCatalog(fsys fs.FS, dir, fallback string) (*Catalog, error) {
	matches, err := fs.Glob(fsys, path.Join(dir, "*.yaml"))
	if err != nil {
		return nil, oops.Code(CodeCatalog).In("messages").With("dir", dir).Wrapf(err, "glob %s", dir)
	}
	if len(matches) == 0 {
		return nil, oops.Code(CodeCatalog).In("messages").With("dir", dir).Errorf("no message files found in %s", dir)
	}

	c := NewCatalog(fallback)
	for _, p := range matches {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, oops.Code(CodeCatalog).In("messages").With("path", p).Wrapf(err, "read %s", p)
		}
		lang := strings.TrimSuffix(path.Base(p), ".yaml")
		if err := c.Add(lang, data); err != nil {
			return nil, oops.With("path", p).Wrap(err)
		}
	}
	return c, nil
}

// Add parses one language's YAML and merges it into the catalog.
func (c *Catalog) Add(lang string, data []byte) error {
	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return oops.Code(CodeCatalog).In("messages").With("lang", lang).Wrapf(err, "parse %s messages", lang)
	}

	table := c.langs[lang]
	if table == nil {
		table = map[uint16]string{}
		c.langs[lang] = table
	}
	for key, text := range raw {
		id, err := messageID(key)
		if err != nil {
			return oops.Code(CodeCatalog).In("messages").With("lang", lang).With("key", key).Wrap(err)
		}
		table[id] = text
	}
	return nil
}

func messageID(key string) (uint16, error) {
	if n, err := strconv.ParseUint(key, 10, 16); err == nil {
		return uint16(n), nil
	}
	if id, ok := levelcompiler.MessageIDs[key]; ok {
		return id, nil
	}
	return 0, oops.Errorf("unknown message %q", key)
}

// Languages returns the loaded language codes in sorted order.
func (c *Catalog) Languages() []string {
	out := make([]string, 0, len(c.langs))
	for lang := range c.langs {
		out = append(out, lang)
	}
	sort.Strings(out)
	return out
}

// Lookup returns the message table for lang.
func (c *Catalog) Lookup(lang string) Table {
	return Table{primary: c.langs[lang], fallback: c.langs[c.fallback]}
}

// Table resolves message ids for one language.
type Table struct {
	primary  map[uint16]string
	fallback map[uint16]string
}

// Message returns the text for id, trying the fallback language second.
func (t Table) Message(id uint16) (string, bool) {
	if s, ok := t.primary[id]; ok {
		return s, true
	}
	s, ok := t.fallback[id]
	return s, ok
}
