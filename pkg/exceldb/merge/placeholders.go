package merge

import (
	"archive/zip"
	"fmt"
	"html"
	"io"
	"regexp"
	"sort"
	"strings"
)

const documentPart = "word/document.xml"

var (
	templatePart = regexp.MustCompile(`^word/(document|header\d*|footer\d*)\.xml$`)
	xmlTag       = regexp.MustCompile(`<[^>]*>`)
	expression   = regexp.MustCompile(`\{\{\s*(.*?)\s*\}\}`)
	loopHead     = regexp.MustCompile(`^for\s+(?:(\w+)\s*,\s*)?(\w+)\s+in\s+(\w+)$`)
	identPath    = regexp.MustCompile(`^[A-Za-z_]\w*(?:\.[A-Za-z_]\w*)*$`)
)

// placeholders is what a template reads from its data.
type placeholders struct {
	names  []string
	top    []string
	rows   []string
	groups map[string]bool
	seen   map[string]map[string]bool
}

func newPlaceholders() *placeholders {
	return &placeholders{
		groups: make(map[string]bool),
		seen: map[string]map[string]bool{
			"names": {},
			"top":   {},
			"rows":  {},
		},
	}
}

func (p *placeholders) add(list string, dst *[]string, name string) {
	if p.seen[list][name] {
		return
	}
	p.seen[list][name] = true
	*dst = append(*dst, name)
}

// scan records the placeholders of one part's text. Only plain variables,
// loop variables and loop heads are recorded; conditions and function
// calls are left to the renderer.
func (p *placeholders) scan(text string) {
	var loops [][]string
	for _, m := range expression.FindAllStringSubmatch(text, -1) {
		expr := m[1]
		words := strings.Fields(expr)
		if len(words) == 0 {
			continue
		}
		switch words[0] {
		case "for":
			lm := loopHead.FindStringSubmatch(expr)
			if lm == nil {
				loops = append(loops, nil)
				continue
			}
			p.groups[lm[3]] = true
			p.add("names", &p.names, lm[3])
			loops = append(loops, []string{lm[1], lm[2]})
		case "if", "unless":
			loops = append(loops, nil)
		case "end":
			if len(loops) > 0 {
				loops = loops[:len(loops)-1]
			}
		case "else", "elsif", "include":
		default:
			if !identPath.MatchString(expr) {
				continue
			}
			root, rest, _ := strings.Cut(expr, ".")
			if bound(loops, root) {
				if rest != "" {
					key, _, _ := strings.Cut(rest, ".")
					p.add("rows", &p.rows, key)
					p.add("names", &p.names, key)
				}
				continue
			}
			p.add("top", &p.top, root)
			p.add("names", &p.names, root)
		}
	}
}

func bound(loops [][]string, name string) bool {
	for _, vars := range loops {
		for _, v := range vars {
			if v != "" && v == name {
				return true
			}
		}
	}
	return false
}

// scanTemplate reads the placeholders of the document, header and footer
// parts of the .docx at path, main document first.
func scanTemplate(path string) (*placeholders, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	parts := make(map[string]*zip.File)
	var names []string
	for _, f := range zr.File {
		if !templatePart.MatchString(f.Name) {
			continue
		}
		parts[f.Name] = f
		if f.Name != documentPart {
			names = append(names, f.Name)
		}
	}
	if _, ok := parts[documentPart]; !ok {
		return nil, fmt.Errorf("missing %s", documentPart)
	}
	sort.Strings(names)
	names = append([]string{documentPart}, names...)

	ph := newPlaceholders()
	for _, name := range names {
		text, err := partText(parts[name])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		ph.scan(text)
	}
	return ph, nil
}

// partText returns a part's character data. Markup is dropped so that a
// placeholder split across runs reads as one.
func partText(f *zip.File) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}
	return html.UnescapeString(xmlTag.ReplaceAllString(string(data), "")), nil
}
