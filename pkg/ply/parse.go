package ply

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

const (
	magicLine  = "ply"
	formatLine = "format ascii 1.0"

	// Declared counts are untrusted until the body is read.
	maxPrealloc = 1 << 16
)

// lineReader reads input strictly forward, one line at a time.
type lineReader struct {
	r    *bufio.Reader
	line int
}

// next returns the next line without its terminator.
// ok is false at end of input.
func (lr *lineReader) next() (text string, ok bool, err error) {
	s, err := lr.r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", false, fmt.Errorf("reading PLY line %d: %w", lr.line+1, err)
	}
	if err != nil && s == "" {
		return "", false, nil
	}
	lr.line++
	s = strings.TrimSuffix(s, "\n")
	s = strings.TrimSuffix(s, "\r")
	return s, true, nil
}

// ParseFile opens and parses a PLY file.
func ParseFile(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads an ASCII PLY stream and returns the fully populated Model.
// Any malformed line rejects the whole input; no partial Model is returned.
func Parse(r io.Reader) (*Model, error) {
	lr := &lineReader{r: bufio.NewReader(r)}

	elements, err := parseHeader(lr)
	if err != nil {
		return nil, err
	}

	model := &Model{
		elements: make(map[string]*Element, len(elements)),
	}
	for _, e := range elements {
		if err := parseBody(lr, e); err != nil {
			return nil, err
		}
		model.order = append(model.order, e.name)
		model.elements[e.name] = e
	}

	return model, nil
}

func parseHeader(lr *lineReader) ([]*Element, error) {
	line, ok, err := lr.next()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, truncatedError(ErrMalformedHeader, 1, "empty input")
	}
	if line != magicLine {
		return nil, headerError(lr.line, "expected %q, got %q", magicLine, line)
	}

	line, ok, err = lr.next()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, truncatedError(ErrMalformedHeader, 2, "missing format line")
	}
	if line != formatLine {
		return nil, headerError(lr.line, "unsupported format %q (only %q)", line, formatLine)
	}

	var elements []*Element
	var current *Element
	seen := make(map[string]bool)

	for {
		line, ok, err := lr.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, truncatedError(ErrMalformedHeader, lr.line+1, "missing end_header")
		}

		words := strings.Fields(line)
		if len(words) == 0 {
			return nil, headerError(lr.line, "blank header line")
		}

		switch words[0] {
		case "end_header":
			return elements, nil

		case "comment":

		case "element":
			if len(words) != 3 {
				return nil, headerError(lr.line, "element needs a name and a count")
			}
			count, err := strconv.Atoi(words[2])
			if err != nil || count < 0 {
				return nil, headerError(lr.line, "invalid element count %q", words[2])
			}
			if seen[words[1]] {
				return nil, headerError(lr.line, "duplicate element %q", words[1])
			}
			seen[words[1]] = true
			current = newElement(words[1], count)
			elements = append(elements, current)

		case "property":
			if current == nil {
				return nil, headerError(lr.line, "property before any element")
			}
			prop, err := parseProperty(words)
			if err != nil {
				return nil, headerError(lr.line, "%v", err)
			}
			if current.hasProperty(prop.Name) {
				return nil, headerError(lr.line, "duplicate property %q on element %q", prop.Name, current.name)
			}
			current.properties = append(current.properties, prop)
			if prop.Kind == ListProperty {
				current.lists[prop.Name] = make([][]float64, 0, min(current.count, maxPrealloc))
			} else {
				current.scalars[prop.Name] = make([]float64, 0, min(current.count, maxPrealloc))
			}

		default:
			return nil, headerError(lr.line, "unknown keyword %q", words[0])
		}
	}
}

// parseProperty reads "property <type> <name>" or
// "property list <count-type> <value-type> <name>".
func parseProperty(words []string) (Property, error) {
	if len(words) >= 2 && words[1] == "list" {
		if len(words) != 5 {
			return Property{}, fmt.Errorf("list property needs count type, value type and name")
		}
		return Property{
			Name:      words[4],
			Kind:      ListProperty,
			CountType: words[2],
			Type:      words[3],
		}, nil
	}
	if len(words) != 3 {
		return Property{}, fmt.Errorf("property needs a type and a name")
	}
	return Property{Name: words[2], Kind: ScalarProperty, Type: words[1]}, nil
}

func parseBody(lr *lineReader, e *Element) error {
	for i := 0; i < e.count; i++ {
		line, ok, err := lr.next()
		if err != nil {
			return err
		}
		if !ok {
			return truncatedError(ErrMalformedBody, lr.line+1,
				"element %q: got %d of %d instances", e.name, i, e.count)
		}
		if err := addInstance(e, line); err != nil {
			return bodyError(lr.line, "element %q instance %d: %v", e.name, i, err)
		}
	}
	return nil
}

// addInstance consumes one body line left to right against the element's
// property order. Values are appended only once the whole line is valid.
func addInstance(e *Element, line string) error {
	words := strings.Fields(line)
	if len(words) == 0 {
		return fmt.Errorf("blank line")
	}

	values := make([]float64, len(words))
	for i, w := range words {
		v, ok := parseNumber(w)
		if !ok {
			return fmt.Errorf("non-numeric token %q", w)
		}
		values[i] = v
	}

	scalars := make([]float64, 0, len(e.properties))
	var lists [][]float64

	pos := 0
	for _, p := range e.properties {
		if pos >= len(values) {
			return fmt.Errorf("missing value for property %q", p.Name)
		}
		switch p.Kind {
		case ScalarProperty:
			scalars = append(scalars, values[pos])
			pos++
		case ListProperty:
			n := values[pos]
			pos++
			if n < 0 || n != math.Trunc(n) || math.IsInf(n, 0) {
				return fmt.Errorf("invalid list length %v for property %q", n, p.Name)
			}
			if n > float64(len(values)-pos) {
				return fmt.Errorf("list %q declares %v values, %d available", p.Name, n, len(values)-pos)
			}
			k := int(n)
			lists = append(lists, append([]float64(nil), values[pos:pos+k]...))
			pos += k
		}
	}

	si, li := 0, 0
	for _, p := range e.properties {
		if p.Kind == ScalarProperty {
			e.scalars[p.Name] = append(e.scalars[p.Name], scalars[si])
			si++
		} else {
			e.lists[p.Name] = append(e.lists[p.Name], lists[li])
			li++
		}
	}
	return nil
}

// parseNumber accepts decimal notation only. Go's hex float syntax
// ("0x1p4") is not a PLY number.
func parseNumber(w string) (float64, bool) {
	digits := strings.TrimLeft(w, "+-")
	if len(digits) > 1 && digits[0] == '0' && (digits[1] == 'x' || digits[1] == 'X') {
		return 0, false
	}
	v, err := strconv.ParseFloat(w, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
