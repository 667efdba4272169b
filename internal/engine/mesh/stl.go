package mesh

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"os"
	"strconv"
	"strings"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"
)

const (
	stlHeaderSize   = 80
	stlTriangleSize = 50
)

// LoadSTL reads a binary or ASCII STL file.
func LoadSTL(path string) (*Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	d, err := ParseSTL(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	return d, nil
}

// ParseSTL decodes STL data. Files whose size matches the binary layout are
// read as binary even when the header starts with "solid".
func ParseSTL(raw []byte) (*Data, error) {
	if len(raw) >= stlHeaderSize+4 {
		count := binary.LittleEndian.Uint32(raw[stlHeaderSize:])
		if int64(len(raw)) == stlHeaderSize+4+int64(count)*stlTriangleSize {
			return parseBinarySTL(raw[stlHeaderSize+4:], int(count))
		}
	}
	if bytes.HasPrefix(bytes.TrimSpace(raw), []byte("solid")) {
		return parseASCIISTL(raw)
	}
	return nil, errors.Errorf("not an STL file (%d bytes)", len(raw))
}

type stlTriangle struct {
	Normal [3]float32
	V      [3][3]float32
	Attr   uint16
}

func parseBinarySTL(body []byte, count int) (*Data, error) {
	if count == 0 {
		return nil, errors.New("binary STL: no facets")
	}
	r := bytes.NewReader(body)
	d := &Data{
		Vertices: make([]Vertex, 0, count*3),
		Indices:  make([]uint32, 0, count*3),
	}
	var tri stlTriangle
	for i := 0; i < count; i++ {
		if err := binary.Read(r, binary.LittleEndian, &tri); err != nil {
			return nil, errors.Wrapf(err, "triangle %d", i)
		}
		d.addTriangle(tri.V, tri.Normal)
	}
	d.ComputeBounds()
	return d, nil
}

func parseASCIISTL(raw []byte) (*Data, error) {
	d := &Data{}
	sc := bufio.NewScanner(bytes.NewReader(raw))
	var (
		normal  [3]float32
		corners [3][3]float32
		n       int
		line    int
	)
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "facet":
			if len(fields) != 5 || fields[1] != "normal" {
				return nil, errors.Errorf("line %d: malformed facet", line)
			}
			v, err := parseFloats(fields[2:])
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", line)
			}
			normal, n = v, 0
		case "vertex":
			if len(fields) != 4 {
				return nil, errors.Errorf("line %d: malformed vertex", line)
			}
			if n == 3 {
				return nil, errors.Errorf("line %d: facet has more than 3 vertices", line)
			}
			v, err := parseFloats(fields[1:])
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", line)
			}
			corners[n] = v
			n++
		case "endfacet":
			if n != 3 {
				return nil, errors.Errorf("line %d: facet has %d vertices", line, n)
			}
			d.addTriangle(corners, normal)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "scan")
	}
	if len(d.Indices) == 0 {
		return nil, errors.New("no facets")
	}
	d.ComputeBounds()
	return d, nil
}

func parseFloats(fields []string) ([3]float32, error) {
	var out [3]float32
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return out, errors.Wrapf(err, "coordinate %q", f)
		}
		out[i] = float32(v)
	}
	return out, nil
}

// addTriangle appends a flat-shaded triangle. A zero stored normal is
// replaced by the face normal from the winding order.
func (d *Data) addTriangle(v [3][3]float32, normal [3]float32) {
	if normal == [3]float32{} {
		normal = faceNormal(v)
	}
	base := uint32(len(d.Vertices))
	for _, p := range v {
		d.Vertices = append(d.Vertices, Vertex{Position: p, Normal: normal})
	}
	d.Indices = append(d.Indices, base, base+1, base+2)
}

func faceNormal(v [3][3]float32) [3]float32 {
	e1 := [3]float32{v[1][0] - v[0][0], v[1][1] - v[0][1], v[1][2] - v[0][2]}
	e2 := [3]float32{v[2][0] - v[0][0], v[2][1] - v[0][1], v[2][2] - v[0][2]}
	n := [3]float32{
		e1[1]*e2[2] - e1[2]*e2[1],
		e1[2]*e2[0] - e1[0]*e2[2],
		e1[0]*e2[1] - e1[1]*e2[0],
	}
	l := math32.Sqrt(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])
	if l < 1e-12 {
		return [3]float32{}
	}
	return [3]float32{n[0] / l, n[1] / l, n[2] / l}
}
