package mesh

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"oss.terrastruct.com/xdefer"
)

// su2ElementTypeMap maps SU2/VTK element type identifiers to our ElementType
var su2ElementTypeMap = map[int]ElementType{
	3:  Line,     // VTK_LINE
	5:  Triangle, // VTK_TRIANGLE
	9:  Quad,     // VTK_QUAD
	10: Tet,      // VTK_TETRA
	12: Hex,      // VTK_HEXAHEDRON
	13: Prism,    // VTK_WEDGE
	14: Pyramid,  // VTK_PYRAMID
}

// ReadSU2File reads an SU2 native format file
func ReadSU2File(filename string) (msh *Mesh, err error) {
	defer xdefer.Errorf(&err, "failed to read SU2 mesh %q", filename)
	var file *os.File
	if file, err = os.Open(filename); err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadSU2(file)
}

// ReadSU2 reads an SU2 native format mesh. Node and element ids are implicit
// and zero based.
func ReadSU2(r io.Reader) (*Mesh, error) {
	var (
		msh               = NewMesh()
		scanner           = bufio.NewScanner(r)
		ndime             int
		hasNDIME, hasPOIN bool
	)
	msh.FormatVersion = "su2"

	// nextLine returns the next non empty line with comments removed
	nextLine := func() (string, bool) {
		for scanner.Scan() {
			line := scanner.Text()
			if idx := strings.Index(line, "%"); idx >= 0 {
				line = line[:idx]
			}
			line = strings.TrimSpace(line)
			if line != "" {
				return line, true
			}
		}
		return "", false
	}

	for {
		line, ok := nextLine()
		if !ok {
			break
		}
		switch {
		case strings.HasPrefix(line, "NDIME="):
			hasNDIME = true
			if _, err := fmt.Sscanf(line, "NDIME=%d", &ndime); err != nil {
				return nil, fmt.Errorf("invalid NDIME line: %s", line)
			}
			if ndime != 2 && ndime != 3 {
				return nil, fmt.Errorf("unsupported dimension: NDIME=%d", ndime)
			}

		case strings.HasPrefix(line, "NPOIN="):
			if !hasNDIME {
				return nil, fmt.Errorf("NPOIN= found before NDIME=")
			}
			hasPOIN = true
			var npoin int
			if _, err := fmt.Sscanf(line, "NPOIN=%d", &npoin); err != nil {
				return nil, fmt.Errorf("invalid NPOIN line: %s", line)
			}
			for i := 0; i < npoin; i++ {
				nodeLine, ok := nextLine()
				if !ok {
					return nil, fmt.Errorf("unexpected EOF reading nodes")
				}
				fields := strings.Fields(nodeLine)
				if len(fields) < ndime {
					return nil, fmt.Errorf("invalid node line: expected at least %d coordinates", ndime)
				}
				coords := make([]float64, ndime)
				for j := range coords {
					var err error
					if coords[j], err = strconv.ParseFloat(fields[j], 64); err != nil {
						return nil, fmt.Errorf("invalid coordinate: %v", err)
					}
				}
				msh.AddNode(i, coords)
			}

		case strings.HasPrefix(line, "NELEM="):
			var nelem int
			if _, err := fmt.Sscanf(line, "NELEM=%d", &nelem); err != nil {
				return nil, fmt.Errorf("invalid NELEM line: %s", line)
			}
			elems := make([][]int, 0, nelem)
			types := make([]ElementType, 0, nelem)
			for i := 0; i < nelem; i++ {
				elemLine, ok := nextLine()
				if !ok {
					return nil, fmt.Errorf("unexpected EOF reading elements")
				}
				etype, nodes, err := parseSU2Element(elemLine)
				if err != nil {
					return nil, err
				}
				elems = append(elems, nodes)
				types = append(types, etype)
			}
			// Elements may precede points in the file, indices are checked at the end
			msh.EtoV = append(msh.EtoV, elems...)
			msh.ElementTypes = append(msh.ElementTypes, types...)
			for range elems {
				msh.ElementTags = append(msh.ElementTags, []int{0})
			}

		case strings.HasPrefix(line, "NMARK="):
			var nmark int
			if _, err := fmt.Sscanf(line, "NMARK=%d", &nmark); err != nil {
				return nil, fmt.Errorf("invalid NMARK line: %s", line)
			}
			for i := 0; i < nmark; i++ {
				markerLine, ok := nextLine()
				if !ok || !strings.HasPrefix(markerLine, "MARKER_TAG=") {
					return nil, fmt.Errorf("expected MARKER_TAG= for marker %d", i)
				}
				msh.Markers = append(msh.Markers,
					strings.TrimSpace(strings.TrimPrefix(markerLine, "MARKER_TAG=")))
				elemLine, ok := nextLine()
				var nMarkerElems int
				if !ok {
					return nil, fmt.Errorf("unexpected EOF reading marker elements")
				}
				if _, err := fmt.Sscanf(elemLine, "MARKER_ELEMS=%d", &nMarkerElems); err != nil {
					return nil, fmt.Errorf("invalid MARKER_ELEMS line: %s", elemLine)
				}
				for j := 0; j < nMarkerElems; j++ {
					if _, ok := nextLine(); !ok {
						return nil, fmt.Errorf("unexpected EOF reading boundary elements")
					}
				}
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file: %v", err)
	}
	if !hasNDIME {
		return nil, fmt.Errorf("missing required NDIME= section")
	}
	if !hasPOIN {
		return nil, fmt.Errorf("missing required NPOIN= section")
	}
	for k, elem := range msh.EtoV {
		for _, vi := range elem {
			if vi < 0 || vi >= len(msh.Vertices) {
				return nil, fmt.Errorf("element %d: node index %d out of range [0,%d)",
					k, vi, len(msh.Vertices))
			}
		}
	}
	msh.NumElements = len(msh.EtoV)
	msh.NumVertices = len(msh.Vertices)
	return msh, nil
}

func parseSU2Element(line string) (etype ElementType, nodes []int, err error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		err = fmt.Errorf("invalid element line: %s", line)
		return
	}
	var su2Type int
	if su2Type, err = strconv.Atoi(fields[0]); err != nil {
		err = fmt.Errorf("invalid element type: %v", err)
		return
	}
	var ok bool
	if etype, ok = su2ElementTypeMap[su2Type]; !ok {
		err = fmt.Errorf("unknown element type: %d", su2Type)
		return
	}
	numNodes := etype.GetNumNodes()
	if len(fields) < numNodes+1 {
		err = fmt.Errorf("element type %v expects %d nodes, got %d fields",
			etype, numNodes, len(fields)-1)
		return
	}
	// A trailing element id in legacy files is ignored
	nodes = make([]int, numNodes)
	for j := range nodes {
		if nodes[j], err = strconv.Atoi(fields[1+j]); err != nil {
			err = fmt.Errorf("invalid node index: %v", err)
			return
		}
	}
	return
}
