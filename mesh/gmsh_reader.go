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

// gmshElementType22 maps Gmsh element type numbers to our ElementType
var gmshElementType22 = map[int]ElementType{
	1:  Line,
	2:  Triangle,
	3:  Quad,
	4:  Tet,
	5:  Hex,
	6:  Prism,
	7:  Pyramid,
	15: Point,
}

// ReadGmsh22File reads a Gmsh MSH file format version 2.2
func ReadGmsh22File(filename string) (msh *Mesh, err error) {
	defer xdefer.Errorf(&err, "failed to read Gmsh mesh %q", filename)
	var file *os.File
	if file, err = os.Open(filename); err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadGmsh22(file)
}

// ReadGmsh22 reads an ASCII Gmsh 2.2 mesh. Only elements of the highest
// dimension present are kept; the lower dimension entities Gmsh writes for
// boundaries are dropped.
func ReadGmsh22(r io.Reader) (*Mesh, error) {
	var (
		scanner = bufio.NewScanner(r)
		msh     = NewMesh()
	)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch line {
		case "$MeshFormat":
			if err := readMeshFormat22(scanner, msh); err != nil {
				return nil, err
			}

		case "$Nodes":
			if err := readNodes22(scanner, msh); err != nil {
				return nil, err
			}

		case "$Elements":
			if err := readElements22(scanner, msh); err != nil {
				return nil, err
			}

		default:
			// Skip any other section, e.g. $PhysicalNames or $NodeData
			if strings.HasPrefix(line, "$") && !strings.HasPrefix(line, "$End") {
				if err := skipSection(scanner, "$End"+line[1:]); err != nil {
					return nil, err
				}
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner error: %v", err)
	}
	if msh.FormatVersion == "" {
		return nil, fmt.Errorf("could not find $MeshFormat section")
	}
	msh.dropLowerDimension()
	return msh, nil
}

// readMeshFormat22 reads the MeshFormat section
func readMeshFormat22(scanner *bufio.Scanner, msh *Mesh) error {
	if !scanner.Scan() {
		return fmt.Errorf("unexpected EOF in MeshFormat")
	}

	parts := strings.Fields(scanner.Text())
	if len(parts) < 3 {
		return fmt.Errorf("invalid MeshFormat line")
	}
	if !strings.HasPrefix(parts[0], "2.") {
		return fmt.Errorf("unsupported Gmsh format version: %s", parts[0])
	}
	if parts[1] != "0" {
		return fmt.Errorf("binary Gmsh files are not supported")
	}
	msh.FormatVersion = parts[0]
	return skipSection(scanner, "$EndMeshFormat")
}

// readNodes22 reads nodes in v2.2 format
func readNodes22(scanner *bufio.Scanner, msh *Mesh) error {
	if !scanner.Scan() {
		return fmt.Errorf("unexpected EOF in Nodes")
	}

	numNodes, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return fmt.Errorf("invalid node count: %v", err)
	}
	for i := 0; i < numNodes; i++ {
		if !scanner.Scan() {
			return fmt.Errorf("unexpected EOF reading nodes")
		}

		parts := strings.Fields(scanner.Text())
		if len(parts) < 4 {
			return fmt.Errorf("invalid node line: %s", scanner.Text())
		}

		nodeID, err := strconv.Atoi(parts[0])
		if err != nil {
			return fmt.Errorf("invalid node id: %v", err)
		}
		coords := make([]float64, 3)
		for j := range coords {
			if coords[j], err = strconv.ParseFloat(parts[1+j], 64); err != nil {
				return fmt.Errorf("node %d: invalid coordinate: %v", nodeID, err)
			}
		}
		msh.AddNode(nodeID, coords)
	}
	return skipSection(scanner, "$EndNodes")
}

// readElements22 reads elements in v2.2 format
func readElements22(scanner *bufio.Scanner, msh *Mesh) error {
	if !scanner.Scan() {
		return fmt.Errorf("unexpected EOF in Elements")
	}

	numElements, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return fmt.Errorf("invalid element count: %v", err)
	}
	for i := 0; i < numElements; i++ {
		if !scanner.Scan() {
			return fmt.Errorf("unexpected EOF reading elements")
		}

		parts := strings.Fields(scanner.Text())
		if len(parts) < 3 {
			return fmt.Errorf("invalid element line")
		}

		var header [3]int
		for j := range header {
			if header[j], err = strconv.Atoi(parts[j]); err != nil {
				return fmt.Errorf("invalid element line %q: %v", scanner.Text(), err)
			}
		}
		elemID, elemType, numTags := header[0], header[1], header[2]

		if numTags < 0 || len(parts) < 3+numTags {
			return fmt.Errorf("element %d: invalid element tags", elemID)
		}
		tags := make([]int, numTags)
		for j := 0; j < numTags; j++ {
			if tags[j], err = strconv.Atoi(parts[3+j]); err != nil {
				return fmt.Errorf("element %d: invalid tag: %v", elemID, err)
			}
		}

		etype, ok := gmshElementType22[elemType]
		if !ok {
			// Skip unknown element types
			continue
		}

		expectedNodes := etype.GetNumNodes()
		nodeStart := 3 + numTags
		if len(parts) < nodeStart+expectedNodes {
			return fmt.Errorf("element %d: expected %d nodes, got %d",
				elemID, expectedNodes, len(parts)-nodeStart)
		}
		nodeIDs := make([]int, expectedNodes)
		for j := 0; j < expectedNodes; j++ {
			if nodeIDs[j], err = strconv.Atoi(parts[nodeStart+j]); err != nil {
				return fmt.Errorf("element %d: invalid node id: %v", elemID, err)
			}
		}

		if err := msh.AddElement(etype, tags, nodeIDs); err != nil {
			return fmt.Errorf("element %d: %v", elemID, err)
		}
	}
	return skipSection(scanner, "$EndElements")
}

func skipSection(scanner *bufio.Scanner, endTag string) error {
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == endTag {
			return nil
		}
	}
	return fmt.Errorf("missing %s", endTag)
}
