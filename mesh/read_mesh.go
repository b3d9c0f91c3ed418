package mesh

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ReadMeshFile reads a mesh file based on extension
func ReadMeshFile(filename string) (*Mesh, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".msh":
		return ReadGmsh22File(filename)
	case ".su2":
		return ReadSU2File(filename)
	default:
		return nil, fmt.Errorf("unsupported mesh format: %s", ext)
	}
}
