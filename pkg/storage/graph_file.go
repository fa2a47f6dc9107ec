package storage

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/kelindar/binary"
	"github.com/lintang-b-s/nogivan/pkg/datastructure"
)

var (
	ErrGraphVersion = errors.New("unsupported graph file version")
)

type graphFile struct {
	Version uint32
	Nodes   []datastructure.Node
	Edges   []datastructure.FlatEdge
	Ways    []datastructure.Way
}

// EncodeGraph serializes a finalized graph and compresses it with zstd.
func EncodeGraph(g *datastructure.Graph) ([]byte, error) {
	bb, err := binary.Marshal(graphFile{
		Version: graphFileVersion,
		Nodes:   g.Nodes(),
		Edges:   g.Edges(),
		Ways:    g.Ways(),
	})
	if err != nil {
		return nil, fmt.Errorf("encode graph: %w", err)
	}

	out := bytes.NewBuffer(make([]byte, 0, len(bb)/4))
	if err := writeCompressed(out, bb); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func DecodeGraph(bbCompressed []byte) (*datastructure.Graph, error) {
	return readGraph(bytes.NewReader(bbCompressed))
}

func readGraph(r io.Reader) (*datastructure.Graph, error) {
	bb, err := readCompressed(r)
	if err != nil {
		return nil, err
	}

	var gf graphFile
	if err := binary.Unmarshal(bb, &gf); err != nil {
		return nil, fmt.Errorf("decode graph: %w", err)
	}
	if gf.Version != graphFileVersion {
		return nil, fmt.Errorf("%w: %d", ErrGraphVersion, gf.Version)
	}

	return datastructure.NewGraphFromParts(gf.Nodes, gf.Edges, gf.Ways), nil
}

func SaveGraph(path string, g *datastructure.Graph) error {
	bb, err := EncodeGraph(g)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	if err := os.WriteFile(path, bb, 0644); err != nil {
		return err
	}
	log.Printf("graph saved to %s (%d bytes)", path, len(bb))
	return nil
}

func LoadGraph(path string) (*datastructure.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	g, err := readGraph(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("load graph %s: %w", path, err)
	}
	log.Printf("graph loaded from %s: %d nodes, %d edges", path, g.GetNumNodes(), g.GetNumEdges())
	return g, nil
}
