package osmparser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/lintang-b-s/nogivan/pkg/datastructure"
	"github.com/lintang-b-s/nogivan/pkg/util"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
)

var (
	ErrDuplicateWay      = errors.New("duplicate way id")
	ErrUnsupportedFormat = errors.New("unsupported map file format")
)

type Format int

const (
	FormatXML Format = iota
	FormatPBF
)

// FormatFromPath picks the file format from the extension: .osm/.xml or .pbf.
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".osm", ".xml":
		return FormatXML, nil
	case ".pbf":
		return FormatPBF, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// GraphBuilder receives every accepted way before any node.
type GraphBuilder interface {
	AddWay(id int64, nodeIDs []int64, oneWay bool, name string)
	AddNode(id int64, lat, lon float64) bool
}

var (
	excludedHighway = map[string]struct{}{
		"proposed":     {},
		"construction": {},
	}

	oneWayForward = map[string]struct{}{
		"yes":  {},
		"true": {},
		"1":    {},
	}
)

const oneWayReverse = "-1"

type ParseStats struct {
	Ways        int
	SkippedWays int
	Nodes       int
	KeptNodes   int
}

type OsmParser struct {
	wayIDs map[int64]struct{}
	stats  ParseStats
}

func NewOSMParser() *OsmParser {
	return &OsmParser{
		wayIDs: make(map[int64]struct{}),
	}
}

func (p *OsmParser) Stats() ParseStats {
	return p.stats
}

// Parse reads mapFile and returns the finalized graph.
func (p *OsmParser) Parse(ctx context.Context, mapFile string) (*datastructure.Graph, error) {
	format, err := FormatFromPath(mapFile)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(mapFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	g := datastructure.NewGraph()
	if err := p.ParseReader(ctx, f, format, g); err != nil {
		return nil, err
	}

	dropped := g.Finalize()
	log.Printf("graph: %d nodes, %d edges, %d edges dropped", g.GetNumNodes(), g.GetNumEdges(), dropped)
	return g, nil
}

/*
ParseReader. two passes over r: the first one adds every accepted way to g, the second one adds the nodes.
g only keeps nodes that some way references, so ways must be complete before the first node arrives.
*/
func (p *OsmParser) ParseReader(ctx context.Context, r io.ReadSeeker, format Format, g GraphBuilder) error {
	scanner := newScanner(ctx, r, format, true)
	// must not be parallel
	for scanner.Scan() {
		way, ok := scanner.Object().(*osm.Way)
		if !ok {
			continue
		}
		if err := p.processWay(way, g); err != nil {
			scanner.Close()
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return fmt.Errorf("scan ways: %w", err)
	}
	scanner.Close()

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return err
	}

	scanner = newScanner(ctx, r, format, false)
	defer scanner.Close()
	for scanner.Scan() {
		node, ok := scanner.Object().(*osm.Node)
		if !ok {
			continue
		}
		if (p.stats.Nodes+1)%50000 == 0 {
			log.Printf("processing openstreetmap nodes: %d...", p.stats.Nodes+1)
		}
		p.stats.Nodes++

		if g.AddNode(int64(node.ID), node.Lat, node.Lon) {
			p.stats.KeptNodes++
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan nodes: %w", err)
	}

	log.Printf("total osm ways: %d, skipped: %d, nodes kept: %d/%d", p.stats.Ways, p.stats.SkippedWays,
		p.stats.KeptNodes, p.stats.Nodes)
	return nil
}

func newScanner(ctx context.Context, r io.Reader, format Format, wayPass bool) osm.Scanner {
	if format == FormatPBF {
		scanner := osmpbf.New(ctx, r, 1)
		scanner.SkipRelations = true
		scanner.SkipNodes = wayPass
		scanner.SkipWays = !wayPass
		return scanner
	}
	return osmxml.New(ctx, r)
}

func (p *OsmParser) processWay(way *osm.Way, g GraphBuilder) error {
	id := int64(way.ID)
	if _, ok := p.wayIDs[id]; ok {
		return fmt.Errorf("%w: %d", ErrDuplicateWay, id)
	}
	p.wayIDs[id] = struct{}{}

	if len(way.Nodes) < 2 || !acceptOsmWay(way) {
		p.stats.SkippedWays++
		return nil
	}

	if (p.stats.Ways+1)%50000 == 0 {
		log.Printf("processing openstreetmap ways: %d...", p.stats.Ways+1)
	}
	p.stats.Ways++

	nodeIDs := make([]int64, 0, len(way.Nodes))
	for _, n := range way.Nodes {
		nodeIDs = append(nodeIDs, int64(n.ID))
	}

	oneWay, reverse := parseOneWay(way)
	if reverse {
		nodeIDs = util.ReverseG(nodeIDs)
	}

	g.AddWay(id, nodeIDs, oneWay, way.Tags.Find("name"))
	return nil
}

// acceptOsmWay. ways need a highway tag that is not proposed or under construction.
func acceptOsmWay(way *osm.Way) bool {
	highway := way.Tags.Find("highway")
	if highway == "" {
		return false
	}
	_, excluded := excludedHighway[highway]
	return !excluded
}

// parseOneWay returns whether the way is one-way, and whether travel goes against the node order (oneway=-1).
func parseOneWay(way *osm.Way) (bool, bool) {
	val := strings.ToLower(way.Tags.Find("oneway"))
	if val == oneWayReverse {
		return true, true
	}
	_, ok := oneWayForward[val]
	return ok, false
}
