package gpx

import (
	"encoding/xml"
	"io"
	"os"

	"github.com/lintang-b-s/nogivan/pkg/datastructure"
)

const (
	version   = "1.1"
	creator   = "Nogivan"
	namespace = "http://www.topografix.com/GPX/1/1"
)

type Waypoint struct {
	Lat float64 `xml:"lat,attr"`
	Lon float64 `xml:"lon,attr"`
}

type Document struct {
	XMLName   xml.Name   `xml:"gpx"`
	Xmlns     string     `xml:"xmlns,attr"`
	Version   string     `xml:"version,attr"`
	Creator   string     `xml:"creator,attr"`
	Waypoints []Waypoint `xml:"wpt"`
}

func NewDocument(path []datastructure.Coordinate) Document {
	wpts := make([]Waypoint, 0, len(path))
	for _, p := range path {
		wpts = append(wpts, Waypoint{Lat: p.Lat, Lon: p.Lon})
	}
	return Document{
		Xmlns:     namespace,
		Version:   version,
		Creator:   creator,
		Waypoints: wpts,
	}
}

// Write writes path as a gpx document with one waypoint per path node, in path order.
func Write(w io.Writer, path []datastructure.Coordinate) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(NewDocument(path)); err != nil {
		return err
	}
	if err := enc.Flush(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func WriteFile(fileName string, path []datastructure.Coordinate) error {
	f, err := os.Create(fileName)
	if err != nil {
		return err
	}

	if err := Write(f, path); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
