// Package gis loads county parcel shapefiles and answers raw-land and
// centroid lookups keyed by parcel number.
package gis

import (
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/xy"
	"go.uber.org/zap"

	"github.com/ridgeline-data/propmail/internal/linkage"
)

// idFields are the attribute names counties use for the parcel number, in
// preference order. descFields carry land-use wording.
var (
	idFields   = []string{"tax_id", "parcel_id", "apn", "pin", "gpin"}
	descFields = []string{"land_desc", "landdesc", "land_use", "desc", "zoning"}
)

// rawLandWords mark a parcel description as undeveloped.
var rawLandWords = []string{"VACANT", "LAND", "LOT", "UNDEVELOPED", "RAW"}

// Parcel is one county parcel's attributes relevant to mailing.
type Parcel struct {
	APN         string
	Description string
	HasCentroid bool
	Lon, Lat    float64
}

// RawLand reports whether the parcel description marks undeveloped land.
func (p *Parcel) RawLand() bool {
	desc := strings.ToUpper(p.Description)
	for _, w := range rawLandWords {
		if strings.Contains(desc, w) {
			return true
		}
	}
	return false
}

// Index maps normalized parcel numbers to parcels.
type Index struct {
	parcels map[string]*Parcel
}

// Lookup returns the parcel for a normalized APN, or nil.
func (x *Index) Lookup(apn string) *Parcel {
	if x == nil || apn == "" {
		return nil
	}
	return x.parcels[linkage.NormalizeAPN(apn)]
}

// Size returns the number of indexed parcels.
func (x *Index) Size() int {
	if x == nil {
		return 0
	}
	return len(x.parcels)
}

// LoadParcels reads a county parcel shapefile into an Index. Records with
// no recognizable parcel number are skipped and counted.
func LoadParcels(shpPath string) (*Index, error) {
	reader, err := shp.Open(shpPath)
	if err != nil {
		return nil, eris.Wrapf(err, "gis: open shapefile %s", shpPath)
	}
	defer func() { _ = reader.Close() }()

	fields := reader.Fields()
	fieldIdx := make(map[string]int, len(fields))
	for i, f := range fields {
		name := strings.TrimRight(f.String(), "\x00")
		fieldIdx[strings.ToLower(name)] = i
	}

	attr := func(names []string) (string, bool) {
		for _, n := range names {
			if i, ok := fieldIdx[n]; ok {
				v := strings.TrimSpace(strings.TrimRight(reader.Attribute(i), "\x00"))
				if v != "" {
					return v, true
				}
			}
		}
		return "", false
	}

	idx := &Index{parcels: make(map[string]*Parcel)}
	var skipped int
	for reader.Next() {
		_, shape := reader.Shape()

		rawID, ok := attr(idFields)
		if !ok {
			skipped++
			continue
		}
		apn := linkage.NormalizeAPN(rawID)
		if apn == "" {
			skipped++
			continue
		}

		p := &Parcel{APN: apn}
		if desc, ok := attr(descFields); ok {
			p.Description = desc
		}
		if lon, lat, ok := centroid(shape); ok {
			p.HasCentroid = true
			p.Lon, p.Lat = lon, lat
		}
		idx.parcels[apn] = p
	}

	if skipped > 0 {
		zap.L().Debug("gis: skipped parcel records without id",
			zap.String("file", shpPath),
			zap.Int("skipped", skipped))
	}
	zap.L().Info("gis: loaded parcel index",
		zap.String("file", shpPath),
		zap.Int("parcels", idx.Size()))
	return idx, nil
}

// centroid computes the parcel centroid from its shape.
func centroid(shape shp.Shape) (lon, lat float64, ok bool) {
	g := toGeom(shape)
	if g == nil {
		return 0, 0, false
	}
	c, err := xy.Centroid(g)
	if err != nil || len(c) < 2 {
		return 0, 0, false
	}
	return c[0], c[1], true
}

func toGeom(shape shp.Shape) geom.T {
	switch s := shape.(type) {
	case *shp.Point:
		return geom.NewPointFlat(geom.XY, []float64{s.X, s.Y})
	case *shp.Polygon:
		return polygonToGeom(s)
	default:
		return nil
	}
}

// polygonToGeom converts a shapefile polygon to a geom.Polygon, one ring
// per part.
func polygonToGeom(pg *shp.Polygon) geom.T {
	if pg == nil || pg.NumParts == 0 || len(pg.Points) == 0 {
		return nil
	}
	poly := geom.NewPolygon(geom.XY)
	for i := int32(0); i < pg.NumParts; i++ {
		start := pg.Parts[i]
		end := int32(len(pg.Points))
		if i+1 < pg.NumParts {
			end = pg.Parts[i+1]
		}
		flat := make([]float64, 0, (end-start)*2)
		for j := start; j < end; j++ {
			flat = append(flat, pg.Points[j].X, pg.Points[j].Y)
		}
		ring := geom.NewLinearRingFlat(geom.XY, flat)
		if err := poly.Push(ring); err != nil {
			continue
		}
	}
	if poly.NumLinearRings() == 0 {
		return nil
	}
	return poly
}
