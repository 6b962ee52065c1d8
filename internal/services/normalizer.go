package services

import (
	"context"
	"errors"
	"fmt"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/obs"
	"strconv"
	"strings"
)

// AddressResolver is the batch geocoding contract the normalizer depends on.
type AddressResolver interface {
	ResolveAll(ctx context.Context, addresses []string, progress ProgressFunc) ([]Resolution, error)
}

// Header aliases, compared after normalizeHeader.
var (
	addressAliases   = []string{"address", "street address", "full address"}
	latitudeAliases  = []string{"latitude", "lat"}
	longitudeAliases = []string{"longitude", "lon", "lng", "long"}
	firstNameAliases = []string{"first name", "firstname"}
	lastNameAliases  = []string{"last name", "lastname"}
	nameAliases      = []string{"name", "label", "stop name"}
	stopTimeAliases  = []string{"stop time minutes", "stop time (minutes)", "stop time", "service minutes"}
)

type columnLayout struct {
	address   int
	latitude  int
	longitude int
	firstName int
	lastName  int
	name      int
	stopTime  int
}

func (l columnLayout) addressMode() bool    { return l.address >= 0 }
func (l columnLayout) coordinateMode() bool { return l.latitude >= 0 && l.longitude >= 0 }

func normalizeHeader(s string) string {
	s = strings.ToLower(s)
	s = strings.NewReplacer("_", " ", "-", " ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

func findColumn(headers []string, aliases []string) int {
	for _, a := range aliases {
		for i, h := range headers {
			if h == a {
				return i
			}
		}
	}
	return -1
}

func detectColumns(columns []string) columnLayout {
	headers := make([]string, len(columns))
	for i, c := range columns {
		headers[i] = normalizeHeader(c)
	}

	return columnLayout{
		address:   findColumn(headers, addressAliases),
		latitude:  findColumn(headers, latitudeAliases),
		longitude: findColumn(headers, longitudeAliases),
		firstName: findColumn(headers, firstNameAliases),
		lastName:  findColumn(headers, lastNameAliases),
		name:      findColumn(headers, nameAliases),
		stopTime:  findColumn(headers, stopTimeAliases),
	}
}

// StopNormalizer turns a parsed table into an ordered list of resolved stops.
type StopNormalizer struct {
	resolver AddressResolver
}

func NewStopNormalizer(resolver AddressResolver) *StopNormalizer {
	return &StopNormalizer{resolver: resolver}
}

// Normalize produces one Stop per non-blank row, in row order.
//
// An address column selects address mode even when latitude/longitude
// columns are also present. Any unresolved address fails the whole table.
func (n *StopNormalizer) Normalize(
	ctx context.Context,
	table domain.Table,
	progress ProgressFunc,
) (_ []domain.Stop, err error) {
	defer obs.Time(ctx, "normalizer.Normalize")(&err)

	rows := make([]int, 0, len(table.Rows))
	for i, r := range table.Rows {
		if !blankRow(r) {
			rows = append(rows, i)
		}
	}

	if len(rows) < 2 {
		return nil, fmt.Errorf("normalize: need at least 2 rows, got %d: %w", len(rows), domain.ErrInputShape)
	}

	layout := detectColumns(table.Columns)
	if !layout.addressMode() && !layout.coordinateMode() {
		return nil, fmt.Errorf(
			"normalize: table needs an address column or both latitude and longitude columns (got %v): %w",
			table.Columns, domain.ErrInputShape,
		)
	}

	stops := make([]domain.Stop, 0, len(rows))
	for pos, ri := range rows {
		minutes, err := parseStopTime(table, ri, layout.stopTime)
		if err != nil {
			return nil, fmt.Errorf("normalize: row %d: %w", ri+1, err)
		}

		stops = append(stops, domain.Stop{
			Index:                  ri,
			Label:                  rowLabel(table, ri, pos, layout),
			ServiceDurationMinutes: minutes,
		})
	}

	if layout.addressMode() {
		if err := n.resolveAddresses(ctx, table, rows, layout.address, stops, progress); err != nil {
			return nil, fmt.Errorf("normalize: %w", err)
		}
		return stops, nil
	}

	for pos, ri := range rows {
		c, err := parseCoordinates(table.Cell(ri, layout.latitude), table.Cell(ri, layout.longitude))
		if err != nil {
			return nil, fmt.Errorf("normalize: row %d: %w", ri+1, err)
		}
		stops[pos].Coordinates = c
	}

	return stops, nil
}

func (n *StopNormalizer) resolveAddresses(
	ctx context.Context,
	table domain.Table,
	rows []int,
	col int,
	stops []domain.Stop,
	progress ProgressFunc,
) error {
	if n.resolver == nil {
		return errors.New("resolve addresses: resolver is nil")
	}

	addresses := make([]string, len(rows))
	for pos, ri := range rows {
		addresses[pos] = strings.TrimSpace(table.Cell(ri, col))
	}

	resolved, err := n.resolver.ResolveAll(ctx, addresses, progress)
	if err != nil {
		return fmt.Errorf("resolve addresses: %w: %w", domain.ErrGeocodingFailure, err)
	}
	if len(resolved) != len(addresses) {
		return fmt.Errorf(
			"resolve addresses: resolver returned %d results for %d addresses: %w",
			len(resolved), len(addresses), domain.ErrGeocodingFailure,
		)
	}

	var unresolved []domain.UnresolvedAddress
	for pos, r := range resolved {
		if !r.Resolved {
			unresolved = append(unresolved, domain.UnresolvedAddress{Row: rows[pos] + 1, Address: addresses[pos]})
			continue
		}
		stops[pos].Coordinates = r.Coordinates
	}

	if len(unresolved) > 0 {
		return &domain.GeocodingError{Unresolved: unresolved}
	}

	return nil
}

func blankRow(r []string) bool {
	for _, c := range r {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// rowLabel prefers first/last name, then a name column, then the address.
func rowLabel(table domain.Table, row, pos int, layout columnLayout) string {
	first := strings.TrimSpace(table.Cell(row, layout.firstName))
	last := strings.TrimSpace(table.Cell(row, layout.lastName))
	if full := strings.TrimSpace(first + " " + last); full != "" {
		return full
	}

	if name := strings.TrimSpace(table.Cell(row, layout.name)); name != "" {
		return name
	}

	if addr := strings.Join(strings.Fields(table.Cell(row, layout.address)), " "); addr != "" {
		return addr
	}

	return fmt.Sprintf("Stop %d", pos+1)
}

func parseStopTime(table domain.Table, row, col int) (*float64, error) {
	raw := strings.TrimSpace(table.Cell(row, col))
	if raw == "" {
		return nil, nil
	}

	m, err := strconv.ParseFloat(raw, 64)
	if err != nil || m < 0 {
		return nil, fmt.Errorf("invalid stop time %q: %w", raw, domain.ErrInputShape)
	}
	return &m, nil
}

func parseCoordinates(latRaw, lonRaw string) (domain.Coordinates, error) {
	lat, err := strconv.ParseFloat(strings.TrimSpace(latRaw), 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("invalid latitude %q: %w", latRaw, domain.ErrInputShape)
	}

	lon, err := strconv.ParseFloat(strings.TrimSpace(lonRaw), 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("invalid longitude %q: %w", lonRaw, domain.ErrInputShape)
	}

	c := domain.FromLatLon(lat, lon)
	if !c.Valid() {
		return domain.Coordinates{}, fmt.Errorf("coordinates out of range lat=%v lon=%v: %w", lat, lon, domain.ErrInputShape)
	}
	return c, nil
}
