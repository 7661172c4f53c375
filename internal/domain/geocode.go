package domain

import (
	"context"
	"log/slog"
)

// EnrichWithGeocoding attempts to fill a record's coordinate or location
// gaps. If geocoder is nil or geocoding fails, the record is returned with
// GeoSource set accordingly (graceful degradation); a listing is never
// dropped for being unmappable.
func EnrichWithGeocoding(ctx context.Context, rec Record, geocoder Geocoder, logger *slog.Logger) Record {
	if geocoder == nil {
		return rec
	}

	hasCoords := rec.HasCoordinates()
	hasPlace := rec.Location != ""

	// Forward geocode: venue name to coordinates (when coords are missing).
	if !hasCoords && hasPlace {
		result, err := geocoder.ForwardGeocode(ctx, rec.Location, rec.County)
		if err != nil {
			logger.Warn("forward geocoding failed",
				"name", rec.Name,
				"location", rec.Location,
				"county", rec.County,
				"error", err,
			)
			rec.GeoSource = "failed"
			return rec
		}
		if result.Lat != 0 || result.Lon != 0 {
			rec.Latitude = result.Lat
			rec.Longitude = result.Lon
			rec.GeoSource = "forward"
			return rec
		}
		rec.GeoSource = "original"
		return rec
	}

	// Reverse geocode: coordinates to a place name (when the location
	// column is blank but the map pin exists).
	if hasCoords && !hasPlace {
		result, err := geocoder.ReverseGeocode(ctx, rec.Latitude, rec.Longitude)
		if err != nil {
			logger.Warn("reverse geocoding failed",
				"name", rec.Name,
				"lat", rec.Latitude,
				"lon", rec.Longitude,
				"error", err,
			)
			rec.GeoSource = "failed"
			return rec
		}
		if result.FormattedAddress != "" {
			rec.Location = result.FormattedAddress
			rec.GeoSource = "reverse"
			return rec
		}
		rec.GeoSource = "original"
		return rec
	}

	rec.GeoSource = "original"
	return rec
}
