package wrongbank

import (
	"time"
)

// DefaultExportZone is the zone whose calendar date names export files.
const DefaultExportZone = "Asia/Seoul"

// kst is used when the zone database is unavailable on the host.
var kst = time.FixedZone("KST", 9*60*60)

// ParseExportZone loads a named zone. An empty name or a missing zone
// database falls back to fixed UTC+9.
func ParseExportZone(tz string) *time.Location {
	if tz == "" {
		tz = DefaultExportZone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return kst
	}
	return loc
}

// ExportFilename returns "<prefix>_YYYYMMDD.<ext>" with the date of now in loc,
// independent of the host's local zone.
func ExportFilename(prefix, ext string, now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = kst
	}
	return prefix + "_" + now.In(loc).Format("20060102") + "." + ext
}

// FormatAddedAt renders an entry timestamp for export; zero renders empty.
func FormatAddedAt(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	if loc == nil {
		loc = kst
	}
	return t.In(loc).Format(time.DateTime)
}
