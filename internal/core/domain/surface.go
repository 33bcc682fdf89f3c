package domain

// Surface is a distinct presentation location that independently requests
// a ranked ordering of ads.
type Surface string

const (
	SurfaceMapPins       Surface = "map_pins"
	SurfaceResultsList   Surface = "results_list"
	SurfaceSearchResults Surface = "search_results"
	SurfaceBanner        Surface = "banner"
)

// ParseSurface validates a raw surface string.
func ParseSurface(s string) (Surface, bool) {
	switch Surface(s) {
	case SurfaceMapPins, SurfaceResultsList, SurfaceSearchResults, SurfaceBanner:
		return Surface(s), true
	}
	return "", false
}
