// Package datasources defines the descriptor of one geospatial data source
// and its conversion to and from the flat field map stored on disk.
//
// A descriptor carries identity, display names, a reference URL, a version
// label, an opaque spatial extent and coordinate reference, and two
// timestamps. Keys that are not part of the common shape (for example the
// download URL of a packaged source) are kept in Extra so that
// subtype-specific documents survive a load/write cycle unchanged.
//
// Example:
//
//	d := datasources.New("ch.swisstopo.swissimage10",
//	    datasources.WithNameShort("SWISSIMAGE10"),
//	    datasources.WithEPSG(2056),
//	)
//	fields := d.ToFieldMap()
//	same, err := datasources.Construct(fields)
package datasources
