// Package bmc reads and writes BMC color containers.
//
// A BMC file is a single self-sizing container section holding one color
// table section. Each section opens with a fixed signature followed by a
// little-endian u32 size covering every byte written after the size field.
// Sizes are emitted as placeholders and patched once the section body is
// complete, so producing a file never requires a second pass over the
// color data.
//
// Layout of a container with n colors:
//
//	offset  size  field
//	     0     8  container signature "MGCLbmc1"
//	     8     4  container size (48 + 4n)
//	    12     4  section count (always 1)
//	    16    16  zero padding
//	    32     4  table signature "CLT1"
//	    36     4  table size (20 + 4n)
//	    40     2  entry count
//	    42     2  zero padding
//	    44    4n  color records, one R G B A byte each
//	 44+4n    16  zero padding
//
// Decoding is trust based: declared sizes are recorded on the container
// but never enforced, and the trailing padding is not read back.
package bmc

const (
	// ContainerMagic opens every BMC file.
	ContainerMagic = "MGCLbmc1"
	// TableMagic opens the color table section.
	TableMagic = "CLT1"

	// CurrentSectionCount is the only section count this revision of the
	// format writes or accepts.
	CurrentSectionCount = 1

	// MaxTableEntries is the largest color count the u16 entry count
	// field can record.
	MaxTableEntries = 0xFFFF

	// Extension is the conventional suffix for container files.
	Extension = ".bmc"

	sizeWidth    = 4  // width of a section size field
	containerPad = 16 // container padding, also the trailing table padding
	tablePad     = 2  // padding after the entry count
)

// SectionSizes returns the container and table size-field values that an
// encode of n colors records. Tools can compare these with the declared
// sizes carried by a decoded container.
func SectionSizes(n int) (container, table uint32) {
	table = uint32(2 + tablePad + 4*n + containerPad)
	container = uint32(sizeWidth+containerPad+len(TableMagic)+sizeWidth) + table
	return container, table
}
