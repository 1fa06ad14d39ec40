package ogg

import (
	"encoding/binary"
	"errors"
)

const pageMagic = "OggS"
const pageHeaderBytes = 27

// Page is the parsed view of one Ogg page. Data holds the full body, whose
// length always equals the sum of the segment table entries.
type Page struct {
	HeaderType byte
	Granule    int64
	Serial     uint32
	Sequence   uint32
	Segments   []byte
	Data       []byte
}

// ParsePages walks a raw Ogg bitstream from the first byte. Every page must
// start with the capture pattern and be fully present; a short or torn tail
// is an error rather than a partial result.
func ParsePages(data []byte) ([]Page, error) {
	var result []Page

	var offset = 0

	for offset < len(data) {
		if offset+pageHeaderBytes > len(data) {
			return nil, errors.New("truncated page header")
		}

		if string(data[offset:offset+4]) != pageMagic {
			return nil, errors.New("missing OggS capture pattern")
		}

		var headerType = data[offset+5]
		var granule = int64(binary.LittleEndian.Uint64(data[offset+6:]))
		var serial = binary.LittleEndian.Uint32(data[offset+14:])
		var sequence = binary.LittleEndian.Uint32(data[offset+18:])
		var segmentCount = int(data[offset+26])

		if offset+pageHeaderBytes+segmentCount > len(data) {
			return nil, errors.New("truncated segment table")
		}

		var segments = data[offset+pageHeaderBytes : offset+pageHeaderBytes+segmentCount]

		var bodyLen = 0
		for _, segment := range segments {
			bodyLen += int(segment)
		}

		var bodyStart = offset + pageHeaderBytes + segmentCount

		if bodyStart+bodyLen > len(data) {
			return nil, errors.New("truncated page body")
		}

		result = append(result, Page{
			HeaderType: headerType,
			Granule:    granule,
			Serial:     serial,
			Sequence:   sequence,
			Segments:   append([]byte(nil), segments...),
			Data:       append([]byte(nil), data[bodyStart:bodyStart+bodyLen]...),
		})

		offset = bodyStart + bodyLen
	}

	if len(result) == 0 {
		return nil, errors.New("no pages")
	}

	return result, nil
}

// Serialize emits the page with a freshly computed checksum at bytes 22..26.
func (page *Page) Serialize() []byte {
	var result = make([]byte, pageHeaderBytes+len(page.Segments)+len(page.Data))

	copy(result, pageMagic)
	result[4] = 0
	result[5] = page.HeaderType
	binary.LittleEndian.PutUint64(result[6:], uint64(page.Granule))
	binary.LittleEndian.PutUint32(result[14:], page.Serial)
	binary.LittleEndian.PutUint32(result[18:], page.Sequence)
	result[26] = byte(len(page.Segments))
	copy(result[pageHeaderBytes:], page.Segments)
	copy(result[pageHeaderBytes+len(page.Segments):], page.Data)

	binary.LittleEndian.PutUint32(result[22:], checksum(result))

	return result
}

// segmentTable lays out the lacing values for length bytes of one packet.
// A closed table ends in a segment below 255 (a zero segment when the
// length is an exact multiple); an open table is all 255s, signalling that
// the packet continues on the next page.
func segmentTable(length int, open bool) []byte {
	var result []byte

	for remaining := length; remaining >= 255; remaining -= 255 {
		result = append(result, 255)
	}

	if !open {
		result = append(result, byte(length%255))
	}

	return result
}
