package ogg

import (
	"bytes"
	"encoding/binary"
	"errors"
)

// VendorString is the only vendor the LyN engine accepts in the Vorbis
// comment header.
const VendorString = "Xiph.Org libVorbis I 20050304"

const setupMarker = 0x05

// Repackage rewrites the vendor string of a Vorbis stream and re-emits it
// with renumbered pages and valid checksums. Audio pages keep their original
// granule positions, header flags and segment tables. On any parse
// inconsistency the input is returned unchanged.
func Repackage(data []byte) []byte {
	var result, err = repackage(data)

	if err != nil {
		return data
	}

	return result
}

func repackage(data []byte) ([]byte, error) {
	pages, err := ParsePages(data)

	if err != nil {
		return nil, err
	}

	if len(pages) < 3 {
		return nil, errors.New("too few pages")
	}

	comment, err := firstPacketFrom(pages, 1)

	if err != nil {
		return nil, err
	}

	if len(comment) < 7 || comment[0] != 0x03 || string(comment[1:7]) != "vorbis" {
		return nil, errors.New("malformed comment packet")
	}

	setup, err := firstPacketFrom(pages, 2)

	if err != nil {
		return nil, err
	}

	var serial = pages[0].Serial
	var out bytes.Buffer

	// Page 0 keeps the original identification header body.
	var idPage = Page{
		HeaderType: 0x02,
		Granule:    0,
		Serial:     serial,
		Sequence:   0,
		Segments:   segmentTable(len(pages[0].Data), false),
		Data:       pages[0].Data,
	}
	out.Write(idPage.Serialize())

	// Page 1 carries the synthesized comment packet followed by as much of
	// the setup packet as the remaining segment budget allows.
	var newComment = commentPacket()
	var commentSegments = (len(newComment)+254)/255 + 1
	var setupBudget = (15 - commentSegments) * 255

	var setupHead = len(setup)
	var setupContinues = false

	if setupHead > setupBudget {
		setupHead = setupBudget // multiple of 255, keeps the packet chain open
		setupContinues = true
	}

	var segments = segmentTable(len(newComment), false)
	segments = append(segments, segmentTable(setupHead, setupContinues)...)

	var body = append(append([]byte(nil), newComment...), setup[:setupHead]...)

	var headerPage = Page{
		HeaderType: 0x00,
		Granule:    0,
		Serial:     serial,
		Sequence:   1,
		Segments:   segments,
		Data:       body,
	}
	out.Write(headerPage.Serialize())

	var sequence = uint32(2)

	// Setup continuation pages, each up to 255 full segments.
	var rest = setup[setupHead:]
	for len(rest) > 0 {
		var chunk = len(rest)
		var open = false

		if chunk > 255*255 {
			chunk = 255 * 255
			open = true
		}

		var page = Page{
			HeaderType: 0x01,
			Granule:    0,
			Serial:     serial,
			Sequence:   sequence,
			Segments:   segmentTable(chunk, open),
			Data:       rest[:chunk],
		}
		out.Write(page.Serialize())

		rest = rest[chunk:]
		sequence = sequence + 1
	}

	for i := audioStartPage(pages); i < len(pages); i = i + 1 {
		var page = pages[i]
		page.Serial = serial
		page.Sequence = sequence
		sequence = sequence + 1
		out.Write(page.Serialize())
	}

	return out.Bytes(), nil
}

// commentPacket builds the replacement Vorbis comment header: the fixed
// vendor string and an empty user comment list. The trailing framing bit is
// left off, matching the streams the engine ships with.
func commentPacket() []byte {
	var result bytes.Buffer

	result.WriteByte(0x03)
	result.WriteString("vorbis")
	binary.Write(&result, binary.LittleEndian, uint32(len(VendorString)))
	result.WriteString(VendorString)
	binary.Write(&result, binary.LittleEndian, uint32(0))

	return result.Bytes()
}

// firstPacketFrom concatenates segment bodies starting at page start and
// returns the first packet terminated by a segment below 255.
func firstPacketFrom(pages []Page, start int) ([]byte, error) {
	var packet []byte

	for i := start; i < len(pages); i = i + 1 {
		var offset = 0

		for _, segment := range pages[i].Segments {
			packet = append(packet, pages[i].Data[offset:offset+int(segment)]...)
			offset += int(segment)

			if segment < 255 {
				return packet, nil
			}
		}
	}

	return nil, errors.New("unterminated packet")
}

// audioStartPage finds the first audio page: not a continuation, positive
// granule position, and a body that does not open with the setup marker.
func audioStartPage(pages []Page) int {
	for i, page := range pages {
		if page.HeaderType&0x01 == 0 && page.Granule > 0 && len(page.Data) > 0 && page.Data[0] != setupMarker {
			return i
		}
	}

	for i, page := range pages {
		if page.Granule > 0 {
			return i
		}
	}

	if len(pages) < 3 {
		return len(pages)
	}

	return 3
}
