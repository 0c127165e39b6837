package template

import "encoding/binary"

// Decode unpacks buf as template k. It fails only when the buffer is shorter
// than the template's base record or when a declared extension block does not
// match the remaining length; both point at truncation or corruption.
func Decode(k Kind, buf []byte) (Payload, error) {
	l, ok := layouts[k]
	if !ok {
		return Payload{}, ErrUnknownTemplate
	}
	if len(buf) < l.baseLen {
		return Payload{}, ErrMalformedBuffer
	}

	p := Payload{Kind: k}
	l.decode(buf, &p)

	hasExt := false
	if l.flagByte < 0 {
		switch buf[0] {
		case checkinVersionSingle:
		case checkinVersionMulti:
			hasExt = true
		default:
			return Payload{}, ErrMalformedBuffer
		}
	} else {
		hasExt = buf[l.flagByte]&l.flagMask != 0
	}

	rest := buf[l.baseLen:]
	if !hasExt {
		if len(rest) != 0 {
			return Payload{}, ErrMalformedBuffer
		}
		return p, nil
	}

	if len(rest) < 1 {
		return Payload{}, ErrMalformedBuffer
	}
	n := int(rest[0])
	if len(rest)-1 != 2*n {
		return Payload{}, ErrMalformedBuffer
	}
	additional := make([]uint16, 0, n)
	for i := 0; i < n; i++ {
		additional = append(additional, binary.BigEndian.Uint16(rest[1+2*i:3+2*i]))
	}
	p.SrcIDs = widen(p.Src, additional)
	return p, nil
}

func decodeCheckinLoc(buf []byte, p *Payload) {
	p.Src = binary.BigEndian.Uint16(buf[1:3])
	p.TimeMS = unpackMinutes(binary.BigEndian.Uint32(buf[3:7]))
	p.Lat = unpackCoord(int32(binary.BigEndian.Uint32(buf[7:11])))
	p.Lon = unpackCoord(int32(binary.BigEndian.Uint32(buf[11:15])))
	p.Status = buf[15]
}

func decodeSitrep(buf []byte, p *Payload) {
	p.Src = binary.BigEndian.Uint16(buf[1:3])
	p.Dst = binary.BigEndian.Uint16(buf[3:5])
	p.TimeMS = unpackMinutes(binary.BigEndian.Uint32(buf[5:9]))
	p.Status = buf[9]
	p.Priority = buf[10]
	p.Condition = buf[11]
}

func decodeContact(buf []byte, p *Payload) {
	p.Src = binary.BigEndian.Uint16(buf[1:3])
	p.TimeMS = unpackMinutes(binary.BigEndian.Uint32(buf[3:7]))
	p.Threat = buf[7]
	p.Count = buf[8]
	p.BearingDeg = binary.BigEndian.Uint16(buf[9:11])
	p.RangeM = binary.BigEndian.Uint16(buf[11:13])
}

func decodeTask(buf []byte, p *Payload) {
	p.Src = binary.BigEndian.Uint16(buf[1:3])
	p.Dst = binary.BigEndian.Uint16(buf[3:5])
	p.TimeMS = unpackMinutes(binary.BigEndian.Uint32(buf[5:9]))
	p.TaskCode = buf[9]
	p.Priority = buf[10]
	p.Status = buf[11]
	p.TaskID = binary.BigEndian.Uint16(buf[12:14])
}

func decodeResource(buf []byte, p *Payload) {
	p.Src = binary.BigEndian.Uint16(buf[1:3])
	p.TimeMS = unpackMinutes(binary.BigEndian.Uint32(buf[3:7]))
	p.ResourceType = buf[7]
	p.Quantity = binary.BigEndian.Uint16(buf[8:10])
	p.Priority = buf[10]
	p.Status = buf[11]
}

func decodeAsset(buf []byte, p *Payload) {
	p.AssetType = buf[0]
	p.Src = binary.BigEndian.Uint16(buf[1:3])
	p.TimeMS = unpackMinutes(binary.BigEndian.Uint32(buf[3:7]))
	p.Status = buf[7]
	p.Condition = buf[9]
}

func decodeZone(buf []byte, p *Payload) {
	p.ZoneKind = buf[0]
	p.Src = binary.BigEndian.Uint16(buf[1:3])
	p.TimeMS = unpackMinutes(binary.BigEndian.Uint32(buf[3:7]))
	p.ShapeType = buf[8]
	p.Label = buf[9]
	p.Lat = unpackCoord(int32(binary.BigEndian.Uint32(buf[10:14])))
	p.Lon = unpackCoord(int32(binary.BigEndian.Uint32(buf[14:18])))
	p.RadiusM = binary.BigEndian.Uint16(buf[18:20])
}

func decodeMission(buf []byte, p *Payload) {
	p.Src = binary.BigEndian.Uint16(buf[1:3])
	p.Dst = binary.BigEndian.Uint16(buf[3:5])
	p.TimeMS = unpackMinutes(binary.BigEndian.Uint32(buf[5:9]))
	p.MissionCode = buf[9]
	p.Phase = buf[10]
	p.Priority = buf[11]
	p.Objective = binary.BigEndian.Uint16(buf[12:14])
}
