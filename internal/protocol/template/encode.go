package template

import "encoding/binary"

// Encode packs p into its template's byte buffer. Out-of-range numeric input
// is clamped by the policy table; only a missing source id fails.
func Encode(p Payload) ([]byte, error) {
	l, ok := layouts[p.Kind]
	if !ok {
		return nil, ErrUnknownTemplate
	}
	if err := normalize(&p); err != nil {
		return nil, err
	}

	buf := l.encode(&p)

	additional := extensionIDs(p.Src, p.SrcIDs)
	if len(additional) == 0 {
		return buf, nil
	}

	if l.flagByte < 0 {
		buf[0] = checkinVersionMulti
	} else {
		buf[l.flagByte] |= l.flagMask
	}
	buf = append(buf, byte(len(additional)))
	for _, id := range additional {
		buf = binary.BigEndian.AppendUint16(buf, id)
	}
	return buf, nil
}

const (
	checkinVersionSingle = 1
	checkinVersionMulti  = 2
)

func encodeCheckinLoc(p *Payload) []byte {
	buf := make([]byte, 16)
	buf[0] = checkinVersionSingle
	binary.BigEndian.PutUint16(buf[1:3], p.Src)
	binary.BigEndian.PutUint32(buf[3:7], packMinutes(p.TimeMS))
	binary.BigEndian.PutUint32(buf[7:11], uint32(packCoord(p.Lat)))
	binary.BigEndian.PutUint32(buf[11:15], uint32(packCoord(p.Lon)))
	buf[15] = p.Status
	return buf
}

func encodeSitrep(p *Payload) []byte {
	buf := make([]byte, 12)
	binary.BigEndian.PutUint16(buf[1:3], p.Src)
	binary.BigEndian.PutUint16(buf[3:5], p.Dst)
	binary.BigEndian.PutUint32(buf[5:9], packMinutes(p.TimeMS))
	buf[9] = p.Status
	buf[10] = p.Priority
	buf[11] = p.Condition
	return buf
}

func encodeContact(p *Payload) []byte {
	buf := make([]byte, 13)
	binary.BigEndian.PutUint16(buf[1:3], p.Src)
	binary.BigEndian.PutUint32(buf[3:7], packMinutes(p.TimeMS))
	buf[7] = p.Threat
	buf[8] = p.Count
	binary.BigEndian.PutUint16(buf[9:11], p.BearingDeg)
	binary.BigEndian.PutUint16(buf[11:13], p.RangeM)
	return buf
}

func encodeTask(p *Payload) []byte {
	buf := make([]byte, 14)
	binary.BigEndian.PutUint16(buf[1:3], p.Src)
	binary.BigEndian.PutUint16(buf[3:5], p.Dst)
	binary.BigEndian.PutUint32(buf[5:9], packMinutes(p.TimeMS))
	buf[9] = p.TaskCode
	buf[10] = p.Priority
	buf[11] = p.Status
	binary.BigEndian.PutUint16(buf[12:14], p.TaskID)
	return buf
}

func encodeResource(p *Payload) []byte {
	buf := make([]byte, 12)
	binary.BigEndian.PutUint16(buf[1:3], p.Src)
	binary.BigEndian.PutUint32(buf[3:7], packMinutes(p.TimeMS))
	buf[7] = p.ResourceType
	binary.BigEndian.PutUint16(buf[8:10], p.Quantity)
	buf[10] = p.Priority
	buf[11] = p.Status
	return buf
}

func encodeAsset(p *Payload) []byte {
	buf := make([]byte, 10)
	buf[0] = p.AssetType
	binary.BigEndian.PutUint16(buf[1:3], p.Src)
	binary.BigEndian.PutUint32(buf[3:7], packMinutes(p.TimeMS))
	buf[7] = p.Status
	// buf[8] is the flags byte
	buf[9] = p.Condition
	return buf
}

func encodeZone(p *Payload) []byte {
	buf := make([]byte, 20)
	buf[0] = p.ZoneKind
	binary.BigEndian.PutUint16(buf[1:3], p.Src)
	binary.BigEndian.PutUint32(buf[3:7], packMinutes(p.TimeMS))
	// buf[7] is the flags byte
	buf[8] = p.ShapeType
	buf[9] = p.Label
	binary.BigEndian.PutUint32(buf[10:14], uint32(packCoord(p.Lat)))
	binary.BigEndian.PutUint32(buf[14:18], uint32(packCoord(p.Lon)))
	binary.BigEndian.PutUint16(buf[18:20], p.RadiusM)
	return buf
}

func encodeMission(p *Payload) []byte {
	buf := make([]byte, 14)
	binary.BigEndian.PutUint16(buf[1:3], p.Src)
	binary.BigEndian.PutUint16(buf[3:5], p.Dst)
	binary.BigEndian.PutUint32(buf[5:9], packMinutes(p.TimeMS))
	buf[9] = p.MissionCode
	buf[10] = p.Phase
	buf[11] = p.Priority
	binary.BigEndian.PutUint16(buf[12:14], p.Objective)
	return buf
}
