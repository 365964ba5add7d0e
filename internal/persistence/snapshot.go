// Binary world snapshot: header metadata followed by the eight grid
// layers concatenated as raw bytes. This is the flat interchange form;
// the SQLite store is the durable one.
package persistence

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/talgya/cartograph/internal/gen"
	"github.com/talgya/cartograph/internal/world"
)

var snapshotMagic = [4]byte{'C', 'A', 'R', 'T'}

const snapshotVersion uint16 = 1

type snapshotHeader struct {
	Magic      [4]byte
	Version    uint16
	_          uint16 // padding, keeps the header 4-byte aligned
	Seed       int64
	Width      uint32
	Height     uint32
	SeaLevel   float32
	PointCount uint32
}

type snapshotPoint struct {
	X, Y  int32
	Kind  uint8
	Value uint8
	_     uint16
}

// EncodeSnapshot writes the binary layout of a generation result.
// Nations are not part of the snapshot format.
func EncodeSnapshot(w io.Writer, res *gen.Result) error {
	m := res.Map
	hdr := snapshotHeader{
		Magic:      snapshotMagic,
		Version:    snapshotVersion,
		Seed:       res.Seed,
		Width:      uint32(m.Width),
		Height:     uint32(m.Height),
		SeaLevel:   m.SeaLevel,
		PointCount: uint32(len(res.Points)),
	}
	if err := binary.Write(w, binary.LittleEndian, hdr); err != nil {
		return fmt.Errorf("snapshot header: %w", err)
	}

	for _, p := range res.Points {
		sp := snapshotPoint{X: int32(p.X), Y: int32(p.Y), Kind: uint8(p.Kind), Value: uint8(p.Value)}
		if err := binary.Write(w, binary.LittleEndian, sp); err != nil {
			return fmt.Errorf("snapshot point: %w", err)
		}
	}

	for _, layer := range [][]byte{
		float32Bytes(m.Elevation),
		float32Bytes(m.Temperature),
		float32Bytes(m.Humidity),
		m.Biome,
		boolBytes(m.River),
		m.Resource,
		m.Density,
		int16Bytes(m.Owner),
	} {
		if _, err := w.Write(layer); err != nil {
			return fmt.Errorf("snapshot layer: %w", err)
		}
	}
	return nil
}

// DecodeSnapshot reads a binary snapshot back into a result. The
// nation list is empty; it lives outside this format.
func DecodeSnapshot(r io.Reader) (*gen.Result, error) {
	var hdr snapshotHeader
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("snapshot header: %w", err)
	}
	if hdr.Magic != snapshotMagic {
		return nil, fmt.Errorf("not a world snapshot (magic %q)", hdr.Magic)
	}
	if hdr.Version != snapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", hdr.Version)
	}

	points := make([]world.StrategicPoint, hdr.PointCount)
	for i := range points {
		var sp snapshotPoint
		if err := binary.Read(r, binary.LittleEndian, &sp); err != nil {
			return nil, fmt.Errorf("snapshot point %d: %w", i, err)
		}
		if sp.X < 0 || sp.X >= int32(hdr.Width) || sp.Y < 0 || sp.Y >= int32(hdr.Height) {
			return nil, fmt.Errorf("snapshot point %d: (%d,%d) outside %dx%d grid",
				i, sp.X, sp.Y, hdr.Width, hdr.Height)
		}
		points[i] = world.StrategicPoint{
			X: int(sp.X), Y: int(sp.Y),
			Kind: world.PointKind(sp.Kind), Value: int(sp.Value),
		}
	}

	m := world.NewMap(int(hdr.Width), int(hdr.Height), hdr.SeaLevel)
	n := m.CellCount()

	readExact := func(size int) ([]byte, error) {
		buf := make([]byte, size)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, err
		}
		return buf, nil
	}

	for _, fill := range []struct {
		size int
		into func([]byte)
	}{
		{n * 4, func(b []byte) { bytesToFloat32(b, m.Elevation) }},
		{n * 4, func(b []byte) { bytesToFloat32(b, m.Temperature) }},
		{n * 4, func(b []byte) { bytesToFloat32(b, m.Humidity) }},
		{n, func(b []byte) { copy(m.Biome, b) }},
		{n, func(b []byte) { bytesToBool(b, m.River) }},
		{n, func(b []byte) { copy(m.Resource, b) }},
		{n, func(b []byte) { copy(m.Density, b) }},
		{n * 2, func(b []byte) { bytesToInt16(b, m.Owner) }},
	} {
		buf, err := readExact(fill.size)
		if err != nil {
			return nil, fmt.Errorf("snapshot layers: %w", err)
		}
		fill.into(buf)
	}

	return &gen.Result{
		Seed:       hdr.Seed,
		Map:        m,
		Points:     points,
		PointIndex: world.NewPointIndex(m.Width, m.Height, points),
	}, nil
}
