package event

import (
	"testing"

	"vtengine/cell"
)

func TestDeviceAttributesAsSpecific(t *testing.T) {
	d := DeviceAttributes{Source: DAPrimary, Params: []int{61, 1}}
	typ, svc, ok := d.AsSpecific()
	if !ok || typ != 61 || svc != 1 {
		t.Fatalf("AsSpecific() = (%d,%d,%v), want (61,1,true)", typ, svc, ok)
	}
}

func TestDeviceAttributesAsCompatible(t *testing.T) {
	d := DeviceAttributes{Source: DASecondary, Params: []int{1, 2, 3}}
	family, features, ok := d.AsCompatible()
	if !ok || family != 1 || len(features) != 2 || features[0] != 2 || features[1] != 3 {
		t.Fatalf("AsCompatible() = (%d,%v,%v), want (1,[2 3],true)", family, features, ok)
	}
}

func TestUnknownIsSpecificVT101Base(t *testing.T) {
	d := Unknown()
	typ, svc, ok := d.AsSpecific()
	if !ok || typ != VT101 || svc != Base {
		t.Fatalf("Unknown().AsSpecific() = (%d,%d,%v), want (%d,%d,true)", typ, svc, ok, VT101, Base)
	}
}

func TestConstructorsTagCorrectKind(t *testing.T) {
	if Key(KeyEvent{}).Kind != KindKey {
		t.Fatal("Key() did not tag KindKey")
	}
	if Mouse(MouseEvent{}).Kind != KindMouse {
		t.Fatal("Mouse() did not tag KindMouse")
	}
	if Resize(cell.Size{Width: 80, Height: 24}).Kind != KindResize {
		t.Fatal("Resize() did not tag KindResize")
	}
	if Response(Unknown()).Kind != KindResponse {
		t.Fatal("Response() did not tag KindResponse")
	}
}
