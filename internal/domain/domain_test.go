package domain

import "testing"

func TestShipmentStatus_Valid(t *testing.T) {
	t.Parallel()

	for _, s := range shipmentStatusOrder {
		if !s.Valid() {
			t.Fatalf("status %q should be valid", s)
		}
	}
	if ShipmentStatus("LOST").Valid() {
		t.Fatal("unknown status should be invalid")
	}
}

func TestShipmentStatus_Before(t *testing.T) {
	t.Parallel()

	if !ShipmentPending.Before(ShipmentInTransit) {
		t.Fatal("PENDING should precede IN_TRANSIT")
	}
	if !ShipmentInTransit.Before(ShipmentDelivered) {
		t.Fatal("IN_TRANSIT should precede DELIVERED")
	}
	if ShipmentCleared.Before(ShipmentCleared) {
		t.Fatal("a status does not precede itself")
	}
	if ShipmentDelivered.Before(ShipmentPending) {
		t.Fatal("DELIVERED does not precede PENDING")
	}
	if ShipmentStatus("LOST").Before(ShipmentPending) {
		t.Fatal("unknown status never precedes")
	}
}

func TestBerthStatus_Valid(t *testing.T) {
	t.Parallel()

	for _, s := range allowedBerthStatuses {
		if !s.Valid() {
			t.Fatalf("status %q should be valid", s)
		}
	}
	if BerthStatus("SUNK").Valid() {
		t.Fatal("unknown berth status should be invalid")
	}
}

func TestDeclarationStatus_Decided(t *testing.T) {
	t.Parallel()

	if DeclarationPending.Decided() {
		t.Fatal("pending declaration is not decided")
	}
	if !DeclarationApproved.Decided() || !DeclarationRejected.Decided() {
		t.Fatal("approved and rejected declarations are decided")
	}
}

func TestContainerType_Valid(t *testing.T) {
	t.Parallel()

	for _, ct := range allowedContainerTypes {
		if !ct.Valid() {
			t.Fatalf("type %q should be valid", ct)
		}
	}
	if ContainerType("TANK").Valid() {
		t.Fatal("unknown container type should be invalid")
	}
}

func TestValidateContainerNumber(t *testing.T) {
	t.Parallel()

	cases := []struct {
		number string
		want   bool
	}{
		{"ABCU1234560", true},
		{"MSKU0000002", true},
		{"ABCU1234561", false}, // wrong check digit
		{"MSKU0000003", false}, // wrong check digit
		{"ABCD1234560", false}, // product group must be U
		{"ABU12345600", false}, // owner code too short
		{"abcu1234560", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := validateContainerNumber(tc.number); got != tc.want {
			t.Fatalf("validateContainerNumber(%q) = %v, want %v", tc.number, got, tc.want)
		}
	}
}

func TestValidateIMO(t *testing.T) {
	t.Parallel()

	if !validateIMO("9812345") {
		t.Fatal("7-digit IMO should validate")
	}
	if validateIMO("981234") || validateIMO("98123456") || validateIMO("98I2345") {
		t.Fatal("malformed IMO should not validate")
	}
}

func TestValidateBillOfLading(t *testing.T) {
	t.Parallel()

	if !validateBillOfLading("BLD123456789") {
		t.Fatal("well-formed bill of lading should validate")
	}
	if validateBillOfLading("BLD12345678") || validateBillOfLading("XXX123456789") {
		t.Fatal("malformed bill of lading should not validate")
	}
}

func TestLocation_Union(t *testing.T) {
	t.Parallel()

	aboard := AboardVessel(5)
	if id, ok := aboard.Aboard(); !ok || id != 5 {
		t.Fatalf("expected aboard vessel 5, got %v %v", id, ok)
	}
	if _, ok := aboard.InYard(); ok {
		t.Fatal("a container aboard a vessel is not yard-stored")
	}

	stored := InYardStack(9)
	if id, ok := stored.InYard(); !ok || id != 9 {
		t.Fatalf("expected in yard stack 9, got %v %v", id, ok)
	}
	if _, ok := stored.Aboard(); ok {
		t.Fatal("a yard-stored container is not aboard")
	}

	if !Unlocated().None() {
		t.Fatal("unlocated location should report None")
	}
	if aboard.None() || stored.None() {
		t.Fatal("located container should not report None")
	}
}
