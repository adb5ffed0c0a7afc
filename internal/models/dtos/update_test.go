package dtos

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"

	"skyfleet/registry/internal/apperr"
	"skyfleet/registry/internal/models/entities"

	"github.com/google/uuid"
)

func sampleAircraft() entities.Aircraft {
	desc := "prototype airframe"
	return entities.Aircraft{
		Basics: entities.Basics{
			ID:        uuid.New(),
			Owner:     uuid.New(),
			CreatedAt: time.Now().UTC(),
			Status:    entities.StatusAvailable,
		},
		ModelID:            uuid.New(),
		Manufacturer:       "Arrow",
		SerialNumber:       "SN-0001",
		RegistrationNumber: "N12345",
		Description:        &desc,
		MaxPayloadKg:       450,
		MaxRangeKm:         120,
	}
}

func TestApply_MaskDiscipline(t *testing.T) {
	a := sampleAircraft()
	orig := a

	// serial_number is present in the payload but absent from the mask:
	// it must not be applied.
	var p UpdateAircraftPayload
	if err := json.Unmarshal([]byte(`{
		"description": "updated",
		"serial_number": "SN-9999",
		"mask": ["description"]
	}`), &p); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}

	changed, err := p.Apply(&a)
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if !changed {
		t.Error("Apply reported no change")
	}
	if a.Description == nil || *a.Description != "updated" {
		t.Errorf("description = %v, want %q", a.Description, "updated")
	}
	if a.SerialNumber != orig.SerialNumber {
		t.Errorf("serial_number changed to %q despite being unmasked", a.SerialNumber)
	}
}

func TestApply_Idempotent(t *testing.T) {
	a := sampleAircraft()

	var p UpdateAircraftPayload
	if err := json.Unmarshal([]byte(`{
		"description": "updated",
		"registration_number": "N54321",
		"mask": ["description", "registration_number"]
	}`), &p); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}

	if _, err := p.Apply(&a); err != nil {
		t.Fatalf("first Apply: %v", err)
	}
	once := a

	changed, err := p.Apply(&a)
	if err != nil {
		t.Fatalf("second Apply: %v", err)
	}
	if changed {
		t.Error("second Apply of identical payload reported a change")
	}
	if !reflect.DeepEqual(once, a) {
		t.Errorf("second Apply altered the entity: %+v != %+v", a, once)
	}
}

func TestApply_TriState(t *testing.T) {
	t.Run("null clears nullable field", func(t *testing.T) {
		a := sampleAircraft()
		var p UpdateAircraftPayload
		if err := json.Unmarshal([]byte(`{"description": null, "mask": ["description"]}`), &p); err != nil {
			t.Fatal(err)
		}
		if _, err := p.Apply(&a); err != nil {
			t.Fatalf("Apply: %v", err)
		}
		if a.Description != nil {
			t.Errorf("description = %q, want cleared", *a.Description)
		}
	})

	t.Run("masked but omitted leaves prior value", func(t *testing.T) {
		a := sampleAircraft()
		orig := a
		var p UpdateAircraftPayload
		if err := json.Unmarshal([]byte(`{"mask": ["description"]}`), &p); err != nil {
			t.Fatal(err)
		}
		changed, err := p.Apply(&a)
		if err != nil {
			t.Fatalf("Apply: %v", err)
		}
		if changed {
			t.Error("omitted field reported as change")
		}
		if !reflect.DeepEqual(orig, a) {
			t.Errorf("entity changed: %+v", a)
		}
	})

	t.Run("null on non-nullable field leaves prior value", func(t *testing.T) {
		a := sampleAircraft()
		var p UpdateAircraftPayload
		if err := json.Unmarshal([]byte(`{"serial_number": null, "mask": ["serial_number"]}`), &p); err != nil {
			t.Fatal(err)
		}
		if _, err := p.Apply(&a); err != nil {
			t.Fatalf("Apply: %v", err)
		}
		if a.SerialNumber != "SN-0001" {
			t.Errorf("serial_number = %q, want unchanged", a.SerialNumber)
		}
	})
}

func TestApply_InvalidMask(t *testing.T) {
	a := sampleAircraft()

	p := UpdateAircraftPayload{Mask: nil}
	if _, err := p.Apply(&a); !errors.Is(err, apperr.ErrInvalidMask) {
		t.Errorf("empty mask: err = %v, want ErrInvalidMask", err)
	}

	p = UpdateAircraftPayload{Mask: []string{"manufacturer"}}
	if _, err := p.Apply(&a); !errors.Is(err, apperr.ErrInvalidMask) {
		t.Errorf("immutable field: err = %v, want ErrInvalidMask", err)
	}

	p = UpdateAircraftPayload{Mask: []string{"no_such_field"}}
	if _, err := p.Apply(&a); !errors.Is(err, apperr.ErrInvalidMask) {
		t.Errorf("unknown field: err = %v, want ErrInvalidMask", err)
	}
}

func TestApply_InvalidIdentifierInPayload(t *testing.T) {
	a := sampleAircraft()
	var p UpdateAircraftPayload
	if err := json.Unmarshal([]byte(`{"model_id": "not-a-uuid", "mask": ["model_id"]}`), &p); err != nil {
		t.Fatal(err)
	}
	if _, err := p.Apply(&a); !errors.Is(err, apperr.ErrInvalidFormat) {
		t.Errorf("err = %v, want ErrInvalidFormat", err)
	}
}

func TestApply_VertipadEnabledOccupied(t *testing.T) {
	port := uuid.New()
	pad := entities.Vertipad{
		ID:          uuid.New(),
		VertiportID: &port,
		Enabled:     true,
		Occupied:    false,
		CreatedAt:   time.Now().UTC(),
	}

	var p UpdateVertipadPayload
	if err := json.Unmarshal([]byte(`{"enabled": false, "occupied": true, "mask": ["enabled", "occupied"]}`), &p); err != nil {
		t.Fatal(err)
	}
	changed, err := p.Apply(&pad)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !changed || pad.Enabled || !pad.Occupied {
		t.Errorf("pad after apply: enabled=%v occupied=%v changed=%v", pad.Enabled, pad.Occupied, changed)
	}
}

func TestApply_GroupAssetsDeduplicated(t *testing.T) {
	g := entities.AssetGroup{
		ID:        uuid.New(),
		Owner:     uuid.New(),
		CreatedAt: time.Now().UTC(),
	}
	member := uuid.New()

	var p UpdateAssetGroupPayload
	body := `{"assets": ["` + member.String() + `", "` + member.String() + `"], "mask": ["assets"]}`
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		t.Fatal(err)
	}
	if _, err := p.Apply(&g); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(g.Assets) != 1 || g.Assets[0] != member {
		t.Errorf("assets = %v, want single %s", g.Assets, member)
	}
}
